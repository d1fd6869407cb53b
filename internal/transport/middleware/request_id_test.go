package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	incoming := uuid.New().String()

	ctxID, headerID := serveRequestID(t, incoming)

	assert.Equal(t, incoming, ctxID)
	assert.Equal(t, incoming, headerID)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	ctxID, headerID := serveRequestID(t, "")

	_, err := uuid.Parse(ctxID)
	assert.NoError(t, err)
	assert.Equal(t, ctxID, headerID)
}

func TestRequestID_ReplacesUnusableIncoming(t *testing.T) {
	for name, incoming := range map[string]string{
		"too long":       strings.Repeat("a", maxRequestIDLen+1),
		"contains tab":   "abc\tdef",
		"contains space": "abc def",
		"non ascii":      "id-é",
	} {
		t.Run(name, func(t *testing.T) {
			ctxID, headerID := serveRequestID(t, incoming)

			assert.NotEqual(t, incoming, ctxID)
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
			assert.Equal(t, ctxID, headerID)
		})
	}
}
