package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

func TestRecordTopicMutation(t *testing.T) {
	t.Parallel()
	m := New()

	m.RecordTopicMutation(domain.TopicActionCreate)
	m.RecordTopicMutation(domain.TopicActionCreate)
	m.RecordTopicMutation(domain.TopicActionDelete)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.topicMutations.WithLabelValues("CREATE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.topicMutations.WithLabelValues("DELETE")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.topicMutations.WithLabelValues("UPDATE")))
}

func TestObserveRequest(t *testing.T) {
	t.Parallel()
	m := New()

	m.ObserveRequest(http.MethodGet, "GET /topics/{id}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "GET /topics/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	t.Parallel()
	m := New()
	m.RecordTopicMutation(domain.TopicActionUpdate)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `knowledge_base_topic_mutations_total{action="UPDATE"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()
	a, b := New(), New()
	a.RecordTopicMutation(domain.TopicActionCreate)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.topicMutations.WithLabelValues("CREATE")))
}
