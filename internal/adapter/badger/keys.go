package badger

import (
	"encoding/json"
	"errors"
	"fmt"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// Key layout. Versions are zero padded so a prefix scan yields them in order.
//
//	v/<topic>/<version>    TopicVersion
//	h/<topic>              TopicHead
//	p/<parent>/<child>     child index of live heads
//	r/<resource>           Resource
//	rt/<topic>/<resource>  resources of a topic
//	u/<user>               User
//	ue/<email>             email uniqueness
const (
	prefixVersion       = "v/"
	prefixHead          = "h/"
	prefixChild         = "p/"
	prefixResource      = "r/"
	prefixTopicResource = "rt/"
	prefixUser          = "u/"
	prefixUserEmail     = "ue/"
)

func versionKey(topicID uuid.UUID, version int) []byte {
	return fmt.Appendf(nil, "%s%s/%010d", prefixVersion, topicID, version)
}

func topicVersionsPrefix(topicID uuid.UUID) []byte {
	return []byte(prefixVersion + topicID.String() + "/")
}

func headKey(topicID uuid.UUID) []byte {
	return []byte(prefixHead + topicID.String())
}

func childPrefix(parentID uuid.UUID) []byte {
	return []byte(prefixChild + parentID.String() + "/")
}

func childKey(parentID, childID uuid.UUID) []byte {
	return append(childPrefix(parentID), childID.String()...)
}

func resourceKey(id uuid.UUID) []byte {
	return []byte(prefixResource + id.String())
}

func topicResourcePrefix(topicID uuid.UUID) []byte {
	return []byte(prefixTopicResource + topicID.String() + "/")
}

func topicResourceKey(topicID, resourceID uuid.UUID) []byte {
	return append(topicResourcePrefix(topicID), resourceID.String()...)
}

func userKey(id uuid.UUID) []byte {
	return []byte(prefixUser + id.String())
}

func userEmailKey(email string) []byte {
	return []byte(prefixUserEmail + email)
}

// idFromKey parses the trailing uuid of an index key.
func idFromKey(key, prefix []byte) (uuid.UUID, error) {
	return uuid.ParseBytes(key[len(prefix):])
}

func getJSON(txn *dgbadger.Txn, key []byte, out any) error {
	item, err := txn.Get(key)
	if errors.Is(err, dgbadger.ErrKeyNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *dgbadger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func exists(txn *dgbadger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, dgbadger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanKeys returns every key under prefix in ascending order.
func scanKeys(txn *dgbadger.Txn, prefix []byte) [][]byte {
	opts := dgbadger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys
}

// scanJSON decodes every value under prefix in key order.
func scanJSON[T any](txn *dgbadger.Txn, prefix []byte) ([]T, error) {
	opts := dgbadger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	result := []T{}
	for it.Rewind(); it.Valid(); it.Next() {
		var v T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		result = append(result, v)
	}
	return result, nil
}
