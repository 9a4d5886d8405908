package compare

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the serialized comparison set in Redis under a
// fixed per-owner key ("compare:<owner>").  The value is a JSON array
// of listing IDs, matching what the original browser client kept in
// local storage.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore builds a store scoped to the given owner key suffix
// (typically the user ID).
func NewRedisStore(rdb *redis.Client, owner string) *RedisStore {
	return &RedisStore{rdb: rdb, key: "compare:" + owner}
}

// Load reads and decodes the stored set.  A missing key or malformed
// payload is treated as an empty set rather than an error.
func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// Save serializes the full set and writes it synchronously.  The key
// has no TTL; a comparison never expires on its own.
func (s *RedisStore) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, raw, 0).Err()
}

// MemoryKeyspace holds one serialized set per owner in process memory.
// It backs comparison sets when Redis is unavailable; state survives
// for the lifetime of the process only.
type MemoryKeyspace struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryKeyspace() *MemoryKeyspace {
	return &MemoryKeyspace{data: make(map[string][]byte)}
}

// Store returns the per-owner store view of the keyspace.
func (k *MemoryKeyspace) Store(owner string) Store {
	return &keyspaceStore{ks: k, key: owner}
}

type keyspaceStore struct {
	ks  *MemoryKeyspace
	key string
}

func (s *keyspaceStore) Load(_ context.Context) ([]string, error) {
	s.ks.mu.Lock()
	raw := s.ks.data[s.key]
	s.ks.mu.Unlock()
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

func (s *keyspaceStore) Save(_ context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.ks.mu.Lock()
	s.ks.data[s.key] = raw
	s.ks.mu.Unlock()
	return nil
}

// MemoryStore is an in-process Store used when Redis is unavailable
// and in tests.  It round-trips through JSON so it exercises the same
// serialization path as RedisStore.
type MemoryStore struct {
	raw []byte
}

// NewMemoryStore returns a store optionally seeded with a raw payload
// (as a previous session would have written it).
func NewMemoryStore(seed []byte) *MemoryStore {
	return &MemoryStore{raw: seed}
}

// Load decodes the held payload; absent or malformed data is an empty set.
func (s *MemoryStore) Load(_ context.Context) ([]string, error) {
	if len(s.raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(s.raw, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// Save serializes and retains the full set.
func (s *MemoryStore) Save(_ context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}

// Raw exposes the last serialized payload.
func (s *MemoryStore) Raw() []byte { return s.raw }
