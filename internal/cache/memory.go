package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/runweather/running-advisor/internal/forecast"
)

type memoryEntry struct {
	payload    []byte
	storedAtMs int64
}

// MemoryStore is a concurrency-safe in-memory Store. It is the cache used in
// tests and in cacheless runs, and it keeps the same JSON payload round-trip
// as the sqlite store so both expire and fail soft identically.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
}

// NewMemoryStore creates a MemoryStore. ttl <= 0 falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

func (s *MemoryStore) Read(key string, now time.Time) (*forecast.HourlyDataset, bool) {
	s.mu.RLock()
	entry, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if expired(entry.storedAtMs, now, s.ttl) {
		s.remove(key)
		return nil, false
	}

	var data forecast.HourlyDataset
	if err := json.Unmarshal(entry.payload, &data); err != nil {
		s.remove(key)
		return nil, false
	}
	if len(data.Time) == 0 || !data.Aligned() {
		s.remove(key)
		return nil, false
	}

	return &data, true
}

func (s *MemoryStore) Write(key string, data *forecast.HourlyDataset, now time.Time) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data[key] = memoryEntry{payload: payload, storedAtMs: now.UnixMilli()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Prune(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped int
	for key, entry := range s.data {
		if expired(entry.storedAtMs, now, s.ttl) {
			delete(s.data, key)
			dropped++
		}
	}
	return dropped
}

func (s *MemoryStore) Close() error {
	return nil
}

// Corrupt overwrites the stored payload for key with bytes that are not a
// valid dataset. Test hook for the fail-soft read path.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.data[key]; ok {
		entry.payload = []byte("{not json")
		s.data[key] = entry
	}
}

func (s *MemoryStore) remove(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)
