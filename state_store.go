package novacore

import "sync"

// ──────────────────────────────────────────────
// StateStore — pluggable durable KV backend
// ──────────────────────────────────────────────

// Well-known store keys for the pipeline's persisted collections.
const (
	KeyEmotionalState = "emotional_state"
	KeyStimulusMap    = "emotion_memory_map"
	KeyEpisodic       = "episodic"
	KeySemantic       = "semantic"
	KeyEmotionalLog   = "emotional_events"
	KeyContinuity     = "session_summaries"
)

// StateStore is the durable key-value backend for persisted state.
// Collections are loaded in full at startup and written in full on flush,
// never streamed. See the store package for file, Redis, and SQLite
// implementations.
type StateStore interface {
	// Load returns the stored bytes for key. found is false when the key
	// has never been written; that is not an error.
	Load(key string) (data []byte, found bool, err error)
	Save(key string, data []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// MemoryStateStore is a thread-safe in-memory StateStore for development
// and tests. Data is lost on restart.
type MemoryStateStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStateStore creates an empty in-memory store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{data: make(map[string][]byte)}
}

func (s *MemoryStateStore) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *MemoryStateStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
	return nil
}

func (s *MemoryStateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStateStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
