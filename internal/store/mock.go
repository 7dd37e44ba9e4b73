package store

// MemoryRepository is an in-memory Repository used by tests and by callers
// that do not want to touch the filesystem.
type MemoryRepository struct {
	values map[string][]byte

	// Error hooks for exercising failure paths in tests.
	GetError error
	PutError error
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string][]byte)}
}

func (m *MemoryRepository) Get(key string) ([]byte, bool, error) {
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	data, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	// Return a copy so callers cannot mutate stored state.
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *MemoryRepository) Put(key string, data []byte) error {
	if m.PutError != nil {
		return m.PutError
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.values[key] = stored
	return nil
}
