package badger

// NewMemoryStore creates an in-memory chunk repository for tests.
func NewMemoryStore() (*ChunkStore, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return NewChunkStore(backend), nil
}
