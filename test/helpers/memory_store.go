package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/andrescamacho/armor-tracker/internal/domain/storage"
)

// MemoryDocumentStore is an in-memory storage.DocumentStore with failure injection.
type MemoryDocumentStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	putCalls map[string]int
	putErr   error
	getErr   error
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		docs:     make(map[string][]byte),
		putCalls: make(map[string]int),
	}
}

func (m *MemoryDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	body, ok := m.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), body...), nil
}

func (m *MemoryDocumentStore) Put(ctx context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls[key]++
	if m.putErr != nil {
		return m.putErr
	}
	m.docs[key] = append([]byte(nil), body...)
	return nil
}

func (m *MemoryDocumentStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

// Seed stores a raw document without counting it as a write.
func (m *MemoryDocumentStore) Seed(key, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = []byte(body)
}

// Raw returns the stored document, if any.
func (m *MemoryDocumentStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[key]
	return string(body), ok
}

// PutCount is the number of Put calls for key, failed ones included.
func (m *MemoryDocumentStore) PutCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.putCalls[key]
}

// FailWrites makes every Put fail until cleared with an empty message.
func (m *MemoryDocumentStore) FailWrites(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg == "" {
		m.putErr = nil
		return
	}
	m.putErr = errors.New(msg)
}

// FailReads makes every Get fail until cleared with an empty message.
func (m *MemoryDocumentStore) FailReads(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg == "" {
		m.getErr = nil
		return
	}
	m.getErr = errors.New(msg)
}
