package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUploadNotFound is returned for unknown or expired upload ids.
var ErrUploadNotFound = errors.New("dashboard: upload not found")

// Upload is a raw uploaded file. Only the bytes are kept between
// interactions; everything derived from them is recomputed per request.
type Upload struct {
	ID        string
	FileName  string
	Data      []byte
	CreatedAt time.Time
}

// UploadStore keeps uploads between interactions.
type UploadStore interface {
	Save(ctx context.Context, upload Upload) (Upload, error)
	Get(ctx context.Context, id string) (Upload, error)
}

// DefaultMaxUploads caps a MemoryUploadStore when no limit is configured.
const DefaultMaxUploads = 32

// MemoryUploadStore is an in-memory UploadStore whose entries expire after a TTL.
// A non-positive TTL keeps entries for the life of the process. The store never
// holds more than its max entries; saving past the cap evicts the oldest upload.
type MemoryUploadStore struct {
	ttl     time.Duration
	max     int
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]Upload
	order   []string
}

// UploadStoreOption customizes a MemoryUploadStore.
type UploadStoreOption func(*MemoryUploadStore)

// WithMaxUploads sets how many uploads are kept at once.
func WithMaxUploads(n int) UploadStoreOption {
	return func(s *MemoryUploadStore) {
		if n > 0 {
			s.max = n
		}
	}
}

// NewMemoryUploadStore builds a store with the provided TTL.
func NewMemoryUploadStore(ttl time.Duration, opts ...UploadStoreOption) *MemoryUploadStore {
	s := &MemoryUploadStore{
		ttl:     ttl,
		max:     DefaultMaxUploads,
		now:     time.Now,
		entries: make(map[string]Upload),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save assigns an id and stores the upload, pruning expired entries first.
func (s *MemoryUploadStore) Save(_ context.Context, upload Upload) (Upload, error) {
	upload.ID = uuid.NewString()
	upload.CreatedAt = s.now()
	upload.Data = append([]byte(nil), upload.Data...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	for len(s.order) >= s.max {
		delete(s.entries, s.order[0])
		s.order = s.order[1:]
	}
	s.entries[upload.ID] = upload
	s.order = append(s.order, upload.ID)
	return upload, nil
}

// Get returns a stored upload.
func (s *MemoryUploadStore) Get(_ context.Context, id string) (Upload, error) {
	s.mu.RLock()
	upload, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return Upload{}, ErrUploadNotFound
	}
	if s.expired(upload) {
		s.mu.Lock()
		s.removeLocked(id)
		s.mu.Unlock()
		return Upload{}, ErrUploadNotFound
	}
	return upload, nil
}

// Len returns the number of stored uploads, expired ones included.
func (s *MemoryUploadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryUploadStore) expired(upload Upload) bool {
	return s.ttl > 0 && s.now().After(upload.CreatedAt.Add(s.ttl))
}

func (s *MemoryUploadStore) pruneLocked() {
	kept := s.order[:0]
	for _, id := range s.order {
		upload, ok := s.entries[id]
		if !ok {
			continue
		}
		if s.expired(upload) {
			delete(s.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *MemoryUploadStore) removeLocked(id string) {
	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
