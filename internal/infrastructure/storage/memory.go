package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	appproduction "github.com/atelier/backend/internal/application/production"
)

var _ appproduction.ReportStorage = (*MemoryReportStorage)(nil)

// MemoryReportStorage keeps reports in process memory. It is used in
// development when no bucket is configured; download links point at BaseURL.
type MemoryReportStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryReportStorage creates an empty store
func NewMemoryReportStorage(baseURL string) *MemoryReportStorage {
	return &MemoryReportStorage{
		BaseURL: baseURL,
		objects: make(map[string]memoryObject),
	}
}

// Upload stores a copy of data
func (s *MemoryReportStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errEmptyKey
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = memoryObject{data: cp, contentType: contentType}
	return nil
}

// GenerateDownloadURL returns BaseURL/key with an expiry marker
func (s *MemoryReportStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	link := s.BaseURL + "/" + storageKey + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339))
	return link, expiresAt, nil
}

// Get returns a stored object
func (s *MemoryReportStorage) Get(storageKey string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj.data, obj.contentType, ok
}
