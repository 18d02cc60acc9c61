package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

// Entry wraps a cached analysis result with its creation time. The
// creation time decides freshness independently of the backend's TTL:
// a result can be too stale to serve yet still within retention.
type Entry struct {
	Result    model.AnalysisResult `json:"result"`
	CreatedAt time.Time            `json:"created_at"`
}

// ResultStore is the orchestrator's URL-keyed result cache. Entries
// fresher than the freshness window are served as-is; older entries are
// treated as misses and overwritten on the next successful analysis.
type ResultStore struct {
	backend   Cache
	freshness time.Duration
	retention time.Duration
	now       func() time.Time // injectable for tests
}

// NewResultStore creates a result store over the given backend
func NewResultStore(backend Cache, freshness, retention time.Duration) *ResultStore {
	if freshness <= 0 {
		freshness = time.Hour
	}
	if retention < freshness {
		retention = 7 * 24 * time.Hour
	}
	return &ResultStore{
		backend:   backend,
		freshness: freshness,
		retention: retention,
		now:       time.Now,
	}
}

// Get returns the cached result for the URL if a fresh entry exists
func (s *ResultStore) Get(url string) (*model.AnalysisResult, bool) {
	data, found := s.backend.Get(Key(url))
	if !found {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = s.backend.Delete(Key(url))
		return nil, false
	}

	if s.now().Sub(entry.CreatedAt) >= s.freshness {
		return nil, false
	}

	return &entry.Result, true
}

// Set stores the result, replacing any stale entry for the URL
func (s *ResultStore) Set(url string, result *model.AnalysisResult) error {
	entry := Entry{
		Result:    *result,
		CreatedAt: s.now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return s.backend.Set(Key(url), data, s.retention)
}

// Sweep purges entries past the retention window
func (s *ResultStore) Sweep() error {
	return s.backend.Sweep()
}
