package cache

import (
	"testing"
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

func testResult(score float64) *model.AnalysisResult {
	return &model.AnalysisResult{
		AILikelihood:     30,
		ManipulationRisk: 20,
		CredibilityScore: score,
		Findings:         []string{"2 of 3 claims verified against external sources"},
		Narrative:        "Most claims checked out.",
	}
}

func TestResultStore_RoundTrip(t *testing.T) {
	store := NewResultStore(NewMemoryCache(time.Hour, time.Hour), time.Hour, 7*24*time.Hour)

	if _, found := store.Get("https://example.com/article"); found {
		t.Fatal("expected miss on empty store")
	}

	if err := store.Set("https://example.com/article", testResult(80)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := store.Get("https://example.com/article")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if got.CredibilityScore != 80 {
		t.Errorf("expected score 80, got %v", got.CredibilityScore)
	}
	if got.Narrative != "Most claims checked out." {
		t.Errorf("narrative lost in round trip: %q", got.Narrative)
	}
}

func TestResultStore_FreshnessWindow(t *testing.T) {
	store := NewResultStore(NewMemoryCache(time.Hour, time.Hour), time.Hour, 7*24*time.Hour)

	clock := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	if err := store.Set("https://example.com/a", testResult(70)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	clock = clock.Add(59 * time.Minute)
	if _, found := store.Get("https://example.com/a"); !found {
		t.Error("entry within the freshness window should hit")
	}

	clock = clock.Add(2 * time.Minute)
	if _, found := store.Get("https://example.com/a"); found {
		t.Error("entry past the freshness window should miss")
	}
}

func TestResultStore_StaleEntryOverwritten(t *testing.T) {
	store := NewResultStore(NewMemoryCache(time.Hour, time.Hour), time.Hour, 7*24*time.Hour)

	clock := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	_ = store.Set("https://example.com/a", testResult(70))
	clock = clock.Add(2 * time.Hour)
	_ = store.Set("https://example.com/a", testResult(90))

	got, found := store.Get("https://example.com/a")
	if !found {
		t.Fatal("expected hit after re-analysis")
	}
	if got.CredibilityScore != 90 {
		t.Errorf("expected fresh score 90, got %v", got.CredibilityScore)
	}
}

func TestResultStore_CorruptEntryIsMissAndDeleted(t *testing.T) {
	backend := NewMemoryCache(time.Hour, time.Hour)
	store := NewResultStore(backend, time.Hour, 7*24*time.Hour)

	url := "https://example.com/corrupt"
	if err := backend.Set(Key(url), []byte("{not json"), time.Hour); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, found := store.Get(url); found {
		t.Fatal("corrupt entry must be a miss")
	}
	if _, found := backend.Get(Key(url)); found {
		t.Error("corrupt entry should be deleted from the backend")
	}
}

func TestResultStore_DistinctURLs(t *testing.T) {
	store := NewResultStore(NewMemoryCache(time.Hour, time.Hour), time.Hour, 7*24*time.Hour)

	_ = store.Set("https://example.com/a", testResult(10))
	_ = store.Set("https://example.com/b", testResult(90))

	a, _ := store.Get("https://example.com/a")
	b, _ := store.Get("https://example.com/b")
	if a == nil || b == nil || a.CredibilityScore == b.CredibilityScore {
		t.Errorf("URLs must not collide: a=%+v b=%+v", a, b)
	}
}

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/a")
	k2 := Key("https://example.com/a")
	k3 := Key("https://example.com/b")

	if k1 != k2 {
		t.Error("key must be deterministic")
	}
	if k1 == k3 {
		t.Error("different URLs must map to different keys")
	}
	if len(k1) <= len("trustlens:v1:") {
		t.Errorf("unexpected key shape: %q", k1)
	}
}
