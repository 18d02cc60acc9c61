package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/trustlens/internal/model"
)

// stubProvider returns a fixed reply or error
type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Name() string                        { return "stub" }
func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }
func (p *stubProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	p.calls++
	return p.reply, p.err
}

func TestSummarizer_UsesProviderReply(t *testing.T) {
	provider := &stubProvider{reply: "Two of three claims were verified. The page appears broadly reliable."}
	s := NewSummarizer(provider)

	narrative := s.Narrative(context.Background(), "Test Page", model.VerdictTally{Verified: 2, Uncertain: 1})
	if narrative != provider.reply {
		t.Errorf("expected provider reply, got %q", narrative)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestSummarizer_FallbackOnError(t *testing.T) {
	provider := &stubProvider{err: errors.New("rate limited")}
	s := NewSummarizer(provider)

	narrative := s.Narrative(context.Background(), "", model.VerdictTally{Verified: 1, Disputed: 1, Uncertain: 1})
	if narrative == "" {
		t.Fatal("fallback narrative must be non-empty")
	}
	if !strings.Contains(narrative, "1 of 3") {
		t.Errorf("expected counts in fallback, got %q", narrative)
	}
}

func TestSummarizer_FallbackOnEmptyReply(t *testing.T) {
	provider := &stubProvider{reply: "   "}
	s := NewSummarizer(provider)

	narrative := s.Narrative(context.Background(), "", model.VerdictTally{Verified: 2})
	if strings.TrimSpace(narrative) == "" {
		t.Fatal("narrative must be non-empty")
	}
}

func TestSummarizer_NilProvider(t *testing.T) {
	s := NewSummarizer(nil)

	narrative := s.Narrative(context.Background(), "", model.VerdictTally{})
	if narrative == "" {
		t.Fatal("narrative must be non-empty with no provider")
	}
	if !strings.Contains(strings.ToLower(narrative), "no independently verifiable claims") {
		t.Errorf("expected zero-claims wording, got %q", narrative)
	}
}

func TestFallbackNarrative_MentionsDisputed(t *testing.T) {
	narrative := FallbackNarrative(model.VerdictTally{Verified: 1, Disputed: 3})
	if !strings.Contains(narrative, "3 were disputed") {
		t.Errorf("expected disputed count, got %q", narrative)
	}
	if !strings.Contains(narrative, "should not be relied on") {
		t.Errorf("expected caution wording when disputed dominates, got %q", narrative)
	}
}
