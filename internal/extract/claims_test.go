package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

const articleText = `The Golden Gate Bridge opened to traffic on May 27, 1937. ` +
	`Chief engineer Joseph Strauss said the project came in under budget. ` +
	`It is painted in a color known as international orange. ` +
	`What a lovely sight it is on a clear day. ` +
	`City officials reported that about 112,000 vehicles cross it daily.`

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Name() string                         { return "stub" }
func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }
func (p *stubProvider) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	p.calls++
	return p.reply, p.err
}

func TestExtract_ModelPath(t *testing.T) {
	provider := &stubProvider{reply: `["The Golden Gate Bridge opened on May 27, 1937.", "About 112,000 vehicles cross the bridge daily."]`}
	e := NewExtractor(provider, 5)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	for _, c := range claims {
		if c.Origin != model.OriginModel {
			t.Errorf("expected model origin, got %q", c.Origin)
		}
		if len(c.Text) < model.MinClaimLength {
			t.Errorf("claim below minimum length: %q", c.Text)
		}
	}
}

func TestExtract_ModelPathFiltersShortAndNoise(t *testing.T) {
	provider := &stubProvider{reply: `["Too short.", "05/27/1937", "Subscribe to our newsletter today", "The bridge took four years to build."]`}
	e := NewExtractor(provider, 5)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim after filtering, got %d: %v", len(claims), claims)
	}
	if claims[0].Text != "The bridge took four years to build." {
		t.Errorf("unexpected surviving claim: %q", claims[0].Text)
	}
}

func TestExtract_TruncatesToMaxClaims(t *testing.T) {
	provider := &stubProvider{reply: `["Claim number one is here.", "Claim number two is here.", "Claim number three is here."]`}
	e := NewExtractor(provider, 2)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	// Model order preserved, no re-ranking
	if claims[0].Text != "Claim number one is here." {
		t.Errorf("expected model order preserved, got %q first", claims[0].Text)
	}
}

func TestExtract_FallsBackOnServiceError(t *testing.T) {
	provider := &stubProvider{err: errors.New("service unavailable")}
	e := NewExtractor(provider, 5)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) == 0 {
		t.Fatal("expected heuristic claims for substantive text")
	}
	for _, c := range claims {
		if c.Origin != model.OriginHeuristic {
			t.Errorf("expected heuristic origin, got %q", c.Origin)
		}
	}
}

func TestExtract_FallsBackOnUnparsableReply(t *testing.T) {
	provider := &stubProvider{reply: "I'm sorry, I can't produce JSON right now."}
	e := NewExtractor(provider, 5)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) == 0 {
		t.Fatal("expected heuristic fallback claims")
	}
	if claims[0].Origin != model.OriginHeuristic {
		t.Errorf("expected heuristic origin, got %q", claims[0].Origin)
	}
}

func TestExtract_NilProviderUsesHeuristics(t *testing.T) {
	e := NewExtractor(nil, 3)

	claims := e.Extract(context.Background(), articleText)
	if len(claims) == 0 {
		t.Fatal("expected heuristic claims")
	}
	if len(claims) > 3 {
		t.Errorf("expected at most 3 claims, got %d", len(claims))
	}

	// Sentences with numbers and attribution should outrank the opinion line
	for _, c := range claims {
		if strings.Contains(c.Text, "lovely sight") {
			t.Errorf("opinion sentence should not be extracted: %q", c.Text)
		}
	}
}

func TestExtract_EmptyAndThinText(t *testing.T) {
	e := NewExtractor(nil, 5)

	if claims := e.Extract(context.Background(), ""); len(claims) != 0 {
		t.Errorf("expected no claims for empty text, got %d", len(claims))
	}
	if claims := e.Extract(context.Background(), "Hello there. Nice day."); len(claims) != 0 {
		t.Errorf("expected no claims for contentless text, got %d", len(claims))
	}
}

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"05/27/1937",
		"January 5, 2024",
		"12:45 PM",
		"Subscribe to our newsletter",
		"Read more about this topic",
		"© 2024 Example Media",
		"-- 42 --",
	}
	for _, s := range noisy {
		if !isNoise(s) {
			t.Errorf("expected noise: %q", s)
		}
	}

	clean := []string{
		"The company reported revenue of $4 billion in 2023.",
		"Researchers at MIT found the material conducts at room temperature.",
	}
	for _, s := range clean {
		if isNoise(s) {
			t.Errorf("unexpected noise match: %q", s)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	text := "First sentence goes right here. Second one follows it! Third asks a question? Tiny. And the last sentence has no terminator"
	sentences := SplitSentences(text)

	if len(sentences) != 4 {
		t.Fatalf("expected 4 sentences (tiny fragment dropped), got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence goes right here." {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
	if sentences[3] != "And the last sentence has no terminator" {
		t.Errorf("unexpected trailing sentence: %q", sentences[3])
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><script>var x = "The year was 1999.";</script><style>.a{}</style></head>
<body><h1>Headline</h1><p>The plant opened in 1985.</p><iframe>ad text</iframe></body></html>`

	text := StripHTML(html)
	if !strings.Contains(text, "The plant opened in 1985.") {
		t.Errorf("expected body text, got %q", text)
	}
	if strings.Contains(text, "1999") || strings.Contains(text, "ad text") {
		t.Errorf("script/iframe text leaked: %q", text)
	}
}
