package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/trustlens/internal/model"
)

// Summarizer renders verdict tallies into a short narrative. The primary
// path asks the provider; the fallback is a template over the counts, so
// the narrative is non-empty regardless of upstream failures.
type Summarizer struct {
	provider Provider // nil means template-only
}

// NewSummarizer creates a summarizer backed by the given provider
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Narrative produces 2-4 sentences grounded strictly in the verdict
// tallies. Never returns an empty string and never fails the request.
func (s *Summarizer) Narrative(ctx context.Context, title string, tally model.VerdictTally) string {
	if s.provider == nil {
		return FallbackNarrative(tally)
	}

	reply, err := s.provider.Generate(ctx, GenerateRequest{
		System:      "You write short, neutral credibility assessments of web pages.",
		Prompt:      buildNarrativePrompt(title, tally),
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		return FallbackNarrative(tally)
	}

	return strings.TrimSpace(reply)
}

// buildNarrativePrompt constrains the model to the tallies: it must not
// introduce claims the pipeline never verified.
func buildNarrativePrompt(title string, tally model.VerdictTally) string {
	var b strings.Builder
	b.WriteString("Write a 2-4 sentence credibility summary of a web page")
	if title != "" {
		fmt.Fprintf(&b, " titled %q", title)
	}
	b.WriteString(".\n\nVerification results:\n")
	fmt.Fprintf(&b, "- Claims checked: %d\n", tally.Total())
	fmt.Fprintf(&b, "- Verified: %d\n", tally.Verified)
	fmt.Fprintf(&b, "- Disputed: %d\n", tally.Disputed)
	fmt.Fprintf(&b, "- Uncertain: %d\n", tally.Uncertain)
	b.WriteString(`
Rules:
- Base the summary ONLY on the counts above.
- Do NOT introduce any new factual claims about the page's subject.
- Do NOT speculate about who wrote the page.
- Plain prose, no lists, no markdown.`)
	return b.String()
}

// FallbackNarrative states the tallies directly
func FallbackNarrative(tally model.VerdictTally) string {
	total := tally.Total()
	if total == 0 {
		return "No independently verifiable claims could be extracted from this page, " +
			"so its factual content could not be checked against external sources. " +
			"Treat any assertions it makes with appropriate caution."
	}

	narrative := fmt.Sprintf("%d of %d factual claims on this page were verified against external sources", tally.Verified, total)
	if tally.Disputed > 0 {
		narrative += fmt.Sprintf("; %d were disputed by available reporting", tally.Disputed)
	}
	if tally.Uncertain > 0 {
		narrative += fmt.Sprintf("; %d could not be confirmed either way", tally.Uncertain)
	}
	narrative += ". "

	switch {
	case tally.Disputed > tally.Verified:
		narrative += "Disputed claims outnumber verified ones, which suggests the page should not be relied on without independent confirmation."
	case tally.Verified == total:
		narrative += "All extracted claims were corroborated, which supports the page's factual reliability."
	default:
		narrative += "Readers should independently confirm the unverified assertions before citing or sharing this page."
	}

	return narrative
}
