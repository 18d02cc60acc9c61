// Package extract turns raw page text into a bounded list of verifiable
// factual statements. The primary path asks the generative-text service
// for a JSON array; every failure mode falls through to heuristic
// sentence scoring, so extraction never fails a request.
package extract

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
)

// heuristicMinScore is the minimum sentence score for the fallback path
const heuristicMinScore = 2

// maxPromptChars bounds how much page text goes into the extraction prompt
const maxPromptChars = 8000

var attributionVerbs = []string{
	"said", "reported", "claimed", "stated", "announced", "confirmed",
	"according to", "found that", "shows that", "revealed", "estimated",
	"warned", "denied",
}

// Patterns for fragments that look like sentences but carry nothing
// verifiable: bare dates, timestamps, navigation chrome.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\.?$`),
	regexp.MustCompile(`^(?i)(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\.?$`),
	regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?\s*(?i:am|pm)?\.?$`),
	regexp.MustCompile(`^(?i)(home|menu|search|subscribe|sign in|log in|read more|click here|share this|advertisement|cookie|privacy policy|terms of (use|service))\b.{0,30}$`),
	regexp.MustCompile(`^(?i)(copyright|©|all rights reserved)`),
	regexp.MustCompile(`^[\W\d\s]+$`),
}

// Extractor extracts claims from page text
type Extractor struct {
	provider  llm.Provider // nil forces the heuristic path
	maxClaims int
}

// NewExtractor creates a new claim extractor
func NewExtractor(provider llm.Provider, maxClaims int) *Extractor {
	if maxClaims <= 0 {
		maxClaims = 5
	}
	return &Extractor{
		provider:  provider,
		maxClaims: maxClaims,
	}
}

// Extract returns between 0 and maxClaims claims for the given text.
// Never returns an error; an empty slice is a valid outcome the caller
// must handle.
func (e *Extractor) Extract(ctx context.Context, text string) []model.Claim {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if e.provider != nil {
		if claims, ok := e.extractWithModel(ctx, text); ok {
			return claims
		}
	}

	return e.extractHeuristic(text)
}

// extractWithModel asks the provider for a JSON array of statements.
// ok=false on any service or parse failure.
func (e *Extractor) extractWithModel(ctx context.Context, text string) ([]model.Claim, bool) {
	prompt := buildExtractionPrompt(text, e.maxClaims)

	reply, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System:      "You extract independently verifiable factual statements from web page text.",
		Prompt:      prompt,
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		return nil, false
	}

	statements, fail := llm.ParseStringArray(reply)
	if fail != nil {
		return nil, false
	}

	claims := make([]model.Claim, 0, e.maxClaims)
	for _, s := range statements {
		claim, ok := model.NewClaim(s, model.OriginModel)
		if !ok || isNoise(claim.Text) {
			continue
		}
		claims = append(claims, claim)
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims, true
}

func buildExtractionPrompt(text string, maxClaims int) string {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	return fmt.Sprintf(`Extract up to %d independently verifiable factual statements from the page text below.

Rules:
- Each statement must be checkable against external sources (facts, figures, events, attributions).
- Skip opinions, predictions, navigation text, and boilerplate.
- Rephrase each statement so it stands on its own without the surrounding text.
- Respond with ONLY a JSON array of strings, most significant statement first.

Page text:
%s`, maxClaims, text)
}

// extractHeuristic splits the text into sentences and scores each by
// markers of checkable content: numerals, attribution verbs, proper
// nouns. Top scorers above the threshold win, strongest first.
func (e *Extractor) extractHeuristic(text string) []model.Claim {
	sentences := SplitSentences(text)

	type scored struct {
		text  string
		score int
		pos   int
	}

	var candidates []scored
	for i, sentence := range sentences {
		if isNoise(sentence) {
			continue
		}
		score := scoreSentence(sentence)
		if score >= heuristicMinScore {
			candidates = append(candidates, scored{text: sentence, score: score, pos: i})
		}
	}

	// Strongest first; document order breaks ties
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	var claims []model.Claim
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := strings.ToLower(c.text)
		if seen[key] {
			continue
		}
		seen[key] = true

		claim, ok := model.NewClaim(c.text, model.OriginHeuristic)
		if !ok {
			continue
		}
		claims = append(claims, claim)
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims
}

// scoreSentence rates how likely a sentence is to carry a checkable fact
func scoreSentence(sentence string) int {
	score := 0
	lower := strings.ToLower(sentence)

	if strings.ContainsFunc(sentence, unicode.IsDigit) {
		score += 2
	}

	for _, verb := range attributionVerbs {
		if strings.Contains(lower, verb) {
			score += 2
			break
		}
	}

	// Proper nouns: capitalized words past the sentence start
	words := strings.Fields(sentence)
	for i, w := range words {
		if i == 0 {
			continue
		}
		r := []rune(w)
		if len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsLower(r[1]) {
			score++
			break
		}
	}

	return score
}

// isNoise reports whether the fragment matches a known noise pattern
func isNoise(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range noisePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// SplitSentences splits plain text into sentences, dropping fragments
// too short or too long to be useful claims.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
				appendSentence(&sentences, current.String())
				current.Reset()
			}
		}
	}
	appendSentence(&sentences, current.String())

	return sentences
}

func appendSentence(sentences *[]string, s string) {
	s = strings.TrimSpace(s)
	if len(s) >= model.MinClaimLength && len(s) <= 500 {
		*sentences = append(*sentences, s)
	}
}
