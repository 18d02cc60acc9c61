package score

import (
	"math"
	"strings"
	"unicode"

	"github.com/ppiankov/trustlens/internal/extract"
)

// The two text signals below are intentionally simple lexical heuristics.
// They trade accuracy for availability: both must produce a number for
// any input with zero network calls, because they anchor the credibility
// formula when extraction and verification degrade to nothing.

// Phrases disproportionately common in machine-generated prose
var aiTellPhrases = []string{
	"delve into", "it is important to note", "it is worth noting",
	"in conclusion", "furthermore", "moreover", "in today's fast-paced",
	"plays a crucial role", "a testament to", "the landscape of",
	"comprehensive overview", "in the realm of", "navigating the",
	"as an ai", "unlock the", "seamlessly",
}

// Loaded words common in engagement-bait and manipulative framing
var manipulationWords = []string{
	"shocking", "outrage", "outrageous", "you won't believe", "destroyed",
	"slams", "slammed", "breaking", "urgent", "miracle", "exposed",
	"secret", "they don't want you to know", "wake up", "bombshell",
	"furious", "terrifying", "disaster", "must see", "must read",
}

// AILikelihood estimates the probability [0,100] that the text is
// machine-generated, from phrase frequency and sentence-length
// uniformity. Deterministic; no external calls.
func (s *Scorer) AILikelihood(text string) float64 {
	lower := strings.ToLower(text)
	score := 25.0

	// Tell-phrase density, saturating at +40
	hits := 0
	for _, phrase := range aiTellPhrases {
		hits += strings.Count(lower, phrase)
	}
	perKiloChar := float64(hits) / (float64(len(text))/1000 + 1)
	score += math.Min(perKiloChar*20, 40)

	// Human prose varies sentence length; uniform lengths push the
	// estimate up, strongly varied lengths pull it down
	if cv := sentenceLengthVariation(text); cv >= 0 {
		switch {
		case cv < 0.25:
			score += 20
		case cv < 0.40:
			score += 10
		case cv > 0.70:
			score -= 10
		}
	}

	// Contractions are a human-prose marker the models underuse
	contractions := strings.Count(lower, "n't") + strings.Count(lower, "'re") +
		strings.Count(lower, "'ve") + strings.Count(lower, "'ll")
	if contractions == 0 && len(text) > 600 {
		score += 10
	} else if contractions >= 3 {
		score -= 10
	}

	return clamp(score)
}

// ManipulationRisk estimates [0,100] how aggressively the content pushes
// emotional engagement over information. Deterministic; no external calls.
func (s *Scorer) ManipulationRisk(text, title string) float64 {
	lower := strings.ToLower(text)
	score := 15.0

	hits := 0
	for _, w := range manipulationWords {
		hits += strings.Count(lower, w)
	}
	perKiloChar := float64(hits) / (float64(len(text))/1000 + 1)
	score += math.Min(perKiloChar*25, 40)

	// Exclamation density
	exclaims := strings.Count(text, "!")
	perSentence := float64(exclaims) / (float64(len(extract.SplitSentences(text))) + 1)
	score += math.Min(perSentence*50, 15)

	// Shouting
	if capsRatio(text) > 0.05 {
		score += 10
	}

	score += float64(titleRisk(title))

	return clamp(score)
}

// titleRisk scores headline-level engagement bait: loaded words,
// exclamations, questions, second-person hooks.
func titleRisk(title string) int {
	if title == "" {
		return 0
	}
	lower := strings.ToLower(title)
	risk := 0

	for _, w := range manipulationWords {
		if strings.Contains(lower, w) {
			risk += 10
			break
		}
	}
	if strings.Contains(title, "!") {
		risk += 5
	}
	if strings.HasSuffix(strings.TrimSpace(title), "?") {
		risk += 5
	}
	if strings.Contains(lower, "you ") || strings.HasPrefix(lower, "you") {
		risk += 5
	}

	return risk
}

// sentenceLengthVariation returns the coefficient of variation of word
// counts per sentence, or -1 when there are too few sentences to judge.
func sentenceLengthVariation(text string) float64 {
	sentences := extract.SplitSentences(text)
	if len(sentences) < 4 {
		return -1
	}

	lengths := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	if mean == 0 {
		return -1
	}

	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	return math.Sqrt(variance) / mean
}

// capsRatio returns the share of letters that are uppercase, ignoring
// short texts where a headline would dominate.
func capsRatio(text string) float64 {
	var upper, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters < 200 {
		return 0
	}
	return float64(upper) / float64(letters)
}
