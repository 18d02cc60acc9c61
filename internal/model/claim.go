package model

import "strings"

// MinClaimLength is the minimum length of a claim worth verifying.
// Shorter fragments are almost always navigation text or dates.
const MinClaimLength = 15

// Claim represents a verifiable factual statement extracted from source text
type Claim struct {
	Text   string      `json:"text"`
	Origin ClaimOrigin `json:"origin"`
}

// ClaimOrigin records which extraction path produced the claim
type ClaimOrigin string

const (
	OriginModel     ClaimOrigin = "model"     // Extracted by the generative-text service
	OriginHeuristic ClaimOrigin = "heuristic" // Extracted by sentence-scoring fallback
)

// NewClaim builds a trimmed claim. Returns false if the text is too short
// to be a verifiable statement.
func NewClaim(text string, origin ClaimOrigin) (Claim, bool) {
	text = strings.TrimSpace(text)
	if len(text) < MinClaimLength {
		return Claim{}, false
	}
	return Claim{Text: text, Origin: origin}, true
}
