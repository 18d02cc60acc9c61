// Package score combines verdict tallies with two text-derived signals
// into one credibility number. The two signals (AI likelihood and
// manipulation risk) are deterministic lexical heuristics so they stay
// computable when every external service is down; verification strength
// carries the smallest weight because evidence is often unavailable.
package score

import (
	"fmt"

	"github.com/ppiankov/trustlens/internal/model"
)

// neutralStrength is the verification strength when no claims exist
const neutralStrength = 50

// Scorer integrates verdicts and signals into a credibility score
type Scorer struct {
	weights model.ScoreWeights
}

// NewScorer creates a scorer with the given formula weights
func NewScorer(weights model.ScoreWeights) *Scorer {
	if weights.Authenticity+weights.ManipulationResistance+weights.Verification == 0 {
		weights = model.ScoreWeights{
			Authenticity:           0.40,
			ManipulationResistance: 0.35,
			Verification:           0.25,
		}
	}
	return &Scorer{weights: weights}
}

// Integrate computes the credibility score:
//
//	w_a*(100-aiLikelihood) + w_m*(100-manipulationRisk) + w_v*strength
//
// clamped to [0,100] for any combination of inputs.
func (s *Scorer) Integrate(verdicts []model.Verdict, aiLikelihood, manipulationRisk float64) float64 {
	authenticity := 100 - clamp(aiLikelihood)
	resistance := 100 - clamp(manipulationRisk)
	strength := verificationStrength(verdicts)

	score := s.weights.Authenticity*authenticity +
		s.weights.ManipulationResistance*resistance +
		s.weights.Verification*strength

	return clamp(score)
}

// verificationStrength maps verdicts to [0,100]. Neutral 50 when no
// claims could be extracted. A disputed claim costs twice what an
// uncertain one does: uncertain merely withholds its share, disputed
// subtracts an extra share.
func verificationStrength(verdicts []model.Verdict) float64 {
	tally := model.TallyVerdicts(verdicts)
	total := tally.Total()
	if total == 0 {
		return neutralStrength
	}

	strength := 100 * float64(tally.Verified-tally.Disputed) / float64(total)
	return clamp(strength)
}

// Findings renders the signal outcomes as short human-readable notes
func (s *Scorer) Findings(text, title string, verdicts []model.Verdict, aiLikelihood, manipulationRisk float64) []string {
	var findings []string

	tally := model.TallyVerdicts(verdicts)
	if total := tally.Total(); total > 0 {
		findings = append(findings, fmt.Sprintf("%d of %d claims verified against external sources", tally.Verified, total))
		if tally.Disputed > 0 {
			findings = append(findings, fmt.Sprintf("%d claims disputed by external reporting", tally.Disputed))
		}
	} else {
		findings = append(findings, "No independently verifiable claims were extracted")
	}

	hasEvidence := false
	for _, v := range verdicts {
		if len(v.Evidence) > 0 {
			hasEvidence = true
			break
		}
	}
	if len(verdicts) > 0 && !hasEvidence {
		findings = append(findings, "No external news coverage found for any claim")
	}

	switch {
	case aiLikelihood >= 70:
		findings = append(findings, "Strong AI-generated writing patterns detected")
	case aiLikelihood >= 50:
		findings = append(findings, "Some AI-generated writing patterns detected")
	}

	if manipulationRisk >= 50 {
		findings = append(findings, "Emotional or manipulative framing present")
	}
	if title != "" && titleRisk(title) > 0 {
		findings = append(findings, "Emotional language present in headline")
	}

	return findings
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
