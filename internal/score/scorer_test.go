package score

import (
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/trustlens/internal/model"
)

func verdictWith(status model.VerdictStatus) model.Verdict {
	return model.Verdict{
		Claim:    model.Claim{Text: "A claim long enough to count.", Origin: model.OriginModel},
		Status:   status,
		Evidence: []model.EvidenceItem{},
	}
}

func verdictList(verified, disputed, uncertain int) []model.Verdict {
	var verdicts []model.Verdict
	for i := 0; i < verified; i++ {
		verdicts = append(verdicts, verdictWith(model.StatusVerified))
	}
	for i := 0; i < disputed; i++ {
		verdicts = append(verdicts, verdictWith(model.StatusDisputed))
	}
	for i := 0; i < uncertain; i++ {
		verdicts = append(verdicts, verdictWith(model.StatusUncertain))
	}
	return verdicts
}

func TestIntegrate_NoVerdictsUsesNeutralStrength(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	// 0.40*(100-20) + 0.35*(100-10) + 0.25*50 = 32 + 31.5 + 12.5 = 76
	got := s.Integrate(nil, 20, 10)
	if math.Abs(got-76) > 1e-9 {
		t.Errorf("expected 76, got %v", got)
	}
}

func TestIntegrate_AllVerifiedBeatsAllDisputed(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	allVerified := s.Integrate(verdictList(3, 0, 0), 30, 30)
	allDisputed := s.Integrate(verdictList(0, 3, 0), 30, 30)
	mixed := s.Integrate(verdictList(1, 1, 1), 30, 30)

	if !(allVerified > mixed && mixed > allDisputed) {
		t.Errorf("ordering broken: verified=%v mixed=%v disputed=%v", allVerified, mixed, allDisputed)
	}
}

func TestIntegrate_DisputedCostsMoreThanUncertain(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	withUncertain := s.Integrate(verdictList(2, 0, 1), 30, 30)
	withDisputed := s.Integrate(verdictList(2, 1, 0), 30, 30)
	if withDisputed >= withUncertain {
		t.Errorf("disputed should score below uncertain: disputed=%v uncertain=%v", withDisputed, withUncertain)
	}
}

func TestIntegrate_Bounds(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	cases := []struct {
		verdicts []model.Verdict
		ai, man  float64
	}{
		{nil, 0, 0},
		{nil, 100, 100},
		{nil, -50, 250},
		{verdictList(5, 0, 0), 0, 0},
		{verdictList(0, 5, 0), 100, 100},
	}
	for i, c := range cases {
		got := s.Integrate(c.verdicts, c.ai, c.man)
		if got < 0 || got > 100 {
			t.Errorf("case %d: score %v out of [0,100]", i, got)
		}
	}
}

func TestVerificationStrength(t *testing.T) {
	cases := []struct {
		verdicts []model.Verdict
		want     float64
	}{
		{nil, 50},
		{verdictList(3, 0, 0), 100},
		{verdictList(0, 3, 0), 0}, // clamped from -100
		{verdictList(1, 1, 0), 0},
		{verdictList(2, 1, 1), 25},
		{verdictList(0, 0, 2), 0},
	}
	for i, c := range cases {
		if got := verificationStrength(c.verdicts); got != c.want {
			t.Errorf("case %d: expected %v, got %v", i, c.want, got)
		}
	}
}

func TestFindings_VerifiedCounts(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	findings := s.Findings("body text", "", verdictList(2, 1, 0), 20, 20)
	if !containsSubstring(findings, "2 of 3 claims verified") {
		t.Errorf("expected verified count, got %v", findings)
	}
	if !containsSubstring(findings, "1 claims disputed") {
		t.Errorf("expected disputed count, got %v", findings)
	}
}

func TestFindings_NoClaims(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	findings := s.Findings("body text", "", nil, 20, 20)
	if !containsSubstring(findings, "No independently verifiable claims") {
		t.Errorf("expected no-claims note, got %v", findings)
	}
}

func TestFindings_NoEvidenceNote(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	findings := s.Findings("body text", "", verdictList(0, 0, 2), 20, 20)
	if !containsSubstring(findings, "No external news coverage") {
		t.Errorf("expected evidence note, got %v", findings)
	}

	withEvidence := verdictList(1, 0, 0)
	withEvidence[0].Evidence = []model.EvidenceItem{{SourceName: "Reuters"}}
	findings = s.Findings("body text", "", withEvidence, 20, 20)
	if containsSubstring(findings, "No external news coverage") {
		t.Errorf("evidence note should be absent, got %v", findings)
	}
}

func TestFindings_SignalThresholds(t *testing.T) {
	s := NewScorer(model.ScoreWeights{})

	findings := s.Findings("body", "", nil, 75, 60)
	if !containsSubstring(findings, "Strong AI-generated") {
		t.Errorf("expected strong AI note, got %v", findings)
	}
	if !containsSubstring(findings, "manipulative framing") {
		t.Errorf("expected manipulation note, got %v", findings)
	}

	findings = s.Findings("body", "", nil, 55, 20)
	if !containsSubstring(findings, "Some AI-generated") {
		t.Errorf("expected mild AI note, got %v", findings)
	}

	findings = s.Findings("body", "SHOCKING truth about the economy!", nil, 20, 20)
	if !containsSubstring(findings, "headline") {
		t.Errorf("expected headline note, got %v", findings)
	}
}

func containsSubstring(findings []string, sub string) bool {
	for _, f := range findings {
		if strings.Contains(f, sub) {
			return true
		}
	}
	return false
}
