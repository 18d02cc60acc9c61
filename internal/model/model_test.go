package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewClaim(t *testing.T) {
	if _, ok := NewClaim("too short", OriginModel); ok {
		t.Error("claims below the minimum length must be rejected")
	}
	if _, ok := NewClaim("   \t  ", OriginModel); ok {
		t.Error("whitespace-only claims must be rejected")
	}

	c, ok := NewClaim("  The dam was completed in 1936.  ", OriginModel)
	if !ok {
		t.Fatal("valid claim rejected")
	}
	if c.Text != "The dam was completed in 1936." {
		t.Errorf("claim not trimmed: %q", c.Text)
	}
	if c.Origin != OriginModel {
		t.Errorf("origin lost: %q", c.Origin)
	}
}

func TestVerdictStatusValid(t *testing.T) {
	for _, s := range []VerdictStatus{StatusVerified, StatusDisputed, StatusUncertain} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []VerdictStatus{"", "true", "likely", "VERIFIED "} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestTallyVerdicts(t *testing.T) {
	verdicts := []Verdict{
		{Status: StatusVerified},
		{Status: StatusVerified},
		{Status: StatusDisputed},
		{Status: StatusUncertain},
		{Status: "garbage"}, // counts as uncertain
	}

	tally := TallyVerdicts(verdicts)
	if tally.Verified != 2 || tally.Disputed != 1 || tally.Uncertain != 2 {
		t.Errorf("unexpected tally: %+v", tally)
	}
	if tally.Total() != 5 {
		t.Errorf("expected total 5, got %d", tally.Total())
	}
}

func TestResponse_FlattensAndDedupsSources(t *testing.T) {
	result := AnalysisResult{
		AILikelihood:     30,
		ManipulationRisk: 20,
		CredibilityScore: 75,
		Verdicts: []Verdict{
			{
				Claim:     Claim{Text: "First claim about the budget.", Origin: OriginModel},
				Status:    StatusVerified,
				Rationale: "Reported widely.",
				Evidence: []EvidenceItem{
					{SourceName: "Reuters", Headline: "Budget passes", URL: "https://example.com/1"},
					{SourceName: "AP", Headline: "Council votes", URL: "https://example.com/2"},
				},
			},
			{
				Claim:     Claim{Text: "Second claim about ridership.", Origin: OriginModel},
				Status:    StatusDisputed,
				Rationale: "Figures contradict it.",
				Evidence: []EvidenceItem{
					{SourceName: "Reuters", Headline: "Ridership flat", URL: "https://example.com/3"},
				},
			},
		},
		Findings:  []string{"1 of 2 claims verified against external sources"},
		Narrative: "Mixed picture.",
	}

	resp := result.Response()
	if len(resp.ClaimBreakdown) != 2 {
		t.Fatalf("expected 2 claim rows, got %d", len(resp.ClaimBreakdown))
	}
	if len(resp.ClaimBreakdown[0].Sources) != 2 {
		t.Errorf("first claim should keep both evidence refs, got %d", len(resp.ClaimBreakdown[0].Sources))
	}
	// Reuters appears under two claims but only once in the summary
	if len(resp.Sources) != 2 {
		t.Errorf("expected 2 deduplicated sources, got %d: %+v", len(resp.Sources), resp.Sources)
	}
	if resp.Report != "Mixed picture." {
		t.Errorf("unexpected report: %q", resp.Report)
	}
}

func TestResponse_EmptyResultHasNoNulls(t *testing.T) {
	var result AnalysisResult

	data, err := json.Marshal(result.Response())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty collections must serialize as [], got %s", data)
	}
}

func TestResponse_FieldNames(t *testing.T) {
	var result AnalysisResult
	data, err := json.Marshal(result.Response())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{
		`"aiGenerationLikelihood"`, `"credibilityScore"`, `"manipulationRisk"`,
		`"claimBreakdown"`, `"findings"`, `"sources"`, `"report"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("missing field %s in %s", field, data)
		}
	}
}
