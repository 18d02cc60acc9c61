package model

// AnalysisRequest is the inbound payload from the content-acquisition layer
type AnalysisRequest struct {
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// AnalysisResult is the pipeline's final output. Constructed once per
// request after all stages complete; cached keyed by source URL; never
// mutated afterward.
type AnalysisResult struct {
	AILikelihood     float64   `json:"ai_likelihood"`
	ManipulationRisk float64   `json:"manipulation_risk"`
	CredibilityScore float64   `json:"credibility_score"`
	Verdicts         []Verdict `json:"verdicts"`
	Findings         []string  `json:"findings"`
	Narrative        string    `json:"narrative"`
}

// ClaimBreakdown is one row of the outbound per-claim report
type ClaimBreakdown struct {
	Claim     string        `json:"claim"`
	Status    VerdictStatus `json:"status"`
	Rationale string        `json:"rationale"`
	Sources   []EvidenceRef `json:"sources"`
}

// EvidenceRef is the outbound shape of one evidence item
type EvidenceRef struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	URL      string `json:"url,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// SourceSummary is one outbound row per evidence source consulted
type SourceSummary struct {
	Name     string        `json:"name"`
	Headline string        `json:"headline"`
	Status   VerdictStatus `json:"status"`
}

// AnalysisResponse is the outbound wire shape consumed by the UI layer
type AnalysisResponse struct {
	AIGenerationLikelihood float64          `json:"aiGenerationLikelihood"`
	CredibilityScore       float64          `json:"credibilityScore"`
	ManipulationRisk       float64          `json:"manipulationRisk"`
	ClaimBreakdown         []ClaimBreakdown `json:"claimBreakdown"`
	Findings               []string         `json:"findings"`
	Sources                []SourceSummary  `json:"sources"`
	Report                 string           `json:"report"`
}

// Response flattens the result into the outbound wire shape
func (r *AnalysisResult) Response() AnalysisResponse {
	breakdown := make([]ClaimBreakdown, 0, len(r.Verdicts))
	var sources []SourceSummary
	seen := make(map[string]bool)

	for _, v := range r.Verdicts {
		refs := make([]EvidenceRef, 0, len(v.Evidence))
		for _, ev := range v.Evidence {
			refs = append(refs, EvidenceRef{
				Name:     ev.SourceName,
				Headline: ev.Headline,
				URL:      ev.URL,
				Snippet:  ev.Snippet,
			})
			if !seen[ev.SourceName] {
				seen[ev.SourceName] = true
				sources = append(sources, SourceSummary{
					Name:     ev.SourceName,
					Headline: ev.Headline,
					Status:   v.Status,
				})
			}
		}
		breakdown = append(breakdown, ClaimBreakdown{
			Claim:     v.Claim.Text,
			Status:    v.Status,
			Rationale: v.Rationale,
			Sources:   refs,
		})
	}

	if sources == nil {
		sources = []SourceSummary{}
	}
	findings := r.Findings
	if findings == nil {
		findings = []string{}
	}

	return AnalysisResponse{
		AIGenerationLikelihood: r.AILikelihood,
		CredibilityScore:       r.CredibilityScore,
		ManipulationRisk:       r.ManipulationRisk,
		ClaimBreakdown:         breakdown,
		Findings:               findings,
		Sources:                sources,
		Report:                 r.Narrative,
	}
}
