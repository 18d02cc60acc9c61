package model

// EvidenceItem is one piece of external corroborating or contradicting
// material, normalized from whatever shape the search backend returned.
// SourceName and Headline are always set; the rest is best-effort.
type EvidenceItem struct {
	SourceName  string `json:"source_name"`
	Headline    string `json:"headline"`
	URL         string `json:"url,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}
