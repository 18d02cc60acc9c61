package model

// VerdictStatus is the closed verification vocabulary. Anything a
// classifier returns outside these three values is mapped to
// StatusUncertain before it reaches a Verdict.
type VerdictStatus string

const (
	StatusVerified  VerdictStatus = "verified"
	StatusDisputed  VerdictStatus = "disputed"
	StatusUncertain VerdictStatus = "uncertain"
)

// Valid reports whether s is one of the three allowed statuses
func (s VerdictStatus) Valid() bool {
	switch s {
	case StatusVerified, StatusDisputed, StatusUncertain:
		return true
	}
	return false
}

// MaxVerdictEvidence caps how many evidence items a verdict carries
const MaxVerdictEvidence = 3

// Verdict is the verification result for one claim. Immutable once built.
type Verdict struct {
	Claim     Claim          `json:"claim"`
	Status    VerdictStatus  `json:"status"`
	Rationale string         `json:"rationale"`
	Evidence  []EvidenceItem `json:"evidence"`
}

// VerdictTally counts verdicts by status
type VerdictTally struct {
	Verified  int
	Disputed  int
	Uncertain int
}

// Total returns the number of tallied verdicts
func (t VerdictTally) Total() int {
	return t.Verified + t.Disputed + t.Uncertain
}

// TallyVerdicts counts verdicts by status. Unknown statuses are counted
// as uncertain so the tally total always matches the verdict count.
func TallyVerdicts(verdicts []Verdict) VerdictTally {
	var t VerdictTally
	for _, v := range verdicts {
		switch v.Status {
		case StatusVerified:
			t.Verified++
		case StatusDisputed:
			t.Disputed++
		default:
			t.Uncertain++
		}
	}
	return t
}
