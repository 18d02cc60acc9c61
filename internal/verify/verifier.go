// Package verify classifies extracted claims against external evidence.
// The load-bearing invariant: verification can never fail the request.
// Any failure (search, generation, parsing, timeout) only downgrades
// the affected verdict to uncertain.
package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/worker"
)

// Searcher supplies evidence for a claim. Implementations never fail;
// no evidence means an empty slice.
type Searcher interface {
	Search(ctx context.Context, query string) []model.EvidenceItem
}

// Verifier verifies claims concurrently with bounded fan-out
type Verifier struct {
	provider llm.Provider // nil downgrades everything to uncertain
	searcher Searcher     // nil means no evidence available
	workers  int
}

// New creates a new verifier
func New(provider llm.Provider, searcher Searcher, workers int) *Verifier {
	if workers <= 0 {
		workers = 3
	}
	return &Verifier{
		provider: provider,
		searcher: searcher,
		workers:  workers,
	}
}

// Verify returns exactly one verdict per claim, in input order, with a
// status from the closed vocabulary. Claims are checked concurrently;
// completion order never leaks into the output.
func (v *Verifier) Verify(ctx context.Context, claims []model.Claim) []model.Verdict {
	if len(claims) == 0 {
		return nil
	}

	pool := worker.NewPool(ctx, v.workers, len(claims))
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&verifyJob{verifier: v, index: i, claim: claim})
	}

	verdicts := make([]model.Verdict, len(claims))
	filled := make([]bool, len(claims))
	for _, r := range pool.Wait() {
		res := r.(*verifyResult)
		verdicts[res.index] = res.verdict
		filled[res.index] = true
	}

	// Cancellation can drop jobs; those claims still get a well-formed verdict
	for i, ok := range filled {
		if !ok {
			verdicts[i] = model.Verdict{
				Claim:     claims[i],
				Status:    model.StatusUncertain,
				Rationale: "Verification was cancelled before this claim could be checked.",
				Evidence:  []model.EvidenceItem{},
			}
		}
	}

	return verdicts
}

type verifyJob struct {
	verifier *Verifier
	index    int
	claim    model.Claim
}

func (j *verifyJob) Execute(ctx context.Context) worker.Result {
	return &verifyResult{
		index:   j.index,
		verdict: j.verifier.verifyOne(ctx, j.claim),
	}
}

type verifyResult struct {
	index   int
	verdict model.Verdict
}

func (r *verifyResult) GetError() error { return nil }

// verifyOne gathers evidence and classifies a single claim
func (v *Verifier) verifyOne(ctx context.Context, claim model.Claim) model.Verdict {
	var evidence []model.EvidenceItem
	if v.searcher != nil {
		evidence = v.searcher.Search(ctx, claim.Text)
	}
	if len(evidence) > model.MaxVerdictEvidence {
		evidence = evidence[:model.MaxVerdictEvidence]
	}
	if evidence == nil {
		evidence = []model.EvidenceItem{}
	}

	outcome := v.classify(ctx, claim, evidence)

	return model.Verdict{
		Claim:     claim,
		Status:    outcome.status,
		Rationale: outcome.rationale,
		Evidence:  evidence,
	}
}

// classification is the internal result of one classification attempt.
// Failures are values here, not errors; the boundary conversion to a
// verdict happens in verifyOne.
type classification struct {
	status    model.VerdictStatus
	rationale string
}

func uncertainBecause(reason string) classification {
	return classification{
		status:    model.StatusUncertain,
		rationale: reason,
	}
}

func (v *Verifier) classify(ctx context.Context, claim model.Claim, evidence []model.EvidenceItem) classification {
	if v.provider == nil {
		return uncertainBecause("No verification service is configured; the claim could not be checked.")
	}

	reply, err := v.provider.Generate(ctx, llm.GenerateRequest{
		System:      "You are a careful fact-checking assistant. You classify claims strictly as verified, disputed, or uncertain.",
		Prompt:      buildClassificationPrompt(claim, evidence),
		Temperature: 0.2,
		MaxTokens:   256,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return uncertainBecause("Verification timed out before the claim could be checked.")
		}
		return uncertainBecause("The verification service was unreachable; the claim could not be checked.")
	}

	parsed, fail := llm.ParseClassification(reply)
	if fail != nil {
		return uncertainBecause(fmt.Sprintf("The verification service returned an unusable reply (%s).", fail.Reason))
	}

	status := model.VerdictStatus(strings.ToLower(strings.TrimSpace(parsed.Status)))
	if !status.Valid() {
		return uncertainBecause(fmt.Sprintf("The verification service returned an unknown status %q.", parsed.Status))
	}

	rationale := strings.TrimSpace(parsed.Rationale)
	if rationale == "" {
		rationale = "No rationale was provided by the verification service."
	}

	return classification{status: status, rationale: rationale}
}

// buildClassificationPrompt embeds the claim and its evidence block.
// When no evidence was found that is stated explicitly, so the model
// falls back to its own knowledge instead of assuming corroboration.
func buildClassificationPrompt(claim model.Claim, evidence []model.EvidenceItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Claim:\n%s\n\n", claim.Text)

	if len(evidence) == 0 {
		b.WriteString("Evidence: no external news coverage was found for this claim. ")
		b.WriteString("Judge it against your own general knowledge; prefer \"uncertain\" unless the claim is common knowledge.\n")
	} else {
		b.WriteString("Evidence from news sources:\n")
		for i, ev := range evidence {
			fmt.Fprintf(&b, "%d. [%s] %s", i+1, ev.SourceName, ev.Headline)
			if ev.PublishedAt != "" {
				fmt.Fprintf(&b, " (%s)", ev.PublishedAt)
			}
			b.WriteString("\n")
			if ev.Snippet != "" {
				fmt.Fprintf(&b, "   %s\n", ev.Snippet)
			}
		}
		b.WriteString("\nIf the evidence is contradictory, weigh it yourself rather than counting items.\n")
	}

	b.WriteString(`
Classify the claim as exactly one of: verified, disputed, uncertain.
- verified: the evidence or well-established knowledge supports it
- disputed: the evidence or well-established knowledge contradicts it
- uncertain: not enough information either way

Respond with ONLY a JSON object: {"status": "...", "rationale": "one or two sentences"}`)

	return b.String()
}
