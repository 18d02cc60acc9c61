// Package pipeline orchestrates a credibility analysis request:
// validation, cache check, cooldown, claim extraction, verification,
// scoring, and summarization, under one cancellation signal and one
// wall-clock deadline. Every request terminates with a well-formed
// result; only validation failures, cooldowns, and deadline/cancel
// reach the caller as errors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ppiankov/trustlens/internal/cache"
	"github.com/ppiankov/trustlens/internal/extract"
	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/news"
	"github.com/ppiankov/trustlens/internal/score"
	"github.com/ppiankov/trustlens/internal/verify"
)

// State names the orchestrator's position for a request
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateCacheCheck  State = "cache-check"
	StateExtracting  State = "extracting"
	StateVerifying   State = "verifying"
	StateScoring     State = "scoring"
	StateSummarizing State = "summarizing"
	StateComplete    State = "complete"
	StateError       State = "error"
	StateCancelled   State = "cancelled"
)

// Store is the injected result cache (see cache.ResultStore)
type Store interface {
	Get(url string) (*model.AnalysisResult, bool)
	Set(url string, result *model.AnalysisResult) error
	Sweep() error
}

// Extractor turns page text into claims; never fails
type Extractor interface {
	Extract(ctx context.Context, text string) []model.Claim
}

// Verifier returns one verdict per claim, in order; never fails
type Verifier interface {
	Verify(ctx context.Context, claims []model.Claim) []model.Verdict
}

// Narrator renders a tally into a non-empty narrative; never fails
type Narrator interface {
	Narrative(ctx context.Context, title string, tally model.VerdictTally) string
}

// Deps bundles the pipeline's collaborators for injection
type Deps struct {
	Extractor Extractor
	Verifier  Verifier
	Narrator  Narrator
	Store     Store // nil disables caching
}

// Pipeline is the request orchestrator
type Pipeline struct {
	extractor Extractor
	verifier  Verifier
	narrator  Narrator
	store     Store
	scorer    *score.Scorer
	cooldown  *Cooldown
	cfg       *model.Config
	verbose   bool
}

// New creates a pipeline with injected collaborators
func New(cfg *model.Config, deps Deps) *Pipeline {
	return &Pipeline{
		extractor: deps.Extractor,
		verifier:  deps.Verifier,
		narrator:  deps.Narrator,
		store:     deps.Store,
		scorer:    score.NewScorer(cfg.Analysis.Weights),
		cooldown:  NewCooldown(cfg.Analysis.Cooldown),
		cfg:       cfg,
	}
}

// Build wires a pipeline from configuration: provider, news client,
// cache store, and the pipeline stages. The returned Store is also
// handed to the HTTP server for scheduled sweeps.
func Build(cfg *model.Config) (*Pipeline, Store, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	if provider == nil {
		fmt.Fprintln(os.Stderr, "Warning: no LLM provider configured; running with heuristic extraction and uncertain verdicts")
	} else {
		// Startup availability check; an unreachable provider degrades
		// to heuristic operation instead of failing every request later
		checkCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		available := provider.IsAvailable(checkCtx)
		cancel()
		if !available {
			fmt.Fprintf(os.Stderr, "Warning: %s provider failed its availability check; running with heuristic extraction and uncertain verdicts\n", provider.Name())
			provider = nil
		}
	}

	var searcher verify.Searcher
	if cfg.News.APIKey != "" {
		searcher = news.NewClient(cfg.News)
	} else {
		fmt.Fprintln(os.Stderr, "Warning: no news API key configured; claims will be checked without external evidence")
	}

	var store Store
	if cfg.Cache.Enabled {
		var backend cache.Cache
		if cfg.Cache.Dir != "" {
			backend = cache.NewLayeredCache(cfg.Cache.Freshness, cfg.Cache.Dir, cfg.Cache.Retention)
		} else {
			backend = cache.NewMemoryCache(cfg.Cache.Retention, cfg.Cache.Freshness)
		}
		store = cache.NewResultStore(backend, cfg.Cache.Freshness, cfg.Cache.Retention)
	}

	deps := Deps{
		Extractor: extract.NewExtractor(provider, cfg.Analysis.MaxClaims),
		Verifier:  verify.New(provider, searcher, cfg.Analysis.VerifyWorkers),
		Narrator:  llm.NewSummarizer(provider),
		Store:     store,
	}

	return New(cfg, deps), store, nil
}

// SetVerbose enables stage progress logging on stderr
func (p *Pipeline) SetVerbose(v bool) {
	p.verbose = v
}

// Analyze runs the full pipeline for one request. On deadline or
// cancellation it returns a best-effort partial result alongside the
// error; claims that never ran are filled in as uncertain.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	// validating: fail fast, before any network call
	p.progress(StateValidating, req.URL)
	content := strings.TrimSpace(req.Content)
	if len(content) < p.cfg.Analysis.MinContentChars {
		return nil, ErrContentTooShort
	}
	if max := p.cfg.Analysis.MaxContentChars; len(content) > max {
		content = truncate(content, max)
	}

	// cache-check: the only path that skips every other stage
	p.progress(StateCacheCheck, req.URL)
	if p.store != nil {
		if cached, ok := p.store.Get(req.URL); ok {
			p.progress(StateComplete, req.URL)
			return cached, nil
		}
	}

	// cooldown guards the external services, not correctness
	if !p.cooldown.TryAcquire(req.URL) {
		return nil, ErrCooldownActive
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Analysis.Timeout)
	defer cancel()

	// The two text signals never touch the network, so they are always
	// available to the partial-result path below.
	aiLikelihood := p.scorer.AILikelihood(content)
	manipulationRisk := p.scorer.ManipulationRisk(content, req.Title)

	p.progress(StateExtracting, req.URL)
	claims := p.extractor.Extract(ctx, content)
	if err := ctx.Err(); err != nil {
		return p.partial(ctx, req, content, claims, nil, aiLikelihood, manipulationRisk), requestErr(err)
	}

	p.progress(StateVerifying, req.URL)
	verdicts := p.verifier.Verify(ctx, claims)
	if err := ctx.Err(); err != nil {
		return p.partial(ctx, req, content, claims, verdicts, aiLikelihood, manipulationRisk), requestErr(err)
	}

	p.progress(StateScoring, req.URL)
	credibility := p.scorer.Integrate(verdicts, aiLikelihood, manipulationRisk)
	findings := p.scorer.Findings(content, req.Title, verdicts, aiLikelihood, manipulationRisk)

	p.progress(StateSummarizing, req.URL)
	narrative := p.narrator.Narrative(ctx, req.Title, model.TallyVerdicts(verdicts))

	result := &model.AnalysisResult{
		AILikelihood:     aiLikelihood,
		ManipulationRisk: manipulationRisk,
		CredibilityScore: credibility,
		Verdicts:         verdicts,
		Findings:         findings,
		Narrative:        narrative,
	}

	if p.store != nil {
		if err := p.store.Set(req.URL, result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache result for %s: %v\n", req.URL, err)
		}
	}

	p.progress(StateComplete, req.URL)
	return result, nil
}

// partial assembles a well-formed result from whatever stages completed
// before the deadline. Claims without a verdict become uncertain; the
// narrative comes from the summarizer, whose provider path fails fast on
// the expired context and falls back to the template.
func (p *Pipeline) partial(ctx context.Context, req model.AnalysisRequest, content string, claims []model.Claim, verdicts []model.Verdict, aiLikelihood, manipulationRisk float64) *model.AnalysisResult {
	p.progress(StateError, req.URL)

	if len(verdicts) < len(claims) {
		for _, claim := range claims[len(verdicts):] {
			verdicts = append(verdicts, model.Verdict{
				Claim:     claim,
				Status:    model.StatusUncertain,
				Rationale: "Analysis ended before this claim could be checked.",
				Evidence:  []model.EvidenceItem{},
			})
		}
	}

	findings := p.scorer.Findings(content, req.Title, verdicts, aiLikelihood, manipulationRisk)
	findings = append(findings, "Analysis ended early; results are partial")

	return &model.AnalysisResult{
		AILikelihood:     aiLikelihood,
		ManipulationRisk: manipulationRisk,
		CredibilityScore: p.scorer.Integrate(verdicts, aiLikelihood, manipulationRisk),
		Verdicts:         verdicts,
		Findings:         findings,
		Narrative:        p.narrator.Narrative(ctx, req.Title, model.TallyVerdicts(verdicts)),
	}
}

// requestErr maps a context error to the pipeline taxonomy
func requestErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrAnalysisTimeout
	}
	return ErrAnalysisCancelled
}

func (p *Pipeline) progress(state State, url string) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", state, url)
	}
}

// truncate cuts s to at most max bytes without splitting a rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
