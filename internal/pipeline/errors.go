package pipeline

import "errors"

// The only errors that reach the caller. Component-level failures
// (service errors, parse errors) are absorbed where they occur and
// surface as degraded verdicts, never as errors.
var (
	// ErrContentTooShort rejects input before any external call is made
	ErrContentTooShort = errors.New("content too short for analysis")

	// ErrCooldownActive blocks a repeat request for the same source
	// inside the cooldown window when no cached result can be served
	ErrCooldownActive = errors.New("analysis requested too recently for this page")

	// ErrAnalysisTimeout means the overall deadline elapsed; the
	// accompanying result holds whatever stages completed in time
	ErrAnalysisTimeout = errors.New("analysis timed out")

	// ErrAnalysisCancelled means the caller abandoned the request
	ErrAnalysisCancelled = errors.New("analysis cancelled")
)
