package model

import "time"

// Config is the complete application configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	News     NewsConfig     `yaml:"news"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
}

// LLMConfig configures the generative-text provider
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From env only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds, per call
	MaxTokens int    `yaml:"max_tokens"`
}

// NewsConfig configures the evidence search backend
type NewsConfig struct {
	APIKey        string  `yaml:"-"` // From env only
	Endpoint      string  `yaml:"endpoint"`
	Language      string  `yaml:"language"`
	PageSize      int     `yaml:"page_size"`
	Timeout       int     `yaml:"timeout"` // seconds, per search
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// ScoreWeights are the credibility formula weights. They are product
// configuration, not invariants; only the [0,100] clamp is guaranteed.
type ScoreWeights struct {
	Authenticity           float64 `yaml:"authenticity"`
	ManipulationResistance float64 `yaml:"manipulation_resistance"`
	Verification           float64 `yaml:"verification"`
}

// AnalysisConfig configures the pipeline itself
type AnalysisConfig struct {
	MaxClaims       int           `yaml:"max_claims"`
	MinContentChars int           `yaml:"min_content_chars"`
	MaxContentChars int           `yaml:"max_content_chars"`
	VerifyWorkers   int           `yaml:"verify_workers"`
	Cooldown        time.Duration `yaml:"cooldown"`
	Timeout         time.Duration `yaml:"timeout"` // overall wall clock per request
	Weights         ScoreWeights  `yaml:"weights"`
}

// CacheConfig configures the result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // Disk layer directory; memory-only when empty
	Freshness time.Duration `yaml:"freshness"`
	Retention time.Duration `yaml:"retention"`
}

// ServerConfig configures the HTTP API surface
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	SweepSchedule string `yaml:"sweep_schedule"` // cron spec for cache purges
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1024,
		},
		News: NewsConfig{
			Endpoint:      "https://newsapi.org/v2/everything",
			Language:      "en",
			PageSize:      5,
			Timeout:       20,
			RatePerSecond: 1,
			Burst:         5,
		},
		Analysis: AnalysisConfig{
			MaxClaims:       5,
			MinContentChars: 50,
			MaxContentChars: 50000,
			VerifyWorkers:   3,
			Cooldown:        10 * time.Second,
			Timeout:         60 * time.Second,
			Weights: ScoreWeights{
				Authenticity:           0.40,
				ManipulationResistance: 0.35,
				Verification:           0.25,
			},
		},
		Cache: CacheConfig{
			Enabled:   true,
			Freshness: time.Hour,
			Retention: 7 * 24 * time.Hour,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			SweepSchedule: "@hourly",
		},
	}
}
