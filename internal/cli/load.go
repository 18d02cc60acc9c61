package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/ppiankov/trustlens/internal/model"
)

// loadConfig builds the effective configuration: defaults, overlaid by
// the config file / TRUSTLENS_* env (via viper), with API keys pulled
// from their conventional environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("llm.provider") {
		cfg.LLM.Provider = viper.GetString("llm.provider")
	}
	if viper.IsSet("llm.model") {
		cfg.LLM.Model = viper.GetString("llm.model")
	}
	if viper.IsSet("llm.base_url") {
		cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetInt("llm.timeout")
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}

	if viper.IsSet("news.endpoint") {
		cfg.News.Endpoint = viper.GetString("news.endpoint")
	}
	if viper.IsSet("news.language") {
		cfg.News.Language = viper.GetString("news.language")
	}
	if viper.IsSet("news.page_size") {
		cfg.News.PageSize = viper.GetInt("news.page_size")
	}
	if viper.IsSet("news.timeout") {
		cfg.News.Timeout = viper.GetInt("news.timeout")
	}

	if viper.IsSet("analysis.max_claims") {
		cfg.Analysis.MaxClaims = viper.GetInt("analysis.max_claims")
	}
	if viper.IsSet("analysis.verify_workers") {
		cfg.Analysis.VerifyWorkers = viper.GetInt("analysis.verify_workers")
	}
	if viper.IsSet("analysis.cooldown") {
		cfg.Analysis.Cooldown = viper.GetDuration("analysis.cooldown")
	}
	if viper.IsSet("analysis.timeout") {
		cfg.Analysis.Timeout = viper.GetDuration("analysis.timeout")
	}
	if viper.IsSet("analysis.weights.authenticity") {
		cfg.Analysis.Weights.Authenticity = viper.GetFloat64("analysis.weights.authenticity")
	}
	if viper.IsSet("analysis.weights.manipulation_resistance") {
		cfg.Analysis.Weights.ManipulationResistance = viper.GetFloat64("analysis.weights.manipulation_resistance")
	}
	if viper.IsSet("analysis.weights.verification") {
		cfg.Analysis.Weights.Verification = viper.GetFloat64("analysis.weights.verification")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.freshness") {
		cfg.Cache.Freshness = viper.GetDuration("cache.freshness")
	}
	if viper.IsSet("cache.retention") {
		cfg.Cache.Retention = viper.GetDuration("cache.retention")
	}

	if viper.IsSet("server.addr") {
		cfg.Server.Addr = viper.GetString("server.addr")
	}
	if viper.IsSet("server.sweep_schedule") {
		cfg.Server.SweepSchedule = viper.GetString("server.sweep_schedule")
	}

	resolveSecrets(cfg)
	return cfg
}

// resolveSecrets pulls API keys from the environment. Keys never live
// in the config file.
func resolveSecrets(cfg *model.Config) {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	cfg.News.APIKey = os.Getenv("NEWSAPI_KEY")
	if cfg.News.APIKey == "" {
		cfg.News.APIKey = os.Getenv("NEWS_API_KEY")
	}
}
