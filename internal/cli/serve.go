package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustlens/internal/pipeline"
	"github.com/ppiankov/trustlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Serve starts the HTTP API consumed by the browser extension:

  POST /api/analyze  analyze extracted page content
  GET  /health       liveness check

API keys are read from the environment: OPENAI_API_KEY or
ANTHROPIC_API_KEY (depending on llm.provider) and NEWSAPI_KEY.

Example:
  trustlens serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cfg.LLM.Provider != "" && cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		return fmt.Errorf("LLM provider %q configured but its API key environment variable is not set", cfg.LLM.Provider)
	}

	pipe, store, err := pipeline.Build(cfg)
	if err != nil {
		return err
	}
	pipe.SetVerbose(verbose)

	srv := server.New(cfg, pipe, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	return srv.Run(ctx)
}
