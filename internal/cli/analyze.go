package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustlens/internal/extract"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/pipeline"
)

var (
	analyzeURL   string
	analyzeTitle string
	analyzeOut   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a local text or HTML file",
	Long: `Analyze runs the credibility pipeline on a local file and prints the
result as JSON. HTML input is reduced to its visible text first.

Example:
  trustlens analyze article.txt
  trustlens analyze saved-page.html --title "Saved article" --out report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "source URL to record (default: file path)")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "page title")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output JSON path (default: stdout)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	content := string(data)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" || strings.HasPrefix(strings.TrimSpace(content), "<") {
		content = extract.StripHTML(content)
	}

	cfg := loadConfig()
	pipe, _, err := pipeline.Build(cfg)
	if err != nil {
		return err
	}
	pipe.SetVerbose(verbose)

	url := analyzeURL
	if url == "" {
		url = "file://" + path
	}

	result, err := pipe.Analyze(context.Background(), model.AnalysisRequest{
		URL:     url,
		Title:   analyzeTitle,
		Content: content,
	})
	if err != nil {
		if result == nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		// Timeout still produced a partial result worth printing
		fmt.Fprintf(os.Stderr, "Warning: %v; printing partial result\n", err)
	}

	out, err := json.MarshalIndent(result.Response(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if analyzeOut != "" {
		if err := os.WriteFile(analyzeOut, out, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", analyzeOut)
		}
		return nil
	}

	fmt.Println(string(out))
	return nil
}
