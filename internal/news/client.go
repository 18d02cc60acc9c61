// Package news adapts an external news-search service into uniform
// evidence records. Search never fails: network errors, quota errors,
// and malformed payloads all map to an empty evidence list, because
// missing evidence is an expected condition downstream, not an error.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/worker"
)

const maxResponseBytes = 1 << 20

// Client searches NewsAPI for articles related to a claim
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	language   string
	pageSize   int
	limiter    *worker.Limiter
}

// NewClient creates a new NewsAPI client
func NewClient(cfg model.NewsConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		pageSize:   pageSize,
		limiter:    worker.NewLimiter(rps, cfg.Burst),
	}
}

// newsAPIResponse matches NewsAPI's /v2/everything payload
type newsAPIResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []rawArticle `json:"articles"`
}

type rawArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Search looks up articles for the query. A single attempt, bounded by
// the configured timeout; any failure returns an empty list.
func (c *Client) Search(ctx context.Context, query string) []model.EvidenceItem {
	if c.apiKey == "" {
		return nil
	}

	items, err := c.search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: news search failed, continuing without evidence: %v\n", err)
		return nil
	}
	return items
}

func (c *Client) search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	reqURL, err := c.buildURL(query)
	if err != nil {
		return nil, fmt.Errorf("build URL: %w", err)
	}

	host := "newsapi"
	if parsed, err := url.Parse(c.endpoint); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	if err := c.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.Status == "error" {
		msg := payload.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("newsapi error: %s", msg)
	}

	return normalize(payload.Articles), nil
}

func (c *Client) buildURL(query string) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	q := parsed.Query()
	q.Set("q", query)
	q.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	q.Set("sortBy", "relevancy")
	if c.language != "" {
		q.Set("language", c.language)
	}
	q.Set("apiKey", c.apiKey)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// normalize maps NewsAPI's article shape onto the fixed evidence record.
// Source name and headline get placeholder defaults; snippet falls back
// from description to the truncated content field.
func normalize(articles []rawArticle) []model.EvidenceItem {
	items := make([]model.EvidenceItem, 0, len(articles))
	for _, a := range articles {
		name := a.Source.Name
		if name == "" {
			name = "Unknown Source"
		}
		headline := a.Title
		if headline == "" {
			headline = "Untitled"
		}
		snippet := a.Description
		if snippet == "" {
			snippet = a.Content
		}

		items = append(items, model.EvidenceItem{
			SourceName:  name,
			Headline:    headline,
			URL:         a.URL,
			Snippet:     snippet,
			PublishedAt: a.PublishedAt,
		})
	}
	return items
}
