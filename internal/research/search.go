package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// SearchResult is a single hit returned by a Searcher.
type SearchResult struct {
	Title string
	URL   string
}

// Searcher finds candidate source URLs for a topic.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]SearchResult, error)
}

// DuckDuckGoSearcher queries the DuckDuckGo HTML endpoint and scrapes the
// result links. No API key required.
type DuckDuckGoSearcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    *zap.Logger
}

// NewDuckDuckGoSearcher builds a searcher from research configuration.
func NewDuckDuckGoSearcher(cfg config.ResearchConfig, logger *zap.Logger) *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{
		client:    &http.Client{Timeout: cfg.SearchTimeout},
		endpoint:  cfg.SearchURL,
		userAgent: cfg.UserAgent,
		logger:    logger.Named("search"),
	}
}

// Search performs the query and returns up to max result URLs in page order.
func (s *DuckDuckGoSearcher) Search(ctx context.Context, query string, max int) ([]SearchResult, error) {
	reqURL := s.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	var results []SearchResult
	for _, node := range htmlquery.Find(doc, `//a[contains(@class, "result__a")]`) {
		target := resolveRedirect(htmlquery.SelectAttr(node, "href"))
		if target == "" {
			continue
		}
		results = append(results, SearchResult{
			Title: strings.TrimSpace(htmlquery.InnerText(node)),
			URL:   target,
		})
		if max > 0 && len(results) >= max {
			break
		}
	}

	s.logger.Debug("Search complete.", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=... redirect links into the
// real target URL. Plain absolute links pass through unchanged.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}
