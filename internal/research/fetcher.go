package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// FetchOutcome is the per-URL result of a content fetch. A failure is an
// ordinary outcome, not an error to propagate; the aggregator simply drops
// failed fetches from the corpus.
type FetchOutcome struct {
	URL  string
	Text string
	Err  error
}

// OK reports whether the fetch contributed usable text.
func (o FetchOutcome) OK() bool {
	return o.Err == nil && strings.TrimSpace(o.Text) != ""
}

// ContentFetcher retrieves the visible text of one page.
type ContentFetcher interface {
	Fetch(ctx context.Context, pageURL string) FetchOutcome
}

// Fetcher is the HTTP ContentFetcher. It extracts the concatenated text of
// all paragraph elements from the response body.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewFetcher builds a Fetcher with the configured fixed timeout.
func NewFetcher(cfg config.ResearchConfig, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		userAgent: cfg.UserAgent,
		logger:    logger.Named("fetcher"),
	}
}

// Fetch never returns an error to the caller; transport failures and
// non-2xx statuses are recorded in the outcome.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) FetchOutcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return FetchOutcome{URL: pageURL, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("Fetch failed.", zap.String("url", pageURL), zap.Error(err))
		return FetchOutcome{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		f.logger.Debug("Fetch failed.", zap.String("url", pageURL), zap.Error(err))
		return FetchOutcome{URL: pageURL, Err: err}
	}

	doc, err := htmlquery.Parse(resp.Body)
	if err != nil {
		return FetchOutcome{URL: pageURL, Err: fmt.Errorf("parsing body: %w", err)}
	}

	text := paragraphText(doc)
	f.logger.Debug("Fetched content.", zap.String("url", pageURL), zap.Int("bytes", len(text)))
	return FetchOutcome{URL: pageURL, Text: text}
}

// paragraphText concatenates the trimmed text of every paragraph element in
// document order.
func paragraphText(doc *html.Node) string {
	var sb strings.Builder
	for _, p := range htmlquery.Find(doc, "//p") {
		text := strings.TrimSpace(htmlquery.InnerText(p))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
