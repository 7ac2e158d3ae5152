package research

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mwarner-dev/postpilot/internal/config"
)

// ErrEmptyTopic rejects blank research topics before any network activity.
var ErrEmptyTopic = errors.New("research topic must not be empty")

// corpusSeparator joins the texts of individual sources. Distinct enough to
// survive inside prose.
const corpusSeparator = "\n\n---\n\n"

// Explanatory corpora for best-effort failures. Research never errors for
// these; callers can tell "nothing to say" from "not attempted".
const (
	corpusSearchFailed = "Could not perform web search."
	corpusNoResults    = "No search results found."
	corpusNoContent    = "No content found."
)

// Result is the aggregated research material for one topic.
type Result struct {
	Corpus      string `json:"corpus"`
	SourceCount int    `json:"source_count"`
}

// Service runs the research pipeline: search, concurrent fetch, aggregate.
type Service struct {
	searcher   Searcher
	fetcher    ContentFetcher
	limiter    *rate.Limiter
	maxResults int
	logger     *zap.Logger
}

// NewService wires a Service from its collaborators.
func NewService(searcher Searcher, fetcher ContentFetcher, cfg config.ResearchConfig, logger *zap.Logger) *Service {
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 4
	}
	return &Service{
		searcher:   searcher,
		fetcher:    fetcher,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxResults: cfg.MaxResults,
		logger:     logger.Named("research"),
	}
}

// Research gathers raw material on a topic. Search and fetch failures are
// absorbed into explanatory results; the only error is an empty topic.
func (s *Service) Research(ctx context.Context, topic string) (Result, error) {
	if strings.TrimSpace(topic) == "" {
		return Result{}, ErrEmptyTopic
	}

	s.logger.Info("Researching topic.", zap.String("topic", topic))

	results, err := s.searcher.Search(ctx, topic, s.maxResults)
	if err != nil {
		s.logger.Warn("Web search failed.", zap.Error(err))
		return Result{Corpus: corpusSearchFailed}, nil
	}
	if len(results) == 0 {
		return Result{Corpus: corpusNoResults}, nil
	}

	s.logger.Info("Fetching sources.", zap.Int("count", len(results)))

	// Unordered fan-out, one goroutine per URL, wait for all. Slot indices
	// keep the final join stable in original search-result order no matter
	// the completion order. Failures land in their slot as empty text and
	// never abort the batch.
	texts := make([]string, len(results))
	var g errgroup.Group
	for i, res := range results {
		g.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.Debug("Fetch skipped.", zap.String("url", res.URL), zap.Error(err))
				return nil
			}
			if out := s.fetcher.Fetch(ctx, res.URL); out.OK() {
				texts[i] = out.Text
			}
			return nil
		})
	}
	// Goroutines never return errors; per-URL failures stay per-URL.
	_ = g.Wait()

	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		s.logger.Warn("No content fetched from any source.")
		return Result{Corpus: corpusNoContent}, nil
	}

	return Result{
		Corpus:      strings.Join(parts, corpusSeparator),
		SourceCount: len(parts),
	}, nil
}
