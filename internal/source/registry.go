package source

import (
	"net/http"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/metrics"
	"go.uber.org/zap"
)

// Config selects provider endpoints and credentials. Empty URLs use the
// public defaults; empty keys make that provider fail closed.
type Config struct {
	WebSearchURL    string
	WikipediaURL    string
	FactCheckURL    string
	NewsURL         string
	SnopesURL       string
	FactCheckAPIKey string
	NewsAPIKey      string
	HTTPClient      *http.Client
}

// NewAdapters builds the five evidence adapters in domain.SourceOrder.
func NewAdapters(cfg Config, logger *zap.Logger, m *metrics.Metrics) []domain.EvidenceAdapter {
	providers := []Provider{
		NewDuckDuckGo(cfg.WebSearchURL, cfg.HTTPClient),
		NewWikipedia(cfg.WikipediaURL, cfg.HTTPClient),
		NewGoogleFactCheck(cfg.FactCheckURL, cfg.FactCheckAPIKey, cfg.HTTPClient),
		NewNewsAPI(cfg.NewsURL, cfg.NewsAPIKey, cfg.HTTPClient),
		NewSnopes(cfg.SnopesURL, cfg.HTTPClient),
	}

	adapters := make([]domain.EvidenceAdapter, 0, len(providers))
	for _, p := range providers {
		adapters = append(adapters, NewAdapter(p, logger, m))
	}
	return adapters
}
