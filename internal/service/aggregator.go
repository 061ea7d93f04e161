package service

import (
	"context"
	"strings"
	"time"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultEvidenceTimeout bounds each adapter call.
const DefaultEvidenceTimeout = 5 * time.Second

// Aggregator fans a search query out to every evidence adapter and gathers
// the results in adapter order.
type Aggregator struct {
	adapters []domain.EvidenceAdapter
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAggregator(adapters []domain.EvidenceAdapter, timeout time.Duration, logger *zap.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultEvidenceTimeout
	}
	return &Aggregator{adapters: adapters, timeout: timeout, logger: logger}
}

// Aggregate never fails. Every adapter contributes at least one item, and
// the output order follows the adapter order regardless of which call
// finishes first.
func (a *Aggregator) Aggregate(ctx context.Context, query string) []domain.EvidenceItem {
	results := make([][]domain.EvidenceItem, len(a.adapters))

	var g errgroup.Group
	for i, adapter := range a.adapters {
		g.Go(func() error {
			actx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			items := adapter.Verify(actx, query)
			if len(items) == 0 {
				items = []domain.EvidenceItem{domain.NoResultItem(adapter.Source())}
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var total int
	for _, r := range results {
		total += len(r)
	}
	evidence := make([]domain.EvidenceItem, 0, total)
	sentinels := 0
	for _, r := range results {
		for _, item := range r {
			if item.Sentinel {
				sentinels++
			}
		}
		evidence = append(evidence, r...)
	}

	a.logger.Debug("evidence aggregated",
		zap.Int("adapters", len(a.adapters)),
		zap.Int("items", len(evidence)),
		zap.Int("sentinels", sentinels))

	return evidence
}

// FormatEvidence renders evidence as the text block handed to the scorer:
// one heading per source, one bullet per item.
func FormatEvidence(items []domain.EvidenceItem) string {
	var b strings.Builder
	var current domain.SourceTag
	for i, item := range items {
		if i == 0 || item.Source != current {
			current = item.Source
			b.WriteString("\n")
			b.WriteString(current.DisplayName())
			b.WriteString(":\n")
		}
		b.WriteString("• ")
		if item.Title != "" {
			b.WriteString(item.Title)
			b.WriteString(": ")
		}
		b.WriteString(item.Summary)
		if item.URL != "" {
			b.WriteString(" (Source: ")
			b.WriteString(item.URL)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
