// Package source holds the evidence provider adapters. Each provider knows
// one external API; Adapter wraps a provider so that a call always yields
// evidence, collapsing every failure into a single sentinel item.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/metrics"
	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("missing API key")

// Provider fetches evidence from one external service.
type Provider interface {
	Source() domain.SourceTag
	Fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error)
}

// ProviderError is a failed provider call. It never leaves this package.
type ProviderError struct {
	Source domain.SourceTag
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Cause is the short, user-safe description placed in the error sentinel.
func (e *ProviderError) Cause() error {
	switch {
	case errors.Is(e.Err, context.DeadlineExceeded):
		return errors.New("request timed out")
	case errors.Is(e.Err, context.Canceled):
		return errors.New("request cancelled")
	}
	// url.Error carries the full request URL; keep only the transport cause.
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) {
		return urlErr.Err
	}
	return e.Err
}

type fetchResult struct {
	items []domain.EvidenceItem
	err   error
}

// Adapter makes a Provider total.
type Adapter struct {
	provider Provider
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewAdapter(p Provider, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	return &Adapter{provider: p, logger: logger, metrics: m}
}

func (a *Adapter) Source() domain.SourceTag {
	return a.provider.Source()
}

// Verify returns the provider's items, a single no-result sentinel when there
// are none, or a single error sentinel when the call failed or ctx expired.
func (a *Adapter) Verify(ctx context.Context, query string) []domain.EvidenceItem {
	src := a.provider.Source()
	start := time.Now()

	items, err := a.fetch(ctx, query)
	elapsed := time.Since(start)

	if err != nil {
		perr := &ProviderError{Source: src, Err: err}
		outcome := metrics.OutcomeError
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		a.metrics.ObserveEvidence(string(src), outcome, elapsed)
		a.logger.Warn("evidence source failed",
			zap.String("source", string(src)),
			zap.Duration("duration", elapsed),
			zap.Error(perr),
		)
		return []domain.EvidenceItem{domain.ErrorItem(src, perr.Cause())}
	}

	if len(items) == 0 {
		a.metrics.ObserveEvidence(string(src), metrics.OutcomeNoResult, elapsed)
		a.logger.Debug("evidence source returned nothing", zap.String("source", string(src)))
		return []domain.EvidenceItem{domain.NoResultItem(src)}
	}

	for i := range items {
		items[i].Source = src
	}
	a.metrics.ObserveEvidence(string(src), metrics.OutcomeOK, elapsed)
	a.logger.Debug("evidence source succeeded",
		zap.String("source", string(src)),
		zap.Int("items", len(items)),
		zap.Duration("duration", elapsed),
	)
	return items
}

// fetch runs the provider in its own goroutine so a provider that ignores
// ctx still cannot hold the caller past the deadline.
func (a *Adapter) fetch(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		items, err := a.provider.Fetch(ctx, query)
		done <- fetchResult{items: items, err: err}
	}()

	select {
	case r := <-done:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
