package service

import (
	"context"
	"strings"
	"time"

	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/metrics"
	"go.uber.org/zap"
)

// DefaultLLMTimeout bounds each language model call.
const DefaultLLMTimeout = 60 * time.Second

const (
	msgFormulateFailed = "Error: could not formulate a search query. Please try again."
	msgScoreFailed     = "Error: could not score the claim. Please try again."
)

// EvidenceGatherer collects evidence for a search query. It never fails.
type EvidenceGatherer interface {
	Aggregate(ctx context.Context, query string) []domain.EvidenceItem
}

// Pipeline runs one claim through query formulation, evidence aggregation
// and truth scoring. It holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	llmClient  domain.LLMClient
	evidence   EvidenceGatherer
	llmTimeout time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPipeline(
	lc domain.LLMClient,
	ev EvidenceGatherer,
	llmTimeout time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Pipeline {
	if llmTimeout <= 0 {
		llmTimeout = DefaultLLMTimeout
	}
	return &Pipeline{
		llmClient:  lc,
		evidence:   ev,
		llmTimeout: llmTimeout,
		metrics:    m,
		logger:     logger,
	}
}

// VerifyClaim returns the verdict, or a user-facing error message.
func (p *Pipeline) VerifyClaim(ctx context.Context, claim, apiKey string) string {
	return p.Run(ctx, claim, apiKey).Text()
}

// Run drives the state machine Idle -> Formulating -> Aggregating ->
// Scoring -> Done. Input errors fail from Idle before any I/O; a failed
// LLM call fails the run from the stage that made it. Aggregation cannot fail.
func (p *Pipeline) Run(ctx context.Context, claim, apiKey string) *domain.CheckResult {
	res := &domain.CheckResult{Claim: claim, Stage: domain.StageIdle}

	claim = strings.TrimSpace(claim)
	if claim == "" {
		return p.fail(res, domain.ErrEmptyClaim, domain.ErrEmptyClaim.Message)
	}
	if strings.TrimSpace(apiKey) == "" {
		return p.fail(res, domain.ErrMissingCredential, domain.ErrMissingCredential.Message)
	}

	res.Stage = domain.StageFormulating
	start := time.Now()
	query, err := p.callLLM(ctx, func(lctx context.Context) (string, error) {
		return p.llmClient.FormulateQuery(lctx, apiKey, claim)
	})
	p.metrics.ObserveStage(string(domain.StageFormulating), time.Since(start))
	if err != nil {
		return p.fail(res, &domain.UpstreamError{Op: "formulate query", Err: err}, msgFormulateFailed)
	}
	res.Query = query

	res.Stage = domain.StageAggregating
	start = time.Now()
	res.Evidence = p.evidence.Aggregate(ctx, query)
	p.metrics.ObserveStage(string(domain.StageAggregating), time.Since(start))

	res.Stage = domain.StageScoring
	start = time.Now()
	evidenceText := FormatEvidence(res.Evidence)
	verdict, err := p.callLLM(ctx, func(lctx context.Context) (string, error) {
		return p.llmClient.ScoreClaim(lctx, apiKey, claim, evidenceText)
	})
	p.metrics.ObserveStage(string(domain.StageScoring), time.Since(start))
	if err != nil {
		return p.fail(res, &domain.UpstreamError{Op: "score claim", Err: err}, msgScoreFailed)
	}

	res.Verdict = verdict
	res.Stage = domain.StageDone
	p.metrics.ObservePipeline(string(domain.StageDone), "")

	p.logger.Info("claim verified",
		zap.Int("claim_len", len(claim)),
		zap.Int("evidence_items", len(res.Evidence)))

	return res
}

// callLLM detaches the call from the caller's cancellation: a started
// model call runs to completion or to its own timeout.
func (p *Pipeline) callLLM(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.llmTimeout)
	defer cancel()
	return call(lctx)
}

func (p *Pipeline) fail(res *domain.CheckResult, err error, message string) *domain.CheckResult {
	res.FailedStage = res.Stage
	res.Stage = domain.StageFailed
	res.Err = err
	res.Error = message

	p.metrics.ObservePipeline(string(domain.StageFailed), string(res.FailedStage))

	if res.FailedStage == domain.StageIdle {
		p.logger.Debug("claim rejected", zap.String("reason", message))
	} else {
		p.logger.Error("pipeline failed",
			zap.String("stage", string(res.FailedStage)),
			zap.Int("claim_len", len(res.Claim)),
			zap.Error(err))
	}
	return res
}
