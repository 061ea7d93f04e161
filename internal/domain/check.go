package domain

// Stage is a state of the verification pipeline.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageFormulating Stage = "formulating"
	StageAggregating Stage = "aggregating"
	StageScoring     Stage = "scoring"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// CheckResult is the outcome of a single pipeline invocation.
// Verdict is set when Stage is StageDone; Error is set when Stage is StageFailed.
type CheckResult struct {
	Claim       string         `json:"claim"`
	Query       string         `json:"query,omitempty"`
	Evidence    []EvidenceItem `json:"evidence,omitempty"`
	Verdict     string         `json:"verdict,omitempty"`
	Stage       Stage          `json:"stage"`
	FailedStage Stage          `json:"failed_stage,omitempty"`
	Error       string         `json:"error,omitempty"`
	Err         error          `json:"-"`
}

// Failed reports whether the pipeline ended in the failed state.
func (r *CheckResult) Failed() bool {
	return r.Stage == StageFailed
}

// Text returns the verdict, or the user-facing error message on failure.
func (r *CheckResult) Text() string {
	if r.Failed() {
		return r.Error
	}
	return r.Verdict
}
