package bootstrap

import (
	"time"

	"github.com/google/uuid"
)

// Status values used by Report and PhaseResult.
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusSkipped    = "skipped"
	StatusInProgress = "in-progress"
)

// PhaseResult is the outcome of a single bootstrap phase.
type PhaseResult struct {
	Phase    Phase         `json:"-"`
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Report is the aggregate result of a bootstrap run. It is written by the
// bootstrap goroutine only.
type Report struct {
	RunID    uuid.UUID     `json:"runId"`
	Status   string        `json:"status"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Phases   []PhaseResult `json:"phases"`
}

func newReport(runID uuid.UUID) *Report {
	return &Report{
		RunID:   runID,
		Status:  StatusInProgress,
		Started: time.Now(),
	}
}

func (r *Report) record(res PhaseResult) {
	r.Phases = append(r.Phases, res)
}

func (r *Report) finish(err error) {
	r.Duration = time.Since(r.Started)
	if err != nil {
		r.Status = StatusError
		return
	}
	r.Status = StatusOK
}

// Phase returns the result recorded for p.
func (r *Report) Phase(p Phase) (PhaseResult, bool) {
	for _, res := range r.Phases {
		if res.Phase == p {
			return res, true
		}
	}
	return PhaseResult{}, false
}
