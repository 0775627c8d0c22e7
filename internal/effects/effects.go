package effects

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

const (
	DefaultAttempts = 3
	DefaultBackoff  = 50 * time.Millisecond
)

// Effect is a secondary mutation attempted after a primary transition has
// committed. Its failure never rolls the primary back.
type Effect struct {
	Name   string
	Target string
	Run    func(ctx context.Context) error

	// Once: a single attempt. Atomic deltas (stock, visit counters) are not
	// safe to replay after a lost acknowledgement.
	Once bool
}

type Result struct {
	Name     string `json:"name"`
	Target   string `json:"target,omitempty"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error,omitempty"`

	Err error `json:"-"`
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Report is what the caller learns about the side effects of a transition.
type Report struct {
	Results []Result `json:"results"`
}

func (r Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}
	return true
}

func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

type Runner struct {
	attempts int
	backoff  time.Duration
}

func NewRunner(attempts int, backoff time.Duration) *Runner {
	if attempts < 1 {
		attempts = 1
	}
	return &Runner{attempts: attempts, backoff: backoff}
}

func DefaultRunner() *Runner {
	return NewRunner(DefaultAttempts, DefaultBackoff)
}

// Run executes every effect in order, each with its own retry budget. One
// failing effect does not stop the others. The parent's cancellation is
// ignored: the primary write already happened.
func (r *Runner) Run(ctx context.Context, effs []Effect) Report {
	ctx = context.WithoutCancel(ctx)

	rep := Report{Results: make([]Result, 0, len(effs))}
	for _, eff := range effs {
		res := Result{Name: eff.Name, Target: eff.Target}

		attempts := r.attempts
		if eff.Once {
			attempts = 1
		}

		for attempt := 1; attempt <= attempts; attempt++ {
			res.Attempts = attempt
			res.Err = eff.Run(ctx)
			if res.Err == nil {
				break
			}
			if attempt < attempts && r.backoff > 0 {
				time.Sleep(r.backoff * time.Duration(attempt))
			}
		}

		if res.Err != nil {
			res.Error = res.Err.Error()
			metrics.EffectFailures.WithLabelValues(eff.Name).Inc()
			slog.Warn("side effect failed",
				"effect", eff.Name,
				"target", eff.Target,
				"attempts", res.Attempts,
				"error", res.Err,
			)
		}

		rep.Results = append(rep.Results, res)
	}
	return rep
}
