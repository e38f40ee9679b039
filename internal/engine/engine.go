// Package engine orchestrates the build pipeline: natural-language prompt
// in, validated app spec out. The model path asks the generation API for a
// spec directly; when that fails the offline path synthesizes a starter
// design from keywords and compiles it. Both paths pass their output
// through validation, with a repair stage when findings surface.
//
// Builds are sequenced. Starting a new build supersedes any in-flight one;
// a superseded build's result is discarded when it eventually resolves, so
// the engine's visible state only ever reflects the newest request.
package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/generate"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/monitoring"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/repair"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
)

// Build sources.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Generator produces a spec from a prompt.
type Generator interface {
	GenerateSpec(ctx context.Context, prompt string) (*schema.Spec, error)
}

// Event is one status transition of a build.
type Event struct {
	Seq      uint64 `json:"seq"`
	Status   Status `json:"status"`
	Progress int    `json:"progress"`
}

// Observer receives status events for builds that are still current.
type Observer func(Event)

// Result is the outcome of one build.
type Result struct {
	Seq        uint64           `json:"seq"`
	Prompt     string           `json:"prompt"`
	Source     string           `json:"source"`
	Spec       *schema.Spec     `json:"spec,omitempty"`
	Report     *validate.Result `json:"report,omitempty"`
	Notice     string           `json:"notice,omitempty"`
	Superseded bool             `json:"superseded,omitempty"`
	Err        error            `json:"-"`
	Duration   time.Duration    `json:"-"`
}

// Engine runs builds.
type Engine struct {
	gen     Generator
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu     sync.Mutex
	seq    uint64
	status Status
	last   *Result
}

// New creates an engine around a generator.
func New(gen Generator, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{gen: gen, log: log.Named("engine"), status: StatusIdle}
}

// WithMetrics attaches build metrics.
func (e *Engine) WithMetrics(m *monitoring.Metrics) *Engine {
	e.metrics = m
	return e
}

// Status returns the current pipeline status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Last returns the most recent non-superseded result.
func (e *Engine) Last() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Build runs the pipeline for prompt. Each call supersedes any build still
// in flight; the stale build finishes with Superseded set and leaves engine
// state untouched. Observer may be nil.
func (e *Engine) Build(ctx context.Context, prompt string, observe Observer) *Result {
	start := time.Now()

	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	res := &Result{Seq: seq, Prompt: strings.TrimSpace(prompt)}

	e.transition(seq, StatusDesigning, observe)

	if res.Prompt == "" {
		res.Err = generate.ErrEmptyInput
		res.Notice = "Tell me what the app should do first."
		return e.finish(res, start, observe)
	}

	e.transition(seq, StatusGenerating, observe)

	spec, err := e.gen.GenerateSpec(ctx, res.Prompt)
	if err == nil {
		res.Source = SourceModel
		e.transition(seq, StatusValidating, observe)

		// Model output gets the same validate-then-repair treatment as the
		// offline path; a misreferenced action or a bad color never reaches
		// a session unrepaired.
		report := validate.Spec(spec)
		if !report.IsValid || len(report.Warnings) > 0 {
			e.transition(seq, StatusDebugging, observe)
			spec = repair.Spec(spec)
			report = validate.Spec(spec)
		}
		res.Report = &report
		res.Spec = spec
	} else {
		// The offline path covers every generation failure; the error is
		// surfaced as a notice, never as a pipeline abort.
		e.log.Info("generation failed, using offline fallback",
			zap.Uint64("seq", seq), zap.Error(err))
		res.Source = SourceFallback
		res.Notice = fallbackNotice(err)

		d := generate.Fallback(res.Prompt)
		e.transition(seq, StatusValidating, observe)

		report := validate.Design(d)
		if !report.IsValid || len(report.Warnings) > 0 {
			e.transition(seq, StatusDebugging, observe)
			d = repair.Design(d)
			report = validate.Design(d)
		}
		res.Report = &report
		res.Spec = design.Compile(d)
	}

	e.transition(seq, StatusRunning, observe)
	return e.finish(res, start, observe)
}

// transition updates engine status and notifies the observer, but only
// while the build is still the newest one.
func (e *Engine) transition(seq uint64, status Status, observe Observer) {
	e.mu.Lock()
	current := seq == e.seq
	if current {
		e.status = status
	}
	e.mu.Unlock()

	if current && observe != nil {
		observe(Event{Seq: seq, Status: status, Progress: status.Progress()})
	}
}

// finish records the terminal state. A superseded build is a no-op: the
// result is returned to its caller but engine state and observers see
// nothing.
func (e *Engine) finish(res *Result, start time.Time, observe Observer) *Result {
	res.Duration = time.Since(start)

	status := StatusCompleted
	if res.Err != nil {
		status = StatusFailed
	}

	e.mu.Lock()
	if res.Seq != e.seq {
		res.Superseded = true
		e.mu.Unlock()
		return res
	}
	e.status = status
	e.last = res
	e.mu.Unlock()

	if observe != nil {
		observe(Event{Seq: res.Seq, Status: status, Progress: status.Progress()})
	}
	if e.metrics != nil {
		e.metrics.RecordBuild(string(status), res.Source, res.Duration)
	}

	e.log.Info("build finished",
		zap.Uint64("seq", res.Seq),
		zap.String("status", string(status)),
		zap.String("source", res.Source),
		zap.Duration("duration", res.Duration))
	return res
}

func fallbackNotice(err error) string {
	switch {
	case errors.Is(err, generate.ErrMissingCredential):
		return "No API key is configured, so I sketched a starter app locally. Add a key to use the full generator."
	default:
		return "The generator was unreachable, so I sketched a starter app locally."
	}
}
