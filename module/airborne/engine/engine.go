// Package engine runs batches of API jobs (file uploads, dimension updates)
// with bounded concurrency and per-step logging.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is one unit of work. Pre, Run and Post execute in order; the first
// failing step ends the job.
type Job interface {
	Info() string
	Pre(ctx context.Context) error
	Run(ctx context.Context) error
	Post(ctx context.Context) error
}

type traceIDKey struct{}

// TraceID returns the id of the Execute call that ctx belongs to.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// ErrSkipped is reported for jobs that never started because an earlier job
// failed in fail-fast mode.
var ErrSkipped = errors.New("skipped after earlier failure")

// Engine dispatches jobs in order to a fixed number of workers. With a
// concurrency of 1 jobs run strictly in sequence.
type Engine struct {
	concurrency int
	failFast    bool
	jobs        []Job
}

// Option configures an Engine.
type Option func(*Engine)

// WithFailFast stops dispatching new jobs after the first failure.
func WithFailFast() Option {
	return func(e *Engine) { e.failFast = true }
}

// NewEngine creates an engine. A concurrency <= 0 means one worker per CPU.
func NewEngine(concurrency int, jobs []Job, opts ...Option) *Engine {
	e := &Engine{
		concurrency: concurrency,
		jobs:        jobs,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs every job and returns the joined job errors. Each error is
// prefixed with the job index and Info.
func (e *Engine) Execute(ctx context.Context) error {
	mainLogger := log.With().
		Int("concurrency", e.concurrency).
		Int("total_jobs", len(e.jobs)).
		Logger()

	if len(e.jobs) == 0 {
		mainLogger.Debug().Msg("No jobs to execute")
		return nil
	}

	traceID := uuid.New().String()
	ctx = context.WithValue(ctx, traceIDKey{}, traceID)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mainLogger = mainLogger.With().Str("trace_id", traceID).Logger()
	mainLogger.Debug().Msg("Starting engine execution")

	workers := e.concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(e.jobs) {
		workers = len(e.jobs)
	}

	errs := make([]error, len(e.jobs))
	var (
		failed bool
		mu     sync.Mutex
	)

	queue := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				if e.failFast && ctx.Err() != nil {
					errs[i] = fmt.Errorf("job %d|%s: %w", i, e.jobs[i].Info(), ErrSkipped)
					continue
				}
				if err := e.run(ctx, i, mainLogger); err != nil {
					errs[i] = err
					if e.failFast {
						mu.Lock()
						failed = true
						mu.Unlock()
						cancel()
					}
				}
			}
		}()
	}

	stopped := -1
dispatch:
	for i := range e.jobs {
		mu.Lock()
		stop := failed
		mu.Unlock()
		if stop {
			stopped = i
			break
		}
		select {
		case queue <- i:
		case <-ctx.Done():
			stopped = i
			break dispatch
		}
	}
	close(queue)
	wg.Wait()

	if stopped >= 0 {
		for i := stopped; i < len(e.jobs); i++ {
			if errs[i] == nil {
				errs[i] = fmt.Errorf("job %d|%s: %w", i, e.jobs[i].Info(), ErrSkipped)
			}
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) run(ctx context.Context, i int, parent zerolog.Logger) error {
	jb := e.jobs[i]
	info := jb.Info()
	jobLogger := parent.With().
		Int("job_index", i).
		Str("job_info", info).
		Logger()

	jobLogger.Debug().Msg("Starting job execution")
	jobStartTime := time.Now()

	for _, s := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"pre", jb.Pre},
		{"run", jb.Run},
		{"post", jb.Post},
	} {
		stepStartTime := time.Now()
		if err := s.fn(ctx); err != nil {
			jobLogger.Error().
				Err(err).
				Str("step", s.name).
				Dur("duration", time.Since(stepStartTime)).
				Msg("Step failed")
			return fmt.Errorf("job %d|%s: %s-step: %w", i, info, s.name, err)
		}
		jobLogger.Debug().
			Str("step", s.name).
			Dur("duration", time.Since(stepStartTime)).
			Msg("Step completed")
	}

	jobLogger.Debug().
		Dur("duration", time.Since(jobStartTime)).
		Msg("Job completed successfully")
	return nil
}
