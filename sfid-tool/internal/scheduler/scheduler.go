// Package scheduler runs an enumeration request across a pool of workers and
// funnels the generated ids into a single sink.
//
// With one worker, ids reach the sink in enumeration order. With more, the
// record numbers are pulled from a shared queue and ids arrive in whatever
// order the workers finish them; each line is still written whole.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/enumerator"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sink"
)

const (
	DefaultQueueSize        = 10000
	DefaultProgressInterval = 2 * time.Second
)

var (
	// ErrInvalidWorkers is returned when a request asks for fewer than one worker.
	ErrInvalidWorkers = errors.New("workers must be at least 1")
	// ErrMissingTemplate is returned when a request carries the zero id.
	ErrMissingTemplate = errors.New("request has no template id")
)

// ItemError is a per-item failure. It is logged and counted, never returned
// from Run.
type ItemError struct {
	RecordNumber uint64
	Err          error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("record %d: %v", e.RecordNumber, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Progress is a snapshot of a running enumeration.
type Progress struct {
	Written  uint64
	Skipped  uint64
	Expected uint64 // 0 when the request is unbounded
	Bounded  bool
	Elapsed  time.Duration
	Done     bool
}

// ProgressFunc receives periodic progress snapshots. Calls never overlap.
type ProgressFunc func(Progress)

// Result summarises a finished run.
type Result struct {
	Written   uint64
	Skipped   uint64
	Elapsed   time.Duration
	Cancelled bool
}

// Scheduler executes enumeration requests. It holds no per-run state and may
// be reused.
type Scheduler struct {
	queueSize int
	progress  ProgressFunc
	interval  time.Duration

	// process turns a record number into an output line.
	process func(req enumerator.Request, n uint64) (string, error)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithQueueSize bounds the work queue shared by parallel workers.
func WithQueueSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithProgress registers fn to be called every interval while a run is in
// flight, and once more when it ends.
func WithProgress(fn ProgressFunc, interval time.Duration) Option {
	return func(s *Scheduler) {
		s.progress = fn
		if interval > 0 {
			s.interval = interval
		}
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queueSize: DefaultQueueSize,
		interval:  DefaultProgressInterval,
		process:   formatID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func formatID(req enumerator.Request, n uint64) (string, error) {
	id, err := req.Template.WithRecordNumber(n)
	if err != nil {
		return "", err
	}
	return id.Format(req.As18), nil
}

// run tracks the counters of a single Run call.
type run struct {
	req     enumerator.Request
	out     sink.Sink
	start   time.Time
	written atomic.Uint64
	skipped atomic.Uint64
}

func (r *run) snapshot(done bool) Progress {
	expected, bounded := r.req.Expected()
	return Progress{
		Written:  r.written.Load(),
		Skipped:  r.skipped.Load(),
		Expected: expected,
		Bounded:  bounded,
		Elapsed:  time.Since(r.start),
		Done:     done,
	}
}

// Run generates every id req describes and writes it to out. Run owns out
// and closes it before returning, whether the run completed, failed or was
// cancelled; lines already written are kept.
//
// Cancelling ctx stops workers between items. Run then returns the partial
// Result with Cancelled set, together with ctx's error. A failing sink write
// aborts the run; per-item failures do not.
func (s *Scheduler) Run(ctx context.Context, req enumerator.Request, out sink.Sink) (res Result, err error) {
	r := &run{req: req, out: out, start: time.Now()}
	l := log.Ctx(ctx)

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	if req.Workers < 1 {
		return Result{}, fmt.Errorf("%w, got %d", ErrInvalidWorkers, req.Workers)
	}
	if req.Template.IsZero() {
		return Result{}, ErrMissingTemplate
	}

	workers := req.Workers
	if expected, bounded := req.Expected(); bounded && uint64(workers) > expected {
		workers = max(1, int(expected))
	}

	l.Info().
		Uint64(log.FieldStart, req.Start).
		Int64(log.FieldSteps, req.Steps).
		Bool("unbounded", req.Unbounded).
		Int(log.FieldWorkers, workers).
		Msg("enumeration started")

	stopProgress := s.startProgress(r)

	if workers == 1 {
		err = s.runSequential(ctx, r)
	} else {
		err = s.runParallel(ctx, r, workers)
	}

	stopProgress()

	res = Result{
		Written: r.written.Load(),
		Skipped: r.skipped.Load(),
		Elapsed: time.Since(r.start),
	}
	if err == nil && ctx.Err() != nil {
		res.Cancelled = true
		err = ctx.Err()
	}

	level := zerolog.InfoLevel
	if res.Cancelled {
		level = zerolog.WarnLevel
	}
	l.WithLevel(level).
		Uint64(log.FieldWritten, res.Written).
		Uint64(log.FieldSkipped, res.Skipped).
		Int64(log.FieldElapsed, res.Elapsed.Milliseconds()).
		Bool("cancelled", res.Cancelled).
		Msg("enumeration finished")

	return res, err
}

// runSequential processes every item on the calling goroutine, preserving
// enumeration order.
func (s *Scheduler) runSequential(ctx context.Context, r *run) error {
	c := r.req.Cursor()
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, ok := c.Next()
		if !ok {
			return nil
		}
		if err := s.handle(ctx, r, 0, n); err != nil {
			return err
		}
	}
}

// runParallel feeds a bounded queue from one producer and drains it with
// the given number of workers.
func (s *Scheduler) runParallel(ctx context.Context, r *run, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	queue := make(chan uint64, s.queueSize)

	g.Go(func() error {
		defer close(queue)
		c := r.req.Cursor()
		for {
			n, ok := c.Next()
			if !ok {
				return nil
			}
			select {
			case queue <- n:
			case <-gctx.Done():
				return nil
			}
		}
	})

	for w := 1; w <= workers; w++ {
		g.Go(func() error {
			for n := range queue {
				if gctx.Err() != nil {
					return nil
				}
				if err := s.handle(gctx, r, w, n); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// handle processes one record number. Only sink failures are returned.
func (s *Scheduler) handle(ctx context.Context, r *run, worker int, n uint64) error {
	line, err := s.process(r.req, n)
	if err != nil {
		r.skipped.Add(1)
		ierr := &ItemError{RecordNumber: n, Err: err}
		l := log.Ctx(ctx)
		l.Warn().
			Err(ierr).
			Int(log.FieldWorker, worker).
			Uint64(log.FieldRecordNumber, n).
			Msg("skipping record")
		return nil
	}

	if err := r.out.WriteLine(line); err != nil {
		return fmt.Errorf("failed to write record %d: %w", n, err)
	}
	r.written.Add(1)
	return nil
}

// startProgress launches the progress reporter and returns a function that
// stops it and delivers the final snapshot.
func (s *Scheduler) startProgress(r *run) func() {
	if s.progress == nil {
		return func() {}
	}

	stop := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.progress(r.snapshot(false))
			case <-stop:
				return
			}
		}
	}()

	return func() {
		close(stop)
		<-stopped
		s.progress(r.snapshot(true))
	}
}
