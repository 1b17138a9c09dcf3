// Package search drives the parallel key search for a ciphertext and ranks
// the resulting decryptions.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gocipher/internal/cipher"
	"github.com/dbsmedya/gocipher/internal/keyspace"
	"github.com/dbsmedya/gocipher/internal/logger"
	"github.com/dbsmedya/gocipher/internal/scorer"
	"github.com/dbsmedya/gocipher/internal/topk"
)

// cancelCheckInterval is how many keys a worker tries between context checks.
const cancelCheckInterval = 1024

var (
	// ErrAlreadyStarted is returned when Run is called on a used Orchestrator.
	ErrAlreadyStarted = errors.New("search already started")
	// ErrNoOutcome means a Start channel closed without delivering a result.
	ErrNoOutcome = errors.New("search finished without an outcome")
)

// State is the lifecycle position of an Orchestrator.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Status tells a caller whether a finished search produced anything.
type Status int

const (
	StatusSolved Status = iota
	// StatusNoSolution means the search ran but no key could be tried.
	StatusNoSolution
)

func (s Status) String() string {
	if s == StatusSolved {
		return "solved"
	}
	return "no_solution"
}

// Candidate is one ranked decryption.
type Candidate = topk.Item

// Result is the outcome of a completed search.
type Result struct {
	RunID      string
	Family     cipher.Family
	Candidates []Candidate // best first; empty when Status is StatusNoSolution
	KeysTried  uint64
	StartedAt  time.Time
	Duration   time.Duration
	Status     Status
}

// Best returns the top candidate.
func (r *Result) Best() (Candidate, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Segment is the slice of the key space owned by one outer value.
type Segment struct {
	Value   int // key length or period
	Keys    uint64
	Skipped bool // degenerate for this text
}

// Orchestrator runs a single search. It is not reusable: a second Run
// returns ErrAlreadyStarted.
type Orchestrator struct {
	cfg     Configuration
	logger  *logger.Logger
	metrics *Metrics
	score   func(string) float64

	state atomic.Int32
	tried atomic.Uint64
}

// New creates an Orchestrator. log and metrics may be nil.
func New(cfg Configuration, log *logger.Logger, metrics *Metrics) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Scorer == nil {
		cfg.Scorer = scorer.Default()
	}
	return &Orchestrator{
		cfg:     cfg,
		logger:  log,
		metrics: metrics,
		score:   cfg.Scorer.Score,
	}
}

// Run searches text with a fresh Orchestrator.
func Run(ctx context.Context, text string, cfg Configuration) (*Result, error) {
	return New(cfg, nil, nil).Run(ctx, text)
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Progress returns the number of keys tried so far.
func (o *Orchestrator) Progress() uint64 {
	return o.tried.Load()
}

// Configuration returns the settings the Orchestrator was built with.
func (o *Orchestrator) Configuration() Configuration {
	return o.cfg
}

// Plan lists the key count of every outer value for text. Values that cannot
// apply to text, such as a key longer than the text, are marked skipped.
func (o *Orchestrator) Plan(text string) []Segment {
	src := []rune(text)
	values := o.cfg.OuterValues()
	segments := make([]Segment, 0, len(values))

	for _, v := range values {
		seg := Segment{Value: v}
		switch {
		case len(src) == 0:
			seg.Skipped = true
		case o.cfg.Family.IsTransposition():
			if v > len(src) {
				seg.Skipped = true
			} else {
				seg.Keys = keyspace.Factorial(v)
			}
		default:
			lists, err := keyspace.Shifts(src, v, o.cfg.TopN(), o.cfg.Family)
			if err != nil {
				seg.Skipped = true
			} else {
				seg.Keys = keyspace.ProductSize(lists)
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// TotalKeys is the number of keys Run will try on text.
func (o *Orchestrator) TotalKeys(text string) uint64 {
	segments := o.Plan(text)
	counts := make([]uint64, len(segments))
	for i, s := range segments {
		counts[i] = s.Keys
	}
	return keyspace.Sum(counts...)
}

// Run searches text and returns the ranked candidates.
//
// Outer values are fanned out over at most Workers goroutines. Each worker
// enumerates its keys sequentially and feeds a shared top-K collector.
// Cancelling ctx stops the search; the error wraps ctx.Err() and no partial
// result is returned.
func (o *Orchestrator) Run(ctx context.Context, text string) (*Result, error) {
	if !o.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrAlreadyStarted
	}
	defer o.state.Store(int32(StateCompleted))

	runID := uuid.NewString()
	family := o.cfg.Family.String()
	log := o.logger.WithRun(runID).WithFamily(family)
	src := []rune(text)
	startedAt := time.Now()

	result := &Result{
		RunID:     runID,
		Family:    o.cfg.Family,
		StartedAt: startedAt,
		Status:    StatusNoSolution,
	}

	if len(src) == 0 {
		log.Infow("Empty ciphertext, nothing to search")
		o.metrics.recordRun(family, result.Status.String(), 0, 0, 0)
		return result, nil
	}

	outer := o.cfg.OuterValues()
	log.Infow("Starting search",
		"text_length", len(src),
		"outer_values", outer,
		"layout", o.cfg.Layout.String(),
		"workers", o.cfg.workers(),
		"top_k", o.cfg.EffectiveTopK(),
	)

	collector := topk.New(o.cfg.EffectiveTopK())
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.workers())

	for _, v := range outer {
		if gCtx.Err() != nil {
			break
		}
		v := v
		g.Go(func() error {
			return o.explore(gCtx, log.WithPeriod(v), src, v, collector)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	elapsed := time.Since(startedAt)
	if err != nil {
		status := "failed"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = "cancelled"
		}
		log.Warnw("Search stopped", "status", status, "keys_tried", o.Progress(), "error", err)
		o.metrics.recordRun(family, status, o.Progress(), elapsed, 0)
		return nil, fmt.Errorf("search %s stopped: %w", runID, err)
	}

	result.Candidates = collector.Ranked()
	result.KeysTried = o.Progress()
	result.Duration = elapsed
	if len(result.Candidates) > 0 {
		result.Status = StatusSolved
	}

	o.metrics.recordRun(family, result.Status.String(), result.KeysTried, elapsed, len(result.Candidates))
	log.Infow("Search completed",
		"status", result.Status.String(),
		"keys_tried", result.KeysTried,
		"candidates", len(result.Candidates),
		"duration", elapsed,
	)

	return result, nil
}

// explore tries every key for one outer value.
func (o *Orchestrator) explore(ctx context.Context, log *logger.Logger, src []rune, value int, collector *topk.Collector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker for %d panicked: %v", value, r)
		}
	}()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var local uint64
	yield := func(key cipher.Key) bool {
		out, invErr := cipher.InvertRunes(o.cfg.Family, src, key, o.cfg.Layout)
		if invErr == nil {
			text := string(out)
			collector.Insert(topk.Item{Key: key, Text: text, Score: o.score(text)})
		}
		o.tried.Add(1)

		local++
		if local%cancelCheckInterval == 0 && ctx.Err() != nil {
			err = ctx.Err()
			return false
		}
		return true
	}

	if o.cfg.Family.IsTransposition() {
		if value > len(src) {
			log.Debugw("Skipping key length longer than text", "text_length", len(src))
			return nil
		}
		keyspace.Permutations(value, yield)
	} else {
		lists, shiftErr := keyspace.Shifts(src, value, o.cfg.TopN(), o.cfg.Family)
		if shiftErr != nil {
			log.Debugw("Skipping period", "error", shiftErr)
			return nil
		}
		log.Debugw("Derived shift candidates", "keys", keyspace.ProductSize(lists))
		keyspace.Product(lists, yield)
	}

	return err
}

// Outcome is the single value delivered by Start.
type Outcome struct {
	Result *Result
	Err    error
}

// Start runs the search in a goroutine. The channel receives at most one
// Outcome and is then closed; a panic in the search is delivered as an error.
func (o *Orchestrator) Start(ctx context.Context, text string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome{Err: fmt.Errorf("search panicked: %v", r)}
			}
		}()
		res, err := o.Run(ctx, text)
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// Await blocks for the Outcome of a Start channel. A channel closed without a
// value yields ErrNoOutcome.
func Await(ch <-chan Outcome) (*Result, error) {
	out, ok := <-ch
	if !ok {
		return nil, ErrNoOutcome
	}
	return out.Result, out.Err
}
