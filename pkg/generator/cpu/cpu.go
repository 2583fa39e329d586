package cpu

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/candidate"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/matcher"
)

// CPUGenerator implements the Generator interface using CPU-based goroutines.
// Each worker runs its own search loop; results are collected on a channel
// in arrival order.
type CPUGenerator struct {
	attempts  uint64 // Atomic counter for total attempts
	startTime int64  // Unix nanoseconds, atomic
	workers   int    // Number of concurrent workers

	log      *zap.Logger
	hook     StateHook
	onResult func(generator.Result)

	generate func(generator.Chain) (candidate.Candidate, error)
	rederive func(candidate.Candidate) (generator.Address, error)
}

// Option configures a CPUGenerator.
type Option func(*CPUGenerator)

// WithLogger sets the logger. Keys are never logged.
func WithLogger(log *zap.Logger) Option {
	return func(g *CPUGenerator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithStateHook observes every search loop transition.
func WithStateHook(hook StateHook) Option {
	return func(g *CPUGenerator) { g.hook = hook }
}

// WithResultHandler is called by Run for each collected result, in arrival
// order, before Run returns.
func WithResultHandler(fn func(generator.Result)) Option {
	return func(g *CPUGenerator) { g.onResult = fn }
}

// DefaultWorkers is half the logical CPUs, at least one.
func DefaultWorkers() int {
	if n := runtime.NumCPU() / 2; n > 0 {
		return n
	}
	return 1
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to DefaultWorkers.
func NewCPUGenerator(workers int, opts ...Option) *CPUGenerator {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	g := &CPUGenerator{
		workers:  workers,
		log:      zap.NewNop(),
		generate: candidate.Generate,
		rederive: candidate.Rederive,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Workers returns the configured worker count.
func (g *CPUGenerator) Workers() int {
	return g.workers
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	attempts := atomic.LoadUint64(&g.attempts)
	start := atomic.LoadInt64(&g.startTime)
	if start == 0 {
		return generator.Stats{}
	}
	elapsed := time.Since(time.Unix(0, start)).Seconds()

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

// Run searches until target results are collected, then cancels the
// remaining workers and waits for them. It returns exactly target results
// unless a worker fails or ctx ends first; in that case the results
// collected so far come back with the error.
func (g *CPUGenerator) Run(ctx context.Context, criteria *generator.MatchCriteria, target int) ([]generator.Result, error) {
	if target < 1 {
		target = 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, errs, err := g.launch(runCtx, criteria)
	if err != nil {
		return nil, err
	}

	collected := make([]generator.Result, 0, target)
	var fatal error
	for len(collected) < target && fatal == nil {
		select {
		case r, ok := <-results:
			if !ok {
				select {
				case fatal = <-errs:
					return collected, fatal
				default:
				}
				return collected, ctx.Err()
			}
			collected = append(collected, r)
			g.log.Info("match found",
				zap.String("chain", r.Chain.String()),
				zap.String("address", r.MatchedAddress().Value),
				zap.Int("worker", r.WorkerID),
				zap.Int("found", len(collected)),
				zap.Int("target", target))
			if g.onResult != nil {
				g.onResult(r)
			}
		case fatal = <-errs:
		}
	}

	cancel()
	for range results {
	}
	if fatal != nil {
		return collected, fatal
	}
	return collected, nil
}

// Start begins the vanity address search with the given criteria.
// Results stream until ctx is cancelled; the channel is closed once every
// worker has stopped.
func (g *CPUGenerator) Start(ctx context.Context, criteria *generator.MatchCriteria) (<-chan generator.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	results, errs, err := g.launch(runCtx, criteria)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan generator.Result)
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case r, ok := <-results:
				if !ok {
					return
				}
				select {
				case out <- r:
				case <-runCtx.Done():
				}
			case err := <-errs:
				g.log.Error("search aborted", zap.Error(err))
				cancel()
			}
		}
	}()
	return out, nil
}

// launch validates criteria and starts the workers. The results channel is
// closed after all of them have returned.
func (g *CPUGenerator) launch(ctx context.Context, criteria *generator.MatchCriteria) (<-chan generator.Result, <-chan error, error) {
	if err := codec.ValidateCriteria(criteria); err != nil {
		return nil, nil, err
	}

	atomic.StoreUint64(&g.attempts, 0)
	atomic.StoreInt64(&g.startTime, time.Now().UnixNano())

	m := matcher.New(criteria)
	results := make(chan generator.Result)
	errs := make(chan error, g.workers)

	g.log.Debug("starting workers",
		zap.Int("workers", g.workers),
		zap.String("chain", criteria.Chain.String()),
		zap.String("criteria", criteria.Describe()))

	var wg sync.WaitGroup
	for i := 0; i < g.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			g.worker(ctx, id, criteria, m, results, errs)
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	return results, errs, nil
}

// worker runs search loops back to back. A loop that found a match is not
// reused; the slot starts a fresh one until ctx ends.
func (g *CPUGenerator) worker(ctx context.Context, id int, criteria *generator.MatchCriteria, m *matcher.Matcher, results chan<- generator.Result, errs chan<- error) {
	for {
		loop := &searchLoop{
			id:       id,
			criteria: criteria,
			matcher:  m,
			attempts: &g.attempts,
			log:      g.log,
			hook:     g.hook,
			generate: g.generate,
			rederive: g.rederive,
		}
		result, ok, err := loop.run(ctx)
		if err != nil {
			g.log.Error("worker failed", zap.Int("worker", id), zap.Error(err))
			errs <- err
			return
		}
		if !ok {
			return
		}
		select {
		case results <- result:
		case <-ctx.Done():
			return
		}
	}
}
