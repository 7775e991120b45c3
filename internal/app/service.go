// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/echochamber/internal/adapters/mq/queue"
	workerpool "github.com/okian/echochamber/internal/adapters/mq/worker"
	"github.com/okian/echochamber/internal/domain/history"
	"github.com/okian/echochamber/internal/domain/memo"
	"github.com/okian/echochamber/internal/domain/model"
	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/okian/echochamber/pkg/logger"
	"github.com/okian/echochamber/pkg/metrics"
)

// Service implements the API dependencies for the sequence analyzer.
type Service struct {
	mu sync.RWMutex

	// Core components
	analyzer   *sequence.Analyzer
	history    history.Recorder
	cache      memo.Cache
	jobQueue   *jobqueue.InMemoryQueue
	workerPool *workerpool.Pool

	// Configuration
	workerCount  int
	queueSize    int
	cacheSize    int
	historyLimit int

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the size of the result cache. Zero or less disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}

// WithHistoryLimit bounds the analysis history. Zero or less keeps everything.
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		s.historyLimit = limit
	}
}

// WithAnalyzer replaces the default detection engine.
func WithAnalyzer(a *sequence.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithHistory replaces the default in-memory history recorder.
func WithHistory(r history.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.history = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service. Single analyses work immediately; batches
// run inline until Start brings up the worker pool.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		cacheSize:   10_000,
		startedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.analyzer == nil {
		s.analyzer = sequence.NewAnalyzer()
	}
	if s.history == nil {
		s.history = history.NewInMemoryRecorder(history.WithMaxEntries(s.historyLimit))
	}
	s.cache = memo.NewInMemoryCache(memo.WithMaxSize(s.cacheSize))
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

// Start initializes and starts the batch worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting sequence analysis service...")

	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s)
	// Workers outlive ctx so Stop can drain jobs still owed to callers.
	s.workerPool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "sequence analysis service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("historyLimit", s.historyLimit),
	)

	return nil
}

// Stop gracefully shuts down the worker pool. Jobs already queued are drained.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping sequence analysis service...")

	if s.workerPool != nil {
		if err := s.workerPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "sequence analysis service stopped")
}

// Analyze classifies v and records successful results in the history.
func (s *Service) Analyze(ctx context.Context, v any) (sequence.Analysis, error) {
	seq, a, err := s.evaluate(ctx, v)
	if err != nil {
		s.logger.Debug(ctx, "analysis failed",
			logger.String("kind", string(sequence.KindOf(err))),
			logger.Error(err),
		)
		return sequence.Analysis{}, err
	}

	s.history.Record(ctx, seq, a.Pattern, a.Predicted)
	metrics.UpdateHistorySize(s.history.Len())
	s.logger.Debug(ctx, "analysis recorded",
		logger.String("pattern", string(a.Pattern.Type)),
		logger.Float64("predicted", a.Predicted),
	)
	return a, nil
}

// AnalyzeValue classifies v without touching the history. Batch workers call it.
func (s *Service) AnalyzeValue(ctx context.Context, v any) (sequence.Analysis, error) {
	_, a, err := s.evaluate(ctx, v)
	return a, err
}

// evaluate coerces v and classifies it, consulting the result cache.
func (s *Service) evaluate(ctx context.Context, v any) ([]float64, sequence.Analysis, error) {
	start := time.Now()
	defer func() {
		metrics.RecordAnalysisLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	seq, err := sequence.Coerce(v)
	if err != nil {
		metrics.RecordAnalysisFailure(string(sequence.KindOf(err)))
		return nil, sequence.Analysis{}, err
	}

	if o, ok := s.cache.Get(ctx, seq); ok {
		metrics.RecordCacheHit()
		a := o.Analysis
		a.NextFive = slices.Clone(a.NextFive)
		return seq, a, s.observe(a, o.Err)
	}
	metrics.RecordCacheMiss()

	a, err := s.analyzer.Analyze(seq)
	cached := a
	cached.NextFive = slices.Clone(a.NextFive)
	s.cache.Put(ctx, seq, memo.Outcome{Analysis: cached, Err: err})
	metrics.UpdateCacheSize(s.cache.Size())
	return seq, a, s.observe(a, err)
}

func (s *Service) observe(a sequence.Analysis, err error) error {
	if err != nil {
		metrics.RecordAnalysisFailure(string(sequence.KindOf(err)))
		return err
	}
	metrics.RecordAnalysis(string(a.Pattern.Type))
	return nil
}

// AnalyzeBatch classifies every value independently and returns one result
// per input, in input order. Jobs are fanned out to the worker pool; a job
// the queue rejects runs inline. Batch results are not recorded in history.
// The only error is ctx's, when it is cancelled before all results arrive.
func (s *Service) AnalyzeBatch(ctx context.Context, values []any) ([]model.Result, error) {
	metrics.RecordBatchSize(len(values))
	results := make([]model.Result, len(values))
	if len(values) == 0 {
		return results, nil
	}

	s.mu.RLock()
	q := s.jobQueue
	started := s.started
	s.mu.RUnlock()

	batchID := uuid.NewString()
	reply := make(chan model.Result, len(values))
	pending := 0
	for i, v := range values {
		job := model.Job{BatchID: batchID, Index: i, Input: v, Reply: reply}
		if started && q.Enqueue(ctx, job) {
			pending++
			continue
		}
		results[i] = workerpool.Process(ctx, s, job, s.logger)
	}

	for pending > 0 {
		select {
		case res := <-reply:
			results[res.Index] = res
			pending--
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.logger.Debug(ctx, "batch analysis complete",
		logger.String("batchID", batchID),
		logger.Int("size", len(values)),
	)
	return results, nil
}

// Statistics returns pattern counts and the analysis history.
func (s *Service) Statistics(ctx context.Context) history.Statistics {
	return s.history.Statistics(ctx)
}

// History returns a snapshot of the analysis history.
func (s *Service) History(ctx context.Context) []history.Entry {
	return s.history.Entries(ctx)
}

// ClearHistory empties the analysis history. It is idempotent.
func (s *Service) ClearHistory(ctx context.Context) {
	s.history.Clear(ctx)
	metrics.UpdateHistorySize(0)
	s.logger.Info(ctx, "analysis history cleared")
}

// Uptime returns the time since the service was constructed.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.startedAt)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"cacheSize":    s.cacheSize,
		"historyLimit": s.historyLimit,
		"historyLen":   s.history.Len(),
		"cacheLen":     s.cache.Size(),
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateQueueSize(queueLen)
	}
	metrics.UpdateHistorySize(s.history.Len())
	metrics.UpdateCacheSize(s.cache.Size())

	return stats
}
