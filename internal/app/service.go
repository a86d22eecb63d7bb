// Package service runs the leaderboard pipeline: it reads the submission
// sheet, builds every leaderboard, verifies, writes and publishes them.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/vlaboard/internal/adapters/output"
	repository "github.com/okian/vlaboard/internal/adapters/repository"
	"github.com/okian/vlaboard/internal/adapters/source"
	"github.com/okian/vlaboard/internal/domain/aggregate"
	"github.com/okian/vlaboard/internal/domain/board"
	"github.com/okian/vlaboard/internal/domain/extract"
	"github.com/okian/vlaboard/internal/domain/model"
	"github.com/okian/vlaboard/internal/domain/summary"
	"github.com/okian/vlaboard/internal/verify"
	"github.com/okian/vlaboard/pkg/logger"
	"github.com/okian/vlaboard/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Report describes one completed build.
type Report struct {
	RunID      string
	Input      string
	Result     *board.Result
	Files      []string
	Violations int
	Duration   time.Duration
}

// Service builds leaderboards from a submission sheet.
type Service struct {
	// mu serializes builds; a watch rebuild never overlaps a manual one.
	mu sync.Mutex

	reader      source.Reader
	writer      *output.Writer
	store       repository.Store
	workers     int
	policy      aggregate.Policy
	topN        int
	metricsFile string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithReader sets the spreadsheet reader.
func WithReader(r source.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.reader = r
		}
	}
}

// WithOutputDir writes the leaderboard files into dir after every build.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.writer = output.New(dir)
		}
	}
}

// WithStore publishes every build into store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithWorkers bounds concurrent row extraction.
func WithWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workers = count
		}
	}
}

// WithPolicy sets the merge policy for repeated original rows.
func WithPolicy(p aggregate.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithTopN sets how many leaders data.json lists per leaderboard.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMetricsFile dumps the metrics registry to path after every build.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		reader:  source.New(),
		workers: runtime.NumCPU(),
		policy:  aggregate.LastOriginalWins,
		topN:    summary.DefaultTopN,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Store returns the store builds are published to, or nil.
func (s *Service) Store() repository.Store {
	return s.store
}

// Build runs the whole pipeline on the sheet at input.
func (s *Service) Build(ctx context.Context, input string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Input: input}
	log := s.logger

	log.Info(ctx, "building leaderboards",
		logger.String("runID", report.RunID),
		logger.String("input", input),
		logger.String("policy", s.policy.String()),
		logger.Int("workers", s.workers))

	result, err := s.build(ctx, input)
	if err != nil {
		metrics.RecordBuild(metrics.StatusFailure, 0)
		log.Error(ctx, "build failed", logger.String("runID", report.RunID), logger.Error(err))
		return nil, err
	}
	report.Result = result

	if verr := verify.Result(result); verr != nil {
		report.Violations = countErrors(verr)
		log.Warn(ctx, "leaderboard invariants violated",
			logger.String("runID", report.RunID),
			logger.Int("violations", report.Violations),
			logger.Error(verr))
	}

	if s.writer != nil {
		files, err := s.writer.Write(ctx, result)
		if err != nil {
			metrics.RecordBuild(metrics.StatusFailure, 0)
			metrics.RecordErrorByComponent("output", "write")
			log.Error(ctx, "writing leaderboards failed", logger.String("runID", report.RunID), logger.Error(err))
			return nil, err
		}
		report.Files = files
	}

	if s.store != nil {
		if _, err := s.store.Publish(ctx, report.RunID, result); err != nil {
			metrics.RecordBuild(metrics.StatusFailure, 0)
			return nil, fmt.Errorf("publish: %w", err)
		}
	}

	report.Duration = time.Since(start)
	s.record(report)
	s.logReport(ctx, report)

	if s.metricsFile != "" {
		if err := metrics.WriteTextfile(s.metricsFile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logger.String("path", s.metricsFile), logger.Error(err))
		}
	}
	return report, nil
}

func (s *Service) build(ctx context.Context, input string) (*board.Result, error) {
	rows, err := s.reader.Load(ctx, input)
	if err != nil {
		metrics.RecordErrorByComponent("source", "load")
		return nil, err
	}
	extracted, err := extractRows(ctx, rows, s.workers)
	if err != nil {
		return nil, err
	}
	agg := aggregate.Run(extracted, aggregate.WithPolicy(s.policy))
	return board.Build(agg, board.WithTopN(s.topN)), nil
}

// extractRows extracts rows concurrently and keeps file order.
func extractRows(ctx context.Context, rows []model.Row, workers int) ([]extract.Extracted, error) {
	out := make([]extract.Extracted, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = extract.Row(rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract rows: %w", err)
	}
	return out, nil
}

func (s *Service) record(r *Report) {
	st := r.Result.Stats
	metrics.UpdateRows(st.Rows, st.Skipped, st.References)
	metrics.UpdateModelsTotal(st.Models)
	for b, counts := range r.Result.Counts() {
		for c, n := range counts {
			metrics.UpdateLeaderboardEntries(string(b), string(c), n)
		}
	}
	for _, b := range model.Benchmarks {
		metrics.UpdateDerivedAggregates(string(b), st.Derived[b])
	}
	metrics.UpdateVerifyViolations(r.Violations)
	metrics.RecordBuild(metrics.StatusSuccess, float64(r.Duration.Microseconds())/1000)
	metrics.UpdateLastBuild(float64(time.Now().Unix()))
}

// logReport emits the per-run summary: one line for the batch and one per
// leaderboard with its category sizes.
func (s *Service) logReport(ctx context.Context, r *Report) {
	st := r.Result.Stats
	s.logger.Info(ctx, "leaderboards built",
		logger.String("runID", r.RunID),
		logger.Int("rows", st.Rows),
		logger.Int("skipped", st.Skipped),
		logger.Int("references", st.References),
		logger.Int("models", st.Models),
		logger.Int("liberoPlusEntries", st.LiberoPlus),
		logger.Int("files", len(r.Files)),
		logger.Duration("took", r.Duration))

	for _, b := range model.Benchmarks {
		sectioned, _ := r.Result.Board(b)
		fields := []logger.Field{
			logger.String("benchmark", string(b)),
			logger.Int("total", sectioned.Len()),
			logger.Int("derived", st.Derived[b]),
		}
		for _, sec := range sectioned.Sections() {
			fields = append(fields, logger.Int(string(sec.Category), len(sec.Entries)))
		}
		s.logger.Info(ctx, "leaderboard", fields...)
	}
}

// countErrors counts the leaves of a joined error tree.
func countErrors(err error) int {
	if err == nil {
		return 0
	}
	joined, ok := err.(interface{ Unwrap() []error }) //nolint:errorlint // only the top-level join is unfolded
	if !ok {
		return 1
	}
	n := 0
	for _, e := range joined.Unwrap() {
		n += countErrors(e)
	}
	return n
}
