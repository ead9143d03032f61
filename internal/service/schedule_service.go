package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/PMithila/Group-PPA/internal/dto"
	"github.com/PMithila/Group-PPA/internal/engine"
	"github.com/PMithila/Group-PPA/internal/metrics"
	"github.com/PMithila/Group-PPA/internal/models"
	"github.com/PMithila/Group-PPA/internal/solver"
	appErrors "github.com/PMithila/Group-PPA/pkg/errors"
	"github.com/PMithila/Group-PPA/pkg/jobs"
)

// Config governs service behaviour.
type Config struct {
	DefaultGrid      engine.Config
	DefaultAlgorithm string
	TimeLimit        time.Duration
	ResultTTL        time.Duration
	Workers          int
}

// ScheduleService turns input tables into scheduled events. Each run is
// stateless; the only cross-run state is the TTL result store feeding the
// async API.
type ScheduleService struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *metrics.Metrics
	solver    solver.Solver
	cfg       Config

	store *resultStore
	queue *jobs.Queue
}

// New wires the scheduling service. The solver backend is required for
// ILP runs; metrics and logger may be nil.
func New(solv solver.Solver, m *metrics.Metrics, logger *zap.Logger, cfg Config) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultGrid.SlotMinutes == 0 {
		cfg.DefaultGrid = engine.DefaultConfig()
	}
	if cfg.DefaultAlgorithm == "" {
		cfg.DefaultAlgorithm = dto.AlgorithmHeuristic
	}
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = 30 * time.Second
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 30 * time.Minute
	}

	s := &ScheduleService{
		validator: validator.New(),
		logger:    logger,
		metrics:   m,
		solver:    solv,
		cfg:       cfg,
		store:     newResultStore(cfg.ResultTTL),
	}
	s.queue = jobs.NewQueue("schedule-generate", s.handleJob, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the background workers for async generation.
func (s *ScheduleService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the background workers.
func (s *ScheduleService) Stop() {
	s.queue.Stop()
}

// Generate runs the full pipeline synchronously: validate, build the
// grid, availability index and demand list, allocate, project coverage.
// Config errors are fatal; data-quality and optimization-quality issues
// degrade to partial or empty output.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	grid, err := engine.BuildGrid(s.gridConfig(req.Config))
	if err != nil {
		return nil, err
	}

	teacherIDs := make([]string, 0, len(req.Teachers))
	for _, teacher := range req.Teachers {
		if teacher.ID != "" {
			teacherIDs = append(teacherIDs, teacher.ID)
		}
	}
	teacherIdx := engine.BuildIndex(grid, teacherIDs, s.windows(req.Availability))

	roomIDs := make([]string, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		if room.ID != "" {
			roomIDs = append(roomIDs, room.ID)
		}
	}

	demands := engine.Demands(req.Subjects)

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = s.cfg.DefaultAlgorithm
	}
	timeLimit := s.cfg.TimeLimit
	if req.TimeLimitSeconds > 0 {
		timeLimit = time.Duration(req.TimeLimitSeconds) * time.Second
	}

	started := time.Now()
	var events []models.ScheduledEvent
	switch algorithm {
	case dto.AlgorithmILP:
		events, err = engine.Exact(ctx, grid, teacherIdx, demands, roomIDs, s.solver, timeLimit)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "exact solve failed")
		}
	default:
		roomIdx := engine.BuildIndex(grid, roomIDs, nil)
		events = engine.Heuristic(grid, teacherIdx, roomIdx, demands, roomIDs)
	}
	elapsed := time.Since(started)

	coverage := make(map[string]dto.SubjectCoverage, len(demands))
	for _, demand := range demands {
		coverage[demand.SubjectID] = dto.SubjectCoverage{Requested: demand.Periods}
	}
	for _, event := range events {
		entry := coverage[event.SubjectID]
		entry.Scheduled++
		coverage[event.SubjectID] = entry
	}
	shortfall := lo.SumBy(lo.Values(coverage), func(c dto.SubjectCoverage) int {
		if c.Requested > c.Scheduled {
			return c.Requested - c.Scheduled
		}
		return 0
	})

	outcome := "complete"
	if shortfall > 0 {
		outcome = "partial"
	}
	if len(events) == 0 && len(demands) > 0 {
		outcome = "empty"
	}
	s.metrics.ObserveRun(algorithm, outcome, elapsed, len(events), shortfall)
	s.logger.Sugar().Infow("schedule generated",
		"algorithm", algorithm,
		"events", len(events),
		"shortfall", shortfall,
		"duration", elapsed,
	)

	resp := &dto.GenerateScheduleResponse{
		RunID:     uuid.NewString(),
		Algorithm: algorithm,
		Events:    events,
		Coverage:  coverage,
		Shortfall: shortfall,
	}
	s.store.Save(resp)
	return resp, nil
}

// SubmitAsync validates the request and queues generation off the
// caller's goroutine, the intended path for ILP runs whose solver call
// may block up to the time limit. The result is fetched with Result.
func (s *ScheduleService) SubmitAsync(req dto.GenerateScheduleRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	runID := uuid.NewString()
	job := jobs.Job{ID: runID, Type: "generate", Payload: req}
	if err := s.queue.Enqueue(job); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "enqueue generation job")
	}
	return runID, nil
}

// Result returns the stored outcome of a run, synchronous or async.
func (s *ScheduleService) Result(runID string) (*dto.GenerateScheduleResponse, error) {
	resp, ok := s.store.Get(runID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "run not found or expired")
	}
	return resp, nil
}

func (s *ScheduleService) handleJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateScheduleRequest)
	if !ok {
		return appErrors.Clone(appErrors.ErrInternal, "unexpected job payload")
	}
	resp, err := s.Generate(ctx, req)
	if err != nil {
		s.logger.Sugar().Errorw("async generation failed", "run_id", job.ID, "error", err)
		return err
	}
	// Re-key under the submission id so the caller's handle stays valid.
	resp.RunID = job.ID
	s.store.Save(resp)
	return nil
}

func (s *ScheduleService) gridConfig(override *dto.TimetableConfig) engine.Config {
	cfg := s.cfg.DefaultGrid
	if override == nil {
		return cfg
	}
	if len(override.Days) > 0 {
		cfg.Days = override.Days
	}
	if override.Start != "" {
		cfg.Start = override.Start
	}
	if override.End != "" {
		cfg.End = override.End
	}
	if override.SlotMinutes > 0 {
		cfg.SlotMinutes = override.SlotMinutes
	}
	return cfg
}

// windows parses availability rows, skipping malformed ones rather than
// failing the run.
func (s *ScheduleService) windows(rows []models.AvailabilitySlot) []engine.Window {
	windows := make([]engine.Window, 0, len(rows))
	for _, row := range rows {
		start, err := engine.ParseClock(row.Start)
		if err != nil {
			s.logger.Sugar().Warnw("skipping availability row", "teacher_id", row.TeacherID, "error", err)
			continue
		}
		end, err := engine.ParseClock(row.End)
		if err != nil {
			s.logger.Sugar().Warnw("skipping availability row", "teacher_id", row.TeacherID, "error", err)
			continue
		}
		windows = append(windows, engine.Window{
			EntityID: row.TeacherID,
			Day:      row.Day,
			StartMin: start,
			EndMin:   end,
		})
	}
	return windows
}

// resultStore keeps run outcomes for a bounded time so async callers can
// poll them.
type resultStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]storedResult
}

type storedResult struct {
	resp    *dto.GenerateScheduleResponse
	created time.Time
}

func newResultStore(ttl time.Duration) *resultStore {
	return &resultStore{
		ttl:   ttl,
		items: make(map[string]storedResult),
	}
}

func (s *resultStore) Save(resp *dto.GenerateScheduleResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[resp.RunID] = storedResult{resp: resp, created: time.Now()}
}

func (s *resultStore) Get(runID string) (*dto.GenerateScheduleResponse, bool) {
	s.mu.RLock()
	item, ok := s.items[runID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(item.created) > s.ttl {
		s.Delete(runID)
		return nil, false
	}
	return item.resp, true
}

func (s *resultStore) Delete(runID string) {
	s.mu.Lock()
	delete(s.items, runID)
	s.mu.Unlock()
}
