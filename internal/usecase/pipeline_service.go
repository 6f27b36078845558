package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	ants "github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/skykauf/fivb-leaderboard/external/vis"
	"github.com/skykauf/fivb-leaderboard/internal/domain/event"
	"github.com/skykauf/fivb-leaderboard/internal/domain/ingestrun"
	"github.com/skykauf/fivb-leaderboard/internal/domain/match"
	"github.com/skykauf/fivb-leaderboard/internal/domain/player"
	"github.com/skykauf/fivb-leaderboard/internal/domain/round"
	"github.com/skykauf/fivb-leaderboard/internal/domain/team"
	"github.com/skykauf/fivb-leaderboard/internal/domain/teamranking"
	"github.com/skykauf/fivb-leaderboard/internal/domain/tournament"
	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
)

// Provider is the slice of the VIS client the pipeline consumes.
type Provider interface {
	FetchEventList(ctx context.Context, filter vis.EventFilter) ([]vis.Record, error)
	FetchBeachTournaments(ctx context.Context, filterExpr string) ([]vis.Record, error)
	FetchBeachTeams(ctx context.Context, filterExpr string) ([]vis.Record, error)
	FetchPlayerList(ctx context.Context) ([]vis.Record, error)
	FetchBeachMatches(ctx context.Context, filterExpr string) ([]vis.Record, error)
	FetchBeachTournamentRanking(ctx context.Context, no int64, phase string) ([]vis.Record, error)
	FetchBeachRoundList(ctx context.Context, tournamentNo int64) ([]vis.Record, error)
	FetchBeachRoundRanking(ctx context.Context, roundNo int64) ([]vis.Record, error)
	FetchBeachWorldTourRanking(ctx context.Context, gender string) ([]vis.Record, error)
	FetchBeachOlympicSelectionRanking(ctx context.Context, gender string) ([]vis.Record, error)
}

// MaintenanceRepository is the store surface the pipeline needs besides the
// per-entity upserts: full-refresh truncation and the post-run row counts.
type MaintenanceRepository interface {
	TruncateRaw(ctx context.Context) error
	CountRows(ctx context.Context, table string) (int64, error)
}

// PipelineConfig carries only the orchestration knobs; wiring of the
// provider and repositories is the caller's concern.
type PipelineConfig struct {
	Season                    string
	Parallel                  bool
	MaxWorkers                int
	MinExpandYear             int
	TruncateRaw               bool
	LimitTournaments          int
	LimitMatchesPerTournament int
	LimitResultsPerTournament int
	EventFirstStartDate       string
	EventLastStartDate        string
}

// StageTiming is one line of the run summary.
type StageTiming struct {
	Stage     string        `json:"stage"`
	ElapsedMS int64         `json:"elapsed_ms"`
	Elapsed   time.Duration `json:"-"`
}

// TaskFailure records one failed unit of the tolerant stages: a tournament
// in the fan-out, or a kind/gender combination of the ranking snapshots.
type TaskFailure struct {
	Stage        string
	TournamentID int64
	Detail       string
}

// RunSummary is emitted (logged and persisted) for every run, fatal or not.
type RunSummary struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	Season          string
	Stages          []StageTiming
	TournamentCount int
	Failures        []TaskFailure
	FatalError      error
}

type PipelineRepositories struct {
	Events        event.Repository
	Tournaments   tournament.Repository
	Results       tournament.ResultRepository
	Teams         team.Repository
	Players       player.Repository
	Matches       match.Repository
	Rounds        round.Repository
	RoundRankings round.RankingRepository
	TeamRankings  teamranking.Repository
	Runs          ingestrun.Repository
	Maintenance   MaintenanceRepository
}

// PipelineService runs the raw ingestion end to end: sequential required
// stages, a bounded per-tournament fan-out, tolerant ranking snapshots, and
// a final non-emptiness check over the core tables.
type PipelineService struct {
	cfg      PipelineConfig
	logger   *logging.Logger
	provider Provider
	repos    PipelineRepositories
	now      func() time.Time
}

func NewPipelineService(cfg PipelineConfig, provider Provider, repos PipelineRepositories, logger *logging.Logger) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	return &PipelineService{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		repos:    repos,
		now:      time.Now,
	}
}

// Run executes every stage in order. A fatal error aborts remaining stages
// but the summary is still completed, logged and persisted first; the error
// is returned alongside it.
func (s *PipelineService) Run(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{
		StartedAt: s.now().UTC(),
		Season:    s.cfg.Season,
	}

	fatal := s.runStages(ctx, &summary)

	summary.FinishedAt = s.now().UTC()
	summary.FatalError = fatal
	s.logSummary(ctx, summary)
	s.persistSummary(ctx, summary)
	return summary, fatal
}

func (s *PipelineService) runStages(ctx context.Context, summary *RunSummary) error {
	if s.cfg.TruncateRaw {
		if err := s.timed(summary, "truncate", func() error {
			return s.repos.Maintenance.TruncateRaw(ctx)
		}); err != nil {
			return fmt.Errorf("truncate raw tables: %w", err)
		}
	}

	if err := s.timed(summary, "events", func() error {
		return s.ingestEvents(ctx)
	}); err != nil {
		return fmt.Errorf("ingest events: %w", err)
	}

	var tournaments []tournament.Tournament
	if err := s.timed(summary, "tournaments", func() error {
		var err error
		tournaments, err = s.ingestTournaments(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("ingest tournaments: %w", err)
	}
	summary.TournamentCount = len(tournaments)

	if err := s.timed(summary, "teams", func() error {
		return s.ingestTeams(ctx)
	}); err != nil {
		return fmt.Errorf("ingest teams: %w", err)
	}

	if err := s.timed(summary, "players", func() error {
		return s.ingestPlayers(ctx)
	}); err != nil {
		return fmt.Errorf("ingest players: %w", err)
	}

	if err := s.timed(summary, "matches", func() error {
		return s.ingestMatches(ctx)
	}); err != nil {
		return fmt.Errorf("ingest matches: %w", err)
	}

	if err := s.timed(summary, "tournament_fanout", func() error {
		failures, err := s.expandTournaments(ctx, tournaments)
		summary.Failures = append(summary.Failures, failures...)
		return err
	}); err != nil {
		return fmt.Errorf("tournament fan-out: %w", err)
	}

	// Ranking snapshots never abort the run; failures are per-combination.
	_ = s.timed(summary, "team_rankings", func() error {
		summary.Failures = append(summary.Failures, s.ingestTeamRankings(ctx)...)
		return nil
	})

	if err := s.timed(summary, "verify", func() error {
		return s.verifyCoreTables(ctx)
	}); err != nil {
		return fmt.Errorf("verify core tables: %w", err)
	}
	return nil
}

func (s *PipelineService) timed(summary *RunSummary, stage string, fn func() error) error {
	start := s.now()
	err := fn()
	elapsed := s.now().Sub(start)
	summary.Stages = append(summary.Stages, StageTiming{
		Stage:     stage,
		ElapsedMS: elapsed.Milliseconds(),
		Elapsed:   elapsed,
	})
	return err
}

// Stage 1. An empty event list is tolerated; a transport failure is not.
func (s *PipelineService) ingestEvents(ctx context.Context) error {
	records, err := s.provider.FetchEventList(ctx, vis.EventFilter{
		HasBeachTournament: true,
		NoParentEvent:      true,
		FirstStartDate:     s.cfg.EventFirstStartDate,
		LastStartDate:      s.cfg.EventLastStartDate,
	})
	if err != nil {
		return fmt.Errorf("%w: fetch events: %v", ErrDependencyUnavailable, err)
	}

	rows := make([]event.Event, 0, len(records))
	for _, rec := range records {
		row, err := normalizeEvent(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping event record", "error", err)
			continue
		}
		rows = append(rows, row)
	}
	s.logger.InfoContext(ctx, "events ingested", "count", len(rows))
	return s.repos.Events.UpsertMany(ctx, rows)
}

// Stage 2. Nothing downstream can run without tournaments: zero rows is
// fatal, not merely empty.
func (s *PipelineService) ingestTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	filter := ""
	if s.cfg.Season != "" {
		filter = fmt.Sprintf("Season='%s'", s.cfg.Season)
	}
	records, err := s.provider.FetchBeachTournaments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch tournaments: %v", ErrDependencyUnavailable, err)
	}

	rows := make([]tournament.Tournament, 0, len(records))
	for _, rec := range records {
		row, err := normalizeTournament(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping tournament record", "error", err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: tournament list is empty for season %q", ErrNoData, s.cfg.Season)
	}
	if err := s.repos.Tournaments.UpsertMany(ctx, rows); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "tournaments ingested", "count", len(rows), "season", s.cfg.Season)
	return rows, nil
}

// Stage 3.
func (s *PipelineService) ingestTeams(ctx context.Context) error {
	records, err := s.provider.FetchBeachTeams(ctx, "")
	if err != nil {
		return fmt.Errorf("%w: fetch teams: %v", ErrDependencyUnavailable, err)
	}

	rows := make([]team.Team, 0, len(records))
	for _, rec := range records {
		row, err := normalizeTeam(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping team record", "error", err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: team list is empty", ErrNoData)
	}
	s.logger.InfoContext(ctx, "teams ingested", "count", len(rows))
	return s.repos.Teams.UpsertMany(ctx, rows)
}

// Stage 4. The player list sometimes carries inline error payloads between
// regular records; those are dropped, not fatal.
func (s *PipelineService) ingestPlayers(ctx context.Context) error {
	records, err := s.provider.FetchPlayerList(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch players: %v", ErrDependencyUnavailable, err)
	}

	rows := make([]player.Player, 0, len(records))
	for _, rec := range records {
		if vis.IsErrorRecord(rec) {
			s.logger.WarnContext(ctx, "dropping error record from player list")
			continue
		}
		row, err := normalizePlayer(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping player record", "error", err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: player list is empty", ErrNoData)
	}
	s.logger.InfoContext(ctx, "players ingested", "count", len(rows))
	return s.repos.Players.UpsertMany(ctx, rows)
}

// Stage 5. One unfiltered bulk call keeps the total call count bounded; an
// empty result is logged and verified later rather than failing here.
func (s *PipelineService) ingestMatches(ctx context.Context) error {
	records, err := s.provider.FetchBeachMatches(ctx, "")
	if err != nil {
		return fmt.Errorf("%w: fetch matches: %v", ErrDependencyUnavailable, err)
	}
	if len(records) == 0 {
		s.logger.WarnContext(ctx, "bulk match list is empty")
		return nil
	}

	perTournament := make(map[int64][]match.Match)
	order := make([]int64, 0)
	for _, rec := range records {
		row, err := normalizeMatch(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping match record", "error", err)
			continue
		}
		if _, seen := perTournament[row.TournamentID]; !seen {
			order = append(order, row.TournamentID)
		}
		perTournament[row.TournamentID] = append(perTournament[row.TournamentID], row)
	}

	rows := make([]match.Match, 0, len(records))
	for _, tournamentID := range order {
		group := perTournament[tournamentID]
		if limit := s.cfg.LimitMatchesPerTournament; limit > 0 && len(group) > limit {
			group = group[:limit]
		}
		rows = append(rows, group...)
	}
	s.logger.InfoContext(ctx, "matches ingested", "count", len(rows), "tournaments", len(order))
	return s.repos.Matches.UpsertMany(ctx, rows)
}

// resultPhases are tried independently per tournament; whatever succeeds is
// unioned via upsert on (tournament_id, team_id).
var resultPhases = []string{"", "MainDraw", "Qualification"}

type fanoutResult struct {
	tournamentID int64
	err          error
}

// Stage 6: the per-tournament fan-out. Task failures are isolated and
// collected over a channel; the stage settles once every task has reported.
func (s *PipelineService) expandTournaments(ctx context.Context, tournaments []tournament.Tournament) ([]TaskFailure, error) {
	targets := make([]tournament.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		year, ok := tournamentYear(t)
		if !ok || year < s.cfg.MinExpandYear {
			continue
		}
		targets = append(targets, t)
	}
	if limit := s.cfg.LimitTournaments; limit > 0 && len(targets) > limit {
		targets = targets[:limit]
	}
	if len(targets) == 0 {
		s.logger.InfoContext(ctx, "no tournaments selected for expansion", "min_year", s.cfg.MinExpandYear)
		return nil, nil
	}

	workerCount := s.cfg.MaxWorkers
	if !s.cfg.Parallel {
		workerCount = 1
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan fanoutResult, len(targets))
	var successCount atomic.Int32

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			taskErr := s.expandTournament(ctx, target)
			if taskErr == nil {
				successCount.Add(1)
			}
			results <- fanoutResult{tournamentID: target.TournamentID, err: taskErr}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	failures := make([]TaskFailure, 0)
	for res := range results {
		if res.err != nil {
			failures = append(failures, TaskFailure{
				Stage:        "tournament_fanout",
				TournamentID: res.tournamentID,
				Detail:       res.err.Error(),
			})
		}
	}
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].TournamentID < failures[j].TournamentID
	})

	s.logger.InfoContext(ctx, "tournament fan-out settled",
		"targets", len(targets),
		"workers", workerCount,
		"succeeded", successCount.Load(),
		"failed", len(failures),
	)
	return failures, nil
}

// expandTournament loads one tournament's results, rounds and round
// rankings. Result phases are best-effort individually; round fetches fail
// the task.
func (s *PipelineService) expandTournament(ctx context.Context, t tournament.Tournament) error {
	for _, phase := range resultPhases {
		records, err := s.provider.FetchBeachTournamentRanking(ctx, t.TournamentID, phase)
		if err != nil {
			s.logger.WarnContext(ctx, "tournament ranking phase failed",
				"tournament_id", t.TournamentID,
				"phase", phase,
				"error", err,
			)
			continue
		}
		if limit := s.cfg.LimitResultsPerTournament; limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		rows := make([]tournament.Result, 0, len(records))
		for _, rec := range records {
			row, err := normalizeResult(t.TournamentID, rec)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping result record", "tournament_id", t.TournamentID, "error", err)
				continue
			}
			rows = append(rows, row)
		}
		if err := s.repos.Results.UpsertMany(ctx, rows); err != nil {
			return fmt.Errorf("persist results phase %q: %w", phase, err)
		}
	}

	records, err := s.provider.FetchBeachRoundList(ctx, t.TournamentID)
	if err != nil {
		return fmt.Errorf("fetch rounds: %w", err)
	}
	rounds := make([]round.Round, 0, len(records))
	for _, rec := range records {
		row, err := normalizeRound(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping round record", "tournament_id", t.TournamentID, "error", err)
			continue
		}
		rounds = append(rounds, row)
	}
	if err := s.repos.Rounds.UpsertMany(ctx, rounds); err != nil {
		return fmt.Errorf("persist rounds: %w", err)
	}

	for _, r := range rounds {
		if err := s.ingestRoundRanking(ctx, r.RoundID); err != nil {
			return fmt.Errorf("round %d ranking: %w", r.RoundID, err)
		}
	}
	return nil
}

// ingestRoundRanking treats the service's "not applicable" answer (bracket
// rounds have no standings) as a skip, distinct from a transport failure.
func (s *PipelineService) ingestRoundRanking(ctx context.Context, roundID int64) error {
	records, err := s.provider.FetchBeachRoundRanking(ctx, roundID)
	if errors.Is(err, vis.ErrNotApplicable) {
		s.logger.DebugContext(ctx, "round has no standings", "round_id", roundID)
		return nil
	}
	if err != nil {
		return err
	}

	rows := make([]round.Ranking, 0, len(records))
	for _, rec := range records {
		row, err := normalizeRoundRanking(roundID, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping round ranking record", "round_id", roundID, "error", err)
			continue
		}
		rows = append(rows, row)
	}
	return s.repos.RoundRankings.UpsertMany(ctx, rows)
}

// Stage 7: ranking snapshots, kind x gender, each combination tolerant of
// its own failure.
func (s *PipelineService) ingestTeamRankings(ctx context.Context) []TaskFailure {
	type combo struct {
		kind   string
		gender string
	}
	combos := []combo{
		{teamranking.TypeWorldTour, "M"},
		{teamranking.TypeWorldTour, "W"},
		{teamranking.TypeOlympic, "M"},
		{teamranking.TypeOlympic, "W"},
	}

	snapshotDate := s.now().UTC().Truncate(24 * time.Hour)
	failures := make(chan TaskFailure, len(combos))

	var wg conc.WaitGroup
	for _, c := range combos {
		c := c
		wg.Go(func() {
			if err := s.ingestTeamRanking(ctx, c.kind, c.gender, snapshotDate); err != nil {
				failures <- TaskFailure{
					Stage:  "team_rankings",
					Detail: fmt.Sprintf("%s/%s: %v", c.kind, c.gender, err),
				}
			}
		})
	}
	wg.Wait()
	close(failures)

	collected := make([]TaskFailure, 0)
	for failure := range failures {
		collected = append(collected, failure)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Detail < collected[j].Detail
	})
	if len(collected) > 0 {
		s.logger.WarnContext(ctx, "some ranking snapshots failed", "failed", len(collected))
	}
	return collected
}

func (s *PipelineService) ingestTeamRanking(ctx context.Context, kind, gender string, snapshotDate time.Time) error {
	var records []vis.Record
	var err error
	switch kind {
	case teamranking.TypeWorldTour:
		records, err = s.provider.FetchBeachWorldTourRanking(ctx, gender)
	case teamranking.TypeOlympic:
		records, err = s.provider.FetchBeachOlympicSelectionRanking(ctx, gender)
	default:
		return fmt.Errorf("%w: unknown ranking kind %q", ErrInvalidInput, kind)
	}
	if err != nil {
		return err
	}

	rows := make([]teamranking.Snapshot, 0, len(records))
	for _, rec := range records {
		row, err := normalizeTeamRankingSnapshot(kind, gender, snapshotDate, rec)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping ranking record", "kind", kind, "gender", gender, "error", err)
			continue
		}
		rows = append(rows, row)
	}
	s.logger.InfoContext(ctx, "ranking snapshot ingested", "kind", kind, "gender", gender, "count", len(rows))
	return s.repos.TeamRankings.UpsertMany(ctx, rows)
}

// coreTables must be non-empty after a run; an empty one means the run
// silently loaded nothing and must fail loudly.
var coreTables = []string{"raw_fivb_tournaments", "raw_fivb_teams", "raw_fivb_matches"}

func (s *PipelineService) verifyCoreTables(ctx context.Context) error {
	for _, table := range coreTables {
		count, err := s.repos.Maintenance.CountRows(ctx, table)
		if err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: core table %s is empty after ingestion", ErrNoData, table)
		}
	}
	return nil
}

func (s *PipelineService) logSummary(ctx context.Context, summary RunSummary) {
	for _, stage := range summary.Stages {
		s.logger.InfoContext(ctx, "stage timing", "stage", stage.Stage, "elapsed_ms", stage.ElapsedMS)
	}
	args := []any{
		"season", summary.Season,
		"tournaments", summary.TournamentCount,
		"failures", len(summary.Failures),
		"elapsed", summary.FinishedAt.Sub(summary.StartedAt).String(),
	}
	if summary.FatalError != nil {
		s.logger.ErrorContext(ctx, "ingestion run aborted", append(args, "error", summary.FatalError)...)
		return
	}
	s.logger.InfoContext(ctx, "ingestion run complete", args...)
}

// persistSummary appends the run to ingestion_runs. Persistence of the
// summary is best-effort and never masks the run's own outcome.
func (s *PipelineService) persistSummary(ctx context.Context, summary RunSummary) {
	if s.repos.Runs == nil {
		return
	}
	timings, err := sonic.MarshalString(summary.Stages)
	if err != nil {
		timings = "[]"
	}
	run := ingestrun.Run{
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
		Season:          summary.Season,
		TournamentCount: summary.TournamentCount,
		FailureCount:    len(summary.Failures),
		StageTimings:    timings,
	}
	if summary.FatalError != nil {
		text := summary.FatalError.Error()
		run.FatalError = &text
	}
	if err := s.repos.Runs.Insert(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "failed to persist run summary", "error", err)
	}
}
