package app

import (
	"context"
	"fmt"

	"github.com/skykauf/fivb-leaderboard/external/vis"
	"github.com/skykauf/fivb-leaderboard/internal/config"
	"github.com/skykauf/fivb-leaderboard/internal/infrastructure/repository/postgres"
	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
	"github.com/skykauf/fivb-leaderboard/internal/usecase"
)

// NewPipeline wires the config, store, VIS client and repositories into a
// ready-to-run pipeline. The returned cleanup closes the database pool.
func NewPipeline(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.PipelineService, func(), error) {
	db, err := OpenDB(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect store: %w", err)
	}
	cleanup := func() {
		_ = db.Close()
	}

	client := vis.NewClient(vis.ClientConfig{
		BaseURL: cfg.VISBaseURL,
		Timeout: cfg.VISTimeout,
		Logger:  logger,
	})

	repos := usecase.PipelineRepositories{
		Events:        postgres.NewEventRepository(db),
		Tournaments:   postgres.NewTournamentRepository(db),
		Results:       postgres.NewResultRepository(db),
		Teams:         postgres.NewTeamRepository(db),
		Players:       postgres.NewPlayerRepository(db),
		Matches:       postgres.NewMatchRepository(db),
		Rounds:        postgres.NewRoundRepository(db),
		RoundRankings: postgres.NewRoundRankingRepository(db),
		TeamRankings:  postgres.NewTeamRankingRepository(db),
		Runs:          postgres.NewIngestRunRepository(db),
		Maintenance:   postgres.NewMaintenanceRepository(db),
	}

	pipelineCfg := usecase.PipelineConfig{
		Season:                    cfg.Season,
		Parallel:                  cfg.Parallel,
		MaxWorkers:                cfg.MaxWorkers,
		MinExpandYear:             cfg.MinExpandYear,
		TruncateRaw:               cfg.TruncateRaw,
		LimitTournaments:          cfg.LimitTournaments,
		LimitMatchesPerTournament: cfg.LimitMatchesPerTournament,
		LimitResultsPerTournament: cfg.LimitResultsPerTournament,
		EventFirstStartDate:       cfg.EventFirstStartDate,
		EventLastStartDate:        cfg.EventLastStartDate,
	}

	return usecase.NewPipelineService(pipelineCfg, client, repos, logger), cleanup, nil
}
