package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	criteriaregistry "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry"
	criteriapostgres "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/adapters/postgres"
	criteriaapplication "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/application"
	judgingengine "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine"
	judgingpostgres "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/adapters/postgres"
	judgingports "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
	winnerworkflow "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow"
	winnerpostgres "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/postgres"
	winnerworkers "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/workers"
	"github.com/maximally0/maximally-main-website-sub004/internal/platform/config"
	"github.com/maximally0/maximally-main-website-sub004/internal/platform/db"
	"github.com/maximally0/maximally-main-website-sub004/internal/platform/httpserver"
	"github.com/maximally0/maximally-main-website-sub004/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  winnerworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

// criteriaProvider bridges the judging engine's read port onto the
// criteria registry service. Cross-module calls go through this adapter,
// never through direct imports between the two services.
type criteriaProvider struct {
	service criteriaapplication.Service
}

func (p criteriaProvider) ListCriteria(ctx context.Context, eventID string) ([]judgingports.CriterionView, error) {
	criteria, err := p.service.ListCriteria(ctx, eventID)
	if err != nil {
		return nil, err
	}
	views := make([]judgingports.CriterionView, 0, len(criteria))
	for _, criterion := range criteria {
		views = append(views, judgingports.CriterionView{
			CriterionID:  criterion.CriterionID,
			EventID:      criterion.EventID,
			Name:         criterion.Name,
			Weight:       criterion.Weight,
			DisplayOrder: criterion.DisplayOrder,
		})
	}
	return views, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	criteriaRepo := criteriapostgres.NewRepository(pg.DB, logger)
	criteriaModule := criteriaregistry.NewModule(criteriaregistry.Dependencies{
		Criteria: criteriaRepo,
		Clock:    criteriapostgres.SystemClock{},
		IDGen:    criteriapostgres.UUIDGenerator{},
		Logger:   logger,
	})

	judgingRepo := judgingpostgres.NewRepository(pg.DB, logger)
	judgingModule := judgingengine.NewModule(judgingengine.Dependencies{
		Ratings:     judgingRepo,
		Submissions: judgingRepo,
		Assignments: judgingRepo,
		Criteria:    criteriaProvider{service: criteriaModule.Service},
		Clock:       judgingpostgres.SystemClock{},
		IDGen:       judgingpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	winnerRepo := winnerpostgres.NewRepository(pg.DB, logger)
	winnerModule := winnerworkflow.NewModule(winnerworkflow.Dependencies{
		Winners:     winnerRepo,
		Events:      winnerRepo,
		Submissions: winnerRepo,
		Outbox:      winnerRepo,
		Clock:       winnerpostgres.SystemClock{},
		IDGen:       winnerpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(criteriaModule, judgingModule, winnerModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	winnerRepo := winnerpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: winnerworkflow.NewOutboxRelay(
			winnerRepo,
			kafka,
			winnerpostgres.SystemClock{},
			100,
			logger,
		),
		relayEnabled: cfg.EnableWinnerOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"relay_enabled", w.relayEnabled,
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
