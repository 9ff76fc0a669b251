package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"

	poolengine "fundpool/contexts/pool-coordination/pool-engine"
	"fundpool/contexts/pool-coordination/pool-engine/adapters/broadcast"
	postgresadapter "fundpool/contexts/pool-coordination/pool-engine/adapters/postgres"
	poolworkers "fundpool/contexts/pool-coordination/pool-engine/application/workers"
	"fundpool/internal/platform/config"
	"fundpool/internal/platform/db"
	"fundpool/internal/platform/httpserver"
	"fundpool/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	cfg        config.Config
	postgres   *db.Postgres
	relay      poolworkers.OutboxRelay
	settlement poolworkers.SettlementJob
	logger     *slog.Logger
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

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		_ = pg.Close()
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	module := poolengine.NewModule(poolengine.Dependencies{
		Pool: repo,
		Transfers: &broadcast.Emitter{
			Publisher: kafka,
			Source:    cfg.ServiceName,
			Logger:    logger,
		},
		Clock:  postgresadapter.SystemClock{},
		IDGen:  postgresadapter.UUIDGenerator{},
		Source: cfg.ServiceName,
		Logger: logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
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
		_ = pg.Close()
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	commands := poolengine.NewModule(poolengine.Dependencies{
		Pool: repo,
		Transfers: &broadcast.Emitter{
			Publisher: kafka,
			Source:    cfg.ServiceName,
			Logger:    logger,
		},
		Clock:  postgresadapter.SystemClock{},
		IDGen:  postgresadapter.UUIDGenerator{},
		Source: cfg.ServiceName,
		Logger: logger,
	}).Commands

	return &WorkerApp{
		cfg:      cfg,
		postgres: pg,
		relay: poolworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		settlement: poolworkers.SettlementJob{
			Commands: commands,
			Logger:   logger,
		},
		logger: logger,
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
	scheduler := cron.New(cron.WithSeconds())

	if w.cfg.EnableOutboxRelay {
		if _, err := scheduler.AddFunc(w.cfg.OutboxRelayCron, func() {
			if err := w.relay.RunOnce(ctx); err != nil {
				w.logger.Error("outbox relay run failed",
					"event", "worker_outbox_relay_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}); err != nil {
			return err
		}
	}

	if w.cfg.EnableAutoSettlement {
		if _, err := scheduler.AddFunc(w.cfg.SettlementCron, func() {
			if err := w.settlement.RunOnce(ctx); err != nil {
				w.logger.Error("settlement run failed",
					"event", "worker_settlement_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}); err != nil {
			return err
		}
	}

	scheduler.Start()
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"outbox_relay", w.cfg.EnableOutboxRelay,
		"auto_settlement", w.cfg.EnableAutoSettlement,
	)

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	return nil
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
