package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/claimsight/internal/config"
	"github.com/dmarchuk/claimsight/internal/core/ports"
	"github.com/dmarchuk/claimsight/internal/core/usecase"
	"github.com/dmarchuk/claimsight/internal/infrastructure/memstore"
	"github.com/dmarchuk/claimsight/internal/infrastructure/resilience"
	"github.com/dmarchuk/claimsight/internal/infrastructure/simulate"
	"github.com/dmarchuk/claimsight/internal/observability/metrics"
	"github.com/dmarchuk/claimsight/internal/provider"
)

const serviceName = "api"

type App struct {
	Config config.Config

	Intake ports.DocumentIntake
	Runner ports.DecisionRunner
	Trail  ports.AuditReader
	Stats  ports.StatsReader

	Data           *provider.Provider
	ServiceMetrics *metrics.ServiceMetrics
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	store := memstore.NewSeeded()
	latency := simulate.New(simulate.Config{
		Upload:     time.Duration(cfg.UploadLatencyMS) * time.Millisecond,
		Extract:    time.Duration(cfg.ExtractLatencyMS) * time.Millisecond,
		List:       time.Duration(cfg.ListLatencyMS) * time.Millisecond,
		Reindex:    time.Duration(cfg.ReindexLatencyMS) * time.Millisecond,
		Query:      time.Duration(cfg.QueryLatencyMS) * time.Millisecond,
		Audit:      time.Duration(cfg.AuditLatencyMS) * time.Millisecond,
		Stats:      time.Duration(cfg.StatsLatencyMS) * time.Millisecond,
		StageDelay: time.Duration(cfg.StageDelayMS) * time.Millisecond,
	})

	intakeUC := usecase.NewIntakeUseCase(store, store, latency)
	decideUC := usecase.NewDecideUseCase(store, latency)
	trailUC := usecase.NewAuditTrailUseCase(store, latency)
	statsUC := usecase.NewStatsUseCase(store, store, store, latency, cfg.ReportedAvgLatencyMS)

	serviceMetrics := metrics.NewServiceMetrics(serviceName)
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	data := provider.New(
		provider.Config{
			Service:         serviceName,
			StageDelay:      latency.StageDelay(),
			ClauseCacheSize: cfg.ClauseCacheSize,
			ClauseCacheTTL:  time.Duration(cfg.ClauseCacheTTLSeconds) * time.Second,
		},
		intakeUC,
		decideUC,
		trailUC,
		statsUC,
		executor,
		serviceMetrics,
	)
	if err := data.Warm(ctx); err != nil {
		return nil, fmt.Errorf("warm data provider: %w", err)
	}

	return &App{
		Config: cfg,

		Intake: intakeUC,
		Runner: decideUC,
		Trail:  trailUC,
		Stats:  statsUC,

		Data:           data,
		ServiceMetrics: serviceMetrics,
	}, nil
}
