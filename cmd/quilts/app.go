package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
	"github.com/jhoicas/quilts-api/internal/infrastructure/postgres"
	"github.com/jhoicas/quilts-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/quilts-api/pkg/config"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

// app dependencias ya conectadas al almacenamiento elegido por DB_DRIVER.
type app struct {
	log    *logger.Logger
	cfg    *config.Config
	quilts repository.QuiltRepository
	usage  repository.UsageRepository

	importRunner importer.ImportTxRunner
	usageRunner  usecase.UsageTxRunner
	close        func()
}

// openApp abre la BD, aplica el esquema y construye los adaptadores.
func openApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{log: log, cfg: cfg}

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		runner := postgres.NewTxRunner(pool)
		a.quilts = postgres.NewQuiltRepository(pool)
		a.usage = postgres.NewUsageRepository(pool)
		a.importRunner, a.usageRunner = runner, runner
		a.close = pool.Close
	default:
		db, err := sqlite.Open(cfg.DB.Path)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite: %w", err)
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		runner := sqlite.NewTxRunner(db)
		a.quilts = sqlite.NewQuiltRepository(db)
		a.usage = sqlite.NewUsageRepository(db)
		a.importRunner, a.usageRunner = runner, runner
		a.close = func() { _ = db.Close() }
	}

	log.Debug().Str("driver", cfg.DB.Driver).Msg("almacenamiento listo")
	return a, nil
}

func (a *app) importUseCase() *importer.ImportUseCase {
	return importer.NewImportUseCase(a.importRunner, a.log)
}

func (a *app) quiltUseCase() *usecase.QuiltUseCase {
	return usecase.NewQuiltUseCase(a.quilts, a.usage)
}

func (a *app) usageUseCase() *usecase.UsageUseCase {
	return usecase.NewUsageUseCase(a.usageRunner, a.usage, a.log)
}

func (a *app) recommendationUseCase() *usecase.RecommendationUseCase {
	return usecase.NewRecommendationUseCase(a.quilts, a.usage)
}

func (a *app) reportUseCase() *usecase.ReportUseCase {
	return usecase.NewReportUseCase(a.quilts, a.usage)
}
