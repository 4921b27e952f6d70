package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
	"github.com/jhoicas/quilts-api/internal/infrastructure/postgres"
	"github.com/jhoicas/quilts-api/pkg/config"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

// newTestPool conecta a QUILTS_TEST_DATABASE_URL; sin ella los tests de integración se omiten.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("QUILTS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("QUILTS_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{Driver: config.DriverPostgres, DatabaseURL: url})
	require.NoError(t, err)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE quilts CASCADE`)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func sheet(n int) importer.Sheet {
	rows := make([]importer.Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, importer.Row{
			importer.ColItemNumber:     fmt.Sprintf("%d", i),
			importer.ColSeason:         "春秋",
			importer.ColLocation:       "床下",
			importer.HistoryColumns[0]: "2024/03/01~2024/04/20",
		})
	}
	return importer.Sheet{Name: "Sheet1", Rows: rows}
}

// ─── Importación ─────────────────────────────────────────────────────────────

func TestImport_PostgresDuplicadoNoAbortaElLote(t *testing.T) {
	pool := newTestPool(t)
	uc := importer.NewImportUseCase(postgres.NewTxRunner(pool), logger.Nop())
	ctx := context.Background()

	s := sheet(4)
	s.Rows = append(s.Rows, importer.Row{importer.ColItemNumber: "2"}, importer.Row{importer.ColItemNumber: "9"})

	res, err := uc.Import(ctx, s, importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ImportedCount)
	assert.Equal(t, []int{2}, res.Duplicates)
	assert.Equal(t, 4, res.UsagePeriods)

	list, err := postgres.NewQuiltRepository(pool).List(ctx, repository.QuiltFilter{Season: entity.SeasonSpringAutumn})
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestImport_PostgresSimulacion(t *testing.T) {
	pool := newTestPool(t)
	uc := importer.NewImportUseCase(postgres.NewTxRunner(pool), logger.Nop())
	ctx := context.Background()

	res, err := uc.Import(ctx, sheet(3), importer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ImportedCount)

	list, err := postgres.NewQuiltRepository(pool).List(ctx, repository.QuiltFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ─── Ciclo de uso ────────────────────────────────────────────────────────────

func TestUsage_PostgresInicioYFin(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	_, err := importer.NewImportUseCase(postgres.NewTxRunner(pool), logger.Nop()).
		Import(ctx, sheet(1), importer.Options{})
	require.NoError(t, err)

	quilts := postgres.NewQuiltRepository(pool)
	usageRepo := postgres.NewUsageRepository(pool)
	q, err := quilts.GetByItemNumber(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, q)

	now := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	uc := usecase.NewUsageUseCase(postgres.NewTxRunner(pool), usageRepo, logger.Nop()).
		WithClock(func() time.Time { return now })

	started := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	cur, err := uc.Start(ctx, dto.StartUsageRequest{QuiltID: q.ID, StartedAt: &started})
	require.NoError(t, err)

	_, err = uc.Start(ctx, dto.StartUsageRequest{QuiltID: q.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	period, err := uc.End(ctx, dto.EndUsageRequest{UsageID: cur.ID})
	require.NoError(t, err)
	assert.Equal(t, 19, period.DurationDays)

	after, err := quilts.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAvailable, after.CurrentStatus)
}
