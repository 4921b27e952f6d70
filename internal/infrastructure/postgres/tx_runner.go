package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// Ensure TxRunner implements importer.ImportTxRunner and usecase.UsageTxRunner.
var _ importer.ImportTxRunner = (*TxRunner)(nil)
var _ usecase.UsageTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport inicia la transacción del lote, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) RunImport(ctx context.Context, fn func(importer.ImportSession) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(&importSession{tx: tx})
	})
}

// RunUsage inicia una transacción con repos de edredones y uso (para Start/End).
func (r *TxRunner) RunUsage(ctx context.Context, fn func(
	quiltRepo repository.QuiltRepository,
	usageRepo repository.UsageRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewQuiltRepository(tx), NewUsageRepository(tx))
	})
}

type importSession struct {
	tx pgx.Tx
}

func (s *importSession) Quilts() repository.QuiltRepository { return NewQuiltRepository(s.tx) }
func (s *importSession) Usage() repository.UsageRepository  { return NewUsageRepository(s.tx) }

// Row ejecuta fn dentro de un savepoint (tx anidada de pgx). En PostgreSQL un error aborta
// la tx completa, así que cada fila necesita el suyo para que el lote pueda continuar.
func (s *importSession) Row(ctx context.Context, fn func() error) error {
	sp, err := s.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %w (tras %v)", rbErr, err)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
