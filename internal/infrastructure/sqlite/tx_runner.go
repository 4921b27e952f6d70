package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

var (
	_ importer.ImportTxRunner = (*TxRunner)(nil)
	_ usecase.UsageTxRunner   = (*TxRunner)(nil)
)

const rowSavepoint = "import_row"

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport abre la transacción del lote; cada fila corre en su propio savepoint.
func (r *TxRunner) RunImport(ctx context.Context, fn func(importer.ImportSession) error) error {
	return r.run(ctx, func(tx *sql.Tx) error {
		return fn(&importSession{tx: tx})
	})
}

// RunUsage ejecuta fn con repositorios de edredones y uso atados a la misma tx.
func (r *TxRunner) RunUsage(ctx context.Context, fn func(
	quiltRepo repository.QuiltRepository,
	usageRepo repository.UsageRepository,
) error) error {
	return r.run(ctx, func(tx *sql.Tx) error {
		return fn(NewQuiltRepository(tx), NewUsageRepository(tx))
	})
}

type importSession struct {
	tx *sql.Tx
}

func (s *importSession) Quilts() repository.QuiltRepository { return NewQuiltRepository(s.tx) }
func (s *importSession) Usage() repository.UsageRepository  { return NewUsageRepository(s.tx) }

// Row envuelve fn en SAVEPOINT; ante error vuelve al savepoint y lo libera, sin tocar las filas previas.
func (s *importSession) Row(ctx context.Context, fn func() error) error {
	if _, err := s.tx.ExecContext(ctx, "SAVEPOINT "+rowSavepoint); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(); err != nil {
		if _, rbErr := s.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+rowSavepoint); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %w (tras %v)", rbErr, err)
		}
		if _, relErr := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+rowSavepoint); relErr != nil {
			return fmt.Errorf("release savepoint: %w (tras %v)", relErr, err)
		}
		return err
	}
	if _, err := s.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+rowSavepoint); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}
