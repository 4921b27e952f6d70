package importer

import (
	"context"

	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// ImportSession sesión transaccional exclusiva de un lote. Los repositorios están atados
// a la transacción del lote: nada es durable hasta el commit final.
type ImportSession interface {
	Quilts() repository.QuiltRepository
	Usage() repository.UsageRepository
	// Row ejecuta fn dentro de un savepoint. Si fn falla se deshacen solo sus escrituras;
	// si termina bien, sus escrituras quedan visibles para las filas siguientes del lote.
	Row(ctx context.Context, fn func() error) error
}

// ImportTxRunner abre la transacción del lote, ejecuta fn y hace Commit, o Rollback si
// fn devuelve error o el propio Commit falla.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(s ImportSession) error) error
}
