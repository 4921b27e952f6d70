package repository

import (
	"context"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
)

// UsageRepository define el puerto de persistencia para periodos de uso y usos en curso.
type UsageRepository interface {
	CreatePeriod(ctx context.Context, period *entity.UsagePeriod) error
	// ListPeriodsByQuilt devuelve los periodos más recientes primero; limit <= 0 devuelve todos.
	ListPeriodsByQuilt(ctx context.Context, quiltID string, limit int) ([]*entity.UsagePeriod, error)

	CreateCurrent(ctx context.Context, usage *entity.CurrentUsage) error
	GetCurrentByID(ctx context.Context, id string) (*entity.CurrentUsage, error)
	GetCurrentByQuilt(ctx context.Context, quiltID string) (*entity.CurrentUsage, error)
	ListCurrent(ctx context.Context) ([]*entity.CurrentUsage, error)
	DeleteCurrent(ctx context.Context, id string) error
}
