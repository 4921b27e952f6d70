package usecase

import (
	"context"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// UsageTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el uso en curso, el periodo y el estado del edredón cambien juntos.
type UsageTxRunner interface {
	RunUsage(ctx context.Context, fn func(
		quiltRepo repository.QuiltRepository,
		usageRepo repository.UsageRepository,
	) error) error
}

// UsageReportPDFGenerator genera la representación PDF del informe de uso.
type UsageReportPDFGenerator interface {
	Generate(ctx context.Context, report *dto.UsageReport) ([]byte, error)
}
