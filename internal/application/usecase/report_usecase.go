package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// ReportUseCase reúne el inventario con sus estadísticas de uso para exportar o imprimir.
type ReportUseCase struct {
	quiltRepo repository.QuiltRepository
	usageRepo repository.UsageRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(quiltRepo repository.QuiltRepository, usageRepo repository.UsageRepository) *ReportUseCase {
	return &ReportUseCase{quiltRepo: quiltRepo, usageRepo: usageRepo}
}

// Build devuelve una fila por edredón, ordenadas por número de item.
func (uc *ReportUseCase) Build(ctx context.Context) (*dto.UsageReport, error) {
	quilts, err := uc.quiltRepo.List(ctx, repository.QuiltFilter{SortBy: "item_number"})
	if err != nil {
		return nil, err
	}
	report := &dto.UsageReport{
		GeneratedAt: time.Now(),
		Rows:        make([]dto.QuiltReportRow, 0, len(quilts)),
	}
	for _, q := range quilts {
		periods, err := uc.usageRepo.ListPeriodsByQuilt(ctx, q.ID, 0)
		if err != nil {
			return nil, err
		}
		current, err := uc.usageRepo.GetCurrentByQuilt(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		stats := summarize(periods)
		avg := decimal.Zero
		if stats.count > 0 {
			avg = decimal.NewFromInt(int64(stats.totalDays)).Div(decimal.NewFromInt(int64(stats.count))).Round(1)
		}
		report.Rows = append(report.Rows, dto.QuiltReportRow{
			Quilt:           *toQuiltResponse(q),
			Periods:         toUsagePeriodResponses(periods),
			UsageCount:      stats.count,
			TotalUsageDays:  stats.totalDays,
			AverageDuration: avg,
			LastUsedDate:    stats.lastUsed,
			CurrentUsage:    toCurrentUsageResponse(current),
		})
	}
	return report, nil
}

// BuildPDF construye el informe y lo entrega al generador PDF.
func (uc *ReportUseCase) BuildPDF(ctx context.Context, gen UsageReportPDFGenerator) ([]byte, error) {
	report, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, report)
}
