package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuiltReportRow fila de la exportación a hoja de cálculo y del informe de uso.
type QuiltReportRow struct {
	Quilt           QuiltResponse
	Periods         []UsagePeriodResponse // más reciente primero
	UsageCount      int
	TotalUsageDays  int
	AverageDuration decimal.Decimal
	LastUsedDate    *time.Time
	CurrentUsage    *CurrentUsageResponse
}

// UsageReport informe de uso de todo el inventario.
type UsageReport struct {
	GeneratedAt time.Time
	Rows        []QuiltReportRow
}
