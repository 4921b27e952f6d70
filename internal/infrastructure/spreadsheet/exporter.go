package spreadsheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
)

// ExportSheetName nombre de la hoja exportada.
const ExportSheetName = "被子列表"

// Columnas de estadísticas añadidas tras las columnas de importación (se ignoran al reimportar).
const (
	ColUsageCount = "使用次数"
	ColUsageDays  = "总使用天数"
	ColLastUsed   = "最后使用"
	ColInUse      = "当前在用"
)

const periodLayout = "2006/01/02"

// ExportHeaders encabezados de la exportación, en orden.
func ExportHeaders() []string {
	headers := []string{
		importer.ColItemNumber, importer.ColGroup, importer.ColName, importer.ColSeason,
		importer.ColLength, importer.ColWidth, importer.ColWeight, importer.ColFillMaterial,
		importer.ColColor, importer.ColBrand, importer.ColPurchaseDate, importer.ColLocation,
		importer.ColPackaging, importer.ColNotes, importer.ColCurrentPeriod,
	}
	headers = append(headers, importer.HistoryColumns...)
	return append(headers, ColUsageCount, ColUsageDays, ColLastUsed, ColInUse)
}

// Export escribe el informe como xlsx con las mismas etiquetas que acepta la importación,
// de modo que el archivo pueda volver a importarse. Se conservan, como mucho, tantos
// periodos como columnas de historial haya (los más recientes).
func Export(w io.Writer, report *dto.UsageReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := ExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	headers := ExportHeaders()
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", h, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range report.Rows {
		values := exportRow(row)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row.Quilt.ItemNumber, err)
		}
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, columnWidth(h))
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func exportRow(row dto.QuiltReportRow) []any {
	q := row.Quilt
	fill := q.MaterialDetails
	if fill == "" {
		fill = q.FillMaterial
	}

	values := []any{
		q.ItemNumber,
		intOrEmpty(q.GroupID),
		q.Name,
		quilt.SeasonLabel(entity.Season(q.Season)),
		q.LengthCm,
		q.WidthCm,
		q.WeightGrams,
		fill,
		q.Color,
		textOrEmpty(q.Brand),
		dateOrEmpty(q.PurchaseDate),
		q.Location,
		textOrEmpty(q.PackagingInfo),
		textOrEmpty(q.Notes),
		currentPeriod(row.CurrentUsage),
	}
	for i := range importer.HistoryColumns {
		if i < len(row.Periods) {
			p := row.Periods[i]
			values = append(values, p.StartDate.Format(periodLayout)+quilt.PeriodSeparator+p.EndDate.Format(periodLayout))
		} else {
			values = append(values, "")
		}
	}
	inUse := "否"
	if row.CurrentUsage != nil {
		inUse = "是"
	}
	return append(values, row.UsageCount, row.TotalUsageDays, dateOrEmpty(row.LastUsedDate), inUse)
}

func currentPeriod(u *dto.CurrentUsageResponse) string {
	if u == nil {
		return ""
	}
	return u.StartedAt.Format(periodLayout) + quilt.PeriodSeparator
}

func columnWidth(header string) float64 {
	switch {
	case header == importer.ColName || header == importer.ColFillMaterial || header == importer.ColNotes:
		return 28
	case header == importer.ColCurrentPeriod || strings.HasPrefix(header, "上"):
		return 24
	default:
		return 12
	}
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func textOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(periodLayout)
}
