// Package pdf genera el informe de uso del inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  RESUMEN: edredones / en uso / usos / días totales           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Nombre | Temporada | Estado | Usos | Días | Último │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
)

var _ usecase.UsageReportPDFGenerator = (*UsageReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 242, Green: 245, Blue: 250}
)

var seasonLabels = map[entity.Season]string{
	entity.SeasonWinter:       "Invierno",
	entity.SeasonSpringAutumn: "Primavera/Otoño",
	entity.SeasonSummer:       "Verano",
}

var statusLabels = map[entity.Status]string{
	entity.StatusAvailable:   "Disponible",
	entity.StatusInUse:       "En uso",
	entity.StatusMaintenance: "Mantenimiento",
	entity.StatusStorage:     "Guardado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// UsageReportGenerator implementa usecase.UsageReportPDFGenerator usando Maroto v2.
type UsageReportGenerator struct{}

// NewUsageReportGenerator construye el generador.
func NewUsageReportGenerator() *UsageReportGenerator { return &UsageReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *UsageReportGenerator) Generate(_ context.Context, report *dto.UsageReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de uso de edredones", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *dto.UsageReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("INFORME DE USO DE EDREDONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// summaryRow totales del inventario.
func summaryRow(report *dto.UsageReport) core.Row {
	var inUse, uses, days int
	for _, r := range report.Rows {
		if r.CurrentUsage != nil {
			inUse++
		}
		uses += r.UsageCount
		days += r.TotalUsageDays
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Edredones: %d   |   En uso: %d   |   Usos registrados: %d   |   Días de uso: %d",
				len(report.Rows), inUse, uses, days,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Nombre", 4, align.Left),
		h("Temporada", 2, align.Left),
		h("Estado", 2, align.Left),
		h("Usos", 1, align.Center),
		h("Días", 1, align.Center),
		h("Último uso", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows una fila por edredón, con franjas alternas.
func tableRows(rows []dto.QuiltReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		last := "-"
		if r.LastUsedDate != nil {
			last = r.LastUsedDate.Format("02/01/2006")
		}
		tr := row.New(7).Add(
			cell(strconv.Itoa(r.Quilt.ItemNumber), 1, align.Center),
			cell(r.Quilt.Name, 4, align.Left),
			cell(label(seasonLabels, entity.Season(r.Quilt.Season)), 2, align.Left),
			cell(label(statusLabels, entity.Status(r.Quilt.CurrentStatus)), 2, align.Left),
			cell(strconv.Itoa(r.UsageCount), 1, align.Center),
			cell(strconv.Itoa(r.TotalUsageDays), 1, align.Center),
			cell(last, 1, align.Right),
		)
		if i%2 == 1 {
			tr = tr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, tr)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func label[K ~string](labels map[K]string, k K) string {
	if s, ok := labels[k]; ok {
		return s
	}
	return string(k)
}
