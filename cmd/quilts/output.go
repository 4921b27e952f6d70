package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/quilts-api/internal/application/dto"
)

const dateLayout = "2006-01-02"

// print escribe v como JSON con --json; si no, delega en la tabla legible.
func (c *cli) print(cmd *cobra.Command, v any, table func(p *printer)) error {
	out := cmd.OutOrStdout()
	if c.opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	p := &printer{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	table(p)
	return p.w.Flush()
}

type printer struct {
	w *tabwriter.Writer
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) importResult(res *dto.ImportResult) {
	mode := "importación"
	if res.DryRun {
		mode = "simulación (sin cambios)"
	}
	p.line("Modo:\t%s", mode)
	p.line("Filas:\t%d", res.TotalRows)
	p.line("Importados:\t%d", res.ImportedCount)
	p.line("Omitidos:\t%d", res.SkippedCount)
	p.line("Duplicados:\t%d", len(res.Duplicates))
	p.line("Periodos de uso:\t%d", res.UsagePeriods)
	p.line("Usos en curso:\t%d", res.CurrentUsages)
	p.line("Fechas no reconocidas:\t%d", res.UnparsedDates)
	list(p.w, "Filas omitidas", res.SkippedRows)
	list(p.w, "Avisos", res.Warnings)
}

func list(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, s := range items {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func (p *printer) quilts(items []dto.QuiltResponse) {
	p.line("N°\tNOMBRE\tTEMPORADA\tESTADO\tPESO (g)\tUBICACIÓN\tID")
	for _, q := range items {
		p.line("%d\t%s\t%s\t%s\t%d\t%s\t%s", q.ItemNumber, q.Name, q.Season, q.CurrentStatus, q.WeightGrams, q.Location, q.ID)
	}
}

func (p *printer) detail(d *dto.QuiltDetailResponse) {
	p.line("N°:\t%d", d.ItemNumber)
	p.line("Nombre:\t%s", d.Name)
	p.line("Temporada:\t%s", d.Season)
	p.line("Estado:\t%s", d.CurrentStatus)
	p.line("Medidas:\t%dx%d cm, %d g", d.LengthCm, d.WidthCm, d.WeightGrams)
	p.line("Relleno:\t%s (%s)", d.FillMaterial, d.MaterialDetails)
	p.line("Color:\t%s", d.Color)
	p.line("Marca:\t%s", deref(d.Brand))
	p.line("Compra:\t%s", formatDate(d.PurchaseDate))
	p.line("Ubicación:\t%s", d.Location)
	p.line("Días de uso:\t%d", d.TotalUsageDays)
	p.line("Último uso:\t%s", formatDate(d.LastUsedDate))
	if d.CurrentUsage != nil {
		p.line("En uso desde:\t%s (%s)", d.CurrentUsage.StartedAt.Format(dateLayout), d.CurrentUsage.ID)
	}
	if len(d.UsagePeriods) > 0 {
		p.line("")
		p.periods(d.UsagePeriods)
	}
}

func (p *printer) periods(items []dto.UsagePeriodResponse) {
	p.line("INICIO\tFIN\tDÍAS\tTEMPORADA\tNOTAS")
	for _, u := range items {
		p.line("%s\t%s\t%d\t%s\t%s", u.StartDate.Format(dateLayout), u.EndDate.Format(dateLayout), u.DurationDays, u.SeasonUsed, u.Notes)
	}
}

func (p *printer) currentUsages(items []dto.CurrentUsageResponse) {
	p.line("USO\tEDREDÓN\tDESDE\tFIN PREVISTO\tTIPO")
	for _, u := range items {
		p.line("%s\t%s\t%s\t%s\t%s", u.ID, u.QuiltID, u.StartedAt.Format(dateLayout), formatDate(u.ExpectedEndDate), u.UsageType)
	}
}

func (p *printer) recommendations(r *dto.RecommendationsResponse) {
	p.line("Temporada:\t%s (%d disponibles)", r.Season, r.TotalAvailable)
	p.line("N°\tNOMBRE\tPUNTUACIÓN\tMOTIVO")
	for _, rec := range r.Recommendations {
		p.line("%d\t%s\t%s\t%s", rec.Quilt.ItemNumber, rec.Quilt.Name, rec.RecommendationScore.StringFixed(2), rec.Reason)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
