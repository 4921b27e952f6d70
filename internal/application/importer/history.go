package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// Notas guardadas en los periodos creados por la importación.
const (
	NoteCurrentPeriod = "Periodo de uso actual desde Excel"
	noteHistoryFormat = "Uso histórico (%s)"
)

// historyOutcome contabilidad del historial de una fila.
type historyOutcome struct {
	periods  int
	current  int
	unparsed int
	warnings []string
}

// importUsageHistory crea el uso en curso o el periodo cerrado de la columna actual y los
// periodos completos de las columnas históricas. Entradas parciales o ilegibles se ignoran;
// rangos invertidos no se guardan y se reportan como advertencia.
func (uc *ImportUseCase) importUsageHistory(ctx context.Context, repo repository.UsageRepository, n int, row Row, quiltID string) (historyOutcome, error) {
	var out historyOutcome
	now := uc.now()

	if raw := row[ColCurrentPeriod]; !quilt.IsBlank(raw) {
		p := quilt.ParseUsagePeriod(raw)
		out.unparsed += p.Unparsed
		switch {
		case p.Start != nil && p.End == nil && p.Open:
			usage := &entity.CurrentUsage{
				ID:        uuid.New().String(),
				QuiltID:   quiltID,
				StartedAt: *p.Start,
				UsageType: entity.UsageTypeRegular,
				CreatedAt: now,
			}
			if err := repo.CreateCurrent(ctx, usage); err != nil {
				return out, err
			}
			out.current++
		case p.Inverted():
			out.warnings = append(out.warnings, invertedWarning(n, ColCurrentPeriod, p))
		case p.Complete():
			if err := createPeriod(ctx, repo, quiltID, p, NoteCurrentPeriod, now); err != nil {
				return out, err
			}
			out.periods++
		}
	}

	for _, col := range HistoryColumns {
		raw := row[col]
		if quilt.IsBlank(raw) {
			continue
		}
		p := quilt.ParseUsagePeriod(raw)
		out.unparsed += p.Unparsed
		if !p.Complete() {
			uc.log.Debug().Int("row", n).Str("column", col).Str("value", raw).Msg("periodo histórico incompleto, se ignora")
			continue
		}
		if p.Inverted() {
			out.warnings = append(out.warnings, invertedWarning(n, col, p))
			continue
		}
		if err := createPeriod(ctx, repo, quiltID, p, fmt.Sprintf(noteHistoryFormat, col), now); err != nil {
			return out, err
		}
		out.periods++
	}
	return out, nil
}

func createPeriod(ctx context.Context, repo repository.UsageRepository, quiltID string, p quilt.Period, note string, now time.Time) error {
	return repo.CreatePeriod(ctx, &entity.UsagePeriod{
		ID:         uuid.New().String(),
		QuiltID:    quiltID,
		StartDate:  *p.Start,
		EndDate:    *p.End,
		SeasonUsed: quilt.SeasonFromDate(*p.Start),
		Notes:      note,
		CreatedAt:  now,
	})
}

func invertedWarning(n int, col string, p quilt.Period) string {
	return rowMessage(n, fmt.Sprintf("%s: la fecha de fin %s es anterior al inicio %s",
		col, p.End.Format(dateLayout), p.Start.Format(dateLayout)))
}

const dateLayout = "2006-01-02"
