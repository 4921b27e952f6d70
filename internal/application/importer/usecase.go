// Package importer convierte la hoja de inventario del hogar en edredones y su historial
// de uso, fila por fila y dentro de una única transacción.
package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

// errDryRun fuerza el Rollback del lote en modo simulación.
var errDryRun = errors.New("importación simulada")

// errMissingItemNumber fila sin número de item.
var errMissingItemNumber = errors.New("falta el número de item")

// Options ajustes de una ejecución.
type Options struct {
	// DryRun procesa el lote completo y descarta los cambios al final.
	DryRun bool
}

// ImportUseCase orquesta la importación por lotes.
type ImportUseCase struct {
	runner ImportTxRunner
	log    *logger.Logger
	now    func() time.Time
}

// NewImportUseCase construye el caso de uso con el runner transaccional del almacenamiento.
func NewImportUseCase(runner ImportTxRunner, log *logger.Logger) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{runner: runner, log: log, now: time.Now}
}

// Import procesa las filas en orden de origen. Un fallo de fila se registra y no detiene
// el lote; un fallo del commit deshace todo y se devuelve sin contabilidad parcial.
func (uc *ImportUseCase) Import(ctx context.Context, sheet Sheet, opts Options) (*dto.ImportResult, error) {
	uc.log.Info().
		Str("sheet", sheet.Name).
		Int("rows", len(sheet.Rows)).
		Bool("dry_run", opts.DryRun).
		Msg("iniciando importación")

	var result *dto.ImportResult
	err := uc.runner.RunImport(ctx, func(s ImportSession) error {
		result = dto.NewImportResult(len(sheet.Rows))
		result.DryRun = opts.DryRun
		for i, row := range sheet.Rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			uc.importRow(ctx, s, i+1, row, result)
		}
		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		uc.log.Error().Err(err).Msg("importación revertida")
		return nil, fmt.Errorf("import: %w", err)
	}

	uc.log.Info().
		Int("imported", result.ImportedCount).
		Int("skipped", result.SkippedCount).
		Int("total", result.TotalRows).
		Msg("importación finalizada")
	return result, nil
}

// rowOutcome lo que una fila aporta al resultado si su savepoint se confirma.
type rowOutcome struct {
	duplicate bool
	history   historyOutcome
	warnings  []string
	unparsed  int
}

func (uc *ImportUseCase) importRow(ctx context.Context, s ImportSession, n int, row Row, res *dto.ImportResult) {
	log := uc.log.With().Int("row", n).Logger()

	q, out, err := uc.buildQuilt(n, row)
	if err != nil {
		res.SkippedRows = append(res.SkippedRows, rowMessage(n, err.Error()))
		res.SkippedCount++
		log.Warn().Err(err).Msg("fila omitida")
		return
	}

	err = s.Row(ctx, func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("error inesperado: %v", r)
			}
		}()

		existing, err := s.Quilts().GetByItemNumber(ctx, q.ItemNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			out.duplicate = true
			return nil
		}
		if err := s.Quilts().Create(ctx, q); err != nil {
			return err
		}
		out.history, err = uc.importUsageHistory(ctx, s.Usage(), n, row, q.ID)
		return err
	})
	if err != nil {
		res.SkippedRows = append(res.SkippedRows, rowMessage(n, err.Error()))
		res.SkippedCount++
		log.Error().Err(err).Int("item_number", q.ItemNumber).Msg("error importando fila")
		return
	}

	if out.duplicate {
		res.Duplicates = append(res.Duplicates, q.ItemNumber)
		res.SkippedRows = append(res.SkippedRows, rowMessage(n, fmt.Sprintf("el número de item %d ya existe", q.ItemNumber)))
		res.SkippedCount++
		log.Info().Int("item_number", q.ItemNumber).Msg("item ya existe, se omite")
		return
	}

	res.ImportedItems = append(res.ImportedItems, q.ItemNumber)
	res.ImportedCount++
	res.UsagePeriods += out.history.periods
	res.CurrentUsages += out.history.current
	res.UnparsedDates += out.unparsed + out.history.unparsed
	res.Warnings = append(res.Warnings, out.warnings...)
	res.Warnings = append(res.Warnings, out.history.warnings...)
	log.Info().Int("item_number", q.ItemNumber).Str("name", q.Name).Msg("edredón importado")
}

// buildQuilt valida y convierte los campos de la fila. Los errores hacen omitir la fila.
func (uc *ImportUseCase) buildQuilt(n int, row Row) (*entity.Quilt, rowOutcome, error) {
	var out rowOutcome

	itemNumber, ok, err := parseInt(row[ColItemNumber])
	if err != nil {
		return nil, out, fmt.Errorf("%s: %w", ColItemNumber, err)
	}
	if !ok || itemNumber == 0 {
		return nil, out, errMissingItemNumber
	}

	var groupID *int
	if g, ok, err := parseInt(row[ColGroup]); err != nil {
		return nil, out, fmt.Errorf("%s: %w", ColGroup, err)
	} else if ok {
		groupID = &g
	}

	length, err := intOrDefault(row, ColLength, quilt.DefaultLengthCm)
	if err != nil {
		return nil, out, err
	}
	width, err := intOrDefault(row, ColWidth, quilt.DefaultWidthCm)
	if err != nil {
		return nil, out, err
	}
	weight, err := intOrDefault(row, ColWeight, quilt.DefaultWeightGrams)
	if err != nil {
		return nil, out, err
	}

	seasonRaw := strings.TrimSpace(row[ColSeason])
	season, _ := quilt.MapSeason(seasonRaw)
	fill, details := quilt.CleanMaterial(row[ColFillMaterial])

	var purchaseDate *time.Time
	if raw := row[ColPurchaseDate]; !quilt.IsBlank(raw) {
		if d, ok := quilt.ParseDate(raw); ok {
			purchaseDate = &d
		} else {
			out.unparsed++
			out.warnings = append(out.warnings, rowMessage(n, fmt.Sprintf("%s: fecha no reconocida %q", ColPurchaseDate, strings.TrimSpace(raw))))
			uc.log.Debug().Int("row", n).Str("value", raw).Msg("fecha de compra no reconocida")
		}
	}

	locationRaw := strings.TrimSpace(row[ColLocation])
	location := textOrDefault(locationRaw, quilt.DefaultLocation)

	name := strings.TrimSpace(row[ColName])
	if quilt.IsBlank(name) {
		name = quilt.GenerateName(row[ColBrand], seasonRaw, row[ColFillMaterial])
	}

	now := uc.now()
	return &entity.Quilt{
		ID:              uuid.New().String(),
		ItemNumber:      itemNumber,
		GroupID:         groupID,
		Name:            name,
		Season:          season,
		LengthCm:        length,
		WidthCm:         width,
		WeightGrams:     weight,
		FillMaterial:    fill,
		MaterialDetails: details,
		Color:           textOrDefault(row[ColColor], quilt.DefaultColor),
		Brand:           optionalText(row[ColBrand]),
		PurchaseDate:    purchaseDate,
		Location:        location,
		PackagingInfo:   optionalText(row[ColPackaging]),
		CurrentStatus:   quilt.ClassifyStatus(locationRaw),
		Notes:           optionalText(row[ColNotes]),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, out, nil
}

func rowMessage(n int, msg string) string {
	return fmt.Sprintf("Fila %d: %s", n, msg)
}

// parseInt acepta "12", "12.0" y "1,200"; trunca decimales. ok=false si la celda está vacía.
func parseInt(raw string) (int, bool, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if quilt.IsBlank(s) {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, false, fmt.Errorf("valor numérico inválido %q", strings.TrimSpace(raw))
	}
	return int(f), true, nil
}

func intOrDefault(row Row, col string, def int) (int, error) {
	v, ok, err := parseInt(row[col])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func textOrDefault(raw, def string) string {
	if quilt.IsBlank(raw) {
		return def
	}
	return strings.TrimSpace(raw)
}

func optionalText(raw string) *string {
	if quilt.IsBlank(raw) {
		return nil
	}
	s := strings.TrimSpace(raw)
	return &s
}
