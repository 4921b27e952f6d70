package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

// DefaultHistoryLimit periodos devueltos por History si no se indica límite.
const DefaultHistoryLimit = 10

// UsageUseCase ciclo de vida del uso: empezar, terminar y consultar.
type UsageUseCase struct {
	tx        UsageTxRunner
	usageRepo repository.UsageRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewUsageUseCase construye el caso de uso. Las escrituras pasan por tx; las lecturas por usageRepo.
func NewUsageUseCase(tx UsageTxRunner, usageRepo repository.UsageRepository, log *logger.Logger) *UsageUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UsageUseCase{tx: tx, usageRepo: usageRepo, log: log, now: time.Now}
}

// WithClock reemplaza el reloj usado para las fechas por defecto.
func (uc *UsageUseCase) WithClock(now func() time.Time) *UsageUseCase {
	uc.now = now
	return uc
}

// Start registra el uso en curso de un edredón disponible y lo marca en uso.
func (uc *UsageUseCase) Start(ctx context.Context, in dto.StartUsageRequest) (*dto.CurrentUsageResponse, error) {
	now := uc.now()
	startedAt := dateOnly(now)
	if in.StartedAt != nil {
		startedAt = dateOnly(*in.StartedAt)
	}
	if in.ExpectedEndDate != nil && in.ExpectedEndDate.Before(startedAt) {
		return nil, fmt.Errorf("%w: fin previsto anterior al inicio", domain.ErrInvalidInput)
	}
	usageType := strings.TrimSpace(in.UsageType)
	if usageType == "" {
		usageType = entity.UsageTypeRegular
	}

	usage := &entity.CurrentUsage{
		ID:              uuid.New().String(),
		QuiltID:         in.QuiltID,
		StartedAt:       startedAt,
		ExpectedEndDate: in.ExpectedEndDate,
		UsageType:       usageType,
		Notes:           in.Notes,
		CreatedAt:       now,
	}
	err := uc.tx.RunUsage(ctx, func(quiltRepo repository.QuiltRepository, usageRepo repository.UsageRepository) error {
		q, err := quiltRepo.GetByID(ctx, in.QuiltID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.CurrentStatus != entity.StatusAvailable {
			return fmt.Errorf("%w: el edredón %d no está disponible (%s)", domain.ErrConflict, q.ItemNumber, q.CurrentStatus)
		}
		open, err := usageRepo.GetCurrentByQuilt(ctx, q.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return fmt.Errorf("%w: el edredón %d ya tiene un uso en curso", domain.ErrConflict, q.ItemNumber)
		}
		if err := usageRepo.CreateCurrent(ctx, usage); err != nil {
			return err
		}
		return quiltRepo.UpdateStatus(ctx, q.ID, entity.StatusInUse, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quilt_id", in.QuiltID).Str("usage_id", usage.ID).Msg("uso iniciado")
	return toCurrentUsageResponse(usage), nil
}

// End cierra un uso en curso: crea el periodo histórico, borra el uso y libera el edredón.
func (uc *UsageUseCase) End(ctx context.Context, in dto.EndUsageRequest) (*dto.UsagePeriodResponse, error) {
	now := uc.now()
	endDate := dateOnly(now)
	if in.EndDate != nil {
		endDate = dateOnly(*in.EndDate)
	}

	var period *entity.UsagePeriod
	err := uc.tx.RunUsage(ctx, func(quiltRepo repository.QuiltRepository, usageRepo repository.UsageRepository) error {
		current, err := usageRepo.GetCurrentByID(ctx, in.UsageID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if endDate.Before(current.StartedAt) {
			return fmt.Errorf("%w: la fecha de fin es anterior al inicio", domain.ErrInvalidInput)
		}

		notes := fmt.Sprintf("Uso terminado el %s", endDate.Format("2006-01-02"))
		if in.Notes != nil {
			notes = *in.Notes
		} else if current.Notes != nil {
			notes = *current.Notes
		}
		period = &entity.UsagePeriod{
			ID:         uuid.New().String(),
			QuiltID:    current.QuiltID,
			StartDate:  current.StartedAt,
			EndDate:    endDate,
			SeasonUsed: quilt.SeasonFromDate(current.StartedAt),
			Notes:      notes,
			CreatedAt:  now,
		}
		if err := usageRepo.CreatePeriod(ctx, period); err != nil {
			return err
		}
		if err := usageRepo.DeleteCurrent(ctx, current.ID); err != nil {
			return err
		}
		return quiltRepo.UpdateStatus(ctx, current.QuiltID, entity.StatusAvailable, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quilt_id", period.QuiltID).Int("days", period.DurationDays()).Msg("uso terminado")
	out := toUsagePeriodResponse(period)
	return &out, nil
}

// ListCurrent usos en curso, el más reciente primero.
func (uc *UsageUseCase) ListCurrent(ctx context.Context) ([]dto.CurrentUsageResponse, error) {
	list, err := uc.usageRepo.ListCurrent(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrentUsageResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toCurrentUsageResponse(u))
	}
	return out, nil
}

// History periodos de un edredón, el más reciente primero. limit <= 0 usa DefaultHistoryLimit.
func (uc *UsageUseCase) History(ctx context.Context, quiltID string, limit int) ([]dto.UsagePeriodResponse, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	list, err := uc.usageRepo.ListPeriodsByQuilt(ctx, quiltID, limit)
	if err != nil {
		return nil, err
	}
	return toUsagePeriodResponses(list), nil
}
