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
)

// QuiltUseCase casos de uso CRUD y búsqueda del catálogo de edredones.
type QuiltUseCase struct {
	repo      repository.QuiltRepository
	usageRepo repository.UsageRepository
}

// NewQuiltUseCase construye el caso de uso.
func NewQuiltUseCase(repo repository.QuiltRepository, usageRepo repository.UsageRepository) *QuiltUseCase {
	return &QuiltUseCase{repo: repo, usageRepo: usageRepo}
}

// Create registra un edredón. El número de item debe ser único.
func (uc *QuiltUseCase) Create(ctx context.Context, in dto.CreateQuiltRequest) (*dto.QuiltResponse, error) {
	if in.ItemNumber <= 0 {
		return nil, fmt.Errorf("%w: item_number debe ser positivo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByItemNumber(ctx, in.ItemNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	season := entity.SeasonWinter
	if in.Season != "" {
		if season, err = parseSeason(in.Season); err != nil {
			return nil, err
		}
	}
	status := entity.StatusAvailable
	if in.CurrentStatus != "" {
		if status, err = parseStatus(in.CurrentStatus); err != nil {
			return nil, err
		}
	}

	fill, details := in.FillMaterial, in.MaterialDetails
	if details == "" {
		fill, details = quilt.CleanMaterial(in.FillMaterial)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		brand := ""
		if in.Brand != nil {
			brand = *in.Brand
		}
		name = quilt.GenerateName(brand, quilt.SeasonLabel(season), in.FillMaterial)
	}

	now := time.Now()
	q := &entity.Quilt{
		ID:              uuid.New().String(),
		ItemNumber:      in.ItemNumber,
		GroupID:         in.GroupID,
		Name:            name,
		Season:          season,
		LengthCm:        positiveOr(in.LengthCm, quilt.DefaultLengthCm),
		WidthCm:         positiveOr(in.WidthCm, quilt.DefaultWidthCm),
		WeightGrams:     positiveOr(in.WeightGrams, quilt.DefaultWeightGrams),
		FillMaterial:    fill,
		MaterialDetails: details,
		Color:           textOr(in.Color, quilt.DefaultColor),
		Brand:           in.Brand,
		PurchaseDate:    in.PurchaseDate,
		Location:        textOr(in.Location, quilt.DefaultLocation),
		PackagingInfo:   in.PackagingInfo,
		CurrentStatus:   status,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return toQuiltResponse(q), nil
}

// GetByID obtiene un edredón por ID.
func (uc *QuiltUseCase) GetByID(ctx context.Context, id string) (*dto.QuiltResponse, error) {
	q, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuiltResponse(q), nil
}

// GetByItemNumber obtiene un edredón por su número de item.
func (uc *QuiltUseCase) GetByItemNumber(ctx context.Context, itemNumber int) (*dto.QuiltResponse, error) {
	q, err := uc.repo.GetByItemNumber(ctx, itemNumber)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: edredón %d", domain.ErrNotFound, itemNumber)
	}
	return toQuiltResponse(q), nil
}

// GetDetail devuelve el edredón con todos sus periodos, el uso en curso y los totales.
func (uc *QuiltUseCase) GetDetail(ctx context.Context, id string) (*dto.QuiltDetailResponse, error) {
	q, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	periods, err := uc.usageRepo.ListPeriodsByQuilt(ctx, q.ID, 0)
	if err != nil {
		return nil, err
	}
	current, err := uc.usageRepo.GetCurrentByQuilt(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	stats := summarize(periods)
	out := &dto.QuiltDetailResponse{
		QuiltResponse:  *toQuiltResponse(q),
		UsagePeriods:   toUsagePeriodResponses(periods),
		CurrentUsage:   toCurrentUsageResponse(current),
		TotalUsageDays: stats.totalDays,
		LastUsedDate:   stats.lastUsed,
	}
	return out, nil
}

// Update aplica una actualización parcial. El número de item no se modifica.
func (uc *QuiltUseCase) Update(ctx context.Context, id string, in dto.UpdateQuiltRequest) (*dto.QuiltResponse, error) {
	q, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Season != nil {
		if q.Season, err = parseSeason(*in.Season); err != nil {
			return nil, err
		}
	}
	if in.CurrentStatus != nil {
		if q.CurrentStatus, err = parseStatus(*in.CurrentStatus); err != nil {
			return nil, err
		}
	}
	if in.GroupID != nil {
		q.GroupID = in.GroupID
	}
	if in.Name != nil {
		q.Name = *in.Name
	}
	if in.LengthCm != nil {
		q.LengthCm = *in.LengthCm
	}
	if in.WidthCm != nil {
		q.WidthCm = *in.WidthCm
	}
	if in.WeightGrams != nil {
		q.WeightGrams = *in.WeightGrams
	}
	if in.FillMaterial != nil {
		q.FillMaterial = *in.FillMaterial
	}
	if in.MaterialDetails != nil {
		q.MaterialDetails = *in.MaterialDetails
	}
	if in.Color != nil {
		q.Color = *in.Color
	}
	if in.Brand != nil {
		q.Brand = in.Brand
	}
	if in.PurchaseDate != nil {
		q.PurchaseDate = in.PurchaseDate
	}
	if in.Location != nil {
		q.Location = *in.Location
	}
	if in.PackagingInfo != nil {
		q.PackagingInfo = in.PackagingInfo
	}
	if in.Notes != nil {
		q.Notes = in.Notes
	}
	q.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return toQuiltResponse(q), nil
}

// Delete elimina un edredón y, en cascada, su historial.
func (uc *QuiltUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista edredones con filtros, orden y paginación.
func (uc *QuiltUseCase) List(ctx context.Context, in dto.QuiltFilter) (*dto.QuiltListResponse, error) {
	in.DefaultPage()
	filter := repository.QuiltFilter{
		Location: strings.TrimSpace(in.Location),
		Search:   strings.TrimSpace(in.Search),
		SortBy:   in.SortBy,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Season != "" {
		season, err := parseSeason(in.Season)
		if err != nil {
			return nil, err
		}
		filter.Season = season
	}
	if in.Status != "" {
		status, err := parseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if in.SortBy != "" && !repository.ValidSortField(in.SortBy) {
		return nil, fmt.Errorf("%w: campo de orden %q", domain.ErrInvalidInput, in.SortBy)
	}
	switch strings.ToLower(in.SortOrder) {
	case "", "asc":
	case "desc":
		filter.SortDesc = true
	default:
		return nil, fmt.Errorf("%w: orden %q", domain.ErrInvalidInput, in.SortOrder)
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuiltResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuiltResponse(q))
	}
	return &dto.QuiltListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func (uc *QuiltUseCase) get(ctx context.Context, id string) (*entity.Quilt, error) {
	q, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

// parseSeason acepta el valor del enum o la etiqueta de la hoja ("冬", "春秋", "夏").
func parseSeason(raw string) (entity.Season, error) {
	season, ok := quilt.MapSeason(raw)
	if !ok {
		return "", fmt.Errorf("%w: temporada %q", domain.ErrInvalidInput, raw)
	}
	return season, nil
}

func parseStatus(raw string) (entity.Status, error) {
	status := entity.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, raw)
	}
	return status, nil
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func textOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
