package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
)

// MaxRecommendations recomendaciones devueltas por temporada.
const MaxRecommendations = 5

// daysNeverUsed días asumidos desde el último uso de un edredón sin historial.
const daysNeverUsed = 365

var (
	usageWeight   = decimal.NewFromFloat(0.4)
	recencyWeight = decimal.NewFromFloat(0.6)
	daysPerYear   = decimal.NewFromInt(365)
)

// RecommendationUseCase recomienda edredones disponibles para una temporada.
type RecommendationUseCase struct {
	quiltRepo repository.QuiltRepository
	usageRepo repository.UsageRepository
	now       func() time.Time
}

// NewRecommendationUseCase construye el caso de uso.
func NewRecommendationUseCase(quiltRepo repository.QuiltRepository, usageRepo repository.UsageRepository) *RecommendationUseCase {
	return &RecommendationUseCase{quiltRepo: quiltRepo, usageRepo: usageRepo, now: time.Now}
}

// WithClock reemplaza el reloj usado para calcular la antigüedad del último uso.
func (uc *RecommendationUseCase) WithClock(now func() time.Time) *RecommendationUseCase {
	uc.now = now
	return uc
}

// Recommend puntúa los edredones disponibles de la temporada:
// usos*0.4 + (365 - días desde el último uso)/365*0.6, redondeado a 2 decimales.
func (uc *RecommendationUseCase) Recommend(ctx context.Context, season string) (*dto.RecommendationsResponse, error) {
	s, err := parseSeason(season)
	if err != nil {
		return nil, err
	}
	return uc.recommend(ctx, s)
}

// RecommendCurrent recomendaciones para la temporada en curso.
func (uc *RecommendationUseCase) RecommendCurrent(ctx context.Context) (*dto.RecommendationsResponse, error) {
	return uc.recommend(ctx, quilt.CurrentSeason(uc.now()))
}

func (uc *RecommendationUseCase) recommend(ctx context.Context, season entity.Season) (*dto.RecommendationsResponse, error) {
	candidates, err := uc.quiltRepo.List(ctx, repository.QuiltFilter{
		Season: season,
		Status: entity.StatusAvailable,
	})
	if err != nil {
		return nil, err
	}

	today := dateOnly(uc.now())
	recs := make([]dto.RecommendationDTO, 0, len(candidates))
	for _, q := range candidates {
		periods, err := uc.usageRepo.ListPeriodsByQuilt(ctx, q.ID, 0)
		if err != nil {
			return nil, err
		}
		stats := summarize(periods)
		days := daysNeverUsed
		if stats.lastUsed != nil {
			days = int(today.Sub(*stats.lastUsed).Hours() / 24)
		}
		recs = append(recs, dto.RecommendationDTO{
			Quilt:               *toQuiltResponse(q),
			RecommendationScore: score(stats.count, days),
			Reason:              fmt.Sprintf("Usado %d veces, último uso hace %d días", stats.count, days),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendationScore.GreaterThan(recs[j].RecommendationScore)
	})
	total := len(recs)
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return &dto.RecommendationsResponse{
		Season:          string(season),
		Recommendations: recs,
		TotalAvailable:  total,
	}, nil
}

func score(usageCount, daysSince int) decimal.Decimal {
	usage := decimal.NewFromInt(int64(usageCount)).Mul(usageWeight)
	recency := daysPerYear.Sub(decimal.NewFromInt(int64(daysSince))).Div(daysPerYear).Mul(recencyWeight)
	return usage.Add(recency).Round(2)
}
