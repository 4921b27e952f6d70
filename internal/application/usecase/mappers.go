package usecase

import (
	"time"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
)

func toQuiltResponse(q *entity.Quilt) *dto.QuiltResponse {
	if q == nil {
		return nil
	}
	return &dto.QuiltResponse{
		ID:              q.ID,
		ItemNumber:      q.ItemNumber,
		GroupID:         q.GroupID,
		Name:            q.Name,
		Season:          string(q.Season),
		LengthCm:        q.LengthCm,
		WidthCm:         q.WidthCm,
		WeightGrams:     q.WeightGrams,
		FillMaterial:    q.FillMaterial,
		MaterialDetails: q.MaterialDetails,
		Color:           q.Color,
		Brand:           q.Brand,
		PurchaseDate:    q.PurchaseDate,
		Location:        q.Location,
		PackagingInfo:   q.PackagingInfo,
		CurrentStatus:   string(q.CurrentStatus),
		Notes:           q.Notes,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func toUsagePeriodResponse(p *entity.UsagePeriod) dto.UsagePeriodResponse {
	return dto.UsagePeriodResponse{
		ID:           p.ID,
		QuiltID:      p.QuiltID,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		SeasonUsed:   string(p.SeasonUsed),
		DurationDays: p.DurationDays(),
		Notes:        p.Notes,
	}
}

func toUsagePeriodResponses(periods []*entity.UsagePeriod) []dto.UsagePeriodResponse {
	out := make([]dto.UsagePeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, toUsagePeriodResponse(p))
	}
	return out
}

func toCurrentUsageResponse(u *entity.CurrentUsage) *dto.CurrentUsageResponse {
	if u == nil {
		return nil
	}
	return &dto.CurrentUsageResponse{
		ID:              u.ID,
		QuiltID:         u.QuiltID,
		StartedAt:       u.StartedAt,
		ExpectedEndDate: u.ExpectedEndDate,
		UsageType:       u.UsageType,
		Notes:           u.Notes,
	}
}

// usageStats agrega los periodos cerrados de un edredón.
type usageStats struct {
	count     int
	totalDays int
	lastUsed  *time.Time // inicio del periodo más reciente
}

func summarize(periods []*entity.UsagePeriod) usageStats {
	var s usageStats
	for _, p := range periods {
		s.count++
		s.totalDays += p.DurationDays()
		if s.lastUsed == nil || p.StartDate.After(*s.lastUsed) {
			start := p.StartDate
			s.lastUsed = &start
		}
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
