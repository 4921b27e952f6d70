package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedQuilt(t *testing.T, store *memstore.Store, item int, season entity.Season, status entity.Status) *entity.Quilt {
	t.Helper()
	now := time.Now()
	q := &entity.Quilt{
		ID:            uuid.New().String(),
		ItemNumber:    item,
		Name:          "被子",
		Season:        season,
		LengthCm:      200,
		WidthCm:       150,
		WeightGrams:   2000,
		FillMaterial:  "棉",
		Color:         "白",
		Location:      "衣柜",
		CurrentStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Quilts().Create(context.Background(), q))
	return q
}

func seedPeriod(t *testing.T, store *memstore.Store, quiltID string, start, end time.Time) {
	t.Helper()
	require.NoError(t, store.Usage().CreatePeriod(context.Background(), &entity.UsagePeriod{
		ID:         uuid.New().String(),
		QuiltID:    quiltID,
		StartDate:  start,
		EndDate:    end,
		SeasonUsed: entity.SeasonWinter,
		CreatedAt:  time.Now(),
	}))
}
