package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/domain"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/repository"
	"github.com/jhoicas/quilts-api/internal/infrastructure/sqlite"
)

func newQuilt(item int, season entity.Season) *entity.Quilt {
	now := time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)
	return &entity.Quilt{
		ID:            uuid.New().String(),
		ItemNumber:    item,
		Name:          "棉 罗莱 冬被",
		Season:        season,
		LengthCm:      200,
		WidthCm:       230,
		WeightGrams:   2500,
		FillMaterial:  "棉",
		Color:         "白",
		Location:      "衣柜",
		CurrentStatus: entity.StatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestQuiltRepo_CreateYGet(t *testing.T) {
	db := sqlite.NewTestDB(t)
	repo := sqlite.NewQuiltRepository(db)
	ctx := context.Background()

	q := newQuilt(1, entity.SeasonWinter)
	group := 2
	brand := "罗莱"
	bought := time.Date(2020, time.October, 3, 0, 0, 0, 0, time.UTC)
	q.GroupID, q.Brand, q.PurchaseDate = &group, &brand, &bought
	require.NoError(t, repo.Create(ctx, q))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, q.ItemNumber, got.ItemNumber)
	assert.Equal(t, entity.SeasonWinter, got.Season)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, 2, *got.GroupID)
	require.NotNil(t, got.Brand)
	assert.Equal(t, "罗莱", *got.Brand)
	require.NotNil(t, got.PurchaseDate)
	assert.True(t, bought.Equal(*got.PurchaseDate))
	assert.Nil(t, got.Notes)
	assert.True(t, q.CreatedAt.Equal(got.CreatedAt))

	byItem, err := repo.GetByItemNumber(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, byItem)
	assert.Equal(t, q.ID, byItem.ID)

	missing, err := repo.GetByItemNumber(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuiltRepo_NumeroDeItemUnico(t *testing.T) {
	db := sqlite.NewTestDB(t)
	repo := sqlite.NewQuiltRepository(db)

	require.NoError(t, repo.Create(context.Background(), newQuilt(1, entity.SeasonWinter)))
	err := repo.Create(context.Background(), newQuilt(1, entity.SeasonSummer))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestQuiltRepo_UpdateYDelete(t *testing.T) {
	db := sqlite.NewTestDB(t)
	repo := sqlite.NewQuiltRepository(db)
	ctx := context.Background()

	q := newQuilt(1, entity.SeasonWinter)
	require.NoError(t, repo.Create(ctx, q))

	q.Name = "新名字"
	q.Location = "在用"
	require.NoError(t, repo.Update(ctx, q))
	require.NoError(t, repo.UpdateStatus(ctx, q.ID, entity.StatusInUse, time.Now()))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "新名字", got.Name)
	assert.Equal(t, entity.StatusInUse, got.CurrentStatus)

	require.NoError(t, repo.Delete(ctx, q.ID))
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, q.ID, entity.StatusAvailable, time.Now()), domain.ErrNotFound)
}

func TestQuiltRepo_List(t *testing.T) {
	db := sqlite.NewTestDB(t)
	repo := sqlite.NewQuiltRepository(db)
	ctx := context.Background()

	for i, season := range []entity.Season{entity.SeasonWinter, entity.SeasonSummer, entity.SeasonWinter, entity.SeasonWinter} {
		q := newQuilt(i+1, season)
		q.WeightGrams = 1000 * (i + 1)
		if i == 2 {
			q.Color = "蓝色"
			q.Location = "箱子"
		}
		require.NoError(t, repo.Create(ctx, q))
	}

	tests := []struct {
		name   string
		filter repository.QuiltFilter
		want   []int
	}{
		{"todos", repository.QuiltFilter{}, []int{1, 2, 3, 4}},
		{"temporada", repository.QuiltFilter{Season: entity.SeasonWinter}, []int{1, 3, 4}},
		{"ubicación", repository.QuiltFilter{Location: "箱"}, []int{3}},
		{"búsqueda", repository.QuiltFilter{Search: "蓝"}, []int{3}},
		{"orden desc", repository.QuiltFilter{SortBy: "weight_grams", SortDesc: true}, []int{4, 3, 2, 1}},
		{"página", repository.QuiltFilter{Limit: 2, Offset: 1}, []int{2, 3}},
		{"solo offset", repository.QuiltFilter{Offset: 3}, []int{4}},
		{"orden no permitido", repository.QuiltFilter{SortBy: "1; DROP TABLE quilts"}, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			got := make([]int, 0, len(list))
			for _, q := range list {
				got = append(got, q.ItemNumber)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
