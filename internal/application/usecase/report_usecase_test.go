package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/application/dto"
	"github.com/jhoicas/quilts-api/internal/application/usecase"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/testutil/memstore"
	"github.com/jhoicas/quilts-api/pkg/logger"
)

func TestReport_Build(t *testing.T) {
	store := memstore.New()
	b := seedQuilt(t, store, 2, entity.SeasonWinter, entity.StatusAvailable)
	a := seedQuilt(t, store, 1, entity.SeasonWinter, entity.StatusAvailable)
	seedPeriod(t, store, a.ID, date(2022, time.December, 1), date(2022, time.December, 11))
	seedPeriod(t, store, a.ID, date(2023, time.December, 1), date(2023, time.December, 6))

	started := date(2024, time.December, 1)
	_, err := usecase.NewUsageUseCase(store, store.Usage(), logger.Nop()).
		WithClock(fixedClock(started)).
		Start(context.Background(), dto.StartUsageRequest{QuiltID: b.ID})
	require.NoError(t, err)

	report, err := usecase.NewReportUseCase(store.Quilts(), store.Usage()).Build(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	first := report.Rows[0]
	assert.Equal(t, 1, first.Quilt.ItemNumber)
	assert.Equal(t, 2, first.UsageCount)
	assert.Equal(t, 15, first.TotalUsageDays)
	assert.Equal(t, "7.5", first.AverageDuration.String())
	assert.Len(t, first.Periods, 2)
	assert.Nil(t, first.CurrentUsage)

	second := report.Rows[1]
	assert.Equal(t, 0, second.UsageCount)
	assert.True(t, second.AverageDuration.IsZero())
	require.NotNil(t, second.CurrentUsage)
	assert.Equal(t, started, second.CurrentUsage.StartedAt)
	assert.Equal(t, "in_use", second.Quilt.CurrentStatus)
}

type fakePDF struct {
	got *dto.UsageReport
}

func (f *fakePDF) Generate(_ context.Context, report *dto.UsageReport) ([]byte, error) {
	f.got = report
	return []byte("%PDF-fake"), nil
}

func TestReport_BuildPDF(t *testing.T) {
	store := memstore.New()
	seedQuilt(t, store, 1, entity.SeasonSummer, entity.StatusStorage)

	gen := &fakePDF{}
	out, err := usecase.NewReportUseCase(store.Quilts(), store.Usage()).BuildPDF(context.Background(), gen)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Rows, 1)
}
