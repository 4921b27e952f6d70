package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/testutil/memstore"
)

func TestImport_PeriodoActualAbiertoCreaUsoEnCurso(t *testing.T) {
	store := memstore.New()
	row := baseRow(1)
	row[importer.ColCurrentPeriod] = "2024/11/15～"

	res, err := newImporter(store).Import(context.Background(), sheetOf(row), importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentUsages)
	assert.Equal(t, 0, res.UsagePeriods)

	q, _ := store.Quilts().GetByItemNumber(context.Background(), 1)
	require.NotNil(t, q)
	cu, err := store.Usage().GetCurrentByQuilt(context.Background(), q.ID)
	require.NoError(t, err)
	require.NotNil(t, cu)
	assert.Equal(t, date(2024, time.November, 15), cu.StartedAt)
	assert.Equal(t, entity.UsageTypeRegular, cu.UsageType)
	assert.Nil(t, cu.ExpectedEndDate)
}

func TestImport_PeriodoActualCerradoCreaPeriodo(t *testing.T) {
	store := memstore.New()
	row := baseRow(1)
	row[importer.ColCurrentPeriod] = "2023/11/30~2024/05/04"

	res, err := newImporter(store).Import(context.Background(), sheetOf(row), importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.CurrentUsages)
	assert.Equal(t, 1, res.UsagePeriods)

	periods := store.Periods()
	require.Len(t, periods, 1)
	assert.Equal(t, date(2023, time.November, 30), periods[0].StartDate)
	assert.Equal(t, date(2024, time.May, 4), periods[0].EndDate)
	assert.Equal(t, entity.SeasonSpringAutumn, periods[0].SeasonUsed, "noviembre no es mes de invierno")
	assert.Equal(t, importer.NoteCurrentPeriod, periods[0].Notes)
	assert.Equal(t, 0, store.CurrentCount())
}

func TestImport_PeriodoConSeparadorSobranteEsCerrado(t *testing.T) {
	store := memstore.New()
	row := baseRow(1)
	row[importer.ColCurrentPeriod] = "2023/11/30~2024/05/04~"

	res, err := newImporter(store).Import(context.Background(), sheetOf(row), importer.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.CurrentUsages)
	assert.Equal(t, 1, res.UsagePeriods)
	assert.Zero(t, res.UnparsedDates)

	periods := store.Periods()
	require.Len(t, periods, 1)
	assert.Equal(t, date(2024, time.May, 4), periods[0].EndDate)
	assert.Equal(t, 0, store.CurrentCount())
}

func TestImport_ColumnasHistoricas(t *testing.T) {
	store := memstore.New()
	row := baseRow(1)
	row["上次使用"] = "2023/06/01~2023/08/31"
	row["上上次使用"] = "2022/4/1 ~ 2022/5/20"
	// Parcial, sin separador y con un lado ilegible: no generan periodo.
	row["上上上次使用"] = "2021/11/01~"
	row["上^4次"] = "sin fecha"
	row["上^5次"] = "2019/10/1~ayer"
	row["上^9次"] = "2015/12/01~2016/02/28"

	res, err := newImporter(store).Import(context.Background(), sheetOf(row), importer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.ImportedCount)
	assert.Equal(t, 3, res.UsagePeriods)
	assert.Equal(t, 1, res.UnparsedDates)
	assert.Empty(t, res.SkippedRows, "entradas parciales no omiten la fila")

	seasons := map[time.Time]entity.Season{}
	notes := map[time.Time]string{}
	for _, p := range store.Periods() {
		seasons[p.StartDate] = p.SeasonUsed
		notes[p.StartDate] = p.Notes
	}
	assert.Equal(t, entity.SeasonSummer, seasons[date(2023, time.June, 1)])
	assert.Equal(t, entity.SeasonSpringAutumn, seasons[date(2022, time.April, 1)])
	assert.Equal(t, entity.SeasonWinter, seasons[date(2015, time.December, 1)])
	assert.Equal(t, "Uso histórico (上次使用)", notes[date(2023, time.June, 1)])
}

func TestImport_RangoInvertidoEsAdvertencia(t *testing.T) {
	store := memstore.New()
	row := baseRow(3)
	row[importer.ColCurrentPeriod] = "2024/05/04~2023/11/30"
	row["上次使用"] = "2023/03/01~2022/11/01"
	row["上上次使用"] = "2021/11/01~2022/03/01"

	res, err := newImporter(store).Import(context.Background(), sheetOf(row), importer.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.ImportedCount)
	assert.Equal(t, 1, res.UsagePeriods)
	require.Len(t, res.Warnings, 2)
	assert.True(t, strings.HasPrefix(res.Warnings[0], "Fila 1: "+importer.ColCurrentPeriod+": "))
	assert.True(t, strings.HasPrefix(res.Warnings[1], "Fila 1: 上次使用: "))
	assert.Len(t, store.Periods(), 1)
}
