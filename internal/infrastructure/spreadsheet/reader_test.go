package spreadsheet_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/jhoicas/quilts-api/internal/application/importer"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
	"github.com/jhoicas/quilts-api/internal/infrastructure/spreadsheet"
)

func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "被子.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// ─── xlsx ────────────────────────────────────────────────────────────────────

func TestReadFile_XLSX(t *testing.T) {
	bought := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	path := writeXLSX(t, [][]any{
		{importer.ColItemNumber, " " + importer.ColSeason + " ", importer.ColWeight, importer.ColPurchaseDate, importer.ColCurrentPeriod},
		{1, "冬 ", 2500, bought, "2024/11/20~"},
		{},
		{2, "夏"},
	})

	sheet, err := spreadsheet.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, importer.ColSeason, sheet.Headers[1])
	require.Len(t, sheet.Rows, 2)

	first := sheet.Rows[0]
	assert.Equal(t, "1", first[importer.ColItemNumber])
	assert.Equal(t, "冬", first[importer.ColSeason])
	assert.Equal(t, "2500", first[importer.ColWeight])
	assert.Equal(t, "2024/11/20~", first[importer.ColCurrentPeriod])
	got, ok := quilt.ParseDate(first[importer.ColPurchaseDate])
	require.True(t, ok, "la fecha llega como serial de Excel")
	assert.Equal(t, bought, got)

	second := sheet.Rows[1]
	assert.Equal(t, "夏", second[importer.ColSeason])
	v, present := second[importer.ColCurrentPeriod]
	assert.True(t, present, "las filas cortas se completan")
	assert.Empty(t, v)
}

func TestReadFile_XLSXSinFilas(t *testing.T) {
	path := writeXLSX(t, nil)
	_, err := spreadsheet.ReadFile(path)
	assert.ErrorIs(t, err, spreadsheet.ErrNoHeader)
}

// ─── csv ─────────────────────────────────────────────────────────────────────

func TestRead_CSVConBOM(t *testing.T) {
	data := "\xEF\xBB\xBF编号,季节,放置位置\n1,春秋, 衣柜 \n,,\n2,冬\n"

	sheet, err := spreadsheet.Read(bytes.NewReader([]byte(data)), "inventario.csv")
	require.NoError(t, err)
	assert.Equal(t, "inventario", sheet.Name)
	assert.Equal(t, []string{importer.ColItemNumber, importer.ColSeason, importer.ColLocation}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "衣柜", sheet.Rows[0][importer.ColLocation])
	assert.Equal(t, "", sheet.Rows[1][importer.ColLocation])
}

func TestRead_CSVEnGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String("编号,季节,填充物\n7,冬,羊毛\n")
	require.NoError(t, err)

	sheet, err := spreadsheet.Read(bytes.NewReader([]byte(encoded)), "gbk.csv")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "冬", sheet.Rows[0][importer.ColSeason])
	assert.Equal(t, "羊毛", sheet.Rows[0][importer.ColFillMaterial])
}

func TestRead_FormatoNoSoportado(t *testing.T) {
	_, err := spreadsheet.Read(bytes.NewReader(nil), "notas.txt")
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)
}

func TestReadFile_NoExiste(t *testing.T) {
	_, err := spreadsheet.ReadFile(filepath.Join(t.TempDir(), "falta.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
