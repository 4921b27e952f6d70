package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/application/dto"
)

const inventoryCSV = "编号,季节,填充物,放置位置,使用时间段,上次使用\n" +
	"1,冬,90%鹅绒+10%羽毛,在用,2024/11/20~,2023/12/01~2024/02/15\n" +
	"2,夏,蚕丝,衣柜,,\n" +
	",夏,棉,衣柜,,\n"

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "quilts.db"))
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, closeApp := newRootCmd()
	defer closeApp()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()), errOut.String())
	return out.String()
}

// ─── Flujo completo ──────────────────────────────────────────────────────────

func TestCLI_ImportarListarYExportar(t *testing.T) {
	dir := setupEnv(t)
	csvPath := filepath.Join(dir, "被子.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(inventoryCSV), 0o644))

	var res dto.ImportResult
	require.NoError(t, json.Unmarshal([]byte(run(t, "import", csvPath, "--json")), &res))
	assert.Equal(t, 2, res.ImportedCount)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, 1, res.UsagePeriods)
	assert.Equal(t, 1, res.CurrentUsages)

	var list dto.QuiltListResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "list", "--season", "summer", "--json")), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Items[0].ItemNumber)

	var current []dto.CurrentUsageResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "usage", "current", "--json")), &current))
	assert.Len(t, current, 1)

	table := run(t, "show", "1")
	assert.Contains(t, table, "鹅绒")
	assert.Contains(t, table, "2023-12-01")

	out := filepath.Join(dir, "export.xlsx")
	run(t, "export", out)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCLI_ImportarEnSimulacion(t *testing.T) {
	dir := setupEnv(t)
	csvPath := filepath.Join(dir, "被子.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(inventoryCSV), 0o644))

	var res dto.ImportResult
	require.NoError(t, json.Unmarshal([]byte(run(t, "import", csvPath, "--dry-run", "--json")), &res))
	assert.True(t, res.DryRun)
	assert.Equal(t, 2, res.ImportedCount)

	var list dto.QuiltListResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "list", "--json")), &list))
	assert.Empty(t, list.Items)
}

func TestCLI_CicloDeUso(t *testing.T) {
	setupEnv(t)
	run(t, "add", "--item", "5", "--season", "春秋", "--fill", "羊毛")

	var started dto.CurrentUsageResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "usage", "start", "5", "--date", "2024-10-01", "--json")), &started))

	var period dto.UsagePeriodResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "usage", "end", started.ID, "--date", "2024-10-21", "--json")), &period))
	assert.Equal(t, 20, period.DurationDays)
	assert.Equal(t, "spring_autumn", period.SeasonUsed)

	var rec dto.RecommendationsResponse
	require.NoError(t, json.Unmarshal([]byte(run(t, "recommend", "spring_autumn", "--json")), &rec))
	assert.Equal(t, 1, rec.TotalAvailable)
	require.Len(t, rec.Recommendations, 1)
	assert.Equal(t, 5, rec.Recommendations[0].Quilt.ItemNumber)
}

func TestCLI_FechaInvalida(t *testing.T) {
	setupEnv(t)
	run(t, "add", "--item", "1")

	cmd, closeApp := newRootCmd()
	defer closeApp()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"usage", "start", "1", "--date", "ayer"})
	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "no es una fecha")
}

func TestCLI_ReportePDF(t *testing.T) {
	dir := setupEnv(t)
	run(t, "add", "--item", "1", "--name", "Plumon")

	out := filepath.Join(dir, "informe.pdf")
	run(t, "report", out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
