package quilt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/quilts-api/internal/domain/quilt"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_FormatosAdmitidos(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023/11/30", date(2023, 11, 30)},
		{"2023-11-30", date(2023, 11, 30)},
		{"2023.11.30", date(2023, 11, 30)},
		{"2025/4/8", date(2025, 4, 8)},
		{"  2024-01-05  ", date(2024, 1, 5)},
		{"2024-11-11 00:00:00", date(2024, 11, 11)},
		{"2024/11/11 08:30:00", date(2024, 11, 11)},
		{"2024-11-11 00:00:00.000", date(2024, 11, 11)},
		{"45260", date(2023, 11, 30)}, // serial de Excel
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := quilt.ParseDate(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestParseDate_NoReconocible(t *testing.T) {
	for _, in := range []string{"", "   ", "nan", "NaN", "None", "ayer", "2024", "30/11/2023", "2023/13/01"} {
		t.Run(in, func(t *testing.T) {
			_, ok := quilt.ParseDate(in)
			assert.False(t, ok)
		})
	}
}

// Formatear una fecha con cada separador y volver a interpretarla devuelve la misma fecha.
func TestParseDate_IdaYVuelta(t *testing.T) {
	layouts := []string{"2006/01/02", "2006-01-02", "2006.01.02"}
	dates := []time.Time{date(2020, 2, 29), date(2023, 11, 30), date(2025, 1, 1), date(1999, 12, 31)}
	for _, layout := range layouts {
		for _, d := range dates {
			got, ok := quilt.ParseDate(d.Format(layout))
			require.True(t, ok, layout)
			assert.True(t, d.Equal(got), "%s con %s", d, layout)
		}
	}
}

func TestParseUsagePeriod_Abierto(t *testing.T) {
	p := quilt.ParseUsagePeriod("2025/04/08~")

	require.NotNil(t, p.Start)
	assert.True(t, date(2025, 4, 8).Equal(*p.Start))
	assert.Nil(t, p.End)
	assert.True(t, p.Open, "termina en el separador: uso en curso")
	assert.False(t, p.Complete())
}

func TestParseUsagePeriod_Cerrado(t *testing.T) {
	p := quilt.ParseUsagePeriod("2023/11/30~2024/05/04")

	require.True(t, p.Complete())
	assert.True(t, date(2023, 11, 30).Equal(*p.Start))
	assert.True(t, date(2024, 5, 4).Equal(*p.End))
	assert.False(t, p.Open)
	assert.False(t, p.Inverted())
	assert.Zero(t, p.Unparsed)
}

func TestParseUsagePeriod_SinRango(t *testing.T) {
	for _, in := range []string{"", "  ", "nan", "2023/11/30", "sin uso"} {
		t.Run(in, func(t *testing.T) {
			p := quilt.ParseUsagePeriod(in)
			assert.True(t, p.Empty())
			assert.False(t, p.Open)
		})
	}
}

func TestParseUsagePeriod_Variantes(t *testing.T) {
	t.Run("separador de ancho completo", func(t *testing.T) {
		p := quilt.ParseUsagePeriod("2023/11/30～2024/05/04")
		assert.True(t, p.Complete())
	})
	t.Run("espacios alrededor", func(t *testing.T) {
		p := quilt.ParseUsagePeriod(" 2023/11/30 ~ 2024/05/04 ")
		assert.True(t, p.Complete())
	})
	t.Run("lado irreconocible se cuenta", func(t *testing.T) {
		p := quilt.ParseUsagePeriod("2023/11/30~pronto")
		require.NotNil(t, p.Start)
		assert.Nil(t, p.End)
		assert.False(t, p.Open)
		assert.Equal(t, 1, p.Unparsed)
	})
	t.Run("solo fin", func(t *testing.T) {
		p := quilt.ParseUsagePeriod("~2024/05/04")
		assert.Nil(t, p.Start)
		assert.NotNil(t, p.End)
	})
	t.Run("separador sobrante tras el fin", func(t *testing.T) {
		p := quilt.ParseUsagePeriod("2023/11/30~2024/05/04~")
		require.True(t, p.Complete())
		assert.True(t, date(2024, 5, 4).Equal(*p.End))
		assert.Zero(t, p.Unparsed)
	})
	t.Run("invertido", func(t *testing.T) {
		p := quilt.ParseUsagePeriod("2024/05/04~2023/11/30")
		assert.True(t, p.Inverted())
	})
}
