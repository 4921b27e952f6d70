package quilt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
	"github.com/jhoicas/quilts-api/internal/domain/quilt"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		location string
		want     entity.Status
	}{
		{"在用", entity.StatusInUse},
		{" 在用 ", entity.StatusInUse},
		{"主卧壁柜", entity.StatusAvailable},
		{"衣柜顶层", entity.StatusAvailable},
		{"收纳箱", entity.StatusAvailable},
		{"阳台", entity.StatusAvailable},
		{"", entity.StatusAvailable},
		// Solo el literal exacto marca uso; como subcadena cae en la regla de muebles.
		{"在用箱", entity.StatusAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, quilt.ClassifyStatus(tt.location))
		})
	}
}

func TestMapSeason(t *testing.T) {
	tests := []struct {
		in     string
		want   entity.Season
		wantOK bool
	}{
		{"冬", entity.SeasonWinter, true},
		{"春秋", entity.SeasonSpringAutumn, true},
		{"秋", entity.SeasonSpringAutumn, true},
		{"夏", entity.SeasonSummer, true},
		{"SUMMER", entity.SeasonSummer, true},
		{"四季", entity.SeasonWinter, false},
		{"", entity.SeasonWinter, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := quilt.MapSeason(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeasonFromDate(t *testing.T) {
	want := map[time.Month]entity.Season{
		time.January: entity.SeasonWinter, time.February: entity.SeasonWinter, time.December: entity.SeasonWinter,
		time.June: entity.SeasonSummer, time.July: entity.SeasonSummer, time.August: entity.SeasonSummer,
		time.March: entity.SeasonSpringAutumn, time.May: entity.SeasonSpringAutumn,
		time.September: entity.SeasonSpringAutumn, time.November: entity.SeasonSpringAutumn,
	}
	for m, season := range want {
		assert.Equal(t, season, quilt.SeasonFromDate(date(2024, m, 15)), m.String())
	}
}
