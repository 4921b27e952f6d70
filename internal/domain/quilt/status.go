package quilt

import (
	"strings"
	"time"

	"github.com/jhoicas/quilts-api/internal/domain/entity"
)

// InUseLocation marcador literal de ubicación para un edredón en uso.
const InUseLocation = "在用"

type statusRule struct {
	match  func(location string) bool
	status entity.Status
}

// statusRules se evalúa en orden; si ninguna coincide el estado es available.
var statusRules = []statusRule{
	{match: func(l string) bool { return l == InUseLocation }, status: entity.StatusInUse},
	// armario empotrado, ropero, caja
	{match: containsAny("壁柜", "衣柜", "箱"), status: entity.StatusAvailable},
}

func containsAny(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

// ClassifyStatus deduce el estado actual a partir de la ubicación.
func ClassifyStatus(location string) entity.Status {
	l := strings.TrimSpace(location)
	for _, r := range statusRules {
		if r.match(l) {
			return r.status
		}
	}
	return entity.StatusAvailable
}

var seasonLabels = map[string]entity.Season{
	"冬":             entity.SeasonWinter,
	"春秋":            entity.SeasonSpringAutumn,
	"春":             entity.SeasonSpringAutumn,
	"秋":             entity.SeasonSpringAutumn,
	"夏":             entity.SeasonSummer,
	"winter":        entity.SeasonWinter,
	"spring_autumn": entity.SeasonSpringAutumn,
	"summer":        entity.SeasonSummer,
}

// MapSeason traduce la etiqueta de temporada de la hoja ("冬", "春秋", "夏") o el valor
// del enum. Si no se reconoce devuelve winter y false.
func MapSeason(raw string) (entity.Season, bool) {
	s := strings.TrimSpace(raw)
	if season, ok := seasonLabels[s]; ok {
		return season, true
	}
	if season, ok := seasonLabels[strings.ToLower(s)]; ok {
		return season, true
	}
	return entity.SeasonWinter, false
}

// SeasonFromDate deriva la temporada solo del mes de inicio.
func SeasonFromDate(t time.Time) entity.Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return entity.SeasonWinter
	case time.June, time.July, time.August:
		return entity.SeasonSummer
	default:
		return entity.SeasonSpringAutumn
	}
}

// CurrentSeason temporada correspondiente a now.
func CurrentSeason(now time.Time) entity.Season {
	return SeasonFromDate(now)
}

// SeasonLabel etiqueta de la hoja para la temporada ("冬", "春秋", "夏").
func SeasonLabel(s entity.Season) string {
	switch s {
	case entity.SeasonSummer:
		return "夏"
	case entity.SeasonSpringAutumn:
		return "春秋"
	default:
		return "冬"
	}
}
