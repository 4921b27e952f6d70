package quilt

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// PeriodSeparator separa inicio y fin en las celdas de periodo ("2023/11/30~2024/05/04").
const PeriodSeparator = "~"

// Formatos admitidos, en orden de prueba. Mes y día aceptan uno o dos dígitos.
var dateLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
	"2006/1/2 15:04:05",
	"2006-1-2 15:04:05",
	"2006.1.2 15:04:05",
}

// Rango de seriales de Excel aceptados como fecha. Por debajo de minExcelSerial el número
// se trata como texto (p. ej. un año suelto "2024").
const (
	minExcelSerial = 20000   // 1954-10-03
	maxExcelSerial = 2958465 // 9999-12-31
)

var blankValues = map[string]struct{}{
	"nan": {}, "nat": {}, "none": {}, "null": {},
}

// IsBlank indica si una celda está vacía o contiene un marcador de nulo exportado
// por hojas de cálculo ("nan", "None", "NULL", ...).
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := blankValues[strings.ToLower(s)]
	return ok
}

// ParseDate interpreta una fecha textual. Devuelve false si no hay fecha reconocible;
// nunca falla. El resultado es la fecha a medianoche UTC.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if IsBlank(s) {
		return time.Time{}, false
	}
	if t, ok := parseLayouts(s); ok {
		return t, true
	}
	// Sufijo de hora no estándar ("2024-11-11 00:00:00.000", "2024/1/5 8:00")
	if first, _, found := strings.Cut(s, " "); found {
		if t, ok := parseLayouts(first); ok {
			return t, true
		}
	}
	return parseExcelSerial(s)
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnlyUTC(t), true
		}
	}
	return time.Time{}, false
}

func parseExcelSerial(s string) (time.Time, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < minExcelSerial || n > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(n, false)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnlyUTC(t), true
}

func dateOnlyUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Period resultado de interpretar una celda de periodo de uso.
type Period struct {
	Start *time.Time
	End   *time.Time
	// Open indica que el texto termina en el separador: uso en curso, no periodo cerrado.
	Open bool
	// Unparsed cuenta los lados con texto que no se pudo interpretar como fecha.
	Unparsed int
}

// Empty indica que no se obtuvo ninguna fecha.
func (p Period) Empty() bool { return p.Start == nil && p.End == nil }

// Complete indica que hay inicio y fin.
func (p Period) Complete() bool { return p.Start != nil && p.End != nil }

// Inverted indica un periodo completo cuyo fin es anterior al inicio.
func (p Period) Inverted() bool { return p.Complete() && p.End.Before(*p.Start) }

// ParseUsagePeriod interpreta "inicio~fin" o "inicio~" (abierto). Sin separador, vacío o
// nulo devuelve un Period vacío. Cada lado se interpreta de forma independiente y un
// fin legible prevalece sobre el separador final.
func ParseUsagePeriod(raw string) Period {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "～", PeriodSeparator))
	if IsBlank(s) || !strings.Contains(s, PeriodSeparator) {
		return Period{}
	}

	// Solo cuentan los dos primeros tramos; lo que sigue a un segundo separador se ignora.
	parts := strings.Split(s, PeriodSeparator)
	p := Period{Open: strings.HasSuffix(s, PeriodSeparator)}
	p.Start, p.Unparsed = parseSide(parts[0], p.Unparsed)
	p.End, p.Unparsed = parseSide(parts[1], p.Unparsed)
	return p
}

func parseSide(raw string, unparsed int) (*time.Time, int) {
	if IsBlank(raw) {
		return nil, unparsed
	}
	t, ok := ParseDate(raw)
	if !ok {
		return nil, unparsed + 1
	}
	return &t, unparsed
}
