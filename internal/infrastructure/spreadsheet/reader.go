// Package spreadsheet lee la hoja de inventario (xlsx o csv) y exporta el inventario a xlsx.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/jhoicas/quilts-api/internal/application/importer"
)

// ErrUnsupportedFormat extensión distinta de .xlsx o .csv.
var ErrUnsupportedFormat = errors.New("formato de archivo no soportado")

// ErrNoHeader la hoja no tiene fila de encabezados.
var ErrNoHeader = errors.New("la hoja no tiene fila de encabezados")

var utf8BOM = []byte("\xEF\xBB\xBF")

// ReadFile abre path y lo interpreta según su extensión.
func ReadFile(path string) (importer.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return importer.Sheet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path))
}

// Read interpreta r como .xlsx o .csv según la extensión de name.
// La primera fila son los encabezados; las filas vacías se ignoran.
func Read(r io.Reader, name string) (importer.Sheet, error) {
	var (
		sheetName string
		records   [][]string
		err       error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		sheetName, records, err = readXLSX(r)
	case ".csv":
		sheetName = strings.TrimSuffix(name, filepath.Ext(name))
		records, err = readCSV(r)
	default:
		return importer.Sheet{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return importer.Sheet{}, err
	}
	return toSheet(sheetName, records)
}

// readXLSX devuelve las filas de la primera hoja. Las fechas llegan como serial de Excel
// (valor crudo) para no depender del formato de celda.
func readXLSX(r io.Reader) (string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return sheets[0], rows, nil
}

// readCSV acepta UTF-8 (con o sin BOM) y, si los bytes no son UTF-8 válido, GBK.
func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, simplifiedchinese.GBK.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func toSheet(name string, records [][]string) (importer.Sheet, error) {
	start := -1
	for i, rec := range records {
		if !emptyRecord(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return importer.Sheet{}, ErrNoHeader
	}

	headers := make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := importer.Sheet{Name: name, Headers: headers, Rows: []importer.Row{}}
	for _, rec := range records[start+1:] {
		if emptyRecord(rec) {
			continue
		}
		row := make(importer.Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if _, seen := row[h]; seen {
				continue
			}
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func emptyRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
