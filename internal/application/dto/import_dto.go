package dto

// ImportResult contabilidad completa de un lote: qué se importó, qué se omitió y por qué.
type ImportResult struct {
	ImportedCount int      `json:"imported_count"`
	ImportedItems []int    `json:"imported_quilts"`
	SkippedCount  int      `json:"skipped_count"`
	SkippedRows   []string `json:"skipped_rows"`
	TotalRows     int      `json:"total_rows"`

	// Duplicates números de item ya existentes (también figuran en SkippedRows).
	Duplicates []int `json:"duplicates"`
	// Warnings datos descartados sin omitir la fila (fechas irreconocibles, periodos invertidos).
	Warnings      []string `json:"warnings"`
	UnparsedDates int      `json:"unparsed_dates"`
	UsagePeriods  int      `json:"usage_periods"`
	CurrentUsages int      `json:"current_usages"`
	DryRun        bool     `json:"dry_run"`
}

// NewImportResult inicializa las listas para que se serialicen como [] y no null.
func NewImportResult(totalRows int) *ImportResult {
	return &ImportResult{
		ImportedItems: []int{},
		SkippedRows:   []string{},
		Duplicates:    []int{},
		Warnings:      []string{},
		TotalRows:     totalRows,
	}
}
