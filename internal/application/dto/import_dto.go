package dto

// SheetResult resultado de importar una hoja del libro Excel.
type SheetResult struct {
	Sheet    string   `json:"sheet"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportResponse resultado agregado de una importación masiva desde Excel.
type ImportResponse struct {
	TotalImported int           `json:"total_imported"`
	TotalSkipped  int           `json:"total_skipped"`
	Sheets        []SheetResult `json:"sheets"`
}
