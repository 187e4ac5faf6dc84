package dto

// ImportDebtsRequest points the batch importer at a row-oriented CSV file
// with columns worker_id, amount, reason, due_date, interest_rate, payment_term.
type ImportDebtsRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}

// ImportRowError records one failed row. Row numbers are physical CSV line
// numbers, with the header at line 1.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a batch import run. Rows are committed one by one,
// so Succeeded rows stay committed even when later rows fail.
type ImportResult struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors"`
}
