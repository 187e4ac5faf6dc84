package models

import "github.com/shopspring/decimal"

// Worker is the persistence shape of a farm worker row.
type Worker struct {
	WorkerID       string          `json:"workerID"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	ContactNumber  string          `json:"contactNumber"`
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
