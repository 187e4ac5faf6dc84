package models

import "github.com/shopspring/decimal"

// Plot is the persistence shape of a land plot row.
type Plot struct {
	PlotID       string          `json:"plotID"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	AreaHectares decimal.Decimal `json:"areaHectares"`
	Crop         string          `json:"crop"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
