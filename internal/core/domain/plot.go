package domain

import "github.com/shopspring/decimal"

// Plot is a tract of farm land ("pitak" for a paddy section, "bukid" for a
// whole field).
type Plot struct {
	PlotID       string          `json:"plotID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	AreaHectares decimal.Decimal `json:"areaHectares"`
	Crop         string          `json:"crop"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
