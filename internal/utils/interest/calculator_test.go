package interest_test

import (
	"testing"

	"github.com/sakahan-app/sakahan-backend/internal/utils/interest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		principal    string
		rate         string
		days         int64
		compounding  string
		wantInterest string
		wantTotal    string
	}{
		{
			name:        "daily full year",
			principal:   "1000", rate: "12", days: 365, compounding: "daily",
			wantInterest: "120", wantTotal: "1120",
		},
		{
			name:        "monthly basis uses 30 day divisor",
			principal:   "1000", rate: "12", days: 30, compounding: "monthly",
			wantInterest: "120", wantTotal: "1120",
		},
		{
			name:        "monthly two periods",
			principal:   "1000", rate: "12", days: 60, compounding: "monthly",
			wantInterest: "240", wantTotal: "1240",
		},
		{
			name:        "annually same basis as daily",
			principal:   "2500", rate: "8", days: 90, compounding: "annually",
			wantInterest: "49.32", wantTotal: "2549.32",
		},
		{
			name:        "unrecognized period falls back to 365",
			principal:   "2500", rate: "8", days: 90, compounding: "weekly",
			wantInterest: "49.32", wantTotal: "2549.32",
		},
		{
			name:        "rounds to two decimal places",
			principal:   "333.33", rate: "7.5", days: 17, compounding: "daily",
			wantInterest: "1.16", wantTotal: "334.49",
		},
		{
			name:        "zero days yields zero interest",
			principal:   "1000", rate: "12", days: 0, compounding: "daily",
			wantInterest: "0", wantTotal: "1000",
		},
		{
			name:        "case insensitive compounding",
			principal:   "1000", rate: "12", days: 30, compounding: "Monthly",
			wantInterest: "120", wantTotal: "1120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := decimal.RequireFromString(tt.principal)
			rate := decimal.RequireFromString(tt.rate)

			gotInterest, gotTotal := interest.Calculate(principal, rate, tt.days, tt.compounding)

			assert.True(t, gotInterest.Equal(decimal.RequireFromString(tt.wantInterest)),
				"interest: got %s want %s", gotInterest, tt.wantInterest)
			assert.True(t, gotTotal.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total: got %s want %s", gotTotal, tt.wantTotal)
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	principal := decimal.RequireFromString("1000")
	rate := decimal.RequireFromString("12")

	first, _ := interest.Calculate(principal, rate, 365, "daily")
	second, _ := interest.Calculate(principal, rate, 365, "daily")

	assert.True(t, first.Equal(second))
	assert.True(t, principal.Equal(decimal.RequireFromString("1000")), "inputs must not be mutated")
}
