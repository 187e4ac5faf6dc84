package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		balance decimal.Decimal
		amount  decimal.Decimal
		want    domain.DebtStatus
	}{
		{
			name:    "untouched debt stays pending",
			balance: decimal.NewFromInt(1000),
			amount:  decimal.NewFromInt(1000),
			want:    domain.DebtPending,
		},
		{
			name:    "partially repaid",
			balance: decimal.NewFromInt(400),
			amount:  decimal.NewFromInt(1000),
			want:    domain.DebtPartiallyPaid,
		},
		{
			name:    "zero balance is paid",
			balance: decimal.Zero,
			amount:  decimal.NewFromInt(1000),
			want:    domain.DebtPaid,
		},
		{
			name:    "negative balance still reads paid",
			balance: decimal.NewFromInt(-5),
			amount:  decimal.NewFromInt(1000),
			want:    domain.DebtPaid,
		},
		{
			name:    "balance above principal",
			balance: decimal.NewFromInt(1100),
			amount:  decimal.NewFromInt(1000),
			want:    domain.DebtPartiallyPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.StatusFor(tt.balance, tt.amount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKnownDebtStatus(t *testing.T) {
	assert.True(t, domain.KnownDebtStatus(domain.DebtPending))
	assert.True(t, domain.KnownDebtStatus(domain.DebtPartiallyPaid))
	assert.True(t, domain.KnownDebtStatus(domain.DebtPaid))
	assert.True(t, domain.KnownDebtStatus(domain.DebtCancelled))
	assert.False(t, domain.KnownDebtStatus(domain.DebtStatus("OVERDUE")))
	assert.False(t, domain.KnownDebtStatus(domain.DebtStatus("")))
}
