package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

func TestValidateTransactionCoherence(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.TransactionDirection
		operation domain.TransactionOperation
		wantErr   bool
	}{
		{name: "sale payment in", direction: domain.CashIn, operation: domain.CashSalePayment, wantErr: false},
		{name: "supply in", direction: domain.CashIn, operation: domain.CashSupply, wantErr: false},
		{name: "correction in", direction: domain.CashIn, operation: domain.CashCorrectionIn, wantErr: false},
		{name: "misc expense in", direction: domain.CashIn, operation: domain.CashMiscExpenseIn, wantErr: false},
		{name: "bank transfert out", direction: domain.CashOut, operation: domain.CashBankTransfert, wantErr: false},
		{name: "correction out", direction: domain.CashOut, operation: domain.CashCorrectionOut, wantErr: false},
		{name: "misc expense out", direction: domain.CashOut, operation: domain.CashMiscExpenseOut, wantErr: false},
		{name: "sale payment cannot flow out", direction: domain.CashOut, operation: domain.CashSalePayment, wantErr: true},
		{name: "supply cannot flow out", direction: domain.CashOut, operation: domain.CashSupply, wantErr: true},
		{name: "bank transfert cannot flow in", direction: domain.CashIn, operation: domain.CashBankTransfert, wantErr: true},
		{name: "correction out cannot flow in", direction: domain.CashIn, operation: domain.CashCorrectionOut, wantErr: true},
		{name: "unknown operation", direction: domain.CashIn, operation: domain.TransactionOperation("LOTTERY"), wantErr: true},
		{name: "unknown direction", direction: domain.TransactionDirection("UP"), operation: domain.CashSupply, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateTransactionCoherence(tt.direction, tt.operation)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCashTransaction_TotalAmount(t *testing.T) {
	// 5 x 20,000 + 3 x 5,000 = 115,000
	lines := []domain.CashTransactionDetailLine{
		{Quantity: 5, DenominationValue: decimal.NewFromInt(20000)},
		{Quantity: 3, DenominationValue: decimal.NewFromInt(5000)},
	}

	in := domain.CashTransaction{Direction: domain.CashIn, Details: lines}
	assert.True(t, in.TotalAmount().Equal(decimal.NewFromInt(115000)))

	out := domain.CashTransaction{Direction: domain.CashOut, Details: lines}
	assert.True(t, out.TotalAmount().Equal(decimal.NewFromInt(-115000)))

	empty := domain.CashTransaction{Direction: domain.CashIn}
	assert.True(t, empty.TotalAmount().IsZero())
}

func TestCashTransaction_IsValid(t *testing.T) {
	assert.True(t, domain.CashTransaction{Status: domain.TransactionCompleted}.IsValid())
	assert.False(t, domain.CashTransaction{Status: domain.TransactionPending}.IsValid())
	assert.False(t, domain.CashTransaction{Status: domain.TransactionCanceled}.IsValid())
}

func TestCashAdjustment_TotalAmount(t *testing.T) {
	adj := domain.CashAdjustment{
		Type: domain.AdjustmentBalancing,
		Details: []domain.CashAdjustmentLine{
			{Quantity: 7, DenominationValue: decimal.NewFromInt(10000)},
			{Quantity: 2, DenominationValue: decimal.RequireFromString("0.50")},
		},
	}
	assert.True(t, adj.TotalAmount().Equal(decimal.RequireFromString("70001")))
}
