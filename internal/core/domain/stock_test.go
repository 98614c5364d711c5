package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

func TestValidateMovementCoherence(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.MovementDirection
		operation domain.MovementOperation
		wantErr   bool
	}{
		{name: "supply in", direction: domain.MovementIn, operation: domain.MovementSupply, wantErr: false},
		{name: "return customer in", direction: domain.MovementIn, operation: domain.MovementReturnCustomer, wantErr: false},
		{name: "sale out", direction: domain.MovementOut, operation: domain.MovementSale, wantErr: false},
		{name: "return supplier out", direction: domain.MovementOut, operation: domain.MovementReturnSupplier, wantErr: false},
		{name: "correction in", direction: domain.MovementIn, operation: domain.MovementCorrection, wantErr: false},
		{name: "correction out", direction: domain.MovementOut, operation: domain.MovementCorrection, wantErr: false},
		{name: "other in", direction: domain.MovementIn, operation: domain.MovementOther, wantErr: false},
		{name: "other out", direction: domain.MovementOut, operation: domain.MovementOther, wantErr: false},
		{name: "sale cannot flow in", direction: domain.MovementIn, operation: domain.MovementSale, wantErr: true},
		{name: "return supplier cannot flow in", direction: domain.MovementIn, operation: domain.MovementReturnSupplier, wantErr: true},
		{name: "supply cannot flow out", direction: domain.MovementOut, operation: domain.MovementSupply, wantErr: true},
		{name: "return customer cannot flow out", direction: domain.MovementOut, operation: domain.MovementReturnCustomer, wantErr: true},
		{name: "unknown direction", direction: domain.MovementDirection("SIDEWAYS"), operation: domain.MovementSale, wantErr: true},
		{name: "unknown operation", direction: domain.MovementIn, operation: domain.MovementOperation("TELEPORT"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateMovementCoherence(tt.direction, tt.operation)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	in := domain.StockMovement{Direction: domain.MovementIn, Quantity: decimal.NewFromInt(40)}
	out := domain.StockMovement{Direction: domain.MovementOut, Quantity: decimal.NewFromInt(15)}

	assert.True(t, in.SignedQuantity().Equal(decimal.NewFromInt(40)))
	assert.True(t, out.SignedQuantity().Equal(decimal.NewFromInt(-15)))
}

func TestOppositeDirection(t *testing.T) {
	assert.Equal(t, domain.MovementOut, domain.OppositeDirection(domain.MovementIn))
	assert.Equal(t, domain.MovementIn, domain.OppositeDirection(domain.MovementOut))
}
