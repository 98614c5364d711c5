package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection indicates whether a stock movement adds to or removes from stock.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// MovementOperation is the business reason behind a stock movement.
type MovementOperation string

const (
	MovementSale           MovementOperation = "SALE"            // OUT only
	MovementSupply         MovementOperation = "SUPPLY"          // IN only
	MovementCorrection     MovementOperation = "CORRECTION"      // either direction
	MovementReturnSupplier MovementOperation = "RETURN_SUPPLIER" // OUT only
	MovementReturnCustomer MovementOperation = "RETURN_CUSTOMER" // IN only
	MovementOther          MovementOperation = "OTHER"           // either direction: donation, breakage, theft...
)

// MovementStatus tracks the audit state of a ledger entry. Entries are never
// deleted: a cancellation marks the original CANCELED and posts a REVERSING
// entry with the opposite direction.
type MovementStatus string

const (
	MovementPosted    MovementStatus = "POSTED"
	MovementCanceled  MovementStatus = "CANCELED"
	MovementReversing MovementStatus = "REVERSING"
)

// StockMovement is one append-only quantity change on a product.
// Quantity is always positive at rest; the sign is derived from Direction.
type StockMovement struct {
	MovementID string            `json:"movementID"`
	AreaID     string            `json:"areaID"`
	ProductID  string            `json:"productID"`
	Direction  MovementDirection `json:"direction"`
	Operation  MovementOperation `json:"operation"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Status     MovementStatus    `json:"status"`
	DateOf     time.Time         `json:"dateOf"`   // business date of the movement
	Comment    string            `json:"comment"`  // reason for correction/cancellation, free text
	InitiatedBy string           `json:"initiatedBy"` // EmployeeID reference

	// OriginalMovementID links a REVERSING entry back to the entry it undoes.
	OriginalMovementID *string `json:"originalMovementID"`

	// At most one of these back-references is set, recording the detail line
	// that triggered the movement. It doubles as the idempotency key for
	// delivery triggers.
	SaleDetailLineID     *string `json:"saleDetailLineID"`
	PurchaseDetailLineID *string `json:"purchaseDetailLineID"`
	OrderDetailLineID    *string `json:"orderDetailLineID"`

	AuditFields
}

// SignedQuantity returns the quantity with the sign implied by the direction.
func (m StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

var movementInOnly = map[MovementOperation]bool{
	MovementSupply:         true,
	MovementReturnCustomer: true,
}

var movementOutOnly = map[MovementOperation]bool{
	MovementSale:           true,
	MovementReturnSupplier: true,
}

// ValidateMovementCoherence enforces the direction/operation partition for
// stock movements: SUPPLY and RETURN_CUSTOMER only flow IN, SALE and
// RETURN_SUPPLIER only flow OUT, CORRECTION and OTHER go either way.
// It is called before any row is written.
func ValidateMovementCoherence(direction MovementDirection, operation MovementOperation) error {
	switch direction {
	case MovementIn:
		if movementOutOnly[operation] {
			return fmt.Errorf("operation %s cannot be used with IN direction", operation)
		}
	case MovementOut:
		if movementInOnly[operation] {
			return fmt.Errorf("operation %s cannot be used with OUT direction", operation)
		}
	default:
		return fmt.Errorf("unknown movement direction %q", direction)
	}
	switch operation {
	case MovementSale, MovementSupply, MovementCorrection, MovementReturnSupplier, MovementReturnCustomer, MovementOther:
		return nil
	}
	return fmt.Errorf("unknown movement operation %q", operation)
}

// OppositeDirection returns IN for OUT and OUT for IN.
func OppositeDirection(d MovementDirection) MovementDirection {
	if d == MovementIn {
		return MovementOut
	}
	return MovementIn
}
