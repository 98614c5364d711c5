package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether money enters or leaves the register.
type TransactionDirection string

const (
	CashIn  TransactionDirection = "IN"
	CashOut TransactionDirection = "OUT"
)

// TransactionOperation is the business reason behind a cash transaction.
// The partition is distinct from stock movements: corrections and misc
// expenses are split into explicit IN/OUT variants.
type TransactionOperation string

const (
	CashSalePayment    TransactionOperation = "SALE_PAYMENT"     // IN only
	CashSupply         TransactionOperation = "SUPPLY"           // IN only: float brought to the register
	CashCorrectionIn   TransactionOperation = "CORRECTION_IN"    // IN
	CashCorrectionOut  TransactionOperation = "CORRECTION_OUT"   // OUT
	CashBankTransfert  TransactionOperation = "BANK_TRANSFERT"   // OUT only
	CashMiscExpenseIn  TransactionOperation = "MISC_EXPENSE_IN"  // IN: e.g. change returned after an urgent purchase
	CashMiscExpenseOut TransactionOperation = "MISC_EXPENSE_OUT" // OUT
)

// TransactionStatus is the settlement state of a cash transaction.
// Only COMPLETED transactions count toward the theoretical balance.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionOpened    TransactionStatus = "OPENED"
	TransactionFinalized TransactionStatus = "FINALIZED"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionPartial   TransactionStatus = "PARTIAL"
	TransactionClosed    TransactionStatus = "CLOSED"
	TransactionCanceled  TransactionStatus = "CANCELED"
	TransactionRejected  TransactionStatus = "REJECTED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// CashAccountState is the reconciliation state of a register for the
// current business day. OPEN accounts accept transactions; a balancing
// action moves the account to one of the three balanced states; CLOSED is
// terminal and blocks further transactions.
type CashAccountState string

const (
	AccountOpen           CashAccountState = "OPEN"
	AccountClosed         CashAccountState = "CLOSED"
	AccountBalanced       CashAccountState = "BALANCED"
	AccountNotBalanced    CashAccountState = "NOT_BALANCED"
	AccountBalancedForced CashAccountState = "BALANCED_FORCED"
)

// AdjustmentType is the reason a physical cash count was taken.
type AdjustmentType string

const (
	AdjustmentOpening        AdjustmentType = "OPENING"
	AdjustmentBalancing      AdjustmentType = "BALANCING"
	AdjustmentForcingBalance AdjustmentType = "FORCING_BALANCE"
)

// Denomination is a single note or coin value. Static reference data.
type Denomination struct {
	DenominationID string          `json:"denominationID"`
	Name           string          `json:"name"` // e.g. "20000", "0.50"
	Value          decimal.Decimal `json:"value"`
	Currency       string          `json:"currency"`
}

// CashAccount is a single register (or drawer) operated in an area.
type CashAccount struct {
	AccountID       string           `json:"accountID"`
	AreaID          string           `json:"areaID"`
	UserID          string           `json:"userID"` // operating employee's user
	AmountInit      decimal.Decimal  `json:"amountInit"`
	BalancingAmount decimal.Decimal  `json:"balancingAmount"` // last counted amount
	State           CashAccountState `json:"state"`
	AuditFields
}

// CashTransaction is one append-only money movement on a register, broken
// into denomination lines. Its total is never stored: it is always derived
// from the lines so the ledger cannot drift from its own breakdown.
type CashTransaction struct {
	TransactionID string               `json:"transactionID"`
	AccountID     string               `json:"accountID"`
	Direction     TransactionDirection `json:"direction"`
	Operation     TransactionOperation `json:"operation"`
	Status        TransactionStatus    `json:"status"`
	DateOf        time.Time            `json:"dateOf"`
	PaymentRef    *string              `json:"paymentRef"`
	UpdatedReason string               `json:"updatedReason"` // reason for cancellation or correction
	Details       []CashTransactionDetailLine `json:"details"`
	AuditFields
}

// IsValid reports whether the transaction counts toward the theoretical balance.
func (t CashTransaction) IsValid() bool {
	return t.Status == TransactionCompleted
}

// TotalAmount derives the signed value of the transaction from its lines:
// sum(quantity x denomination value), negated when direction is OUT.
func (t CashTransaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Details {
		total = total.Add(line.Amount())
	}
	if t.Direction == CashOut {
		return total.Neg()
	}
	return total
}

// CashTransactionDetailLine is one denomination bucket of a transaction,
// e.g. 5 notes of 20,000. DenominationValue is loaded alongside the line.
type CashTransactionDetailLine struct {
	LineID            string          `json:"lineID"`
	TransactionID     string          `json:"transactionID"`
	DenominationID    string          `json:"denominationID"`
	Quantity          int64           `json:"quantity"`
	DenominationValue decimal.Decimal `json:"denominationValue"`
}

// Amount is the value of this line: quantity x denomination value.
func (l CashTransactionDetailLine) Amount() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.DenominationValue)
}

// CashAdjustment is a physical cash count taken against a register, used to
// open it or to reconcile it against the ledger's theoretical amount.
type CashAdjustment struct {
	AdjustmentID string               `json:"adjustmentID"`
	AccountID    string               `json:"accountID"`
	Type         AdjustmentType       `json:"type"`
	DateOf       time.Time            `json:"dateOf"`
	Comment      string               `json:"comment"` // sign-off reason for FORCING_BALANCE
	Details      []CashAdjustmentLine `json:"details"`
	AuditFields
}

// TotalAmount is the counted cash: sum over lines of quantity x denomination value.
func (a CashAdjustment) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range a.Details {
		total = total.Add(line.Amount())
	}
	return total
}

// CashAdjustmentLine is one denomination bucket of a physical count.
type CashAdjustmentLine struct {
	LineID            string          `json:"lineID"`
	AdjustmentID      string          `json:"adjustmentID"`
	DenominationID    string          `json:"denominationID"`
	Quantity          int64           `json:"quantity"`
	DenominationValue decimal.Decimal `json:"denominationValue"`
}

// Amount is the value of this line: quantity x denomination value.
func (l CashAdjustmentLine) Amount() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.DenominationValue)
}

var cashInOnly = map[TransactionOperation]bool{
	CashSalePayment:   true,
	CashSupply:        true,
	CashCorrectionIn:  true,
	CashMiscExpenseIn: true,
}

var cashOutOnly = map[TransactionOperation]bool{
	CashBankTransfert:  true,
	CashCorrectionOut:  true,
	CashMiscExpenseOut: true,
}

// ValidateTransactionCoherence enforces the direction/operation partition for
// cash transactions. Every operation belongs to exactly one direction; the
// flexible cases are expressed as split CORRECTION_IN/_OUT and
// MISC_EXPENSE_IN/_OUT values.
func ValidateTransactionCoherence(direction TransactionDirection, operation TransactionOperation) error {
	switch direction {
	case CashIn:
		if cashOutOnly[operation] {
			return fmt.Errorf("operation %s cannot be used with IN direction", operation)
		}
	case CashOut:
		if cashInOnly[operation] {
			return fmt.Errorf("operation %s cannot be used with OUT direction", operation)
		}
	default:
		return fmt.Errorf("unknown transaction direction %q", direction)
	}
	if !cashInOnly[operation] && !cashOutOnly[operation] {
		return fmt.Errorf("unknown transaction operation %q", operation)
	}
	return nil
}
