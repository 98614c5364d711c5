package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// DenominationCount is one bucket of a physical count or transaction: so many
// notes or coins of one denomination.
type DenominationCount struct {
	DenominationID string `json:"denominationID" binding:"required"`
	Quantity       int64  `json:"quantity" binding:"required,gt=0"`
}

// OpenCashAccountRequest opens the day's register for an area. The counts
// describe the opening float physically put in the drawer.
type OpenCashAccountRequest struct {
	AreaID string              `json:"areaID" binding:"required"`
	UserID string              `json:"userID"`
	DateOf *time.Time          `json:"dateOf"`
	Counts []DenominationCount `json:"counts" binding:"required,dive"`
}

// ListCashAccountsParams narrows an account listing.
type ListCashAccountsParams struct {
	DateBegin *time.Time `form:"dateBegin" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"dateEnd" time_format:"2006-01-02"`
}

// CreateCashTransactionRequest records one money movement on a register.
type CreateCashTransactionRequest struct {
	AccountID  string                      `json:"accountID" binding:"required"`
	Direction  domain.TransactionDirection `json:"direction" binding:"required,oneof=IN OUT"`
	Operation  domain.TransactionOperation `json:"operation" binding:"required"`
	DateOf     *time.Time                  `json:"dateOf"`
	PaymentRef *string                     `json:"paymentRef"`
	Counts     []DenominationCount         `json:"counts" binding:"required,min=1,dive"`
}

// UpdateCashTransactionLinesRequest replaces the denomination breakdown of a
// non-final transaction.
type UpdateCashTransactionLinesRequest struct {
	Counts []DenominationCount `json:"counts" binding:"required,min=1,dive"`
	Reason string              `json:"reason" binding:"required"`
}

// SetTransactionStatusRequest carries a lifecycle transition.
type SetTransactionStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required"`
	Reason string                   `json:"reason"`
}

// ListCashTransactionsParams narrows and paginates a transaction history.
type ListCashTransactionsParams struct {
	AccountID string     `form:"accountID"`
	AreaID    string     `form:"areaID"`
	DateBegin *time.Time `form:"dateBegin" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"dateEnd" time_format:"2006-01-02"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// BalanceAccountRequest reconciles a register against its theoretical amount.
type BalanceAccountRequest struct {
	Counts []DenominationCount `json:"counts" binding:"required,dive"`
}

// ForceBalanceRequest resolves a NOT_BALANCED register by accepting the
// discrepancy.
type ForceBalanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateDenominationRequest adds a note or coin value to the catalog.
type CreateDenominationRequest struct {
	Name     string          `json:"name" binding:"required"`
	Value    decimal.Decimal `json:"value" binding:"required,dgt0"`
	Currency string          `json:"currency" binding:"required"`
}

// CashAccountResponse defines the data returned for a register.
type CashAccountResponse struct {
	AccountID       string                  `json:"accountID"`
	AreaID          string                  `json:"areaID"`
	UserID          string                  `json:"userID"`
	AmountInit      decimal.Decimal         `json:"amountInit"`
	BalancingAmount decimal.Decimal         `json:"balancingAmount"`
	State           domain.CashAccountState `json:"state"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy   string                  `json:"lastUpdatedBy"`
}

// CashTransactionLineResponse is one denomination bucket of a transaction.
type CashTransactionLineResponse struct {
	LineID            string          `json:"lineID"`
	DenominationID    string          `json:"denominationID"`
	Quantity          int64           `json:"quantity"`
	DenominationValue decimal.Decimal `json:"denominationValue"`
	Amount            decimal.Decimal `json:"amount"`
}

// CashTransactionResponse defines the data returned for a transaction. The
// total is derived from the lines at response time, never stored.
type CashTransactionResponse struct {
	TransactionID string                        `json:"transactionID"`
	AccountID     string                        `json:"accountID"`
	Direction     domain.TransactionDirection   `json:"direction"`
	Operation     domain.TransactionOperation   `json:"operation"`
	Status        domain.TransactionStatus      `json:"status"`
	DateOf        time.Time                     `json:"dateOf"`
	PaymentRef    *string                       `json:"paymentRef,omitempty"`
	TotalAmount   decimal.Decimal               `json:"totalAmount"`
	Details       []CashTransactionLineResponse `json:"details"`
	CreatedAt     time.Time                     `json:"createdAt"`
	CreatedBy     string                        `json:"createdBy"`
}

// ListCashTransactionsResponse wraps a page of transactions, newest first.
type ListCashTransactionsResponse struct {
	Transactions []CashTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// TransactionCountsResponse tallies an account's transactions for one
// business date. IN and OUT exclude cancelled rows.
type TransactionCountsResponse struct {
	AccountID string `json:"accountID"`
	Date      string `json:"date"`
	In        int64  `json:"in"`
	Out       int64  `json:"out"`
	Canceled  int64  `json:"canceled"`
}

// BalanceReport compares the register's ledger against a physical count.
type BalanceReport struct {
	AccountID          string                  `json:"accountID"`
	AmountInit         decimal.Decimal         `json:"amountInit"`
	TheoreticalBalance decimal.Decimal         `json:"theoreticalBalance"`
	CountedAmount      decimal.Decimal         `json:"countedAmount"`
	Discrepancy        decimal.Decimal         `json:"discrepancy"`
	Balanced           bool                    `json:"balanced"`
	State              domain.CashAccountState `json:"state"`
}

// ToCashAccountResponse converts a domain.CashAccount to its DTO.
func ToCashAccountResponse(a *domain.CashAccount) CashAccountResponse {
	return CashAccountResponse{
		AccountID:       a.AccountID,
		AreaID:          a.AreaID,
		UserID:          a.UserID,
		AmountInit:      a.AmountInit,
		BalancingAmount: a.BalancingAmount,
		State:           a.State,
		CreatedAt:       a.CreatedAt,
		CreatedBy:       a.CreatedBy,
		LastUpdatedAt:   a.LastUpdatedAt,
		LastUpdatedBy:   a.LastUpdatedBy,
	}
}

// ToCashTransactionResponse converts a domain.CashTransaction to its DTO.
func ToCashTransactionResponse(t *domain.CashTransaction) CashTransactionResponse {
	lines := make([]CashTransactionLineResponse, len(t.Details))
	for i, line := range t.Details {
		lines[i] = CashTransactionLineResponse{
			LineID:            line.LineID,
			DenominationID:    line.DenominationID,
			Quantity:          line.Quantity,
			DenominationValue: line.DenominationValue,
			Amount:            line.Amount(),
		}
	}
	return CashTransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Direction:     t.Direction,
		Operation:     t.Operation,
		Status:        t.Status,
		DateOf:        t.DateOf,
		PaymentRef:    t.PaymentRef,
		TotalAmount:   t.TotalAmount(),
		Details:       lines,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToCashTransactionResponses converts a slice of transactions to DTOs.
func ToCashTransactionResponses(transactions []domain.CashTransaction) []CashTransactionResponse {
	responses := make([]CashTransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToCashTransactionResponse(&transactions[i])
	}
	return responses
}
