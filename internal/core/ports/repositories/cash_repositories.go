package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// CashLedgerFilter narrows a transaction history query. The cursor pair
// points at the last row of the previous page in (date_of DESC, created_at
// DESC) order.
type CashLedgerFilter struct {
	AccountID       string
	AreaID          string
	DateBegin       time.Time
	DateEnd         time.Time
	Statuses        []domain.TransactionStatus
	CursorDateOf    *time.Time
	CursorCreatedAt *time.Time
	Limit           int
}

// TransactionDayCounts tallies an account's transactions on one business
// date. IN and OUT exclude cancelled rows, which are counted on their own.
type TransactionDayCounts struct {
	In       int64
	Out      int64
	Canceled int64
}

// CashReader defines read operations for cash accounts and transactions.
type CashReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)

	// FindOpenAccountByArea returns the single OPEN account for an area on
	// the given business date, apperrors.ErrNotFound when none is open.
	FindOpenAccountByArea(ctx context.Context, areaID string, date time.Time) (*domain.CashAccount, error)

	ListAccountsByArea(ctx context.Context, areaID string, dateBegin, dateEnd time.Time) ([]domain.CashAccount, error)

	// FindTransactionByID loads the transaction header with its detail lines.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// ListTransactions returns transactions with lines, newest first.
	ListTransactions(ctx context.Context, filter CashLedgerFilter) ([]domain.CashTransaction, error)

	// SumCompletedByAccount returns the signed sum of every COMPLETED
	// transaction on the account. Used for the theoretical balance.
	SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)

	// CountTransactionsByStatus returns per-status transaction counts for an
	// account, used to refuse balancing while work is pending.
	CountTransactionsByStatus(ctx context.Context, accountID string) (map[domain.TransactionStatus]int64, error)

	// CountTransactionsForDay tallies the account's transactions whose
	// date_of falls on the given UTC calendar day.
	CountTransactionsForDay(ctx context.Context, accountID string, day time.Time) (TransactionDayCounts, error)

	// ListAdjustmentsByAccount returns the account's adjustments with lines.
	ListAdjustmentsByAccount(ctx context.Context, accountID string) ([]domain.CashAdjustment, error)
}

// CashWriter defines write operations on the cash ledger. Header and lines
// are always persisted in one storage transaction.
type CashWriter interface {
	// SaveAccount inserts an account, refusing a second OPEN account for the
	// same area and date.
	SaveAccount(ctx context.Context, account domain.CashAccount) error

	UpdateAccountState(ctx context.Context, accountID string, state domain.CashAccountState, balancingAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// SaveTransaction inserts the header and all denomination lines. The
	// account row is locked and checked OPEN inside the transaction.
	SaveTransaction(ctx context.Context, transaction domain.CashTransaction) error

	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason *string, updatedBy string, updatedAt time.Time) error

	// ReplaceTransactionLines deletes and reinserts the denomination lines of
	// a non-final transaction.
	ReplaceTransactionLines(ctx context.Context, transactionID string, lines []domain.CashTransactionDetailLine, updatedBy string, updatedAt time.Time) error

	// SaveAdjustment inserts the adjustment with its lines and, in the same
	// storage transaction, moves the account to the resulting state and
	// records the counted amount when one is given.
	SaveAdjustment(ctx context.Context, adjustment domain.CashAdjustment, accountState domain.CashAccountState, balancingAmount *decimal.Decimal) error
}

// CashRepositoryFacade combines all cash-ledger repository interfaces.
type CashRepositoryFacade interface {
	CashReader
	CashWriter
}
