package services

import (
	"context"
	"time"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// CashAccountSvc defines operations on cash accounts and their lifecycle
type CashAccountSvc interface {
	// OpenAccount opens the day's cash account for an area, recording the
	// opening float as an OPENING adjustment.
	OpenAccount(ctx context.Context, req dto.OpenCashAccountRequest, userID string) (*domain.CashAccount, error)

	// GetAccountByID retrieves a cash account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error)

	// ListAccounts retrieves cash accounts for an area over a date range.
	ListAccounts(ctx context.Context, areaID string, params dto.ListCashAccountsParams) ([]domain.CashAccount, error)

	// CloseAccount moves an OPEN account to CLOSED so no further
	// transactions are accepted.
	CloseAccount(ctx context.Context, accountID string, userID string) (*domain.CashAccount, error)
}

// CashTransactionSvc defines operations on cash transactions
type CashTransactionSvc interface {
	// GetTransactionByID retrieves a transaction with its denomination lines.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// ListTransactions retrieves a paginated transaction history.
	ListTransactions(ctx context.Context, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error)

	// CreateTransaction validates direction and operation coherence and
	// persists the transaction with its denomination lines.
	CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, userID string) (*domain.CashTransaction, error)

	// UpdateTransactionLines replaces the denomination lines of a non-final
	// transaction.
	UpdateTransactionLines(ctx context.Context, transactionID string, req dto.UpdateCashTransactionLinesRequest, userID string) (*domain.CashTransaction, error)

	// SetTransactionStatus transitions a transaction through its lifecycle.
	// Only COMPLETED transactions count toward the theoretical balance.
	SetTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason string, userID string) (*domain.CashTransaction, error)

	// CountTransactions tallies an account's IN, OUT and cancelled
	// transactions for one business date.
	CountTransactions(ctx context.Context, accountID string, day time.Time) (*dto.TransactionCountsResponse, error)
}

// CashBalanceSvc defines the balancing operations of a cash account
type CashBalanceSvc interface {
	// GetBalanceReport computes theoretical against counted balance for an
	// account without changing any state.
	GetBalanceReport(ctx context.Context, accountID string, counted []dto.DenominationCount) (*dto.BalanceReport, error)

	// BalanceAccount counts the drawer against the theoretical balance and
	// moves the account to BALANCED or NOT_BALANCED, recording a BALANCING
	// adjustment. Refuses while non-final transactions remain.
	BalanceAccount(ctx context.Context, accountID string, req dto.BalanceAccountRequest, userID string) (*dto.BalanceReport, error)

	// ForceBalance resolves a NOT_BALANCED account by recording a
	// FORCING_BALANCE adjustment for the accepted discrepancy.
	ForceBalance(ctx context.Context, accountID string, req dto.ForceBalanceRequest, userID string) (*domain.CashAccount, error)
}

// DenominationSvc manages the currency denomination catalog
type DenominationSvc interface {
	ListDenominations(ctx context.Context) ([]domain.Denomination, error)
	CreateDenomination(ctx context.Context, req dto.CreateDenominationRequest, userID string) (*domain.Denomination, error)
}

// CashSvcFacade combines all cash-ledger service interfaces
type CashSvcFacade interface {
	CashAccountSvc
	CashTransactionSvc
	CashBalanceSvc
	DenominationSvc
}
