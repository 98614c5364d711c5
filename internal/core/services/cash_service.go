package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
	"github.com/tahina-mg/pos_management_app/internal/middleware"
	"github.com/tahina-mg/pos_management_app/internal/utils/pagination"
)

// nonFinalStatuses are the transaction states that block balancing: work in
// these states may still change the theoretical amount.
var nonFinalStatuses = []domain.TransactionStatus{
	domain.TransactionPending,
	domain.TransactionOpened,
	domain.TransactionFinalized,
	domain.TransactionPartial,
}

// cashService provides register, transaction and balancing operations.
type cashService struct {
	cashRepo         portsrepo.CashRepositoryFacade
	denominationRepo portsrepo.DenominationRepository
}

// NewCashService creates a new CashService.
func NewCashService(cashRepo portsrepo.CashRepositoryFacade, denominationRepo portsrepo.DenominationRepository) portssvc.CashSvcFacade {
	return &cashService{
		cashRepo:         cashRepo,
		denominationRepo: denominationRepo,
	}
}

var _ portssvc.CashSvcFacade = (*cashService)(nil)

// resolveCounts turns denomination counts into priced lines, validating every
// denomination id against the catalog.
func (s *cashService) resolveCounts(ctx context.Context, counts []dto.DenominationCount) ([]domain.CashTransactionDetailLine, decimal.Decimal, error) {
	denominations, err := s.denominationRepo.ListDenominations(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load denominations: %w", err)
	}
	values := make(map[string]decimal.Decimal, len(denominations))
	for _, d := range denominations {
		values[d.DenominationID] = d.Value
	}

	lines := make([]domain.CashTransactionDetailLine, len(counts))
	total := decimal.Zero
	for i, count := range counts {
		value, ok := values[count.DenominationID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: unknown denomination %s", apperrors.ErrValidation, count.DenominationID)
		}
		if count.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: denomination quantity must be positive", apperrors.ErrValidation)
		}
		lines[i] = domain.CashTransactionDetailLine{
			LineID:            uuid.NewString(),
			DenominationID:    count.DenominationID,
			Quantity:          count.Quantity,
			DenominationValue: value,
		}
		total = total.Add(lines[i].Amount())
	}
	return lines, total, nil
}

// OpenAccount opens the day's register for an area. The physical float is
// recorded as an OPENING adjustment so every counted note is traceable.
func (s *cashService) OpenAccount(ctx context.Context, req dto.OpenCashAccountRequest, userID string) (*domain.CashAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	lines, total, err := s.resolveCounts(ctx, req.Counts)
	if err != nil {
		return nil, err
	}

	operator := req.UserID
	if operator == "" {
		operator = userID
	}

	account := domain.CashAccount{
		AccountID:       uuid.NewString(),
		AreaID:          req.AreaID,
		UserID:          operator,
		AmountInit:      total,
		BalancingAmount: decimal.Zero,
		State:           domain.AccountOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cashRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to open cash account", slog.String("error", err.Error()), slog.String("area_id", req.AreaID))
		return nil, fmt.Errorf("failed to open cash account: %w", err)
	}

	adjustment := domain.CashAdjustment{
		AdjustmentID: uuid.NewString(),
		AccountID:    account.AccountID,
		Type:         domain.AdjustmentOpening,
		DateOf:       dateOf,
		Details:      toAdjustmentLines(lines),
		AuditFields:  account.AuditFields,
	}
	for i := range adjustment.Details {
		adjustment.Details[i].AdjustmentID = adjustment.AdjustmentID
	}
	if err := s.cashRepo.SaveAdjustment(ctx, adjustment, domain.AccountOpen, nil); err != nil {
		logger.Error("Failed to record opening adjustment", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to record opening count: %w", err)
	}

	logger.Info("Cash account opened",
		slog.String("account_id", account.AccountID),
		slog.String("area_id", account.AreaID),
		slog.String("amount_init", total.String()),
	)
	return &account, nil
}

func toAdjustmentLines(lines []domain.CashTransactionDetailLine) []domain.CashAdjustmentLine {
	out := make([]domain.CashAdjustmentLine, len(lines))
	for i, l := range lines {
		out[i] = domain.CashAdjustmentLine{
			LineID:            uuid.NewString(),
			DenominationID:    l.DenominationID,
			Quantity:          l.Quantity,
			DenominationValue: l.DenominationValue,
		}
	}
	return out
}

// GetAccountByID retrieves a cash account.
func (s *cashService) GetAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	account, err := s.cashRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves cash accounts for an area over a date range.
func (s *cashService) ListAccounts(ctx context.Context, areaID string, params dto.ListCashAccountsParams) ([]domain.CashAccount, error) {
	var begin, end time.Time
	if params.DateBegin != nil {
		begin = *params.DateBegin
	}
	if params.DateEnd != nil {
		end = *params.DateEnd
	}
	accounts, err := s.cashRepo.ListAccountsByArea(ctx, areaID, begin, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash accounts for area %s: %w", areaID, err)
	}
	return accounts, nil
}

// CloseAccount moves an OPEN account to CLOSED.
func (s *cashService) CloseAccount(ctx context.Context, accountID string, userID string) (*domain.CashAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.cashRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}
	if account.State == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is already closed", apperrors.ErrConflict, accountID)
	}

	now := time.Now().UTC()
	if err := s.cashRepo.UpdateAccountState(ctx, accountID, domain.AccountClosed, nil, userID, now); err != nil {
		logger.Error("Failed to close cash account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to close cash account %s: %w", accountID, err)
	}

	account.State = domain.AccountClosed
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	logger.Info("Cash account closed", slog.String("account_id", accountID))
	return account, nil
}

// CreateTransaction validates coherence and persists the transaction with
// its denomination breakdown. The repo checks the account is OPEN under a
// row lock in the same storage transaction.
func (s *cashService) CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, userID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := domain.ValidateTransactionCoherence(req.Direction, req.Operation); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperationDirection, err)
	}

	account, err := s.cashRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", req.AccountID, err)
	}
	if account.State == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is closed", domain.ErrAccountNotOpen, req.AccountID)
	}

	lines, total, err := s.resolveCounts(ctx, req.Counts)
	if err != nil {
		return nil, err
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	transaction := domain.CashTransaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		Direction:     req.Direction,
		Operation:     req.Operation,
		Status:        domain.TransactionPending,
		DateOf:        dateOf,
		PaymentRef:    req.PaymentRef,
		Details:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i := range transaction.Details {
		transaction.Details[i].TransactionID = transaction.TransactionID
	}

	if err := s.cashRepo.SaveTransaction(ctx, transaction); err != nil {
		logger.Error("Failed to save cash transaction", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save cash transaction: %w", err)
	}

	logger.Info("Cash transaction recorded",
		slog.String("transaction_id", transaction.TransactionID),
		slog.String("account_id", transaction.AccountID),
		slog.String("operation", string(transaction.Operation)),
		slog.String("total", transaction.TotalAmount().String()),
	)
	return &transaction, nil
}

// GetTransactionByID retrieves a transaction with its lines.
func (s *cashService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	transaction, err := s.cashRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash transaction %s: %w", transactionID, err)
	}
	return transaction, nil
}

// ListTransactions retrieves a paginated transaction history, newest first.
func (s *cashService) ListTransactions(ctx context.Context, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.CashLedgerFilter{
		AccountID: params.AccountID,
		AreaID:    params.AreaID,
		Limit:     limit + 1,
	}
	if params.DateBegin != nil {
		filter.DateBegin = *params.DateBegin
	}
	if params.DateEnd != nil {
		filter.DateEnd = *params.DateEnd
	}
	if params.NextToken != nil {
		dateOf, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.CursorDateOf = &dateOf
		filter.CursorCreatedAt = &createdAt
	}

	transactions, err := s.cashRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}

	var nextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeToken(last.DateOf, last.CreatedAt)
		nextToken = &token
	}

	return &dto.ListCashTransactionsResponse{
		Transactions: dto.ToCashTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// UpdateTransactionLines replaces the denomination breakdown of a non-final
// transaction. Final transactions are immutable; corrections go through an
// offsetting CORRECTION transaction.
func (s *cashService) UpdateTransactionLines(ctx context.Context, transactionID string, req dto.UpdateCashTransactionLinesRequest, userID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transaction, err := s.cashRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash transaction %s: %w", transactionID, err)
	}
	if isFinalTransactionStatus(transaction.Status) {
		return nil, fmt.Errorf("%w: transaction %s is %s", apperrors.ErrConflict, transactionID, transaction.Status)
	}

	lines, total, err := s.resolveCounts(ctx, req.Counts)
	if err != nil {
		return nil, err
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	for i := range lines {
		lines[i].TransactionID = transactionID
	}
	if err := s.cashRepo.ReplaceTransactionLines(ctx, transactionID, lines, userID, now); err != nil {
		logger.Error("Failed to replace transaction lines", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to replace transaction lines: %w", err)
	}

	transaction.Details = lines
	transaction.UpdatedReason = req.Reason
	transaction.LastUpdatedAt = now
	transaction.LastUpdatedBy = userID
	return transaction, nil
}

// SetTransactionStatus transitions a transaction through its lifecycle.
// Cancelling a SALE_PAYMENT is refused: money that changed hands has to be
// corrected with an offsetting transaction so the record stays complete.
func (s *cashService) SetTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason string, userID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transaction, err := s.cashRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash transaction %s: %w", transactionID, err)
	}
	if transaction.Status == domain.TransactionCanceled {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrAlreadyCanceled, transactionID)
	}
	if status == domain.TransactionCanceled && transaction.Operation == domain.CashSalePayment {
		return nil, domain.ErrNonCancelableOperation
	}
	// A final status is a one-way door. The only step out of COMPLETED is an
	// explicit cancellation; everything else keeps the record immutable so a
	// counted transaction can never slip back to PENDING and be re-edited.
	if isFinalTransactionStatus(transaction.Status) &&
		!(transaction.Status == domain.TransactionCompleted && status == domain.TransactionCanceled) {
		return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrConflict, transactionID, transaction.Status)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	now := time.Now().UTC()
	if err := s.cashRepo.UpdateTransactionStatus(ctx, transactionID, status, reasonPtr, userID, now); err != nil {
		logger.Error("Failed to update transaction status", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	transaction.Status = status
	if reason != "" {
		transaction.UpdatedReason = reason
	}
	transaction.LastUpdatedAt = now
	transaction.LastUpdatedBy = userID
	logger.Info("Cash transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(status)),
	)
	return transaction, nil
}

// CountTransactions tallies the account's IN, OUT and cancelled transactions
// for one business date.
func (s *cashService) CountTransactions(ctx context.Context, accountID string, day time.Time) (*dto.TransactionCountsResponse, error) {
	if _, err := s.cashRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}

	counts, err := s.cashRepo.CountTransactionsForDay(ctx, accountID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}

	return &dto.TransactionCountsResponse{
		AccountID: accountID,
		Date:      day.UTC().Format("2006-01-02"),
		In:        counts.In,
		Out:       counts.Out,
		Canceled:  counts.Canceled,
	}, nil
}

func isFinalTransactionStatus(status domain.TransactionStatus) bool {
	switch status {
	case domain.TransactionCompleted, domain.TransactionClosed, domain.TransactionCanceled, domain.TransactionRejected, domain.TransactionFailed:
		return true
	}
	return false
}

// theoreticalBalance is the register's expected content: opening float plus
// the signed sum of every COMPLETED transaction.
func (s *cashService) theoreticalBalance(ctx context.Context, account *domain.CashAccount) (decimal.Decimal, error) {
	sum, err := s.cashRepo.SumCompletedByAccount(ctx, account.AccountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed transactions: %w", err)
	}
	return account.AmountInit.Add(sum), nil
}

// GetBalanceReport computes the register's theoretical balance against a
// physical count without changing state.
func (s *cashService) GetBalanceReport(ctx context.Context, accountID string, counted []dto.DenominationCount) (*dto.BalanceReport, error) {
	account, err := s.cashRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}

	theoretical, err := s.theoreticalBalance(ctx, account)
	if err != nil {
		return nil, err
	}

	countedAmount := decimal.Zero
	if len(counted) > 0 {
		_, total, err := s.resolveCounts(ctx, counted)
		if err != nil {
			return nil, err
		}
		countedAmount = total
	}

	discrepancy := countedAmount.Sub(theoretical)
	return &dto.BalanceReport{
		AccountID:          accountID,
		AmountInit:         account.AmountInit,
		TheoreticalBalance: theoretical,
		CountedAmount:      countedAmount,
		Discrepancy:        discrepancy,
		Balanced:           discrepancy.IsZero(),
		State:              account.State,
	}, nil
}

// BalanceAccount reconciles the register. The drawer is counted, the count is
// stored as a BALANCING adjustment, and the account moves to BALANCED when
// the count matches the theoretical amount, NOT_BALANCED otherwise.
// Balancing is refused while non-final transactions remain on the account.
func (s *cashService) BalanceAccount(ctx context.Context, accountID string, req dto.BalanceAccountRequest, userID string) (*dto.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.cashRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}
	if account.State != domain.AccountOpen {
		return nil, fmt.Errorf("%w: account %s is %s", domain.ErrAccountNotOpen, accountID, account.State)
	}

	counts, err := s.cashRepo.CountTransactionsByStatus(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	for _, status := range nonFinalStatuses {
		if counts[status] > 0 {
			return nil, fmt.Errorf("%w: %d transaction(s) still %s", apperrors.ErrConflict, counts[status], status)
		}
	}

	theoretical, err := s.theoreticalBalance(ctx, account)
	if err != nil {
		return nil, err
	}

	lines, countedAmount, err := s.resolveCounts(ctx, req.Counts)
	if err != nil {
		return nil, err
	}

	discrepancy := countedAmount.Sub(theoretical)
	newState := domain.AccountBalanced
	if !discrepancy.IsZero() {
		newState = domain.AccountNotBalanced
	}

	now := time.Now().UTC()
	adjustment := domain.CashAdjustment{
		AdjustmentID: uuid.NewString(),
		AccountID:    accountID,
		Type:         domain.AdjustmentBalancing,
		DateOf:       now,
		Details:      toAdjustmentLines(lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i := range adjustment.Details {
		adjustment.Details[i].AdjustmentID = adjustment.AdjustmentID
	}

	if err := s.cashRepo.SaveAdjustment(ctx, adjustment, newState, &countedAmount); err != nil {
		logger.Error("Failed to save balancing adjustment", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save balancing adjustment: %w", err)
	}

	logger.Info("Cash account balanced",
		slog.String("account_id", accountID),
		slog.String("state", string(newState)),
		slog.String("discrepancy", discrepancy.String()),
	)
	return &dto.BalanceReport{
		AccountID:          accountID,
		AmountInit:         account.AmountInit,
		TheoreticalBalance: theoretical,
		CountedAmount:      countedAmount,
		Discrepancy:        discrepancy,
		Balanced:           discrepancy.IsZero(),
		State:              newState,
	}, nil
}

// ForceBalance resolves a NOT_BALANCED register by accepting the discrepancy.
// The acceptance is recorded as a FORCING_BALANCE adjustment carrying the
// last counted amount, so the audit trail shows who signed it off.
func (s *cashService) ForceBalance(ctx context.Context, accountID string, req dto.ForceBalanceRequest, userID string) (*domain.CashAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.cashRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account %s: %w", accountID, err)
	}
	if account.State != domain.AccountNotBalanced {
		return nil, fmt.Errorf("%w: account %s is %s, only NOT_BALANCED accounts can be forced", apperrors.ErrConflict, accountID, account.State)
	}

	now := time.Now().UTC()
	adjustment := domain.CashAdjustment{
		AdjustmentID: uuid.NewString(),
		AccountID:    accountID,
		Type:         domain.AdjustmentForcingBalance,
		DateOf:       now,
		Comment:      req.Reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cashRepo.SaveAdjustment(ctx, adjustment, domain.AccountBalancedForced, nil); err != nil {
		logger.Error("Failed to save forcing adjustment", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save forcing adjustment: %w", err)
	}

	account.State = domain.AccountBalancedForced
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	logger.Warn("Cash account balance forced",
		slog.String("account_id", accountID),
		slog.String("reason", req.Reason),
		slog.String("forced_by", userID),
	)
	return account, nil
}

// ListDenominations retrieves the denomination catalog.
func (s *cashService) ListDenominations(ctx context.Context) ([]domain.Denomination, error) {
	denominations, err := s.denominationRepo.ListDenominations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list denominations: %w", err)
	}
	return denominations, nil
}

// CreateDenomination adds a note or coin value to the catalog.
func (s *cashService) CreateDenomination(ctx context.Context, req dto.CreateDenominationRequest, userID string) (*domain.Denomination, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Value.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: denomination value must be positive", apperrors.ErrValidation)
	}

	denomination := domain.Denomination{
		DenominationID: uuid.NewString(),
		Name:           req.Name,
		Value:          req.Value,
		Currency:       req.Currency,
	}
	if err := s.denominationRepo.SaveDenomination(ctx, denomination); err != nil {
		logger.Error("Failed to save denomination", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save denomination: %w", err)
	}
	logger.Info("Denomination created", slog.String("denomination_id", denomination.DenominationID), slog.String("value", denomination.Value.String()))
	return &denomination, nil
}
