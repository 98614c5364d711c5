package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

const accountColumns = `
	account_id, area_id, user_id, amount_init, balancing_amount, state,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `
	transaction_id, account_id, direction, operation, status, date_of,
	payment_ref, updated_reason,
	created_at, created_by, last_updated_at, last_updated_by`

type pgxCashRepository struct {
	BaseRepository
}

func newPgxCashRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.CashRepositoryFacade {
	return &pgxCashRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func scanAccount(row pgx.Row) (*domain.CashAccount, error) {
	var a domain.CashAccount
	err := row.Scan(
		&a.AccountID, &a.AreaID, &a.UserID, &a.AmountInit, &a.BalancingAmount, &a.State,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanTransaction(row pgx.Row) (*domain.CashTransaction, error) {
	var t domain.CashTransaction
	var paymentRef sql.NullString
	err := row.Scan(
		&t.TransactionID, &t.AccountID, &t.Direction, &t.Operation, &t.Status, &t.DateOf,
		&paymentRef, &t.UpdatedReason,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if paymentRef.Valid {
		t.PaymentRef = &paymentRef.String
	}
	return &t, nil
}

func (r *pgxCashRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE account_id = $1`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash account", err)
	}
	return account, nil
}

func (r *pgxCashRepository) FindOpenAccountByArea(ctx context.Context, areaID string, date time.Time) (*domain.CashAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM cash_accounts
		WHERE area_id = $1 AND state = $2 AND created_at::date = $3::date`

	account, err := scanAccount(r.Pool.QueryRow(ctx, query, areaID, domain.AccountOpen, date.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open cash account", err)
	}
	return account, nil
}

func (r *pgxCashRepository) ListAccountsByArea(ctx context.Context, areaID string, dateBegin, dateEnd time.Time) ([]domain.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE area_id = $1`
	args := []interface{}{areaID}

	if !dateBegin.IsZero() {
		args = append(args, dateBegin)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !dateEnd.IsZero() {
		args = append(args, dateEnd)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cash accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.CashAccount, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash account", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read cash accounts", err)
	}
	return accounts, nil
}

func (r *pgxCashRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM cash_transactions WHERE transaction_id = $1`
	transaction, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash transaction", err)
	}

	lines, err := r.loadTransactionLines(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	transaction.Details = lines[transactionID]
	return transaction, nil
}

// loadTransactionLines fetches the denomination lines for a set of
// transactions in one query, denomination value included.
func (r *pgxCashRepository) loadTransactionLines(ctx context.Context, transactionIDs []string) (map[string][]domain.CashTransactionDetailLine, error) {
	query := `
		SELECT l.line_id, l.transaction_id, l.denomination_id, l.quantity, d.value
		FROM cash_transaction_lines l
		JOIN denominations d ON d.denomination_id = l.denomination_id
		WHERE l.transaction_id = ANY($1)
		ORDER BY d.value DESC`

	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load transaction lines", err)
	}
	defer rows.Close()

	byTransaction := make(map[string][]domain.CashTransactionDetailLine)
	for rows.Next() {
		var l domain.CashTransactionDetailLine
		if err := rows.Scan(&l.LineID, &l.TransactionID, &l.DenominationID, &l.Quantity, &l.DenominationValue); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction line", err)
		}
		byTransaction[l.TransactionID] = append(byTransaction[l.TransactionID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction lines", err)
	}
	return byTransaction, nil
}

func (r *pgxCashRepository) ListTransactions(ctx context.Context, filter portsrepo.CashLedgerFilter) ([]domain.CashTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM cash_transactions t
		JOIN cash_accounts a ON a.account_id = t.account_id
		WHERE 1=1`
	args := make([]interface{}, 0, 7)

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += ` AND t.account_id = $` + strconv.Itoa(len(args))
	}
	if filter.AreaID != "" {
		args = append(args, filter.AreaID)
		query += ` AND a.area_id = $` + strconv.Itoa(len(args))
	}
	if !filter.DateBegin.IsZero() {
		args = append(args, filter.DateBegin)
		query += ` AND t.date_of >= $` + strconv.Itoa(len(args))
	}
	if !filter.DateEnd.IsZero() {
		args = append(args, filter.DateEnd)
		query += ` AND t.date_of <= $` + strconv.Itoa(len(args))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		query += ` AND t.status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if filter.CursorDateOf != nil && filter.CursorCreatedAt != nil {
		args = append(args, *filter.CursorDateOf, *filter.CursorCreatedAt)
		query += fmt.Sprintf(` AND (t.date_of, t.created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY t.date_of DESC, t.created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cash transactions", err)
	}
	defer rows.Close()

	transactions := make([]domain.CashTransaction, 0)
	ids := make([]string, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash transaction", err)
		}
		transactions = append(transactions, *t)
		ids = append(ids, t.TransactionID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read cash transactions", err)
	}
	if len(ids) == 0 {
		return transactions, nil
	}

	lines, err := r.loadTransactionLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].Details = lines[transactions[i].TransactionID]
	}
	return transactions, nil
}

func (r *pgxCashRepository) SumCompletedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN t.direction = 'OUT' THEN -(l.quantity * d.value) ELSE l.quantity * d.value END
		), 0)
		FROM cash_transactions t
		JOIN cash_transaction_lines l ON l.transaction_id = t.transaction_id
		JOIN denominations d ON d.denomination_id = l.denomination_id
		WHERE t.account_id = $1 AND t.status = $2`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, domain.TransactionCompleted).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum cash transactions", err)
	}
	return sum, nil
}

func (r *pgxCashRepository) CountTransactionsByStatus(ctx context.Context, accountID string) (map[domain.TransactionStatus]int64, error) {
	query := `
		SELECT status, COUNT(*)
		FROM cash_transactions
		WHERE account_id = $1
		GROUP BY status`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count cash transactions", err)
	}
	defer rows.Close()

	counts := make(map[domain.TransactionStatus]int64)
	for rows.Next() {
		var status domain.TransactionStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transaction counts", err)
	}
	return counts, nil
}

func (r *pgxCashRepository) CountTransactionsForDay(ctx context.Context, accountID string, day time.Time) (portsrepo.TransactionDayCounts, error) {
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE direction = $4 AND status <> $6),
			COUNT(*) FILTER (WHERE direction = $5 AND status <> $6),
			COUNT(*) FILTER (WHERE status = $6)
		FROM cash_transactions
		WHERE account_id = $1 AND date_of >= $2 AND date_of < $3`

	var counts portsrepo.TransactionDayCounts
	err := r.Pool.QueryRow(ctx, query,
		accountID, dayStart, dayEnd,
		domain.CashIn, domain.CashOut, domain.TransactionCanceled,
	).Scan(&counts.In, &counts.Out, &counts.Canceled)
	if err != nil {
		return portsrepo.TransactionDayCounts{}, apperrors.NewAppError(500, "failed to count transactions for day", err)
	}
	return counts, nil
}

func (r *pgxCashRepository) ListAdjustmentsByAccount(ctx context.Context, accountID string) ([]domain.CashAdjustment, error) {
	query := `
		SELECT adjustment_id, account_id, type, date_of, comment,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM cash_adjustments
		WHERE account_id = $1
		ORDER BY created_at DESC`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cash adjustments", err)
	}
	defer rows.Close()

	adjustments := make([]domain.CashAdjustment, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var a domain.CashAdjustment
		err := rows.Scan(
			&a.AdjustmentID, &a.AccountID, &a.Type, &a.DateOf, &a.Comment,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash adjustment", err)
		}
		adjustments = append(adjustments, a)
		ids = append(ids, a.AdjustmentID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read cash adjustments", err)
	}
	if len(ids) == 0 {
		return adjustments, nil
	}

	lineQuery := `
		SELECT l.line_id, l.adjustment_id, l.denomination_id, l.quantity, d.value
		FROM cash_adjustment_lines l
		JOIN denominations d ON d.denomination_id = l.denomination_id
		WHERE l.adjustment_id = ANY($1)
		ORDER BY d.value DESC`

	lineRows, err := r.Pool.Query(ctx, lineQuery, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load adjustment lines", err)
	}
	defer lineRows.Close()

	byAdjustment := make(map[string][]domain.CashAdjustmentLine)
	for lineRows.Next() {
		var l domain.CashAdjustmentLine
		if err := lineRows.Scan(&l.LineID, &l.AdjustmentID, &l.DenominationID, &l.Quantity, &l.DenominationValue); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment line", err)
		}
		byAdjustment[l.AdjustmentID] = append(byAdjustment[l.AdjustmentID], l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read adjustment lines", err)
	}
	for i := range adjustments {
		adjustments[i].Details = byAdjustment[adjustments[i].AdjustmentID]
	}
	return adjustments, nil
}

func (r *pgxCashRepository) SaveAccount(ctx context.Context, account domain.CashAccount) error {
	query := `
		INSERT INTO cash_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.AreaID, account.UserID,
		account.AmountInit, account.BalancingAmount, account.State,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		// the partial unique index on OPEN accounts rejects a second open
		// register for the same area
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: area %s already has an open cash account", apperrors.ErrConflict, account.AreaID)
		}
		return apperrors.NewAppError(500, "failed to save cash account", err)
	}
	return nil
}

func (r *pgxCashRepository) UpdateAccountState(ctx context.Context, accountID string, state domain.CashAccountState, balancingAmount *decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE cash_accounts
		SET state = $2, balancing_amount = COALESCE($3, balancing_amount),
		    last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1`

	tag, err := r.Pool.Exec(ctx, query, accountID, state, balancingAmount, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash account state", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// lockAccount locks the account row inside tx and returns its state.
func (r *pgxCashRepository) lockAccount(ctx context.Context, tx pgx.Tx, accountID string) (domain.CashAccountState, error) {
	var state domain.CashAccountState
	err := tx.QueryRow(ctx, `SELECT state FROM cash_accounts WHERE account_id = $1 FOR UPDATE`, accountID).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to lock cash account", err)
	}
	return state, nil
}

func (r *pgxCashRepository) SaveTransaction(ctx context.Context, transaction domain.CashTransaction) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		state, err := r.lockAccount(ctx, tx, transaction.AccountID)
		if err != nil {
			return err
		}
		if state != domain.AccountOpen {
			return fmt.Errorf("%w: account %s is %s", domain.ErrAccountNotOpen, transaction.AccountID, state)
		}

		query := `
			INSERT INTO cash_transactions (` + transactionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

		_, err = tx.Exec(ctx, query,
			transaction.TransactionID, transaction.AccountID,
			transaction.Direction, transaction.Operation, transaction.Status, transaction.DateOf,
			transaction.PaymentRef, transaction.UpdatedReason,
			transaction.CreatedAt, transaction.CreatedBy, transaction.LastUpdatedAt, transaction.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save cash transaction", err)
		}

		return r.insertTransactionLines(ctx, tx, transaction.TransactionID, transaction.Details)
	})
}

func (r *pgxCashRepository) insertTransactionLines(ctx context.Context, tx pgx.Tx, transactionID string, lines []domain.CashTransactionDetailLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO cash_transaction_lines (line_id, transaction_id, denomination_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			line.LineID, transactionID, line.DenominationID, line.Quantity,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to save transaction lines", err)
		}
	}
	return results.Close()
}

func (r *pgxCashRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, reason *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE cash_transactions
		SET status = $2, updated_reason = COALESCE($3, updated_reason),
		    last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1`

	tag, err := r.Pool.Exec(ctx, query, transactionID, status, reason, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxCashRepository) ReplaceTransactionLines(ctx context.Context, transactionID string, lines []domain.CashTransactionDetailLine, updatedBy string, updatedAt time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cash_transaction_lines WHERE transaction_id = $1`, transactionID); err != nil {
			return apperrors.NewAppError(500, "failed to delete transaction lines", err)
		}
		if err := r.insertTransactionLines(ctx, tx, transactionID, lines); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE cash_transactions
			SET last_updated_at = $2, last_updated_by = $3
			WHERE transaction_id = $1`,
			transactionID, updatedAt, updatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to touch cash transaction", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *pgxCashRepository) SaveAdjustment(ctx context.Context, adjustment domain.CashAdjustment, accountState domain.CashAccountState, balancingAmount *decimal.Decimal) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := r.lockAccount(ctx, tx, adjustment.AccountID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO cash_adjustments (adjustment_id, account_id, type, date_of, comment,
			                              created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			adjustment.AdjustmentID, adjustment.AccountID, adjustment.Type,
			adjustment.DateOf, adjustment.Comment,
			adjustment.CreatedAt, adjustment.CreatedBy, adjustment.LastUpdatedAt, adjustment.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save cash adjustment", err)
		}

		if len(adjustment.Details) > 0 {
			batch := &pgx.Batch{}
			for _, line := range adjustment.Details {
				batch.Queue(`
					INSERT INTO cash_adjustment_lines (line_id, adjustment_id, denomination_id, quantity)
					VALUES ($1, $2, $3, $4)`,
					line.LineID, adjustment.AdjustmentID, line.DenominationID, line.Quantity,
				)
			}
			results := tx.SendBatch(ctx, batch)
			defer results.Close()
			for range adjustment.Details {
				if _, err := results.Exec(); err != nil {
					return apperrors.NewAppError(500, "failed to save adjustment lines", err)
				}
			}
			if err := results.Close(); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE cash_accounts
			SET state = $2, balancing_amount = COALESCE($3, balancing_amount),
			    last_updated_at = $4, last_updated_by = $5
			WHERE account_id = $1`,
			adjustment.AccountID, accountState, balancingAmount,
			adjustment.LastUpdatedAt, adjustment.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update cash account state", err)
		}
		return nil
	})
}
