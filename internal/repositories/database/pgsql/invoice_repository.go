package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

const invoiceColumns = `
	invoice_id, area_id, ref, type, status, date_of, comments, amount_payed,
	purchase_id, order_id, sale_id, supplier_id, customer_id,
	created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `
	payment_id, invoice_id, reference, amount, method, direction, status,
	cash_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

type pgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.InvoiceRepositoryFacade {
	return &pgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID, &inv.AreaID, &inv.Ref, &inv.Type, &inv.Status, &inv.DateOf,
		&inv.Comments, &inv.AmountPayed,
		&inv.PurchaseID, &inv.OrderID, &inv.SaleID, &inv.SupplierID, &inv.CustomerID,
		&inv.CreatedAt, &inv.CreatedBy, &inv.LastUpdatedAt, &inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1`
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice", err)
	}

	lines, err := r.loadInvoiceLines(ctx, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	invoice.Details = lines[invoiceID]
	return invoice, nil
}

func (r *pgxInvoiceRepository) loadInvoiceLines(ctx context.Context, invoiceIDs []string) (map[string][]domain.InvoiceDetailLine, error) {
	query := `
		SELECT line_id, invoice_id, product_id, quantity_requested, quantity_real, unitary_price
		FROM invoice_lines
		WHERE invoice_id = ANY($1)
		ORDER BY line_id`

	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load invoice lines", err)
	}
	defer rows.Close()
	return collectInvoiceLines(rows)
}

func collectInvoiceLines(rows pgx.Rows) (map[string][]domain.InvoiceDetailLine, error) {
	byInvoice := make(map[string][]domain.InvoiceDetailLine)
	for rows.Next() {
		var l domain.InvoiceDetailLine
		err := rows.Scan(&l.LineID, &l.InvoiceID, &l.ProductID, &l.QuantityRequested, &l.QuantityReal, &l.UnitaryPrice)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line", err)
		}
		byInvoice[l.InvoiceID] = append(byInvoice[l.InvoiceID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read invoice lines", err)
	}
	return byInvoice, nil
}

func (r *pgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := make([]interface{}, 0, 7)

	if filter.AreaID != "" {
		args = append(args, filter.AreaID)
		query += ` AND area_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		query += ` AND status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	if !filter.DateBegin.IsZero() {
		args = append(args, filter.DateBegin)
		query += ` AND date_of >= $` + strconv.Itoa(len(args))
	}
	if !filter.DateEnd.IsZero() {
		args = append(args, filter.DateEnd)
		query += ` AND date_of <= $` + strconv.Itoa(len(args))
	}

	args = append(args, filter.Limit, filter.Skip)
	query += fmt.Sprintf(` ORDER BY date_of DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list invoices", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	ids := make([]string, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice", err)
		}
		invoices = append(invoices, *inv)
		ids = append(ids, inv.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read invoices", err)
	}
	if len(ids) == 0 {
		return invoices, nil
	}

	lines, err := r.loadInvoiceLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Details = lines[invoices[i].InvoiceID]
	}
	return invoices, nil
}

func (r *pgxInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE invoice_id = $1 ORDER BY created_at ASC`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID, &p.InvoiceID, &p.Reference, &p.Amount, &p.Method, &p.Direction, &p.Status,
			&p.CashTransactionID, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read payments", err)
	}
	return payments, nil
}

func (r *pgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO invoices (` + invoiceColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

		_, err := tx.Exec(ctx, query,
			invoice.InvoiceID, invoice.AreaID, invoice.Ref, invoice.Type, invoice.Status,
			invoice.DateOf, invoice.Comments, invoice.AmountPayed,
			invoice.PurchaseID, invoice.OrderID, invoice.SaleID, invoice.SupplierID, invoice.CustomerID,
			invoice.CreatedAt, invoice.CreatedBy, invoice.LastUpdatedAt, invoice.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save invoice", err)
		}
		return r.insertInvoiceLines(ctx, tx, invoice.InvoiceID, invoice.Details)
	})
}

func (r *pgxInvoiceRepository) insertInvoiceLines(ctx context.Context, tx pgx.Tx, invoiceID string, lines []domain.InvoiceDetailLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO invoice_lines (line_id, invoice_id, product_id, quantity_requested, quantity_real, unitary_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.LineID, invoiceID, line.ProductID, line.QuantityRequested, line.QuantityReal, line.UnitaryPrice,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to save invoice lines", err)
		}
	}
	return results.Close()
}

func (r *pgxInvoiceRepository) ReplaceInvoiceLines(ctx context.Context, invoiceID string, lines []domain.InvoiceDetailLine, updatedBy string, updatedAt time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID); err != nil {
			return apperrors.NewAppError(500, "failed to delete invoice lines", err)
		}
		if err := r.insertInvoiceLines(ctx, tx, invoiceID, lines); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE invoices
			SET last_updated_at = $2, last_updated_by = $3
			WHERE invoice_id = $1`,
			invoiceID, updatedAt, updatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to touch invoice", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// lockInvoice locks the invoice header inside tx and loads it with its lines.
func (r *pgxInvoiceRepository) lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE`
	invoice, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock invoice", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT line_id, invoice_id, product_id, quantity_requested, quantity_real, unitary_price
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id`, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load invoice lines", err)
	}
	defer rows.Close()
	lines, err := collectInvoiceLines(rows)
	if err != nil {
		return nil, err
	}
	invoice.Details = lines[invoiceID]
	return invoice, nil
}

func (r *pgxInvoiceRepository) ApplyPayment(ctx context.Context, payment domain.Payment) (*domain.Invoice, error) {
	var updated *domain.Invoice
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		invoice, err := r.lockInvoice(ctx, tx, payment.InvoiceID)
		if err != nil {
			return err
		}

		if invoice.Status == domain.InvoiceRejected {
			return fmt.Errorf("%w: invoice %s", domain.ErrRejectedWithPayment, invoice.InvoiceID)
		}

		amountToPay := invoice.AmountToPay()
		settled := invoice.AmountPayed.Add(payment.Amount)
		if settled.GreaterThan(amountToPay) {
			return fmt.Errorf("%w: %s settled against %s owed on invoice %s",
				domain.ErrOverpayment, settled.String(), amountToPay.String(), invoice.InvoiceID)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			payment.PaymentID, payment.InvoiceID, payment.Reference,
			payment.Amount, payment.Method, payment.Direction, payment.Status,
			payment.CashTransactionID,
			payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save payment", err)
		}

		status := invoice.Status
		switch {
		case settled.Equal(amountToPay):
			status = domain.InvoiceClosed
		case status == domain.InvoicePending || status == domain.InvoiceOpened:
			status = domain.InvoicePartial
		}

		_, err = tx.Exec(ctx, `
			UPDATE invoices
			SET amount_payed = $2, status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE invoice_id = $1`,
			invoice.InvoiceID, settled, status, payment.LastUpdatedAt, payment.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update invoice settlement", err)
		}

		invoice.AmountPayed = settled
		invoice.Status = status
		invoice.LastUpdatedAt = payment.LastUpdatedAt
		invoice.LastUpdatedBy = payment.LastUpdatedBy
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *pgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		invoice, err := r.lockInvoice(ctx, tx, invoiceID)
		if err != nil {
			return err
		}

		switch status {
		case domain.InvoiceClosed:
			if !invoice.AmountPayed.Equal(invoice.AmountToPay()) {
				return fmt.Errorf("%w: %s settled against %s owed on invoice %s",
					domain.ErrUnderpaidClosure, invoice.AmountPayed.String(), invoice.AmountToPay().String(), invoiceID)
			}
		case domain.InvoiceRejected:
			if !invoice.AmountPayed.IsZero() {
				return fmt.Errorf("%w: invoice %s has %s settled",
					domain.ErrRejectedWithPayment, invoiceID, invoice.AmountPayed.String())
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE invoices
			SET status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE invoice_id = $1`,
			invoiceID, status, updatedAt, updatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update invoice status", err)
		}
		return nil
	})
}
