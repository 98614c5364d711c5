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

const movementColumns = `
	movement_id, area_id, product_id, direction, operation, quantity, status,
	date_of, comment, initiated_by, original_movement_id,
	sale_detail_line_id, purchase_detail_line_id, order_detail_line_id,
	created_at, created_by, last_updated_at, last_updated_by`

type pgxStockRepository struct {
	BaseRepository
	productRepo portsrepo.ProductTxWriter
}

func newPgxStockRepository(pool *pgxpool.Pool, maxRetries int, productRepo portsrepo.ProductTxWriter) portsrepo.StockRepositoryFacade {
	return &pgxStockRepository{
		BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries},
		productRepo:    productRepo,
	}
}

func scanMovement(row pgx.Row) (*domain.StockMovement, error) {
	var m domain.StockMovement
	var originalID, saleLine, purchaseLine, orderLine sql.NullString
	err := row.Scan(
		&m.MovementID, &m.AreaID, &m.ProductID, &m.Direction, &m.Operation, &m.Quantity, &m.Status,
		&m.DateOf, &m.Comment, &m.InitiatedBy, &originalID,
		&saleLine, &purchaseLine, &orderLine,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if originalID.Valid {
		m.OriginalMovementID = &originalID.String
	}
	if saleLine.Valid {
		m.SaleDetailLineID = &saleLine.String
	}
	if purchaseLine.Valid {
		m.PurchaseDetailLineID = &purchaseLine.String
	}
	if orderLine.Valid {
		m.OrderDetailLineID = &orderLine.String
	}
	return &m, nil
}

func (r *pgxStockRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE movement_id = $1`
	movement, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock movement", err)
	}
	return movement, nil
}

func (r *pgxStockRepository) ListMovements(ctx context.Context, filter portsrepo.StockTrackFilter) ([]domain.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := make([]interface{}, 0, 7)

	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += ` AND product_id = $` + strconv.Itoa(len(args))
	}
	if filter.AreaID != "" {
		args = append(args, filter.AreaID)
		query += ` AND area_id = $` + strconv.Itoa(len(args))
	}
	if !filter.DateBegin.IsZero() {
		args = append(args, filter.DateBegin)
		query += ` AND date_of >= $` + strconv.Itoa(len(args))
	}
	if !filter.DateEnd.IsZero() {
		args = append(args, filter.DateEnd)
		query += ` AND date_of <= $` + strconv.Itoa(len(args))
	}
	if filter.CursorDateOf != nil && filter.CursorCreatedAt != nil {
		args = append(args, *filter.CursorDateOf, *filter.CursorCreatedAt)
		query += fmt.Sprintf(` AND (date_of, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY date_of DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list stock movements", err)
	}
	defer rows.Close()

	movements := make([]domain.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock movement", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read stock movements", err)
	}
	return movements, nil
}

// SumSignedQuantities sums the ledger for one product. Every row is included:
// a cancelled movement and its reversing entry net out to zero, so the whole
// history sums to the expected actual_stock.
func (r *pgxStockRepository) SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, signedSumQuery, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum stock movements", err)
	}
	return sum, nil
}

const signedSumQuery = `
	SELECT COALESCE(SUM(CASE WHEN direction = 'OUT' THEN -quantity ELSE quantity END), 0)
	FROM stock_movements
	WHERE product_id = $1`

func (r *pgxStockRepository) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		product, err := r.productRepo.FindProductByIDForUpdate(ctx, tx, movement.ProductID)
		if err != nil {
			return err
		}

		delta := movement.SignedQuantity()
		if product.ActualStock.Add(delta).IsNegative() {
			return fmt.Errorf("%w: product %s has %s in stock, movement needs %s",
				domain.ErrInsufficientStock, movement.ProductID,
				product.ActualStock.String(), movement.Quantity.String())
		}

		if err := r.insertMovement(ctx, tx, movement); err != nil {
			return err
		}
		if err := r.productRepo.ApplyStockDeltaInTx(ctx, tx, movement.ProductID, delta, movement.LastUpdatedBy, movement.LastUpdatedAt); err != nil {
			return err
		}
		return r.stampDetailLine(ctx, tx, movement)
	})
}

func (r *pgxStockRepository) insertMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := tx.Exec(ctx, query,
		movement.MovementID, movement.AreaID, movement.ProductID,
		movement.Direction, movement.Operation, movement.Quantity, movement.Status,
		movement.DateOf, movement.Comment, movement.InitiatedBy, movement.OriginalMovementID,
		movement.SaleDetailLineID, movement.PurchaseDetailLineID, movement.OrderDetailLineID,
		movement.CreatedAt, movement.CreatedBy, movement.LastUpdatedAt, movement.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert stock movement", err)
	}
	return nil
}

// stampDetailLine writes the movement id back on the detail line that
// triggered it. A line already carrying a movement id means the delivery
// trigger fired before, so the write is reported as a duplicate.
func (r *pgxStockRepository) stampDetailLine(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	var query string
	var lineID string
	switch {
	case movement.SaleDetailLineID != nil:
		query = `UPDATE sale_lines SET stock_movement_id = $2 WHERE line_id = $1 AND stock_movement_id IS NULL`
		lineID = *movement.SaleDetailLineID
	case movement.PurchaseDetailLineID != nil:
		query = `UPDATE purchase_request_lines SET stock_movement_id = $2 WHERE line_id = $1 AND stock_movement_id IS NULL`
		lineID = *movement.PurchaseDetailLineID
	case movement.OrderDetailLineID != nil:
		query = `UPDATE order_lines SET stock_movement_id = $2 WHERE line_id = $1 AND stock_movement_id IS NULL`
		lineID = *movement.OrderDetailLineID
	default:
		return nil
	}

	tag, err := tx.Exec(ctx, query, lineID, movement.MovementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link movement to detail line", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

func (r *pgxStockRepository) CancelMovement(ctx context.Context, original domain.StockMovement, reversing domain.StockMovement) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		product, err := r.productRepo.FindProductByIDForUpdate(ctx, tx, original.ProductID)
		if err != nil {
			return err
		}

		delta := reversing.SignedQuantity()
		if product.ActualStock.Add(delta).IsNegative() {
			return fmt.Errorf("%w: reversing movement %s would leave product %s negative",
				domain.ErrInsufficientStock, original.MovementID, original.ProductID)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE stock_movements
			SET status = $2, last_updated_at = $3, last_updated_by = $4
			WHERE movement_id = $1 AND status = $5`,
			original.MovementID, domain.MovementCanceled,
			reversing.LastUpdatedAt, reversing.LastUpdatedBy, domain.MovementPosted,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to cancel stock movement", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: movement %s", domain.ErrAlreadyCanceled, original.MovementID)
		}

		if err := r.insertMovement(ctx, tx, reversing); err != nil {
			return err
		}
		return r.productRepo.ApplyStockDeltaInTx(ctx, tx, original.ProductID, delta, reversing.LastUpdatedBy, reversing.LastUpdatedAt)
	})
}

func (r *pgxStockRepository) RecomputeProductStock(ctx context.Context, productID string, repair bool, updatedBy string) (decimal.Decimal, decimal.Decimal, error) {
	var stored, recomputed decimal.Decimal
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		product, err := r.productRepo.FindProductByIDForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		stored = product.ActualStock

		if err := tx.QueryRow(ctx, signedSumQuery, productID).Scan(&recomputed); err != nil {
			return apperrors.NewAppError(500, "failed to sum stock movements", err)
		}

		if repair && !stored.Equal(recomputed) {
			return r.productRepo.SetActualStockInTx(ctx, tx, productID, recomputed, updatedBy, time.Now().UTC())
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return stored, recomputed, nil
}
