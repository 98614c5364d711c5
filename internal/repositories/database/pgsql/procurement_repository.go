package pgsql

import (
	"context"
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

const procurementLineColumns = `
	line_id, parent_id, product_id, quantity_requested, quantity_accorded, unitary_price, stock_movement_id`

type pgxProcurementRepository struct {
	BaseRepository
}

func newPgxProcurementRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.ProcurementRepositoryFacade {
	return &pgxProcurementRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func scanProcurementLine(rows pgx.Rows) (domain.ProcurementDetailLine, error) {
	var l domain.ProcurementDetailLine
	err := rows.Scan(&l.LineID, &l.ParentID, &l.ProductID, &l.QuantityRequested, &l.QuantityAccorded, &l.UnitaryPrice, &l.StockMovementID)
	return l, err
}

// loadProcurementLines fetches detail lines from the given line table for a
// set of parent documents.
func (r *pgxProcurementRepository) loadProcurementLines(ctx context.Context, table string, parentIDs []string) (map[string][]domain.ProcurementDetailLine, error) {
	query := `SELECT ` + procurementLineColumns + ` FROM ` + table + ` WHERE parent_id = ANY($1) ORDER BY line_id`

	rows, err := r.Pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load detail lines", err)
	}
	defer rows.Close()

	byParent := make(map[string][]domain.ProcurementDetailLine)
	for rows.Next() {
		l, err := scanProcurementLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan detail line", err)
		}
		byParent[l.ParentID] = append(byParent[l.ParentID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read detail lines", err)
	}
	return byParent, nil
}

func (r *pgxProcurementRepository) insertProcurementLines(ctx context.Context, tx pgx.Tx, table, parentID string, lines []domain.ProcurementDetailLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(
			`INSERT INTO `+table+` (`+procurementLineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.LineID, parentID, line.ProductID,
			line.QuantityRequested, line.QuantityAccorded, line.UnitaryPrice, line.StockMovementID,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to save detail lines", err)
		}
	}
	return results.Close()
}

// applyProcurementFilter appends the shared area and date window conditions.
func applyProcurementFilter(query string, filter portsrepo.ProcurementFilter) (string, []interface{}) {
	args := make([]interface{}, 0, 6)
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
	args = append(args, filter.Limit, filter.Skip)
	query += fmt.Sprintf(` ORDER BY date_of DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return query, args
}

func (r *pgxProcurementRepository) FindPurchaseRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	query := `
		SELECT purchase_id, area_id, reference, status, date_of, comments, initiated_by,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_requests WHERE purchase_id = $1`

	var p domain.PurchaseRequest
	err := r.Pool.QueryRow(ctx, query, requestID).Scan(
		&p.PurchaseID, &p.AreaID, &p.Reference, &p.Status, &p.DateOf, &p.Comments, &p.InitiatedBy,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase request", err)
	}

	lines, err := r.loadProcurementLines(ctx, "purchase_request_lines", []string{requestID})
	if err != nil {
		return nil, err
	}
	p.Details = lines[requestID]
	return &p, nil
}

func (r *pgxProcurementRepository) ListPurchaseRequests(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.PurchaseRequest, error) {
	query, args := applyProcurementFilter(`
		SELECT purchase_id, area_id, reference, status, date_of, comments, initiated_by,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_requests WHERE 1=1`, filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list purchase requests", err)
	}
	defer rows.Close()

	requests := make([]domain.PurchaseRequest, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var p domain.PurchaseRequest
		err := rows.Scan(
			&p.PurchaseID, &p.AreaID, &p.Reference, &p.Status, &p.DateOf, &p.Comments, &p.InitiatedBy,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase request", err)
		}
		requests = append(requests, p)
		ids = append(ids, p.PurchaseID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read purchase requests", err)
	}
	if len(ids) == 0 {
		return requests, nil
	}

	lines, err := r.loadProcurementLines(ctx, "purchase_request_lines", ids)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].Details = lines[requests[i].PurchaseID]
	}
	return requests, nil
}

func (r *pgxProcurementRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT order_id, area_id, reference, status, date_of, comments, customer_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM orders WHERE order_id = $1`

	var o domain.Order
	err := r.Pool.QueryRow(ctx, query, orderID).Scan(
		&o.OrderID, &o.AreaID, &o.Reference, &o.Status, &o.DateOf, &o.Comments, &o.CustomerID,
		&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order", err)
	}

	lines, err := r.loadProcurementLines(ctx, "order_lines", []string{orderID})
	if err != nil {
		return nil, err
	}
	o.Details = lines[orderID]
	return &o, nil
}

func (r *pgxProcurementRepository) ListOrders(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.Order, error) {
	query, args := applyProcurementFilter(`
		SELECT order_id, area_id, reference, status, date_of, comments, customer_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM orders WHERE 1=1`, filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.OrderID, &o.AreaID, &o.Reference, &o.Status, &o.DateOf, &o.Comments, &o.CustomerID,
			&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order", err)
		}
		orders = append(orders, o)
		ids = append(ids, o.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read orders", err)
	}
	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := r.loadProcurementLines(ctx, "order_lines", ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Details = lines[orders[i].OrderID]
	}
	return orders, nil
}

func (r *pgxProcurementRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT sale_id, area_id, reference, customer_id, status, date_of,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales WHERE sale_id = $1`

	var s domain.Sale
	err := r.Pool.QueryRow(ctx, query, saleID).Scan(
		&s.SaleID, &s.AreaID, &s.Reference, &s.CustomerID, &s.Status, &s.DateOf,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale", err)
	}

	lines, err := r.loadSaleLines(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	s.Details = lines[saleID]
	return &s, nil
}

func (r *pgxProcurementRepository) loadSaleLines(ctx context.Context, saleIDs []string) (map[string][]domain.SaleDetailLine, error) {
	query := `
		SELECT line_id, sale_id, product_id, quantity, unitary_price, stock_movement_id
		FROM sale_lines
		WHERE sale_id = ANY($1)
		ORDER BY line_id`

	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load sale lines", err)
	}
	defer rows.Close()

	bySale := make(map[string][]domain.SaleDetailLine)
	for rows.Next() {
		var l domain.SaleDetailLine
		if err := rows.Scan(&l.LineID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitaryPrice, &l.StockMovementID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale line", err)
		}
		bySale[l.SaleID] = append(bySale[l.SaleID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read sale lines", err)
	}
	return bySale, nil
}

func (r *pgxProcurementRepository) ListSales(ctx context.Context, filter portsrepo.ProcurementFilter) ([]domain.Sale, error) {
	query, args := applyProcurementFilter(`
		SELECT sale_id, area_id, reference, customer_id, status, date_of,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales WHERE 1=1`, filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list sales", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var s domain.Sale
		err := rows.Scan(
			&s.SaleID, &s.AreaID, &s.Reference, &s.CustomerID, &s.Status, &s.DateOf,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale", err)
		}
		sales = append(sales, s)
		ids = append(ids, s.SaleID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read sales", err)
	}
	if len(ids) == 0 {
		return sales, nil
	}

	lines, err := r.loadSaleLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Details = lines[sales[i].SaleID]
	}
	return sales, nil
}

func (r *pgxProcurementRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, area_id, name, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers WHERE customer_id = $1`

	var c domain.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID, &c.AreaID, &c.Name, &c.Email,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer", err)
	}
	return &c, nil
}

func (r *pgxProcurementRepository) ListCustomers(ctx context.Context, skip, limit int) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, area_id, name, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM customers ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := r.Pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.CustomerID, &c.AreaID, &c.Name, &c.Email,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read customers", err)
	}
	return customers, nil
}

func (r *pgxProcurementRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, area_id, name, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers WHERE supplier_id = $1`

	var s domain.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
		&s.SupplierID, &s.AreaID, &s.Name, &s.Email,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier", err)
	}
	return &s, nil
}

func (r *pgxProcurementRepository) ListSuppliers(ctx context.Context, skip, limit int) ([]domain.Supplier, error) {
	query := `
		SELECT supplier_id, area_id, name, email,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := r.Pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list suppliers", err)
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0)
	for rows.Next() {
		var s domain.Supplier
		err := rows.Scan(
			&s.SupplierID, &s.AreaID, &s.Name, &s.Email,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read suppliers", err)
	}
	return suppliers, nil
}

func (r *pgxProcurementRepository) SavePurchaseRequest(ctx context.Context, request domain.PurchaseRequest) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_requests (purchase_id, area_id, reference, status, date_of, comments, initiated_by,
			                               created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			request.PurchaseID, request.AreaID, request.Reference, request.Status,
			request.DateOf, request.Comments, request.InitiatedBy,
			request.CreatedAt, request.CreatedBy, request.LastUpdatedAt, request.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save purchase request", err)
		}
		return r.insertProcurementLines(ctx, tx, "purchase_request_lines", request.PurchaseID, request.Details)
	})
}

func (r *pgxProcurementRepository) UpdatePurchaseRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE purchase_requests
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_id = $1`,
		requestID, status, updatedAt, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase request status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProcurementRepository) ReplacePurchaseRequestLines(ctx context.Context, requestID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error {
	return r.replaceLines(ctx, "purchase_request_lines", "purchase_requests", "purchase_id", requestID, lines, updatedBy, updatedAt)
}

func (r *pgxProcurementRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (order_id, area_id, reference, status, date_of, comments, customer_id,
			                    created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			order.OrderID, order.AreaID, order.Reference, order.Status,
			order.DateOf, order.Comments, order.CustomerID,
			order.CreatedAt, order.CreatedBy, order.LastUpdatedAt, order.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save order", err)
		}
		return r.insertProcurementLines(ctx, tx, "order_lines", order.OrderID, order.Details)
	})
}

func (r *pgxProcurementRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.RequestStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1`,
		orderID, status, updatedAt, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProcurementRepository) ReplaceOrderLines(ctx context.Context, orderID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error {
	return r.replaceLines(ctx, "order_lines", "orders", "order_id", orderID, lines, updatedBy, updatedAt)
}

func (r *pgxProcurementRepository) replaceLines(ctx context.Context, lineTable, headerTable, headerKey, parentID string, lines []domain.ProcurementDetailLine, updatedBy string, updatedAt time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM `+lineTable+` WHERE parent_id = $1`, parentID); err != nil {
			return apperrors.NewAppError(500, "failed to delete detail lines", err)
		}
		if err := r.insertProcurementLines(ctx, tx, lineTable, parentID, lines); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE `+headerTable+` SET last_updated_at = $2, last_updated_by = $3 WHERE `+headerKey+` = $1`,
			parentID, updatedAt, updatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to touch document", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *pgxProcurementRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (sale_id, area_id, reference, customer_id, status, date_of,
			                   created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			sale.SaleID, sale.AreaID, sale.Reference, sale.CustomerID, sale.Status, sale.DateOf,
			sale.CreatedAt, sale.CreatedBy, sale.LastUpdatedAt, sale.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewAppError(500, "failed to save sale", err)
		}

		if len(sale.Details) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, line := range sale.Details {
			batch.Queue(`
				INSERT INTO sale_lines (line_id, sale_id, product_id, quantity, unitary_price, stock_movement_id)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				line.LineID, sale.SaleID, line.ProductID, line.Quantity, line.UnitaryPrice, line.StockMovementID,
			)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range sale.Details {
			if _, err := results.Exec(); err != nil {
				return apperrors.NewAppError(500, "failed to save sale lines", err)
			}
		}
		return results.Close()
	})
}

func (r *pgxProcurementRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1`,
		saleID, status, updatedAt, updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sale status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetLineQuantityAccorded updates the granted quantity wherever the line
// lives. Line ids are globally unique, so at most one of the two tables
// matches.
func (r *pgxProcurementRepository) SetLineQuantityAccorded(ctx context.Context, lineID string, quantity decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	for _, table := range []string{"purchase_request_lines", "order_lines"} {
		tag, err := r.Pool.Exec(ctx,
			`UPDATE `+table+` SET quantity_accorded = $2 WHERE line_id = $1`,
			lineID, quantity,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update granted quantity", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *pgxProcurementRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (customer_id, area_id, name, email,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		customer.CustomerID, customer.AreaID, customer.Name, customer.Email,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save customer", err)
	}
	return nil
}

func (r *pgxProcurementRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE customers
		SET name = $2, email = $3, last_updated_at = $4, last_updated_by = $5
		WHERE customer_id = $1`,
		customer.CustomerID, customer.Name, customer.Email, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProcurementRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO suppliers (supplier_id, area_id, name, email,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		supplier.SupplierID, supplier.AreaID, supplier.Name, supplier.Email,
		supplier.CreatedAt, supplier.CreatedBy, supplier.LastUpdatedAt, supplier.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save supplier", err)
	}
	return nil
}

func (r *pgxProcurementRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE suppliers
		SET name = $2, email = $3, last_updated_at = $4, last_updated_by = $5
		WHERE supplier_id = $1`,
		supplier.SupplierID, supplier.Name, supplier.Email, supplier.LastUpdatedAt, supplier.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update supplier", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
