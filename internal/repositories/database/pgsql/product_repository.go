package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

const productColumns = `
	product_id, area_id, reference, name, description, category_id,
	purchase_price, sale_price, old_stock, actual_stock, state,
	created_at, created_by, last_updated_at, last_updated_by`

type pgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool, maxRetries int) portsrepo.ProductRepositoryFacade {
	return &pgxProductRepository{BaseRepository: BaseRepository{Pool: pool, MaxRetries: maxRetries}}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var categoryID sql.NullString
	err := row.Scan(
		&p.ProductID, &p.AreaID, &p.Reference, &p.Name, &p.Description, &categoryID,
		&p.PurchasePrice, &p.SalePrice, &p.OldStock, &p.ActualStock, &p.State,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		p.CategoryID = &categoryID.String
	}
	return &p, nil
}

func (r *pgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product", err)
	}
	return product, nil
}

func (r *pgxProductRepository) ListProductsByArea(ctx context.Context, areaID string, limit, offset int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE area_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.Pool.Query(ctx, query, areaID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list products", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read products", err)
	}
	return products, nil
}

func (r *pgxProductRepository) ListPriceHistory(ctx context.Context, productID string) ([]domain.PriceHistory, error) {
	query := `
		SELECT price_history_id, product_id, type, old_value, new_value,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM price_history
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list price history", err)
	}
	defer rows.Close()

	history := make([]domain.PriceHistory, 0)
	for rows.Next() {
		var h domain.PriceHistory
		err := rows.Scan(
			&h.PriceHistoryID, &h.ProductID, &h.Type, &h.OldValue, &h.NewValue,
			&h.CreatedAt, &h.CreatedBy, &h.LastUpdatedAt, &h.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan price history", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read price history", err)
	}
	return history, nil
}

const categoryColumns = `
	category_id, area_id, name,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.ProductCategory, error) {
	var cat domain.ProductCategory
	err := row.Scan(
		&cat.CategoryID, &cat.AreaID, &cat.Name,
		&cat.CreatedAt, &cat.CreatedBy, &cat.LastUpdatedAt, &cat.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *pgxProductRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM product_categories WHERE category_id = $1`
	category, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category", err)
	}
	return category, nil
}

func (r *pgxProductRepository) ListCategoriesByArea(ctx context.Context, areaID string) ([]domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + `
		FROM product_categories
		WHERE area_id = $1
		ORDER BY name ASC`

	rows, err := r.Pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]domain.ProductCategory, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category", err)
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read categories", err)
	}
	return categories, nil
}

func (r *pgxProductRepository) SaveCategory(ctx context.Context, category domain.ProductCategory) error {
	query := `
		INSERT INTO product_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.AreaID, category.Name,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save category", err)
	}
	return nil
}

func (r *pgxProductRepository) UpdateCategory(ctx context.Context, category domain.ProductCategory) error {
	query := `
		UPDATE product_categories
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE category_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProductRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM product_categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.AreaID, product.Reference, product.Name,
		product.Description, product.CategoryID,
		product.PurchasePrice, product.SalePrice, product.OldStock, product.ActualStock, product.State,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save product", err)
	}
	return nil
}

func (r *pgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product, history []domain.PriceHistory) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE products
			SET reference = $2, name = $3, description = $4, category_id = $5,
			    purchase_price = $6, sale_price = $7,
			    last_updated_at = $8, last_updated_by = $9
			WHERE product_id = $1`

		tag, err := tx.Exec(ctx, query,
			product.ProductID, product.Reference, product.Name, product.Description,
			product.CategoryID, product.PurchasePrice, product.SalePrice,
			product.LastUpdatedAt, product.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update product", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if len(history) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, h := range history {
			batch.Queue(`
				INSERT INTO price_history (price_history_id, product_id, type, old_value, new_value,
				                           created_at, created_by, last_updated_at, last_updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				h.PriceHistoryID, h.ProductID, h.Type, h.OldValue, h.NewValue,
				h.CreatedAt, h.CreatedBy, h.LastUpdatedAt, h.LastUpdatedBy,
			)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range history {
			if _, err := results.Exec(); err != nil {
				return apperrors.NewAppError(500, "failed to save price history", err)
			}
		}
		return results.Close()
	})
}

func (r *pgxProductRepository) UpdateProductState(ctx context.Context, productID string, state domain.ProductState, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE products
		SET state = $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1`

	tag, err := r.Pool.Exec(ctx, query, productID, state, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product state", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProductRepository) DeleteRejectedProducts(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM products
		WHERE state = $1 AND last_updated_at < $2`

	tag, err := r.Pool.Exec(ctx, query, domain.ProductRejected, cutoff)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to purge rejected products", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgxProductRepository) FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 FOR UPDATE`
	product, err := scanProduct(tx.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock product", err)
	}
	return product, nil
}

func (r *pgxProductRepository) ApplyStockDeltaInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE products
		SET old_stock = actual_stock, actual_stock = actual_stock + $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1`

	tag, err := tx.Exec(ctx, query, productID, delta, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply stock delta", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *pgxProductRepository) SetActualStockInTx(ctx context.Context, tx pgx.Tx, productID string, value decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE products
		SET old_stock = actual_stock, actual_stock = $2,
		    last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1`

	tag, err := tx.Exec(ctx, query, productID, value, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set actual stock", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
