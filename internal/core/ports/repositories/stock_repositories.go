package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// StockTrackFilter narrows a movement history query. The cursor pair points
// at the last row of the previous page; rows strictly after it in the
// (date_of DESC, created_at DESC) order are returned.
type StockTrackFilter struct {
	ProductID       string
	AreaID          string
	DateBegin       time.Time
	DateEnd         time.Time
	CursorDateOf    *time.Time
	CursorCreatedAt *time.Time
	Limit           int
}

// StockReader defines read operations for the stock ledger.
type StockReader interface {
	// FindMovementByID retrieves a single movement.
	FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// ListMovements returns movements matching the filter, newest first.
	ListMovements(ctx context.Context, filter StockTrackFilter) ([]domain.StockMovement, error)

	// SumSignedQuantities returns the signed sum of all non-cancelled
	// movements for a product, i.e. what actual_stock should be.
	SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error)
}

// StockWriter defines write operations for the stock ledger. Every method is
// one atomic storage transaction covering the ledger row, the product stock
// projection and any linked detail-line back-reference.
type StockWriter interface {
	// SaveMovement inserts the movement, snapshots product.old_stock, applies
	// the signed delta to product.actual_stock, and stamps the linked
	// sale/purchase/order detail line (when present) with the movement id.
	SaveMovement(ctx context.Context, movement domain.StockMovement) error

	// CancelMovement marks the original row CANCELED and inserts the
	// reversing entry, applying its delta to the product. The original row is
	// retained for audit.
	CancelMovement(ctx context.Context, original domain.StockMovement, reversing domain.StockMovement) error

	// RecomputeProductStock recomputes actual_stock from the full
	// non-cancelled history under a product row lock. When repair is set and
	// the stored value drifted, the stored value is overwritten. Returns the
	// stored value found and the recomputed value.
	RecomputeProductStock(ctx context.Context, productID string, repair bool, updatedBy string) (stored, recomputed decimal.Decimal, err error)
}

// StockRepositoryFacade combines all stock-ledger repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
