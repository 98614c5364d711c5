package services

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// StockReaderSvc defines read operations for the stock ledger
type StockReaderSvc interface {
	// GetMovementByID retrieves a specific stock movement.
	GetMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error)

	// ListMovements retrieves a paginated movement history for a product,
	// newest first.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)

	// CheckProductStock recomputes a product's stock from its movement
	// history and reports any drift against the stored value.
	CheckProductStock(ctx context.Context, productID string, repair bool, userID string) (*dto.StockCheckResponse, error)
}

// StockWriterSvc defines write operations for the stock ledger
type StockWriterSvc interface {
	// CreateMovement validates coherence and persists a movement, applying
	// its signed quantity to the product stock atomically.
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest, creatorUserID string) (*domain.StockMovement, error)

	// CancelMovement reverses a movement recorded earlier the same day by
	// inserting a reversing entry. The original row is kept for audit.
	CancelMovement(ctx context.Context, movementID string, userID string) (*domain.StockMovement, error)
}

// StockSvcFacade combines all stock-ledger service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
