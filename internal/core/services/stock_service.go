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

// stockService provides stock ledger operations.
type stockService struct {
	stockRepo   portsrepo.StockRepositoryFacade
	productRepo portsrepo.ProductRepositoryFacade
}

// NewStockService creates a new StockService.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// CreateMovement validates coherence and persists the movement. The repo
// applies the signed quantity to the product projection in the same storage
// transaction that inserts the ledger row.
func (s *stockService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest, creatorUserID string) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if err := domain.ValidateMovementCoherence(req.Direction, req.Operation); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOperationDirection, err)
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
	}
	if product.AreaID != req.AreaID {
		return nil, fmt.Errorf("%w: product %s does not belong to area %s", apperrors.ErrNotFound, req.ProductID, req.AreaID)
	}
	if product.State != domain.ProductValidated {
		return nil, fmt.Errorf("%w: product %s is not validated", apperrors.ErrConflict, req.ProductID)
	}

	now := time.Now().UTC()
	dateOf := now
	if req.DateOf != nil {
		dateOf = req.DateOf.UTC()
	}

	movement := domain.StockMovement{
		MovementID:  uuid.NewString(),
		AreaID:      req.AreaID,
		ProductID:   req.ProductID,
		Direction:   req.Direction,
		Operation:   req.Operation,
		Quantity:    req.Quantity,
		Status:      domain.MovementPosted,
		DateOf:      dateOf,
		Comment:     req.Comment,
		InitiatedBy: req.InitiatedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.stockRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to save stock movement", slog.String("error", err.Error()), slog.String("product_id", req.ProductID))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	logger.Info("Stock movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("product_id", movement.ProductID),
		slog.String("operation", string(movement.Operation)),
		slog.String("signed_quantity", movement.SignedQuantity().String()),
	)
	return &movement, nil
}

// CancelMovement reverses a same-day movement. The original row is marked
// CANCELED and kept; a REVERSING entry with the opposite direction restores
// the product stock. Movements from prior business days cannot be cancelled.
func (s *stockService) CancelMovement(ctx context.Context, movementID string, userID string) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.stockRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	if original.Status == domain.MovementCanceled {
		return nil, fmt.Errorf("%w: movement %s", domain.ErrAlreadyCanceled, movementID)
	}
	if original.Status == domain.MovementReversing {
		return nil, fmt.Errorf("%w: reversing entries cannot be cancelled", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if !sameBusinessDay(original.CreatedAt, now) {
		return nil, fmt.Errorf("%w: movement recorded %s", domain.ErrStaleMovementCancellation, original.CreatedAt.Format("2006-01-02"))
	}

	reversing := domain.StockMovement{
		MovementID:         uuid.NewString(),
		AreaID:             original.AreaID,
		ProductID:          original.ProductID,
		Direction:          domain.OppositeDirection(original.Direction),
		Operation:          original.Operation,
		Quantity:           original.Quantity,
		Status:             domain.MovementReversing,
		DateOf:             now,
		Comment:            fmt.Sprintf("reversal of movement %s", original.MovementID),
		InitiatedBy:        original.InitiatedBy,
		OriginalMovementID: &original.MovementID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.stockRepo.CancelMovement(ctx, *original, reversing); err != nil {
		logger.Error("Failed to cancel stock movement", slog.String("error", err.Error()), slog.String("movement_id", movementID))
		return nil, fmt.Errorf("failed to cancel movement %s: %w", movementID, err)
	}

	logger.Info("Stock movement cancelled",
		slog.String("movement_id", movementID),
		slog.String("reversing_movement_id", reversing.MovementID),
	)
	return &reversing, nil
}

// GetMovementByID retrieves a single ledger entry.
func (s *stockService) GetMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	movement, err := s.stockRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return movement, nil
}

// ListMovements retrieves a paginated movement history, newest first.
func (s *stockService) ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.StockTrackFilter{
		ProductID: params.ProductID,
		AreaID:    params.AreaID,
		Limit:     limit + 1, // fetch one extra to detect another page
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

	movements, err := s.stockRepo.ListMovements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	var nextToken *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(last.DateOf, last.CreatedAt)
		nextToken = &token
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// CheckProductStock recomputes a product's stock from its full movement
// history and reports drift. When repair is requested the stored value is
// overwritten under the product row lock.
func (s *stockService) CheckProductStock(ctx context.Context, productID string, repair bool, userID string) (*dto.StockCheckResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, recomputed, err := s.stockRepo.RecomputeProductStock(ctx, productID, repair, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute stock for product %s: %w", productID, err)
	}

	drifted := !stored.Equal(recomputed)
	if drifted {
		logger.Warn("Stock projection drift detected",
			slog.String("product_id", productID),
			slog.String("stored", stored.String()),
			slog.String("recomputed", recomputed.String()),
			slog.Bool("repaired", repair),
		)
	}

	return &dto.StockCheckResponse{
		ProductID:  productID,
		Stored:     stored,
		Recomputed: recomputed,
		Drifted:    drifted,
		Repaired:   drifted && repair,
	}, nil
}

// sameBusinessDay reports whether both instants fall on the same UTC calendar day.
func sameBusinessDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
