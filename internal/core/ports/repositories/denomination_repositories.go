package repositories

import (
	"context"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// DenominationRepository manages the currency denomination catalog.
type DenominationRepository interface {
	FindDenominationByID(ctx context.Context, denominationID string) (*domain.Denomination, error)

	// ListDenominations returns the catalog ordered by value descending.
	ListDenominations(ctx context.Context) ([]domain.Denomination, error)

	SaveDenomination(ctx context.Context, denomination domain.Denomination) error
}
