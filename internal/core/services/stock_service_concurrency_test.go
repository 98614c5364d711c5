package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tahina-mg/pos_management_app/internal/apperrors"
	"github.com/tahina-mg/pos_management_app/internal/core/domain"
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	"github.com/tahina-mg/pos_management_app/internal/core/services"
	"github.com/tahina-mg/pos_management_app/internal/dto"
)

// fakeStockStore is an in-memory stand-in for the product and stock
// repositories. Its mutex plays the role of the product row lock: every
// ledger insert and its projection update happen under one critical section.
type fakeStockStore struct {
	portsrepo.ProductRepositoryFacade
	portsrepo.StockRepositoryFacade

	mu      sync.Mutex
	product domain.Product
	ledger  []domain.StockMovement
}

func (f *fakeStockStore) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if productID != f.product.ProductID {
		return nil, apperrors.ErrNotFound
	}
	p := f.product
	return &p, nil
}

func (f *fakeStockStore) SaveMovement(ctx context.Context, movement domain.StockMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.product.OldStock = f.product.ActualStock
	f.product.ActualStock = f.product.ActualStock.Add(movement.SignedQuantity())
	f.ledger = append(f.ledger, movement)
	return nil
}

func (f *fakeStockStore) SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, m := range f.ledger {
		if m.ProductID == productID {
			sum = sum.Add(m.SignedQuantity())
		}
	}
	return sum, nil
}

// Two writers hammer the same product and every delta must land: the final
// projection has to equal the signed sum of the whole ledger, with no lost
// update between the read and the write of actual_stock.
func TestCreateMovement_ConcurrentWritersNoLostUpdate(t *testing.T) {
	areaID := uuid.NewString()
	store := &fakeStockStore{
		product: domain.Product{
			ProductID:   uuid.NewString(),
			AreaID:      areaID,
			Reference:   "OIL-1L",
			Name:        "Oil 1L",
			ActualStock: decimal.Zero,
			State:       domain.ProductValidated,
		},
	}
	service := services.NewStockService(store, store)

	const writers = 2
	const movementsPerWriter = 25
	errCh := make(chan error, writers*movementsPerWriter)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < movementsPerWriter; i++ {
				_, err := service.CreateMovement(context.Background(), dto.CreateMovementRequest{
					AreaID:    areaID,
					ProductID: store.product.ProductID,
					Direction: domain.MovementIn,
					Operation: domain.MovementSupply,
					Quantity:  decimal.NewFromInt(1),
				}, uuid.NewString())
				if err != nil {
					errCh <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	expected := decimal.NewFromInt(writers * movementsPerWriter)
	require.Len(t, store.ledger, writers*movementsPerWriter)
	require.Equal(t, expected.String(), store.product.ActualStock.String())

	recomputed, err := store.SumSignedQuantities(context.Background(), store.product.ProductID)
	require.NoError(t, err)
	require.Equal(t, store.product.ActualStock.String(), recomputed.String())
}
