package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql repositories over one pool.
// maxRetries bounds the automatic retry of serialization conflicts.
func NewRepositoryProvider(dbPool *pgxpool.Pool, maxRetries int) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool, maxRetries)

	return portsrepo.RepositoryProvider{
		ProductRepo:      productRepo,
		StockRepo:        newPgxStockRepository(dbPool, maxRetries, productRepo),
		DenominationRepo: newPgxDenominationRepository(dbPool, maxRetries),
		CashRepo:         newPgxCashRepository(dbPool, maxRetries),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool, maxRetries),
		ProcurementRepo:  newPgxProcurementRepository(dbPool, maxRetries),
		UserRepo:         newPgxUserRepository(dbPool, maxRetries),
	}
}
