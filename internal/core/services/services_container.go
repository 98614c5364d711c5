package services

import (
	portsrepo "github.com/tahina-mg/pos_management_app/internal/core/ports/repositories"
	portssvc "github.com/tahina-mg/pos_management_app/internal/core/ports/services"
	"github.com/tahina-mg/pos_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo, cfg.RejectedProductTTL)
	container.Stock = NewStockService(repos.StockRepo, repos.ProductRepo)
	container.Cash = NewCashService(repos.CashRepo, repos.DenominationRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ProcurementRepo, container.Cash)
	container.Procurement = NewProcurementService(repos.ProcurementRepo, repos.StockRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ProductSvcFacade     = (*productService)(nil)
	_ portssvc.StockSvcFacade       = (*stockService)(nil)
	_ portssvc.CashSvcFacade        = (*cashService)(nil)
	_ portssvc.InvoiceSvcFacade     = (*invoiceService)(nil)
	_ portssvc.ProcurementSvcFacade = (*procurementService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
)
