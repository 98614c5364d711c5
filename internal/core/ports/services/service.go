package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Product     ProductSvcFacade
	Stock       StockSvcFacade
	Cash        CashSvcFacade
	Invoice     InvoiceSvcFacade
	Procurement ProcurementSvcFacade
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Token       TokenSvcFacade
}
