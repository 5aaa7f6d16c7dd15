package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main and pick the facades they need.
type ServiceContainer struct {
	Rates        RateStoreSvcFacade
	RateRefresh  RateRefresherSvc
	Conversion   ConversionSvc
	Transaction  TransactionSvcFacade
	Portfolio    PortfolioSvc
	MainCurrency string
}
