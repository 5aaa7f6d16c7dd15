package services

import (
	"log/slog"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/btc_tracker/internal/core/ports/services"
	"github.com/SscSPs/btc_tracker/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	rateProvider portsrepo.RateProvider,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{
		MainCurrency: string(cfg.MainCurrency),
	}

	// The rate store comes first; every other service reads from it.
	store := NewRateStore(logger)
	container.Rates = store
	container.RateRefresh = NewRateRefreshService(rateProvider, store, cfg.RateRefreshTimeout, logger)

	conversion := NewConversionService(store, logger)
	container.Conversion = conversion
	container.Transaction = NewTransactionService(repos.TransactionRepo, conversion, logger)
	container.Portfolio = NewPortfolioService(repos.TransactionRepo, store, conversion, domain.Currency(cfg.MainCurrency), logger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateStoreSvcFacade   = (*RateStore)(nil)
	_ portssvc.RateRefresherSvc     = (*RateRefreshService)(nil)
	_ portssvc.ConversionSvc        = (*ConversionService)(nil)
	_ portssvc.TransactionSvcFacade = (*TransactionService)(nil)
	_ portssvc.PortfolioSvc         = (*PortfolioService)(nil)
)
