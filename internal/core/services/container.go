package services

import (
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fetcher portssvc.RateFetcher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Unit = NewUnitService(repos.UnitRepo, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Due = NewDueService(repos.DueRepo, repos.UnitRepo)
	container.Reconciliation = NewReconciliationService(repos.DueRepo, repos.UserRepo)
	container.Balance = NewBalanceService(repos.DueRepo, repos.UserRepo)
	container.Rate = NewRateService(repos.RateRepo, fetcher, cfg.RateLocalCurrency, cfg.RateFallback)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DueSvcFacade            = (*dueService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.BalanceSvcFacade        = (*balanceService)(nil)
	_ portssvc.RateSvcFacade           = (*rateService)(nil)
	_ portssvc.UnitSvcFacade           = (*unitService)(nil)
	_ portssvc.UserSvcFacade           = (*userService)(nil)
)
