package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	DueRepo  DueRepositoryWithTx
	RateRepo RateRepositoryFacade
	UnitRepo UnitRepositoryFacade
	UserRepo UserRepositoryFacade
}
