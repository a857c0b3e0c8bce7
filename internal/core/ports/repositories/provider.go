package repositories

// RepositoryProvider bundles all repository facades needed to build the
// service container.
type RepositoryProvider struct {
	RateCacheRepo RateCacheRepositoryFacade
	SettingsRepo  SettingsRepositoryFacade
	UserRepo      UserRepositoryFacade
}
