package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	RoleRepo         RoleRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryWithTx
	TrackerRepo      TrackerRepositoryFacade
	SettingRepo      SettingRepositoryFacade
	ReportingRepo    ReportingRepository
	SettingCache     Cache
}
