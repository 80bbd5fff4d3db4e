package services

import (
	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
	portssvc "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/services"
	"github.com/dayatwork/sismo-v2-sub002/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The role service doubles as the authorizer, so it comes first.
	container.Role = NewRoleService(repos.RoleRepo, repos.UserRepo, repos.OrganizationRepo)
	authorizer := container.Role.(portssvc.AuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.RoleRepo, repos.UserRepo, authorizer)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAuthorizer(authorizer),
		WithEntryLineReader(repos.JournalRepo),
	)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingAuthorizer(authorizer))

	container.Tracker = NewTrackerService(repos.TrackerRepo, repos.OrganizationRepo)
	container.Setting = NewSettingService(repos.SettingRepo, repos.SettingCache, cfg.SettingCacheTTL, authorizer)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.RoleSvcFacade         = (*roleService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.OrganizationSvcFacade = (*organizationService)(nil)
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.JournalSvcFacade      = (*journalService)(nil)
	_ portssvc.TrackerSvcFacade      = (*trackerService)(nil)
	_ portssvc.SettingSvcFacade      = (*settingService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
)
