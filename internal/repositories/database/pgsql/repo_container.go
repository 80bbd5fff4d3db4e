package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/dayatwork/sismo-v2-sub002/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool.
// The setting cache is optional; pass nil to read settings straight through.
func NewRepositoryProvider(dbPool *pgxpool.Pool, settingCache portsrepo.Cache) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	roleRepo := newPgxRoleRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	trackerRepo := newPgxTrackerRepository(dbPool)
	settingRepo := newPgxSettingRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		RoleRepo:         roleRepo,
		OrganizationRepo: organizationRepo,
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		TrackerRepo:      trackerRepo,
		SettingRepo:      settingRepo,
		ReportingRepo:    reportingRepo,
		SettingCache:     settingCache,
	}
}
