package repositories

import (
	"github.com/ritik/festreg/internal/db"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	Registration *RegistrationRepository
	Team         *TeamRepository
	Report       *ReportRepository
}

// NewRepositories creates all repositories over one shared database handle.
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Registration: NewRegistrationRepository(database),
		Team:         NewTeamRepository(database),
		Report:       NewReportRepository(database),
	}
}
