package services

import (
	"context"

	"github.com/ritik/festreg/internal/app/models"
)

// RegistrationStore is the persistence surface the registration service
// depends on. *repositories.RegistrationRepository satisfies it.
type RegistrationStore interface {
	NextSequence(ctx context.Context) (int, error)
	CreateWithEvents(ctx context.Context, reg *models.Registrant, events []string) error
	GetByID(ctx context.Context, id int64) (*models.Registrant, error)
	EventsByRegistrationID(ctx context.Context, id int64) ([]string, error)
	GetDetailByPID(ctx context.Context, pid string) (*models.RegistrantDetail, error)
	RollNoExists(ctx context.Context, rollNo string, excludeID int64) (bool, error)
	UpdateWithEvents(ctx context.Context, reg *models.Registrant, events []string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.RegistrantDetail, error)
	Suggestions(ctx context.Context, term string, limit int) ([]models.MemberRef, error)
	SuggestionsExcludingTeam(ctx context.Context, term string, teamID int64, limit int) ([]models.MemberRef, error)
	FindByPID(ctx context.Context, pid string) (*models.MemberRef, error)
	FindByPIDs(ctx context.Context, pids []string) ([]models.MemberRef, error)
}

// TeamStore is the persistence surface the team service depends on.
// *repositories.TeamRepository satisfies it.
type TeamStore interface {
	NextSequence(ctx context.Context) (int, error)
	CreateFull(ctx context.Context, team *models.Team, memberIDs []int64, events []string) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	MembersByTeamID(ctx context.Context, teamID int64) ([]models.TeamMember, error)
	EventsByTeamID(ctx context.Context, teamID int64) ([]string, error)
	UpdateFull(ctx context.Context, team *models.Team, memberIDs []int64, events []string) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.Team, error)
}

// ReportStore is the read-only projection surface behind rosters, exports
// and summary counts. *repositories.ReportRepository satisfies it.
type ReportStore interface {
	IndividualRosters(ctx context.Context, events []string) (map[string][]models.IndividualRosterEntry, error)
	TeamRosters(ctx context.Context, events []string) (map[string][]models.TeamRosterEntry, error)
	RegistrantsByCollege(ctx context.Context, college string) ([]models.RegistrantReportRow, error)
	UnassignedRegistrants(ctx context.Context) ([]models.RegistrantReportRow, error)
	AllRegistrants(ctx context.Context) ([]models.RegistrantReportRow, error)
	AllTeams(ctx context.Context) ([]models.TeamRosterEntry, error)
	DistinctEvents(ctx context.Context) (*models.EventCatalog, error)
	Summary(ctx context.Context) (*models.RegistrationSummary, error)
	Statistics(ctx context.Context) (*models.EventStatistics, error)
}
