package services

import (
	"github.com/ritik/festreg/internal/app/repositories"
)

// Services bundles all service instances for dependency injection.
type Services struct {
	Registration RegistrationService
	Team         TeamService
	Report       ReportService
}

// NewServices creates all services over the repository bundle.
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Registration: NewRegistrationService(repos.Registration),
		Team:         NewTeamService(repos.Team, repos.Registration),
		Report:       NewReportService(repos.Report),
	}
}
