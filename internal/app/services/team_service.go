package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/app/models/dto"
	"github.com/ritik/festreg/internal/pkg/apperrors"
	"github.com/ritik/festreg/internal/pkg/logger"
)

// TeamService defines operations on team registrations.
type TeamService interface {
	Register(ctx context.Context, form *dto.TeamRegisterForm) (*models.TeamDetail, error)
	GetDetail(ctx context.Context, id int64) (*models.TeamDetail, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) (*models.TeamDetail, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.TeamDetail, error)
}

type teamService struct {
	teams       TeamStore
	registrants RegistrationStore
}

// NewTeamService creates a new TeamService
func NewTeamService(teams TeamStore, registrants RegistrationStore) TeamService {
	return &teamService{teams: teams, registrants: registrants}
}

// Register assigns the next team identifier and persists the team with its
// resolved members and event selections. Every member identifier must
// resolve to an existing registrant; a team with no members is accepted.
func (s *teamService) Register(ctx context.Context, form *dto.TeamRegisterForm) (*models.TeamDetail, error) {
	refs, err := s.resolveMembers(ctx, form.PIDs)
	if err != nil {
		return nil, err
	}

	events := cleanStrings(form.Events)
	team := &models.Team{Name: form.TeamName}

	for attempt := 1; ; attempt++ {
		max, err := s.teams.NextSequence(ctx)
		if err != nil {
			return nil, err
		}
		team.TID = models.FormatTeamID(max + 1)

		err = s.teams.CreateFull(ctx, team, memberIDs(refs), events)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrIdentifierTaken) && attempt < idAllocationAttempts {
			logger.Warn().
				Str("tid", team.TID).
				Int("attempt", attempt).
				Msg("Team identifier already taken, retrying allocation")
			continue
		}
		return nil, err
	}

	logger.Info().Str("tid", team.TID).Int("members", len(refs)).Msg("Team created")
	return s.GetDetail(ctx, team.ID)
}

// GetDetail retrieves a team with its resolved members, event selections
// and derived college.
func (s *teamService) GetDetail(ctx context.Context, id int64) (*models.TeamDetail, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, team)
}

// Update replaces the team's name, full membership set and full event
// selection set. Unlike creation, an empty membership is rejected.
func (s *teamService) Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) (*models.TeamDetail, error) {
	pids := cleanStrings(req.MemberPIDs)
	if len(pids) == 0 {
		return nil, apperrors.ErrEmptyMembership
	}
	refs, err := s.resolveMembers(ctx, pids)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Name = req.TeamName

	if err := s.teams.UpdateFull(ctx, team, memberIDs(refs), cleanStrings(req.Events)); err != nil {
		return nil, err
	}

	logger.Info().Str("tid", team.TID).Msg("Team updated")
	return s.buildDetail(ctx, team)
}

// Delete removes the team together with its memberships and event
// selections. The member registrations themselves are untouched.
func (s *teamService) Delete(ctx context.Context, id int64) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("id", id).Msg("Team deleted")
	return nil
}

// Search returns teams matching the term on name or identifier, each
// enriched with members and events.
func (s *teamService) Search(ctx context.Context, term string) ([]models.TeamDetail, error) {
	teams, err := s.teams.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}

	details := make([]models.TeamDetail, 0, len(teams))
	for i := range teams {
		detail, err := s.buildDetail(ctx, &teams[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// resolveMembers maps member identifiers to registrant references,
// reporting every identifier that does not exist.
func (s *teamService) resolveMembers(ctx context.Context, pids []string) ([]models.MemberRef, error) {
	pids = cleanStrings(pids)
	if len(pids) == 0 {
		return []models.MemberRef{}, nil
	}

	refs, err := s.registrants.FindByPIDs(ctx, pids)
	if err != nil {
		return nil, err
	}

	found := make(map[string]models.MemberRef, len(refs))
	for _, ref := range refs {
		found[ref.PID] = ref
	}

	var missing []string
	resolved := make([]models.MemberRef, 0, len(pids))
	for _, pid := range pids {
		ref, ok := found[pid]
		if !ok {
			missing = append(missing, pid)
			continue
		}
		resolved = append(resolved, ref)
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMembersNotFoundError(missing)
	}
	return resolved, nil
}

func (s *teamService) buildDetail(ctx context.Context, team *models.Team) (*models.TeamDetail, error) {
	members, err := s.teams.MembersByTeamID(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	events, err := s.teams.EventsByTeamID(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &models.TeamDetail{
		Team:    *team,
		College: models.DerivedCollege(members),
		Members: members,
		Events:  events,
	}, nil
}

func memberIDs(refs []models.MemberRef) []int64 {
	ids := make([]int64, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}
