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

const (
	// suggestionLimit caps typeahead results.
	suggestionLimit = 10
	// minSuggestionTerm is the minimum term length before suggestions run.
	minSuggestionTerm = 2
	// idAllocationAttempts bounds the retry loop when two concurrent
	// registrations race for the same sequence number.
	idAllocationAttempts = 3
)

// RegistrationService defines operations on individual registrations.
type RegistrationService interface {
	Register(ctx context.Context, form *dto.RegisterForm) (*models.RegistrantDetail, error)
	GetDetail(ctx context.Context, id int64) (*models.RegistrantDetail, error)
	GetDetailByPID(ctx context.Context, pid string) (*models.RegistrantDetail, error)
	Update(ctx context.Context, id int64, req *dto.UpdateRegistrationRequest) (*models.RegistrantDetail, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.RegistrantDetail, error)
	Suggest(ctx context.Context, term string, excludeTeamID int64) ([]models.MemberRef, error)
	FindMember(ctx context.Context, pid string) (*models.MemberRef, error)
}

type registrationService struct {
	store RegistrationStore
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(store RegistrationStore) RegistrationService {
	return &registrationService{store: store}
}

// Register assigns the next registrant identifier and persists the
// registration with its event selections. Identifier allocation is
// read-then-write, so a concurrent registration can claim the same sequence
// first; the unique constraint detects that and the allocation is retried.
func (s *registrationService) Register(ctx context.Context, form *dto.RegisterForm) (*models.RegistrantDetail, error) {
	exists, err := s.store.RollNoExists(ctx, form.RollNo, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrRollNoExists
	}

	events := cleanStrings(form.Events)
	reg := &models.Registrant{
		Name:    form.Name,
		PhoneNo: form.PhoneNo,
		RollNo:  form.RollNo,
		College: form.College,
		Course:  form.Course,
		Year:    form.Year,
	}

	for attempt := 1; ; attempt++ {
		max, err := s.store.NextSequence(ctx)
		if err != nil {
			return nil, err
		}
		reg.PID = models.FormatRegistrantID(max + 1)

		err = s.store.CreateWithEvents(ctx, reg, events)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrIdentifierTaken) && attempt < idAllocationAttempts {
			logger.Warn().
				Str("pid", reg.PID).
				Int("attempt", attempt).
				Msg("Registrant identifier already taken, retrying allocation")
			continue
		}
		return nil, err
	}

	logger.Info().Str("pid", reg.PID).Msg("Registration created")
	return &models.RegistrantDetail{Registrant: *reg, Events: events}, nil
}

// GetDetail retrieves a registration with its individual event selections.
func (s *registrationService) GetDetail(ctx context.Context, id int64) (*models.RegistrantDetail, error) {
	reg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.store.EventsByRegistrationID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.RegistrantDetail{Registrant: *reg, Events: events}, nil
}

// GetDetailByPID retrieves a registration by identifier, with the union of
// its individual and team event names.
func (s *registrationService) GetDetailByPID(ctx context.Context, pid string) (*models.RegistrantDetail, error) {
	return s.store.GetDetailByPID(ctx, strings.TrimSpace(pid))
}

// Update replaces the registration's fields and its whole event selection
// set. The identifier is immutable.
func (s *registrationService) Update(ctx context.Context, id int64, req *dto.UpdateRegistrationRequest) (*models.RegistrantDetail, error) {
	reg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.RollNoExists(ctx, req.RollNo, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrRollNoExists
	}

	reg.Name = req.Name
	reg.PhoneNo = req.PhoneNo
	reg.RollNo = req.RollNo
	reg.College = req.College
	reg.Course = req.Course
	reg.Year = req.Year

	events := cleanStrings(req.Events)
	if err := s.store.UpdateWithEvents(ctx, reg, events); err != nil {
		return nil, err
	}

	logger.Info().Str("pid", reg.PID).Msg("Registration updated")
	return &models.RegistrantDetail{Registrant: *reg, Events: events}, nil
}

// Delete removes the registration together with its event selections and
// any team memberships.
func (s *registrationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("id", id).Msg("Registration deleted")
	return nil
}

// Search returns registrations matching the term on name, phone number,
// roll number or college. A blank term returns every registration.
func (s *registrationService) Search(ctx context.Context, term string) ([]models.RegistrantDetail, error) {
	return s.store.Search(ctx, strings.TrimSpace(term))
}

// Suggest returns typeahead candidates for the term. With a non-zero
// excludeTeamID, registrants already on that team are omitted. Terms
// shorter than two characters yield no candidates.
func (s *registrationService) Suggest(ctx context.Context, term string, excludeTeamID int64) ([]models.MemberRef, error) {
	term = strings.TrimSpace(term)
	if len(term) < minSuggestionTerm {
		return []models.MemberRef{}, nil
	}
	if excludeTeamID > 0 {
		return s.store.SuggestionsExcludingTeam(ctx, term, excludeTeamID, suggestionLimit)
	}
	return s.store.Suggestions(ctx, term, suggestionLimit)
}

// FindMember resolves one registrant identifier to its minimal reference.
func (s *registrationService) FindMember(ctx context.Context, pid string) (*models.MemberRef, error) {
	return s.store.FindByPID(ctx, strings.TrimSpace(pid))
}

// cleanStrings trims each value and drops blanks, preserving order.
func cleanStrings(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}
