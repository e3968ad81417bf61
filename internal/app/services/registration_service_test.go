package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/app/models/dto"
	"github.com/ritik/festreg/internal/pkg/apperrors"
)

// fakeRegistrationStore is an in-memory RegistrationStore. staleSequences
// lets a test feed NextSequence outdated values, simulating a concurrent
// registration winning the identifier race.
type fakeRegistrationStore struct {
	mu             sync.Mutex
	nextID         int64
	regs           map[int64]*models.Registrant
	events         map[int64][]string
	staleSequences []int
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{
		regs:   map[int64]*models.Registrant{},
		events: map[int64][]string{},
	}
}

func (f *fakeRegistrationStore) NextSequence(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.staleSequences) > 0 {
		v := f.staleSequences[0]
		f.staleSequences = f.staleSequences[1:]
		return v, nil
	}
	max := 0
	for _, r := range f.regs {
		if seq, err := models.IdentifierSequence(r.PID); err == nil && seq > max {
			max = seq
		}
	}
	return max, nil
}

func (f *fakeRegistrationStore) CreateWithEvents(_ context.Context, reg *models.Registrant, events []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.PID == reg.PID {
			return apperrors.ErrIdentifierTaken
		}
		if r.RollNo == reg.RollNo {
			return apperrors.ErrRollNoExists
		}
	}
	f.nextID++
	reg.ID = f.nextID
	reg.CreatedAt = time.Now()
	stored := *reg
	f.regs[reg.ID] = &stored
	f.events[reg.ID] = append([]string(nil), events...)
	return nil
}

func (f *fakeRegistrationStore) GetByID(_ context.Context, id int64) (*models.Registrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.regs[id]
	if !ok {
		return nil, apperrors.ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRegistrationStore) EventsByRegistrationID(_ context.Context, id int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events[id]...), nil
}

func (f *fakeRegistrationStore) GetDetailByPID(_ context.Context, pid string) (*models.RegistrantDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.regs {
		if r.PID == pid {
			return &models.RegistrantDetail{
				Registrant: *r,
				Events:     append([]string(nil), f.events[id]...),
			}, nil
		}
	}
	return nil, apperrors.ErrRegistrationNotFound
}

func (f *fakeRegistrationStore) RollNoExists(_ context.Context, rollNo string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.RollNo == rollNo && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationStore) UpdateWithEvents(_ context.Context, reg *models.Registrant, events []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regs[reg.ID]; !ok {
		return apperrors.ErrRegistrationNotFound
	}
	stored := *reg
	f.regs[reg.ID] = &stored
	f.events[reg.ID] = append([]string(nil), events...)
	return nil
}

func (f *fakeRegistrationStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regs[id]; !ok {
		return apperrors.ErrRegistrationNotFound
	}
	delete(f.regs, id)
	delete(f.events, id)
	return nil
}

func (f *fakeRegistrationStore) Search(_ context.Context, term string) ([]models.RegistrantDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	term = strings.ToLower(term)
	results := []models.RegistrantDetail{}
	for id, r := range f.regs {
		haystack := strings.ToLower(r.Name + " " + r.PhoneNo + " " + r.RollNo + " " + r.College)
		if strings.Contains(haystack, term) {
			results = append(results, models.RegistrantDetail{
				Registrant: *r,
				Events:     append([]string(nil), f.events[id]...),
			})
		}
	}
	return results, nil
}

func (f *fakeRegistrationStore) Suggestions(_ context.Context, term string, limit int) ([]models.MemberRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	term = strings.ToLower(term)
	refs := []models.MemberRef{}
	for _, r := range f.regs {
		if len(refs) == limit {
			break
		}
		if strings.Contains(strings.ToLower(r.PID), term) || strings.Contains(strings.ToLower(r.Name), term) {
			refs = append(refs, models.MemberRef{ID: r.ID, PID: r.PID, Name: r.Name})
		}
	}
	return refs, nil
}

func (f *fakeRegistrationStore) SuggestionsExcludingTeam(ctx context.Context, term string, _ int64, limit int) ([]models.MemberRef, error) {
	return f.Suggestions(ctx, term, limit)
}

func (f *fakeRegistrationStore) FindByPID(_ context.Context, pid string) (*models.MemberRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.PID == pid {
			return &models.MemberRef{ID: r.ID, PID: r.PID, Name: r.Name}, nil
		}
	}
	return nil, apperrors.ErrRegistrationNotFound
}

func (f *fakeRegistrationStore) FindByPIDs(_ context.Context, pids []string) ([]models.MemberRef, error) {
	refs := []models.MemberRef{}
	for _, pid := range pids {
		ref, err := f.FindByPID(context.Background(), pid)
		if err != nil {
			continue
		}
		refs = append(refs, *ref)
	}
	return refs, nil
}

func registerForm(name, rollNo string, events ...string) *dto.RegisterForm {
	return &dto.RegisterForm{
		Name:    name,
		PhoneNo: "9876543210",
		RollNo:  rollNo,
		College: "City College",
		Course:  "BSc",
		Year:    "2",
		Events:  events,
	}
}

func TestRegistrationServiceRegister(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	detail, err := svc.Register(ctx, registerForm("Asha", "R-101", "Chess", " Quiz ", ""))
	require.NoError(t, err)

	assert.Equal(t, "P-0001", detail.PID)
	assert.Equal(t, []string{"Chess", "Quiz"}, detail.Events)
	assert.NotZero(t, detail.ID)

	second, err := svc.Register(ctx, registerForm("Ravi", "R-102"))
	require.NoError(t, err)
	assert.Equal(t, "P-0002", second.PID)
	assert.Empty(t, second.Events)
}

func TestRegistrationServiceRegisterDuplicateRollNo(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerForm("Asha", "R-101"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerForm("Ravi", "R-101"))
	assert.ErrorIs(t, err, apperrors.ErrRollNoExists)
}

func TestRegistrationServiceRegisterRetriesOnIdentifierRace(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerForm("Asha", "R-101"))
	require.NoError(t, err)

	// The next caller reads a stale max, as if another registration
	// committed between the read and the insert.
	store.staleSequences = []int{0}

	detail, err := svc.Register(ctx, registerForm("Ravi", "R-102"))
	require.NoError(t, err)
	assert.Equal(t, "P-0002", detail.PID)
}

func TestRegistrationServiceRegisterGivesUpAfterRepeatedConflicts(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerForm("Asha", "R-101"))
	require.NoError(t, err)

	store.staleSequences = []int{0, 0, 0}

	_, err = svc.Register(ctx, registerForm("Ravi", "R-102"))
	assert.ErrorIs(t, err, apperrors.ErrIdentifierTaken)
}

func TestRegistrationServiceUpdate(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	created, err := svc.Register(ctx, registerForm("Asha", "R-101", "Chess"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateRegistrationRequest{
		Name:    "Asha Verma",
		PhoneNo: "9123456780",
		RollNo:  "R-101",
		College: "City College",
		Course:  "BSc",
		Year:    "3",
		Events:  []string{"Quiz", "Debate"},
	})
	require.NoError(t, err)

	assert.Equal(t, created.PID, updated.PID, "identifier must not change on update")
	assert.Equal(t, "Asha Verma", updated.Name)
	assert.Equal(t, []string{"Quiz", "Debate"}, updated.Events)

	events, err := store.EventsByRegistrationID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiz", "Debate"}, events, "old selections must be replaced, not merged")
}

func TestRegistrationServiceUpdateRollNoConflict(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerForm("Asha", "R-101"))
	require.NoError(t, err)
	other, err := svc.Register(ctx, registerForm("Ravi", "R-102"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, &dto.UpdateRegistrationRequest{
		Name:    "Ravi",
		PhoneNo: "9876543210",
		RollNo:  "R-101",
		College: "City College",
	})
	assert.ErrorIs(t, err, apperrors.ErrRollNoExists)
}

func TestRegistrationServiceUpdateNotFound(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationStore())

	_, err := svc.Update(context.Background(), 42, &dto.UpdateRegistrationRequest{
		Name:    "Nobody",
		PhoneNo: "0",
		RollNo:  "R-999",
		College: "X",
	})
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}

func TestRegistrationServiceDelete(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	created, err := svc.Register(ctx, registerForm("Asha", "R-101", "Chess"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetDetail(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), apperrors.ErrRegistrationNotFound)
}

func TestRegistrationServiceSuggestShortTerm(t *testing.T) {
	store := newFakeRegistrationStore()
	svc := NewRegistrationService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerForm("Asha", "R-101"))
	require.NoError(t, err)

	refs, err := svc.Suggest(ctx, "A", 0)
	require.NoError(t, err)
	assert.Empty(t, refs, "single-character terms must not produce suggestions")

	refs, err = svc.Suggest(ctx, " As ", 0)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}
