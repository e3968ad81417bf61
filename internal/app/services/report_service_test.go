package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/pkg/apperrors"
)

// fakeReportStore serves canned projection data.
type fakeReportStore struct {
	individualRosters map[string][]models.IndividualRosterEntry
	teamRosters       map[string][]models.TeamRosterEntry
	byCollege         []models.RegistrantReportRow
	unassigned        []models.RegistrantReportRow
	allRegistrants    []models.RegistrantReportRow
	allTeams          []models.TeamRosterEntry
	catalog           models.EventCatalog
	summary           models.RegistrationSummary
	statistics        models.EventStatistics
}

func (f *fakeReportStore) IndividualRosters(_ context.Context, events []string) (map[string][]models.IndividualRosterEntry, error) {
	rosters := map[string][]models.IndividualRosterEntry{}
	for _, event := range events {
		rosters[event] = f.individualRosters[event]
	}
	return rosters, nil
}

func (f *fakeReportStore) TeamRosters(_ context.Context, events []string) (map[string][]models.TeamRosterEntry, error) {
	rosters := map[string][]models.TeamRosterEntry{}
	for _, event := range events {
		rosters[event] = f.teamRosters[event]
	}
	return rosters, nil
}

func (f *fakeReportStore) RegistrantsByCollege(_ context.Context, _ string) ([]models.RegistrantReportRow, error) {
	return f.byCollege, nil
}

func (f *fakeReportStore) UnassignedRegistrants(_ context.Context) ([]models.RegistrantReportRow, error) {
	return f.unassigned, nil
}

func (f *fakeReportStore) AllRegistrants(_ context.Context) ([]models.RegistrantReportRow, error) {
	return f.allRegistrants, nil
}

func (f *fakeReportStore) AllTeams(_ context.Context) ([]models.TeamRosterEntry, error) {
	return f.allTeams, nil
}

func (f *fakeReportStore) DistinctEvents(_ context.Context) (*models.EventCatalog, error) {
	return &f.catalog, nil
}

func (f *fakeReportStore) Summary(_ context.Context) (*models.RegistrationSummary, error) {
	return &f.summary, nil
}

func (f *fakeReportStore) Statistics(_ context.Context) (*models.EventStatistics, error) {
	return &f.statistics, nil
}

func TestReportServiceEventLists(t *testing.T) {
	store := &fakeReportStore{
		individualRosters: map[string][]models.IndividualRosterEntry{
			"Chess": {
				{PID: "P-0001", Name: "Asha", College: "City College", PhoneNo: "9876543210"},
			},
		},
	}
	svc := NewReportService(store)

	tables, err := svc.BuildLists(context.Background(), PrintListRequest{
		Type:   ListTypeEvent,
		Events: []string{"Chess", "Quiz"},
	})
	require.NoError(t, err)
	require.Len(t, tables, 2, "one table per requested event, even when empty")

	assert.Equal(t, "Chess", tables[0].Title)
	require.Len(t, tables[0].Rows, 1)
	assert.Equal(t, "P-0001", tables[0].Rows[0][0].String())

	assert.Equal(t, "Quiz", tables[1].Title)
	assert.Empty(t, tables[1].Rows)
}

func TestReportServiceTeamEventLists(t *testing.T) {
	store := &fakeReportStore{
		teamRosters: map[string][]models.TeamRosterEntry{
			"Quiz": {
				{
					TID:      "T-0001",
					TeamName: "Knight Riders",
					College:  "City College",
					Members: []models.TeamMember{
						{PID: "P-0001", Name: "Asha"},
						{PID: "P-0002", Name: "Ravi"},
					},
				},
			},
		},
	}
	svc := NewReportService(store)

	tables, err := svc.BuildLists(context.Background(), PrintListRequest{
		Type:   ListTypeTeamEvent,
		Events: []string{"Quiz"},
	})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Rows, 1)

	assert.Equal(t, "Asha (P-0001), Ravi (P-0002)", tables[0].Rows[0][3].String())
}

func TestReportServiceValidation(t *testing.T) {
	svc := NewReportService(&fakeReportStore{})
	ctx := context.Background()

	_, err := svc.BuildLists(ctx, PrintListRequest{Type: ListTypeEvent})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.BuildLists(ctx, PrintListRequest{Type: ListTypeCollege, College: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.BuildLists(ctx, PrintListRequest{Type: "bogus"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestReportServiceAllAndTeamLists(t *testing.T) {
	store := &fakeReportStore{
		allRegistrants: []models.RegistrantReportRow{
			{PID: "P-0001", Name: "Asha", Events: []string{"Chess", "Quiz"}},
		},
		allTeams: []models.TeamRosterEntry{
			{TID: "T-0001", TeamName: "Knight Riders", Events: []string{"Quiz"}},
		},
	}
	svc := NewReportService(store)
	ctx := context.Background()

	tables, err := svc.BuildLists(ctx, PrintListRequest{Type: ListTypeAll})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "All Registrants", tables[0].Title)
	assert.Equal(t, "Chess, Quiz", tables[0].Rows[0][6].String())

	tables, err = svc.BuildLists(ctx, PrintListRequest{Type: ListTypeTeam})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Teams", tables[0].Title)
	assert.Equal(t, "Quiz", tables[0].Rows[0][4].String())
}

func TestReportServiceWriteCSV(t *testing.T) {
	store := &fakeReportStore{
		individualRosters: map[string][]models.IndividualRosterEntry{
			"Chess": {
				{PID: "P-0001", Name: `Ravi "RV" Kumar`, College: "City College, North", PhoneNo: "9876543210"},
			},
		},
	}
	svc := NewReportService(store)

	tables, err := svc.BuildLists(context.Background(), PrintListRequest{
		Type:   ListTypeEvent,
		Events: []string{"Chess", "Quiz"},
	})
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, svc.WriteCSV(&b, tables))

	want := "Chess\n" +
		"PID,Name,College,Phone No\n" +
		`P-0001,"Ravi ""RV"" Kumar","City College, North",9876543210` + "\n" +
		"\n" +
		"Quiz\n" +
		"PID,Name,College,Phone No\n"
	assert.Equal(t, want, b.String())
}

func TestReportServicePassthroughs(t *testing.T) {
	store := &fakeReportStore{
		catalog: models.EventCatalog{Individual: []string{"Chess"}, Team: []string{"Quiz"}},
		summary: models.RegistrationSummary{
			EventCounts: map[string]int{"Chess": 2},
			ClubCounts:  map[string]int{"City College": 2},
			Total:       3,
		},
		statistics: models.EventStatistics{
			IndividualCount: 2,
			TeamCount:       1,
			TeamEvents:      []models.EventRegistrationCount{{EventName: "Quiz", Registrations: 1}},
		},
	}
	svc := NewReportService(store)
	ctx := context.Background()

	catalog, err := svc.Events(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess"}, catalog.Individual)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.IndividualCount)
}
