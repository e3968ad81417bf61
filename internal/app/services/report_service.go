package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/pkg/apperrors"
	"github.com/ritik/festreg/internal/pkg/export"
)

// Print list types accepted by BuildLists.
const (
	ListTypeEvent      = "event"
	ListTypeTeamEvent  = "team_event"
	ListTypeCollege    = "college"
	ListTypeIndividual = "individual"
	ListTypeTeam       = "team"
	ListTypeAll        = "all"
)

// PrintListRequest selects which printable list to build. Events applies to
// the per-event types, College to the college type.
type PrintListRequest struct {
	Type    string
	Events  []string
	College string
}

// Table is one section of a printable list or export: a titled header row
// plus data rows of typed cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]export.Value
}

// ReportService builds printable lists, exports and summary counts.
type ReportService interface {
	BuildLists(ctx context.Context, req PrintListRequest) ([]Table, error)
	WriteCSV(w io.Writer, tables []Table) error
	IndividualRosters(ctx context.Context, events []string) (map[string][]models.IndividualRosterEntry, error)
	TeamRosters(ctx context.Context, events []string) (map[string][]models.TeamRosterEntry, error)
	Events(ctx context.Context) (*models.EventCatalog, error)
	Summary(ctx context.Context) (*models.RegistrationSummary, error)
	Statistics(ctx context.Context) (*models.EventStatistics, error)
}

type reportService struct {
	store ReportStore
}

// NewReportService creates a new ReportService
func NewReportService(store ReportStore) ReportService {
	return &reportService{store: store}
}

// BuildLists builds the requested printable list as one table per section.
// Per-event types produce one table per selected event, in request order.
func (s *reportService) BuildLists(ctx context.Context, req PrintListRequest) ([]Table, error) {
	switch req.Type {
	case ListTypeEvent:
		return s.eventLists(ctx, cleanStrings(req.Events))
	case ListTypeTeamEvent:
		return s.teamEventLists(ctx, cleanStrings(req.Events))
	case ListTypeCollege:
		return s.collegeList(ctx, strings.TrimSpace(req.College))
	case ListTypeIndividual:
		rows, err := s.store.UnassignedRegistrants(ctx)
		if err != nil {
			return nil, err
		}
		return []Table{registrantTable("Individual Registrants", rows)}, nil
	case ListTypeTeam:
		entries, err := s.store.AllTeams(ctx)
		if err != nil {
			return nil, err
		}
		return []Table{teamTable("Teams", entries, true)}, nil
	case ListTypeAll:
		registrants, err := s.store.AllRegistrants(ctx)
		if err != nil {
			return nil, err
		}
		return []Table{registrantTable("All Registrants", registrants)}, nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown list type %q", req.Type))
	}
}

// IndividualRosters returns the per-event participant lists, keyed by event.
func (s *reportService) IndividualRosters(ctx context.Context, events []string) (map[string][]models.IndividualRosterEntry, error) {
	events = cleanStrings(events)
	if len(events) == 0 {
		return nil, apperrors.NewValidationError("no events selected")
	}
	return s.store.IndividualRosters(ctx, events)
}

// TeamRosters returns the per-event team lists, keyed by event.
func (s *reportService) TeamRosters(ctx context.Context, events []string) (map[string][]models.TeamRosterEntry, error) {
	events = cleanStrings(events)
	if len(events) == 0 {
		return nil, apperrors.NewValidationError("no events selected")
	}
	return s.store.TeamRosters(ctx, events)
}

func (s *reportService) eventLists(ctx context.Context, events []string) ([]Table, error) {
	rosters, err := s.IndividualRosters(ctx, events)
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(events))
	for _, event := range events {
		rows := make([][]export.Value, 0, len(rosters[event]))
		for _, entry := range rosters[event] {
			rows = append(rows, []export.Value{
				export.Scalar(entry.PID),
				export.Scalar(entry.Name),
				export.Scalar(entry.College),
				export.Scalar(entry.PhoneNo),
			})
		}
		tables = append(tables, Table{
			Title:   event,
			Headers: []string{"PID", "Name", "College", "Phone No"},
			Rows:    rows,
		})
	}
	return tables, nil
}

func (s *reportService) teamEventLists(ctx context.Context, events []string) ([]Table, error) {
	rosters, err := s.TeamRosters(ctx, events)
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(events))
	for _, event := range events {
		table := teamTable(event, rosters[event], false)
		tables = append(tables, table)
	}
	return tables, nil
}

func (s *reportService) collegeList(ctx context.Context, college string) ([]Table, error) {
	if college == "" {
		return nil, apperrors.NewValidationError("no college given")
	}
	rows, err := s.store.RegistrantsByCollege(ctx, college)
	if err != nil {
		return nil, err
	}
	return []Table{registrantTable("Registrants - "+college, rows)}, nil
}

func registrantTable(title string, registrants []models.RegistrantReportRow) Table {
	rows := make([][]export.Value, 0, len(registrants))
	for _, r := range registrants {
		rows = append(rows, []export.Value{
			export.Scalar(r.PID),
			export.Scalar(r.Name),
			export.Scalar(r.PhoneNo),
			export.Scalar(r.College),
			export.Scalar(r.Course),
			export.Scalar(r.Year),
			export.List(r.Events...),
		})
	}
	return Table{
		Title:   title,
		Headers: []string{"PID", "Name", "Phone No", "College", "Course", "Year", "Events"},
		Rows:    rows,
	}
}

func teamTable(title string, entries []models.TeamRosterEntry, withEvents bool) Table {
	headers := []string{"Team ID", "Team Name", "College", "Members"}
	if withEvents {
		headers = append(headers, "Events")
	}

	rows := make([][]export.Value, 0, len(entries))
	for _, entry := range entries {
		members := make([]string, len(entry.Members))
		for i, m := range entry.Members {
			members[i] = fmt.Sprintf("%s (%s)", m.Name, m.PID)
		}
		row := []export.Value{
			export.Scalar(entry.TID),
			export.Scalar(entry.TeamName),
			export.Scalar(entry.College),
			export.List(members...),
		}
		if withEvents {
			row = append(row, export.List(entry.Events...))
		}
		rows = append(rows, row)
	}
	return Table{Title: title, Headers: headers, Rows: rows}
}

// WriteCSV renders the tables as one delimited export, sections separated
// by a blank line.
func (s *reportService) WriteCSV(w io.Writer, tables []Table) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		doc := export.Document{Title: table.Title, Headers: table.Headers, Rows: table.Rows}
		if err := doc.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Events returns the distinct event names seen in registrations.
func (s *reportService) Events(ctx context.Context) (*models.EventCatalog, error) {
	return s.store.DistinctEvents(ctx)
}

// Summary returns per-event and per-college registration counts plus the
// total registrant count.
func (s *reportService) Summary(ctx context.Context) (*models.RegistrationSummary, error) {
	return s.store.Summary(ctx)
}

// Statistics returns participation counts across both categories.
func (s *reportService) Statistics(ctx context.Context) (*models.EventStatistics, error) {
	return s.store.Statistics(ctx)
}
