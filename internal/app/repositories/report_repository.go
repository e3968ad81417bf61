package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/db"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ReportRepository runs the read-only projections behind rosters, printable
// lists, exports and summary counts.
type ReportRepository struct {
	db *db.PostgresDB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(database *db.PostgresDB) *ReportRepository {
	return &ReportRepository{db: database}
}

// IndividualRosters returns, for each requested event, the participants
// registered for it.
func (r *ReportRepository) IndividualRosters(ctx context.Context, events []string) (map[string][]models.IndividualRosterEntry, error) {
	query, args, err := psql.
		Select("r.pid", "r.name", "r.college", "r.phoneno", "e.event_name").
		From("individual_events e").
		Join("registrations r ON r.id = e.registration_id").
		Where(squirrel.Eq{"e.event_name": events}).
		OrderBy("r.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building roster query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying individual rosters: %w", err)
	}
	defer rows.Close()

	rosters := make(map[string][]models.IndividualRosterEntry, len(events))
	for _, event := range events {
		rosters[event] = []models.IndividualRosterEntry{}
	}
	for rows.Next() {
		var entry models.IndividualRosterEntry
		var eventName string
		if err := rows.Scan(&entry.PID, &entry.Name, &entry.College, &entry.PhoneNo, &eventName); err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		rosters[eventName] = append(rosters[eventName], entry)
	}
	return rosters, rows.Err()
}

// TeamRosters returns, for each requested event, the teams registered for
// it, with resolved members and the derived college.
func (r *ReportRepository) TeamRosters(ctx context.Context, events []string) (map[string][]models.TeamRosterEntry, error) {
	query, args, err := psql.
		Select("t.id", "t.tid", "t.team_name", "te.event_name").
		From("team_events te").
		Join("teams t ON t.id = te.team_id").
		Where(squirrel.Eq{"te.event_name": events}).
		OrderBy("t.team_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building roster query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying team rosters: %w", err)
	}
	defer rows.Close()

	type teamRow struct {
		id    int64
		entry models.TeamRosterEntry
		event string
	}
	var teamRows []teamRow
	var teamIDs []int64
	for rows.Next() {
		var tr teamRow
		if err := rows.Scan(&tr.id, &tr.entry.TID, &tr.entry.TeamName, &tr.event); err != nil {
			return nil, fmt.Errorf("error scanning team roster row: %w", err)
		}
		teamRows = append(teamRows, tr)
		teamIDs = append(teamIDs, tr.id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.membersForTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	rosters := make(map[string][]models.TeamRosterEntry, len(events))
	for _, event := range events {
		rosters[event] = []models.TeamRosterEntry{}
	}
	for _, tr := range teamRows {
		tr.entry.Members = members[tr.id]
		tr.entry.College = models.DerivedCollege(tr.entry.Members)
		rosters[tr.event] = append(rosters[tr.event], tr.entry)
	}
	return rosters, nil
}

// membersForTeams loads resolved members for a batch of teams, keyed by
// team ID and ordered by membership insertion.
func (r *ReportRepository) membersForTeams(ctx context.Context, teamIDs []int64) (map[int64][]models.TeamMember, error) {
	members := make(map[int64][]models.TeamMember, len(teamIDs))
	if len(teamIDs) == 0 {
		return members, nil
	}

	query := `
		SELECT tm.team_id, r.pid, r.name, r.college
		FROM team_members tm
		JOIN registrations r ON r.id = tm.registration_id
		WHERE tm.team_id = ANY($1)
		ORDER BY tm.id
	`
	rows, err := r.db.Pool.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int64
		var m models.TeamMember
		if err := rows.Scan(&teamID, &m.PID, &m.Name, &m.College); err != nil {
			return nil, fmt.Errorf("error scanning team member row: %w", err)
		}
		members[teamID] = append(members[teamID], m)
	}
	return members, rows.Err()
}

const registrantReportColumns = `
	r.pid, r.name, r.phoneno, r.college, r.course, r.year,
	COALESCE(ARRAY_AGG(e.event_name ORDER BY e.event_name)
	         FILTER (WHERE e.event_name IS NOT NULL), '{}')
`

// RegistrantsByCollege returns registrants whose college contains the term,
// each with their individual event list.
func (r *ReportRepository) RegistrantsByCollege(ctx context.Context, college string) ([]models.RegistrantReportRow, error) {
	query, args, err := psql.
		Select(registrantReportColumns).
		From("registrations r").
		LeftJoin("individual_events e ON e.registration_id = r.id").
		Where(squirrel.ILike{"r.college": "%" + college + "%"}).
		GroupBy("r.id").
		OrderBy("r.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building report query: %w", err)
	}
	return r.queryRegistrantRows(ctx, query, args...)
}

// UnassignedRegistrants returns registrants with no team membership, each
// with their individual event list.
func (r *ReportRepository) UnassignedRegistrants(ctx context.Context) ([]models.RegistrantReportRow, error) {
	query := `
		SELECT ` + registrantReportColumns + `
		FROM registrations r
		LEFT JOIN individual_events e ON e.registration_id = r.id
		WHERE r.id NOT IN (SELECT registration_id FROM team_members)
		GROUP BY r.id
		ORDER BY r.name
	`
	return r.queryRegistrantRows(ctx, query)
}

// AllRegistrants returns every registrant with their individual event list.
func (r *ReportRepository) AllRegistrants(ctx context.Context) ([]models.RegistrantReportRow, error) {
	query := `
		SELECT ` + registrantReportColumns + `
		FROM registrations r
		LEFT JOIN individual_events e ON e.registration_id = r.id
		GROUP BY r.id
		ORDER BY r.name
	`
	return r.queryRegistrantRows(ctx, query)
}

func (r *ReportRepository) queryRegistrantRows(ctx context.Context, query string, args ...interface{}) ([]models.RegistrantReportRow, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying registrant report: %w", err)
	}
	defer rows.Close()

	results := []models.RegistrantReportRow{}
	for rows.Next() {
		var row models.RegistrantReportRow
		if err := rows.Scan(&row.PID, &row.Name, &row.PhoneNo, &row.College, &row.Course, &row.Year, &row.Events); err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AllTeams returns every team with resolved members, derived college and
// event list.
func (r *ReportRepository) AllTeams(ctx context.Context) ([]models.TeamRosterEntry, error) {
	query := `
		SELECT t.id, t.tid, t.team_name,
		       COALESCE(ARRAY_AGG(te.event_name ORDER BY te.event_name)
		                FILTER (WHERE te.event_name IS NOT NULL), '{}')
		FROM teams t
		LEFT JOIN team_events te ON te.team_id = t.id
		GROUP BY t.id
		ORDER BY t.team_name
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying teams report: %w", err)
	}
	defer rows.Close()

	var ids []int64
	entries := []models.TeamRosterEntry{}
	for rows.Next() {
		var id int64
		var entry models.TeamRosterEntry
		if err := rows.Scan(&id, &entry.TID, &entry.TeamName, &entry.Events); err != nil {
			return nil, fmt.Errorf("error scanning team report row: %w", err)
		}
		ids = append(ids, id)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.membersForTeams(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Members = members[ids[i]]
		entries[i].College = models.DerivedCollege(entries[i].Members)
	}
	return entries, nil
}

// DistinctEvents returns the distinct individual and team event names.
func (r *ReportRepository) DistinctEvents(ctx context.Context) (*models.EventCatalog, error) {
	catalog := &models.EventCatalog{Individual: []string{}, Team: []string{}}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT event_name FROM individual_events ORDER BY event_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying individual events: %w", err)
	}
	defer rows.Close()
	if catalog.Individual, err = scanStrings(rows); err != nil {
		return nil, err
	}

	teamRows, err := r.db.Pool.Query(ctx,
		`SELECT DISTINCT event_name FROM team_events ORDER BY event_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying team events: %w", err)
	}
	defer teamRows.Close()
	if catalog.Team, err = scanStrings(teamRows); err != nil {
		return nil, err
	}

	return catalog, nil
}

// Summary returns per-event selection counts, per-college counts of
// registrants with at least one selection, and the total registrant count.
func (r *ReportRepository) Summary(ctx context.Context) (*models.RegistrationSummary, error) {
	summary := &models.RegistrationSummary{
		EventCounts: map[string]int{},
		ClubCounts:  map[string]int{},
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_name, COUNT(*) FROM individual_events GROUP BY event_name`)
	if err != nil {
		return nil, fmt.Errorf("error querying event counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("error scanning event count row: %w", err)
		}
		summary.EventCounts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	clubRows, err := r.db.Pool.Query(ctx, `
		SELECT r.college, COUNT(DISTINCT r.id)
		FROM registrations r
		JOIN individual_events e ON e.registration_id = r.id
		GROUP BY r.college
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying college counts: %w", err)
	}
	defer clubRows.Close()
	for clubRows.Next() {
		var college string
		var count int
		if err := clubRows.Scan(&college, &count); err != nil {
			return nil, fmt.Errorf("error scanning college count row: %w", err)
		}
		summary.ClubCounts[college] = count
	}
	if err := clubRows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations`).Scan(&summary.Total); err != nil {
		return nil, fmt.Errorf("error querying total count: %w", err)
	}

	return summary, nil
}

// Statistics returns participation counts across both categories.
func (r *ReportRepository) Statistics(ctx context.Context) (*models.EventStatistics, error) {
	stats := &models.EventStatistics{TeamEvents: []models.EventRegistrationCount{}}

	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT registration_id) FROM individual_events`).Scan(&stats.IndividualCount); err != nil {
		return nil, fmt.Errorf("error querying individual count: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_events`).Scan(&stats.TeamCount); err != nil {
		return nil, fmt.Errorf("error querying team count: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT event_name, COUNT(*)
		FROM team_events
		GROUP BY event_name
		ORDER BY event_name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying team event counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c models.EventRegistrationCount
		if err := rows.Scan(&c.EventName, &c.Registrations); err != nil {
			return nil, fmt.Errorf("error scanning team event count row: %w", err)
		}
		stats.TeamEvents = append(stats.TeamEvents, c)
	}
	return stats, rows.Err()
}
