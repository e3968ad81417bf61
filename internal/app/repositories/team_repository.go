package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ritik/festreg/internal/app/models"
	"github.com/ritik/festreg/internal/db"
	"github.com/ritik/festreg/internal/pkg/apperrors"
	"github.com/ritik/festreg/internal/pkg/dberrors"
)

// TeamRepository handles database operations for teams, their memberships
// and team event selections.
type TeamRepository struct {
	db *db.PostgresDB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(database *db.PostgresDB) *TeamRepository {
	return &TeamRepository{db: database}
}

// NextSequence returns the highest numeric suffix among assigned team
// identifiers, or 0 when none exist.
func (r *TeamRepository) NextSequence(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(tid FROM 3) AS INTEGER)), 0) FROM teams`

	var max int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("error querying max team sequence: %w", err)
	}
	return max, nil
}

// CreateFull persists the team, one membership per resolved member and one
// event selection per event name in a single transaction. The team's ID and
// CreatedAt are filled in on success.
func (r *TeamRepository) CreateFull(ctx context.Context, team *models.Team, memberIDs []int64, events []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO teams (tid, team_name) VALUES ($1, $2) RETURNING id, created_at`,
			team.TID, team.Name,
		).Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueConstraintError(err, tidConstraint) {
				return apperrors.ErrIdentifierTaken
			}
			return fmt.Errorf("error inserting team: %w", err)
		}

		if err := insertTeamMembers(ctx, tx, team.ID, memberIDs); err != nil {
			return err
		}
		return insertTeamEvents(ctx, tx, team.ID, events)
	})
}

func insertTeamMembers(ctx context.Context, tx pgx.Tx, teamID int64, memberIDs []int64) error {
	for _, memberID := range memberIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO team_members (team_id, registration_id) VALUES ($1, $2)`,
			teamID, memberID)
		if err != nil {
			return fmt.Errorf("error inserting team membership: %w", err)
		}
	}
	return nil
}

func insertTeamEvents(ctx context.Context, tx pgx.Tx, teamID int64, events []string) error {
	for _, event := range events {
		_, err := tx.Exec(ctx,
			`INSERT INTO team_events (team_id, event_name) VALUES ($1, $2)`,
			teamID, event)
		if err != nil {
			return fmt.Errorf("error inserting team event selection: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a team by its internal ID.
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, tid, team_name, created_at FROM teams WHERE id = $1`, id,
	).Scan(&team.ID, &team.TID, &team.Name, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error querying team: %w", err)
	}
	return &team, nil
}

// MembersByTeamID returns the team's resolved members in membership
// insertion order, so the first member is stable for college derivation.
func (r *TeamRepository) MembersByTeamID(ctx context.Context, teamID int64) ([]models.TeamMember, error) {
	query := `
		SELECT r.pid, r.name, r.college
		FROM registrations r
		JOIN team_members tm ON tm.registration_id = r.id
		WHERE tm.team_id = $1
		ORDER BY tm.id
	`
	rows, err := r.db.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("error querying team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.PID, &m.Name, &m.College); err != nil {
			return nil, fmt.Errorf("error scanning team member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// EventsByTeamID returns the team's event names.
func (r *TeamRepository) EventsByTeamID(ctx context.Context, teamID int64) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_name FROM team_events WHERE team_id = $1 ORDER BY event_name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("error querying team events: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// UpdateFull replaces the team's name, full membership set and full event
// selection set in a single transaction.
func (r *TeamRepository) UpdateFull(ctx context.Context, team *models.Team, memberIDs []int64, events []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE teams SET team_name = $1 WHERE id = $2`, team.Name, team.ID)
		if err != nil {
			return fmt.Errorf("error updating team: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTeamNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM team_events WHERE team_id = $1`, team.ID); err != nil {
			return fmt.Errorf("error clearing team events: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM team_members WHERE team_id = $1`, team.ID); err != nil {
			return fmt.Errorf("error clearing team memberships: %w", err)
		}

		if err := insertTeamMembers(ctx, tx, team.ID, memberIDs); err != nil {
			return err
		}
		return insertTeamEvents(ctx, tx, team.ID, events)
	})
}

// Delete removes the team's event selections, memberships and the team row,
// in that order, in a single transaction.
func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM team_events WHERE team_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting team events: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM team_members WHERE team_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting team memberships: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting team: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTeamNotFound
		}
		return nil
	})
}

// Search returns teams whose name or identifier contains the term
// (case-insensitive).
func (r *TeamRepository) Search(ctx context.Context, term string) ([]models.Team, error) {
	query := `
		SELECT id, tid, team_name, created_at
		FROM teams
		WHERE team_name ILIKE $1 OR tid ILIKE $1
		ORDER BY team_name
	`
	rows, err := r.db.Pool.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("error searching teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
