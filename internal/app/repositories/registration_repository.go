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

// Unique constraint names from the schema, used to translate violations
// into domain errors.
const (
	pidConstraint    = "registrations_pid_key"
	rollNoConstraint = "registrations_rollno_key"
	tidConstraint    = "teams_tid_key"
)

// RegistrationRepository handles database operations for registrants and
// their individual event selections.
type RegistrationRepository struct {
	db *db.PostgresDB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(database *db.PostgresDB) *RegistrationRepository {
	return &RegistrationRepository{db: database}
}

// NextSequence returns the highest numeric suffix among assigned registrant
// identifiers, or 0 when none exist.
func (r *RegistrationRepository) NextSequence(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(CAST(SUBSTRING(pid FROM 3) AS INTEGER)), 0) FROM registrations`

	var max int
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("error querying max registrant sequence: %w", err)
	}
	return max, nil
}

// CreateWithEvents persists the registrant and one event selection per
// requested event name in a single transaction. The registrant's ID and
// CreatedAt are filled in on success.
func (r *RegistrationRepository) CreateWithEvents(ctx context.Context, reg *models.Registrant, events []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertQuery := `
			INSERT INTO registrations (pid, name, phoneno, rollno, college, course, year)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, insertQuery,
			reg.PID, reg.Name, reg.PhoneNo, reg.RollNo, reg.College, reg.Course, reg.Year,
		).Scan(&reg.ID, &reg.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueConstraintError(err, pidConstraint) {
				return apperrors.ErrIdentifierTaken
			}
			if dberrors.IsUniqueConstraintError(err, rollNoConstraint) {
				return apperrors.ErrRollNoExists
			}
			return fmt.Errorf("error inserting registration: %w", err)
		}

		return insertIndividualEvents(ctx, tx, reg.ID, events)
	})
}

// insertIndividualEvents inserts one selection row per event name.
func insertIndividualEvents(ctx context.Context, tx pgx.Tx, registrationID int64, events []string) error {
	for _, event := range events {
		_, err := tx.Exec(ctx,
			`INSERT INTO individual_events (registration_id, event_name) VALUES ($1, $2)`,
			registrationID, event)
		if err != nil {
			return fmt.Errorf("error inserting event selection: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a registrant by its internal ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*models.Registrant, error) {
	query := `
		SELECT id, pid, name, phoneno, rollno, college, course, year, created_at
		FROM registrations
		WHERE id = $1
	`

	var reg models.Registrant
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&reg.ID, &reg.PID, &reg.Name, &reg.PhoneNo, &reg.RollNo,
		&reg.College, &reg.Course, &reg.Year, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error querying registration: %w", err)
	}
	return &reg, nil
}

// EventsByRegistrationID returns the registrant's individual event names.
func (r *RegistrationRepository) EventsByRegistrationID(ctx context.Context, id int64) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_name FROM individual_events WHERE registration_id = $1 ORDER BY event_name`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying event selections: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// GetDetailByPID retrieves a registrant by identifier, with the distinct
// union of their individual and team event names.
func (r *RegistrationRepository) GetDetailByPID(ctx context.Context, pid string) (*models.RegistrantDetail, error) {
	query := `
		SELECT id, pid, name, phoneno, rollno, college, course, year, created_at
		FROM registrations
		WHERE pid = $1
	`

	var detail models.RegistrantDetail
	err := r.db.Pool.QueryRow(ctx, query, pid).Scan(
		&detail.ID, &detail.PID, &detail.Name, &detail.PhoneNo, &detail.RollNo,
		&detail.College, &detail.Course, &detail.Year, &detail.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error querying registration: %w", err)
	}

	eventsQuery := `
		SELECT e.event_name
		FROM individual_events e
		WHERE e.registration_id = $1
		UNION
		SELECT te.event_name
		FROM team_events te
		JOIN team_members tm ON tm.team_id = te.team_id
		WHERE tm.registration_id = $1
		ORDER BY event_name
	`
	rows, err := r.db.Pool.Query(ctx, eventsQuery, detail.ID)
	if err != nil {
		return nil, fmt.Errorf("error querying merged events: %w", err)
	}
	defer rows.Close()

	detail.Events, err = scanStrings(rows)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// RollNoExists reports whether another registrant already holds the roll
// number. excludeID skips the registrant being updated; pass 0 on create.
func (r *RegistrationRepository) RollNoExists(ctx context.Context, rollNo string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE rollno = $1 AND id <> $2)`
	if err := r.db.Pool.QueryRow(ctx, query, rollNo, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking roll number: %w", err)
	}
	return exists, nil
}

// UpdateWithEvents replaces the registrant's scalar fields and its entire
// event selection set in a single transaction.
func (r *RegistrationRepository) UpdateWithEvents(ctx context.Context, reg *models.Registrant, events []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		updateQuery := `
			UPDATE registrations
			SET name = $1, phoneno = $2, rollno = $3, college = $4, course = $5, year = $6
			WHERE id = $7
		`
		tag, err := tx.Exec(ctx, updateQuery,
			reg.Name, reg.PhoneNo, reg.RollNo, reg.College, reg.Course, reg.Year, reg.ID)
		if err != nil {
			if dberrors.IsUniqueConstraintError(err, rollNoConstraint) {
				return apperrors.ErrRollNoExists
			}
			return fmt.Errorf("error updating registration: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrRegistrationNotFound
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM individual_events WHERE registration_id = $1`, reg.ID); err != nil {
			return fmt.Errorf("error clearing event selections: %w", err)
		}

		return insertIndividualEvents(ctx, tx, reg.ID, events)
	})
}

// Delete removes the registrant's team memberships, event selections and
// the registrant row, in that order, in a single transaction.
func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM team_members WHERE registration_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting team memberships: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM individual_events WHERE registration_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting event selections: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting registration: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrRegistrationNotFound
		}
		return nil
	})
}

// Search returns registrants whose name, phone number, roll number or
// college contains the term (case-insensitive), each with their individual
// event list.
func (r *RegistrationRepository) Search(ctx context.Context, term string) ([]models.RegistrantDetail, error) {
	query := `
		SELECT r.id, r.pid, r.name, r.phoneno, r.rollno, r.college, r.course, r.year, r.created_at,
		       COALESCE(ARRAY_AGG(e.event_name ORDER BY e.event_name)
		                FILTER (WHERE e.event_name IS NOT NULL), '{}')
		FROM registrations r
		LEFT JOIN individual_events e ON e.registration_id = r.id
		WHERE r.name ILIKE $1 OR r.phoneno ILIKE $1 OR r.rollno ILIKE $1 OR r.college ILIKE $1
		GROUP BY r.id
		ORDER BY r.id
	`

	rows, err := r.db.Pool.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("error searching registrations: %w", err)
	}
	defer rows.Close()

	results := []models.RegistrantDetail{}
	for rows.Next() {
		var d models.RegistrantDetail
		if err := rows.Scan(
			&d.ID, &d.PID, &d.Name, &d.PhoneNo, &d.RollNo,
			&d.College, &d.Course, &d.Year, &d.CreatedAt, &d.Events,
		); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// Suggestions returns up to limit registrants whose identifier or name
// contains the term.
func (r *RegistrationRepository) Suggestions(ctx context.Context, term string, limit int) ([]models.MemberRef, error) {
	query := `
		SELECT id, pid, name
		FROM registrations
		WHERE pid ILIKE $1 OR name ILIKE $1
		ORDER BY pid
		LIMIT $2
	`
	return r.queryMemberRefs(ctx, query, "%"+term+"%", limit)
}

// SuggestionsExcludingTeam works like Suggestions but omits registrants who
// are already members of the given team.
func (r *RegistrationRepository) SuggestionsExcludingTeam(ctx context.Context, term string, teamID int64, limit int) ([]models.MemberRef, error) {
	query := `
		SELECT id, pid, name
		FROM registrations
		WHERE (pid ILIKE $1 OR name ILIKE $1)
		  AND id NOT IN (SELECT registration_id FROM team_members WHERE team_id = $2)
		ORDER BY pid
		LIMIT $3
	`
	return r.queryMemberRefs(ctx, query, "%"+term+"%", teamID, limit)
}

// FindByPID resolves one registrant identifier to its minimal reference.
func (r *RegistrationRepository) FindByPID(ctx context.Context, pid string) (*models.MemberRef, error) {
	var ref models.MemberRef
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, pid, name FROM registrations WHERE pid = $1`, pid,
	).Scan(&ref.ID, &ref.PID, &ref.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("error resolving identifier: %w", err)
	}
	return &ref, nil
}

// FindByPIDs resolves a batch of registrant identifiers. Identifiers that
// do not exist are simply absent from the result.
func (r *RegistrationRepository) FindByPIDs(ctx context.Context, pids []string) ([]models.MemberRef, error) {
	query := `SELECT id, pid, name FROM registrations WHERE pid = ANY($1)`
	return r.queryMemberRefs(ctx, query, pids)
}

func (r *RegistrationRepository) queryMemberRefs(ctx context.Context, query string, args ...interface{}) ([]models.MemberRef, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying registrants: %w", err)
	}
	defer rows.Close()

	refs := []models.MemberRef{}
	for rows.Next() {
		var ref models.MemberRef
		if err := rows.Scan(&ref.ID, &ref.PID, &ref.Name); err != nil {
			return nil, fmt.Errorf("error scanning registrant row: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// scanStrings drains a single-column string result set.
func scanStrings(rows pgx.Rows) ([]string, error) {
	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
