package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/matchday/roster-system/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	ListFrom(ctx context.Context, date string) ([]models.Match, error)
	ExistsOnDate(ctx context.Context, date string, excludeID string) (bool, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id string) error
	DeletePast(ctx context.Context, before string) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, match_date)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, match.ID, match.Date).Scan(&match.CreatedAt)
	if err != nil {
		return mapSchemaError(err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `
		SELECT id, match_date, created_at
		FROM matches
		WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, mapSchemaError(err)
	}
	return match, nil
}

// ListFrom returns matches dated on or after the given date, soonest first.
// The lower bound is how the retention policy reaches the store: callers pass
// today's date and past matches never leave the database.
func (r *postgresMatchRepository) ListFrom(ctx context.Context, date string) ([]models.Match, error) {
	query := `
		SELECT id, match_date, created_at
		FROM matches
		WHERE match_date >= $1
		ORDER BY match_date ASC`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, mapSchemaError(err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// ExistsOnDate reports whether another match is already scheduled on the
// given date. excludeID is ignored when empty.
func (r *postgresMatchRepository) ExistsOnDate(ctx context.Context, date string, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE match_date = $1 AND id <> $2
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, date, excludeID).Scan(&exists); err != nil {
		return false, mapSchemaError(err)
	}
	return exists, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET match_date = $1
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, match.Date, match.ID)
	if err != nil {
		return mapSchemaError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM matches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapSchemaError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeletePast removes all matches dated before the given date and returns the
// removed set so callers can report what was cleaned up. Their availability
// records go with them via the foreign key cascade.
func (r *postgresMatchRepository) DeletePast(ctx context.Context, before string) ([]models.Match, error) {
	query := `
		DELETE FROM matches
		WHERE match_date < $1
		RETURNING id, match_date, created_at`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, mapSchemaError(err)
	}
	defer rows.Close()

	removed := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		removed = append(removed, *match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return removed, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMatch reads one match row, converting the DATE column to the wire
// format.
func scanMatch(row rowScanner) (*models.Match, error) {
	var match models.Match
	var date time.Time
	if err := row.Scan(&match.ID, &date, &match.CreatedAt); err != nil {
		return nil, err
	}
	match.Date = date.Format(models.MatchDateLayout)
	return &match, nil
}
