package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/matchday/roster-system/models"
)

var ErrAvailabilityNotFound = errors.New("availability record not found")

type AvailabilityRepository interface {
	Get(ctx context.Context, matchID, playerID string) (*models.AvailabilityRecord, error)
	Upsert(ctx context.Context, record *models.AvailabilityRecord) error
	Clear(ctx context.Context, matchID, playerID string) error
	ListForMatches(ctx context.Context, matchIDs []string) ([]models.AvailabilityRecord, error)
	InitForPlayer(ctx context.Context, playerID, fromDate string) error
	InitForMatch(ctx context.Context, matchID string) error
	InsertMissing(ctx context.Context, fromDate string) (int64, error)
}

type postgresAvailabilityRepository struct {
	db *sql.DB
}

func NewPostgresAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &postgresAvailabilityRepository{db: db}
}

func (r *postgresAvailabilityRepository) Get(ctx context.Context, matchID, playerID string) (*models.AvailabilityRecord, error) {
	query := `
		SELECT id, match_id, player_id, status, updated_at
		FROM player_availability
		WHERE match_id = $1 AND player_id = $2`

	record, err := scanAvailabilityRecord(r.db.QueryRowContext(ctx, query, matchID, playerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, mapSchemaError(err)
	}
	return record, nil
}

// Upsert writes the record's status for its (match, player) pair. The unique
// constraint makes this atomic: repeated upserts for the same pair never
// create a second row, and the last write wins.
func (r *postgresAvailabilityRepository) Upsert(ctx context.Context, record *models.AvailabilityRecord) error {
	query := `
		INSERT INTO player_availability (id, match_id, player_id, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (match_id, player_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
		RETURNING updated_at`

	var statusValue interface{}
	if record.Status != nil {
		statusValue = string(*record.Status)
	}

	err := r.db.QueryRowContext(ctx, query,
		record.ID,
		record.MatchID,
		record.PlayerID,
		statusValue,
	).Scan(&record.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "player_availability_match_id_fkey":
				return ErrMatchNotFound
			case "player_availability_player_id_fkey":
				return ErrPlayerNotFound
			}
		}
		return mapSchemaError(err)
	}
	return nil
}

// Clear deletes the record for the pair, reverting it to "not responded".
// Clearing an absent record is a no-op, not an error.
func (r *postgresAvailabilityRepository) Clear(ctx context.Context, matchID, playerID string) error {
	query := `
		DELETE FROM player_availability
		WHERE match_id = $1 AND player_id = $2`

	if _, err := r.db.ExecContext(ctx, query, matchID, playerID); err != nil {
		return mapSchemaError(err)
	}
	return nil
}

func (r *postgresAvailabilityRepository) ListForMatches(ctx context.Context, matchIDs []string) ([]models.AvailabilityRecord, error) {
	if len(matchIDs) == 0 {
		return []models.AvailabilityRecord{}, nil
	}

	query := `
		SELECT id, match_id, player_id, status, updated_at
		FROM player_availability
		WHERE match_id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, mapSchemaError(err)
	}
	defer rows.Close()

	records := make([]models.AvailabilityRecord, 0)
	for rows.Next() {
		record, err := scanAvailabilityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// InitForPlayer seeds an unset placeholder for the player in every match
// dated on or after fromDate. A single multi-row insert: either every
// placeholder lands or none do, so a partial failure cannot leave the ledger
// half-initialized.
func (r *postgresAvailabilityRepository) InitForPlayer(ctx context.Context, playerID, fromDate string) error {
	query := `
		INSERT INTO player_availability (match_id, player_id)
		SELECT m.id, $1
		FROM matches m
		WHERE m.match_date >= $2
		ON CONFLICT (match_id, player_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, playerID, fromDate); err != nil {
		return mapSchemaError(err)
	}
	return nil
}

// InitForMatch seeds an unset placeholder for every current player in the
// given match, in one statement.
func (r *postgresAvailabilityRepository) InitForMatch(ctx context.Context, matchID string) error {
	query := `
		INSERT INTO player_availability (match_id, player_id)
		SELECT $1, p.id
		FROM players p
		ON CONFLICT (match_id, player_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, matchID); err != nil {
		return mapSchemaError(err)
	}
	return nil
}

// InsertMissing backfills placeholders for every (retained match, player)
// pair that lacks one and reports how many were added. Zero rows means the
// ledger already matches the roster and nothing was written.
func (r *postgresAvailabilityRepository) InsertMissing(ctx context.Context, fromDate string) (int64, error) {
	query := `
		INSERT INTO player_availability (match_id, player_id)
		SELECT m.id, p.id
		FROM matches m
		CROSS JOIN players p
		WHERE m.match_date >= $1
		ON CONFLICT (match_id, player_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, fromDate)
	if err != nil {
		return 0, mapSchemaError(err)
	}
	return result.RowsAffected()
}

func scanAvailabilityRecord(row rowScanner) (*models.AvailabilityRecord, error) {
	var record models.AvailabilityRecord
	var status sql.NullString
	if err := row.Scan(&record.ID, &record.MatchID, &record.PlayerID, &status, &record.UpdatedAt); err != nil {
		return nil, err
	}
	if status.Valid {
		value := models.AvailabilityStatus(status.String)
		record.Status = &value
	}
	return &record, nil
}
