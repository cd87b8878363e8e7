package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchday/roster-system/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
	NameTaken(ctx context.Context, name string, excludeID string) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, player.ID, player.Name).Scan(&player.CreatedAt)
	if err != nil {
		return mapSchemaError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `
		SELECT id, name, created_at
		FROM players
		WHERE id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(&player.ID, &player.Name, &player.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, mapSchemaError(err)
	}
	return &player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT id, name, created_at
		FROM players
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapSchemaError(err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if err := rows.Scan(&player.ID, &player.Name, &player.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET name = $1
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, player.Name, player.ID)
	if err != nil {
		return mapSchemaError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// Delete removes the player; availability records go with them via the
// foreign key cascade.
func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM players WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapSchemaError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// NameTaken reports whether another player already uses the given name,
// compared case-insensitively. excludeID is ignored when empty.
func (r *postgresPlayerRepository) NameTaken(ctx context.Context, name string, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM players
			WHERE LOWER(name) = LOWER($1) AND id <> $2
		)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&taken); err != nil {
		return false, mapSchemaError(err)
	}
	return taken, nil
}
