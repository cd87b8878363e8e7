package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchday/roster-system/models"
	"github.com/matchday/roster-system/repositories"
	"github.com/matchday/roster-system/utils"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

type CreatePlayerInput struct {
	Name string `json:"name"`
}

type UpdatePlayerInput struct {
	Name string `json:"name"`
}

type playerService struct {
	playerRepo       repositories.PlayerRepository
	availabilityRepo repositories.AvailabilityRepository
	retention        *RetentionPolicy
	notifier         Notifier
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	availabilityRepo repositories.AvailabilityRepository,
	retention *RetentionPolicy,
	notifier Notifier,
) PlayerService {
	return &playerService{
		playerRepo:       playerRepo,
		availabilityRepo: availabilityRepo,
		retention:        retention,
		notifier:         notifier,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name, err := s.validateName(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:   utils.NewID(),
		Name: name,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to create player: %w", err))
	}

	// Seed an unset placeholder for every retained match so each match's
	// availability map immediately knows about the new player.
	if err := s.availabilityRepo.InitForPlayer(ctx, player.ID, s.retention.Today()); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to initialize availability for player %s: %w", player.ID, err))
	}

	notify(s.notifier, EventRosterUpdated, player)
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to list players: %w", err))
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	name, err := s.validateName(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}

	player.Name = name
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to update player %s: %w", id, err))
	}

	notify(s.notifier, EventRosterUpdated, player)
	return player, nil
}

// DeletePlayer removes the player; the store cascades all of their
// availability records, so every match's map loses the entry at once.
func (s *playerService) DeletePlayer(ctx context.Context, id string) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	notify(s.notifier, EventRosterUpdated, map[string]interface{}{"deleted_id": id})
	return nil
}

// validateName trims and checks the name: non-empty, and unique on the roster
// compared case-insensitively. Runs before any mutation.
func (s *playerService) validateName(ctx context.Context, raw, excludeID string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrPlayerNameRequired
	}

	taken, err := s.playerRepo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return "", mapRepositoryError(fmt.Errorf("failed to check player name: %w", err))
	}
	if taken {
		return "", ErrPlayerNameConflict
	}
	return name, nil
}
