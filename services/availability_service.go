package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchday/roster-system/models"
	"github.com/matchday/roster-system/repositories"
	"github.com/matchday/roster-system/utils"
)

type AvailabilityService interface {
	SetStatus(ctx context.Context, matchID, playerID string, status *models.AvailabilityStatus) error
	Toggle(ctx context.Context, matchID, playerID string, clicked models.AvailabilityStatus) (*models.AvailabilityStatus, error)
	ReconcileAll(ctx context.Context) (int64, error)
}

type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	matchRepo        repositories.MatchRepository
	playerRepo       repositories.PlayerRepository
	retention        *RetentionPolicy
	notifier         Notifier
}

func NewAvailabilityService(
	availabilityRepo repositories.AvailabilityRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	retention *RetentionPolicy,
	notifier Notifier,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		matchRepo:        matchRepo,
		playerRepo:       playerRepo,
		retention:        retention,
		notifier:         notifier,
	}
}

// SetStatus writes the exact requested status for the (match, player) pair.
// A nil status removes the record, reverting the pair to "not responded".
// This is a direct set; the toggle semantics live in Toggle.
func (s *availabilityService) SetStatus(ctx context.Context, matchID, playerID string, status *models.AvailabilityStatus) error {
	if status != nil && !status.Valid() {
		return ErrAvailabilityStatusInvalid
	}

	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return mapRepositoryError(err)
	}
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return mapRepositoryError(err)
	}

	if status == nil {
		if err := s.availabilityRepo.Clear(ctx, matchID, playerID); err != nil {
			return mapRepositoryError(fmt.Errorf("failed to clear availability: %w", err))
		}
	} else {
		record := &models.AvailabilityRecord{
			ID:       utils.NewID(),
			MatchID:  matchID,
			PlayerID: playerID,
			Status:   status,
		}
		if err := s.availabilityRepo.Upsert(ctx, record); err != nil {
			return mapRepositoryError(fmt.Errorf("failed to upsert availability: %w", err))
		}
	}

	notify(s.notifier, EventAvailabilityUpdated, map[string]interface{}{
		"match_id":  matchID,
		"player_id": playerID,
		"status":    status,
	})
	return nil
}

// Toggle applies the button semantics on top of the ledger and returns the
// resulting status: clicking the status the player already has clears it,
// clicking anything else sets it.
func (s *availabilityService) Toggle(ctx context.Context, matchID, playerID string, clicked models.AvailabilityStatus) (*models.AvailabilityStatus, error) {
	if !clicked.Valid() {
		return nil, ErrAvailabilityStatusInvalid
	}

	var current *models.AvailabilityStatus
	record, err := s.availabilityRepo.Get(ctx, matchID, playerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrAvailabilityNotFound) {
			return nil, mapRepositoryError(fmt.Errorf("failed to read availability: %w", err))
		}
		// No record means no response yet.
	} else {
		current = record.Status
	}

	next := ResolveToggle(current, clicked)
	if err := s.SetStatus(ctx, matchID, playerID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ReconcileAll backfills an unset placeholder for every (retained match,
// player) pair that lacks one and returns how many were added. When the
// ledger already matches the roster it performs no writes.
func (s *availabilityService) ReconcileAll(ctx context.Context) (int64, error) {
	added, err := s.availabilityRepo.InsertMissing(ctx, s.retention.Today())
	if err != nil {
		return 0, mapRepositoryError(fmt.Errorf("failed to reconcile availability: %w", err))
	}

	if added > 0 {
		notify(s.notifier, EventAvailabilityUpdated, map[string]interface{}{"placeholders_added": added})
	}
	return added, nil
}

// ResolveToggle is the pure toggle rule: re-clicking the current status
// deselects it, any other click sets the clicked status.
func ResolveToggle(current *models.AvailabilityStatus, clicked models.AvailabilityStatus) *models.AvailabilityStatus {
	if current != nil && *current == clicked {
		return nil
	}
	return &clicked
}
