package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matchday/roster-system/models"
	"github.com/matchday/roster-system/repositories"
	"github.com/matchday/roster-system/utils"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchView, error)
	UpdateMatchDate(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) error
	ListMatches(ctx context.Context) ([]models.MatchView, error)
	CleanupPastMatches(ctx context.Context) ([]models.Match, error)
}

type CreateMatchInput struct {
	Date string `json:"match_date"`
}

type UpdateMatchInput struct {
	Date string `json:"match_date"`
}

type matchService struct {
	matchRepo        repositories.MatchRepository
	playerRepo       repositories.PlayerRepository
	availabilityRepo repositories.AvailabilityRepository
	retention        *RetentionPolicy
	minSquadSize     int
	notifier         Notifier
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	availabilityRepo repositories.AvailabilityRepository,
	retention *RetentionPolicy,
	minSquadSize int,
	notifier Notifier,
) MatchService {
	return &matchService{
		matchRepo:        matchRepo,
		playerRepo:       playerRepo,
		availabilityRepo: availabilityRepo,
		retention:        retention,
		minSquadSize:     minSquadSize,
		notifier:         notifier,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.MatchView, error) {
	date, err := validateMatchDate(input.Date)
	if err != nil {
		return nil, err
	}

	// One match per calendar date, checked before any mutation.
	exists, err := s.matchRepo.ExistsOnDate(ctx, date, "")
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to check match date: %w", err))
	}
	if exists {
		return nil, ErrMatchDateConflict
	}

	match := &models.Match{
		ID:   utils.NewID(),
		Date: date,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to create match: %w", err))
	}

	// Pre-populate the availability map with an unset entry per current
	// player, in a single statement.
	if err := s.availabilityRepo.InitForMatch(ctx, match.ID); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to initialize availability for match %s: %w", match.ID, err))
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to list players: %w", err))
	}

	view := s.buildMatchView(*match, players, nil)
	notify(s.notifier, EventMatchesUpdated, view)
	return &view, nil
}

func (s *matchService) UpdateMatchDate(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	date, err := validateMatchDate(input.Date)
	if err != nil {
		return nil, err
	}

	exists, err := s.matchRepo.ExistsOnDate(ctx, date, id)
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to check match date: %w", err))
	}
	if exists {
		return nil, ErrMatchDateConflict
	}

	// An edit may move the match into the past; the next retention pass
	// removes it rather than rejecting the edit here.
	match.Date = date
	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to update match %s: %w", id, err))
	}

	notify(s.notifier, EventMatchesUpdated, match)
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id string) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	notify(s.notifier, EventMatchesUpdated, map[string]interface{}{"deleted_id": id})
	return nil
}

// ListMatches returns retained matches with their availability maps and
// aggregate counts, soonest first.
func (s *matchService) ListMatches(ctx context.Context) ([]models.MatchView, error) {
	var (
		matches []models.Match
		players []models.Player
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListFrom(gCtx, s.retention.Today())
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to load matches: %w", err))
	}

	if len(matches) == 0 {
		return []models.MatchView{}, nil
	}

	matchIDs := make([]string, len(matches))
	for i, match := range matches {
		matchIDs[i] = match.ID
	}

	records, err := s.availabilityRepo.ListForMatches(ctx, matchIDs)
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to load availability: %w", err))
	}

	statusByMatch := make(map[string]map[string]*models.AvailabilityStatus, len(matches))
	for _, record := range records {
		if _, ok := statusByMatch[record.MatchID]; !ok {
			statusByMatch[record.MatchID] = make(map[string]*models.AvailabilityStatus)
		}
		statusByMatch[record.MatchID][record.PlayerID] = record.Status
	}

	views := make([]models.MatchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, s.buildMatchView(match, players, statusByMatch[match.ID]))
	}
	return views, nil
}

// CleanupPastMatches drops matches whose date has passed and reports the
// removed set. Calling it again with no time elapsed removes nothing.
func (s *matchService) CleanupPastMatches(ctx context.Context) ([]models.Match, error) {
	removed, err := s.matchRepo.DeletePast(ctx, s.retention.Today())
	if err != nil {
		return nil, mapRepositoryError(fmt.Errorf("failed to clean up past matches: %w", err))
	}

	if len(removed) > 0 {
		notify(s.notifier, EventMatchesCleaned, map[string]interface{}{"removed_count": len(removed)})
	}
	return removed, nil
}

// buildMatchView reconciles the stored records against the current roster:
// every current player gets an entry (nil when they have not responded),
// records for players no longer on the roster are left out.
func (s *matchService) buildMatchView(match models.Match, players []models.Player, statuses map[string]*models.AvailabilityStatus) models.MatchView {
	availability := make(map[string]*models.AvailabilityStatus, len(players))
	var summary models.AvailabilitySummary

	for _, player := range players {
		status := statuses[player.ID]
		availability[player.ID] = status
		switch {
		case status == nil:
			summary.NoResponse++
		case *status == models.StatusIn:
			summary.In++
		case *status == models.StatusOut:
			summary.Out++
		}
	}
	summary.Confirmed = summary.In >= s.minSquadSize

	return models.MatchView{
		MatchID:      match.ID,
		MatchDate:    match.Date,
		CreatedAt:    match.CreatedAt,
		Availability: availability,
		Summary:      summary,
	}
}

func validateMatchDate(raw string) (string, error) {
	date := strings.TrimSpace(raw)
	if date == "" {
		return "", ErrMatchDateRequired
	}
	parsed, err := time.ParseInLocation(models.MatchDateLayout, date, time.Local)
	if err != nil {
		return "", ErrMatchDateInvalid
	}
	return parsed.Format(models.MatchDateLayout), nil
}
