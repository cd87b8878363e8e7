package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/matchday/roster-system/models"
	"github.com/matchday/roster-system/repositories"
)

// In-memory store shared by the fake repositories so foreign-key cascades
// behave like the real schema.
type fakeStore struct {
	players []models.Player
	matches []models.Match
	records map[string]*models.AvailabilityRecord // keyed matchID|playerID
	nextID  int
	now     time.Time
}

func newFakeStore(now time.Time) *fakeStore {
	return &fakeStore{
		records: make(map[string]*models.AvailabilityRecord),
		now:     now,
	}
}

func recordKey(matchID, playerID string) string {
	return matchID + "|" + playerID
}

func (s *fakeStore) removePlayerRecords(playerID string) {
	for key, record := range s.records {
		if record.PlayerID == playerID {
			delete(s.records, key)
		}
	}
}

func (s *fakeStore) removeMatchRecords(matchID string) {
	for key, record := range s.records {
		if record.MatchID == matchID {
			delete(s.records, key)
		}
	}
}

type fakePlayerRepo struct {
	store *fakeStore
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.CreatedAt = r.store.now
	r.store.players = append(r.store.players, *player)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	for _, player := range r.store.players {
		if player.ID == id {
			copied := player
			return &copied, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	return append([]models.Player(nil), r.store.players...), nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	for i := range r.store.players {
		if r.store.players[i].ID == player.ID {
			r.store.players[i].Name = player.Name
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	for i := range r.store.players {
		if r.store.players[i].ID == id {
			r.store.players = append(r.store.players[:i], r.store.players[i+1:]...)
			r.store.removePlayerRecords(id)
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) NameTaken(_ context.Context, name string, excludeID string) (bool, error) {
	for _, player := range r.store.players {
		if player.ID != excludeID && strings.EqualFold(player.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

type fakeMatchRepo struct {
	store *fakeStore
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.CreatedAt = r.store.now
	r.store.matches = append(r.store.matches, *match)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	for _, match := range r.store.matches {
		if match.ID == id {
			copied := match
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListFrom(_ context.Context, date string) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, match := range r.store.matches {
		if match.Date >= date {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Date < matches[j].Date })
	return matches, nil
}

func (r *fakeMatchRepo) ExistsOnDate(_ context.Context, date string, excludeID string) (bool, error) {
	for _, match := range r.store.matches {
		if match.ID != excludeID && match.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	for i := range r.store.matches {
		if r.store.matches[i].ID == match.ID {
			r.store.matches[i].Date = match.Date
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) Delete(_ context.Context, id string) error {
	for i := range r.store.matches {
		if r.store.matches[i].ID == id {
			r.store.matches = append(r.store.matches[:i], r.store.matches[i+1:]...)
			r.store.removeMatchRecords(id)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) DeletePast(_ context.Context, before string) ([]models.Match, error) {
	removed := make([]models.Match, 0)
	kept := make([]models.Match, 0, len(r.store.matches))
	for _, match := range r.store.matches {
		if match.Date < before {
			removed = append(removed, match)
			r.store.removeMatchRecords(match.ID)
		} else {
			kept = append(kept, match)
		}
	}
	r.store.matches = kept
	return removed, nil
}

type fakeAvailabilityRepo struct {
	store *fakeStore
}

func (r *fakeAvailabilityRepo) Get(_ context.Context, matchID, playerID string) (*models.AvailabilityRecord, error) {
	record, ok := r.store.records[recordKey(matchID, playerID)]
	if !ok {
		return nil, repositories.ErrAvailabilityNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeAvailabilityRepo) Upsert(_ context.Context, record *models.AvailabilityRecord) error {
	record.UpdatedAt = r.store.now
	copied := *record
	r.store.records[recordKey(record.MatchID, record.PlayerID)] = &copied
	return nil
}

func (r *fakeAvailabilityRepo) Clear(_ context.Context, matchID, playerID string) error {
	delete(r.store.records, recordKey(matchID, playerID))
	return nil
}

func (r *fakeAvailabilityRepo) ListForMatches(_ context.Context, matchIDs []string) ([]models.AvailabilityRecord, error) {
	wanted := make(map[string]bool, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = true
	}
	records := make([]models.AvailabilityRecord, 0)
	for _, record := range r.store.records {
		if wanted[record.MatchID] {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (r *fakeAvailabilityRepo) InitForPlayer(_ context.Context, playerID, fromDate string) error {
	for _, match := range r.store.matches {
		if match.Date < fromDate {
			continue
		}
		r.insertPlaceholder(match.ID, playerID)
	}
	return nil
}

func (r *fakeAvailabilityRepo) InitForMatch(_ context.Context, matchID string) error {
	for _, player := range r.store.players {
		r.insertPlaceholder(matchID, player.ID)
	}
	return nil
}

func (r *fakeAvailabilityRepo) InsertMissing(_ context.Context, fromDate string) (int64, error) {
	var added int64
	for _, match := range r.store.matches {
		if match.Date < fromDate {
			continue
		}
		for _, player := range r.store.players {
			if r.insertPlaceholder(match.ID, player.ID) {
				added++
			}
		}
	}
	return added, nil
}

func (r *fakeAvailabilityRepo) insertPlaceholder(matchID, playerID string) bool {
	key := recordKey(matchID, playerID)
	if _, ok := r.store.records[key]; ok {
		return false
	}
	r.store.nextID++
	r.store.records[key] = &models.AvailabilityRecord{
		ID:        key,
		MatchID:   matchID,
		PlayerID:  playerID,
		UpdatedAt: r.store.now,
	}
	return true
}

// fixture wires the services against the in-memory store with a pinned clock.
type fixture struct {
	store        *fakeStore
	players      PlayerService
	matches      MatchService
	availability AvailabilityService
}

func newFixture(minSquadSize int, now time.Time) *fixture {
	store := newFakeStore(now)
	retention := NewRetentionPolicyAt(func() time.Time { return now })

	playerRepo := &fakePlayerRepo{store: store}
	matchRepo := &fakeMatchRepo{store: store}
	availabilityRepo := &fakeAvailabilityRepo{store: store}

	return &fixture{
		store:        store,
		players:      NewPlayerService(playerRepo, availabilityRepo, retention, nil),
		matches:      NewMatchService(matchRepo, playerRepo, availabilityRepo, retention, minSquadSize, nil),
		availability: NewAvailabilityService(availabilityRepo, matchRepo, playerRepo, retention, nil),
	}
}
