package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchday/roster-system/models"
)

func statusPtr(s models.AvailabilityStatus) *models.AvailabilityStatus {
	return &s
}

func TestResolveToggle(t *testing.T) {
	tests := []struct {
		name    string
		current *models.AvailabilityStatus
		clicked models.AvailabilityStatus
		want    *models.AvailabilityStatus
	}{
		{name: "IN on unset sets IN", current: nil, clicked: models.StatusIn, want: statusPtr(models.StatusIn)},
		{name: "IN on IN deselects", current: statusPtr(models.StatusIn), clicked: models.StatusIn, want: nil},
		{name: "IN on OUT switches to IN", current: statusPtr(models.StatusOut), clicked: models.StatusIn, want: statusPtr(models.StatusIn)},
		{name: "OUT on unset sets OUT", current: nil, clicked: models.StatusOut, want: statusPtr(models.StatusOut)},
		{name: "OUT on OUT deselects", current: statusPtr(models.StatusOut), clicked: models.StatusOut, want: nil},
		{name: "OUT on IN switches to OUT", current: statusPtr(models.StatusIn), clicked: models.StatusOut, want: statusPtr(models.StatusOut)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveToggle(tt.current, tt.clicked)
			if tt.want == nil {
				require.Nil(t, got)
			} else {
				require.NotNil(t, got)
				require.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestSetStatus_DirectSetThenClear(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	require.NoError(t, f.availability.SetStatus(ctx, match.MatchID, alice.ID, statusPtr(models.StatusOut)))

	record := f.store.records[recordKey(match.MatchID, alice.ID)]
	require.NotNil(t, record)
	require.NotNil(t, record.Status)
	require.Equal(t, models.StatusOut, *record.Status)

	// A repeated set is an upsert on the same pair, never a second row.
	require.NoError(t, f.availability.SetStatus(ctx, match.MatchID, alice.ID, statusPtr(models.StatusIn)))
	require.Len(t, f.store.records, 1)
	require.Equal(t, models.StatusIn, *f.store.records[recordKey(match.MatchID, alice.ID)].Status)

	// nil clears the record entirely.
	require.NoError(t, f.availability.SetStatus(ctx, match.MatchID, alice.ID, nil))
	_, ok := f.store.records[recordKey(match.MatchID, alice.ID)]
	require.False(t, ok)
}

func TestSetStatus_InvalidStatusRejected(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	invalid := models.AvailabilityStatus("MAYBE")
	err = f.availability.SetStatus(ctx, match.MatchID, alice.ID, &invalid)

	require.ErrorIs(t, err, ErrAvailabilityStatusInvalid)
}

func TestSetStatus_UnknownMatchOrPlayer(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	err = f.availability.SetStatus(ctx, "missing", alice.ID, statusPtr(models.StatusIn))
	require.ErrorIs(t, err, ErrMatchNotFound)

	err = f.availability.SetStatus(ctx, match.MatchID, "missing", statusPtr(models.StatusIn))
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestToggle_ReclickClearsRecord(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	result, err := f.availability.Toggle(ctx, match.MatchID, alice.ID, models.StatusIn)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, models.StatusIn, *result)

	// Clicking IN again deselects: the record is removed, not flipped.
	result, err = f.availability.Toggle(ctx, match.MatchID, alice.ID, models.StatusIn)
	require.NoError(t, err)
	require.Nil(t, result)

	_, ok := f.store.records[recordKey(match.MatchID, alice.ID)]
	require.False(t, ok)
}

func TestToggle_TreatsPlaceholderAsUnset(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	// Creating the match after the player leaves a nil-status placeholder
	// row, which must behave exactly like no response.
	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	result, err := f.availability.Toggle(ctx, match.MatchID, alice.ID, models.StatusOut)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, models.StatusOut, *result)
}

func TestReconcileAll_BackfillsThenNoOp(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	// Simulate a lost placeholder insert.
	delete(f.store.records, recordKey(match.MatchID, alice.ID))

	added, err := f.availability.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), added)

	// Consistent state produces zero writes.
	added, err = f.availability.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Zero(t, added)
}

// Walks the full roster lifecycle: placeholders appear for new players,
// direct sets stick, and deleting a player prunes their entries.
func TestRosterLifecycle(t *testing.T) {
	f := newFixture(11, testNow)
	ctx := context.Background()

	alice, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Alice"})
	require.NoError(t, err)
	bob, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Bob"})
	require.NoError(t, err)

	match, err := f.matches.CreateMatch(ctx, CreateMatchInput{Date: "2025-01-10"})
	require.NoError(t, err)

	carol, err := f.players.CreatePlayer(ctx, CreatePlayerInput{Name: "Carol"})
	require.NoError(t, err)

	views, err := f.matches.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Availability, 3)
	require.Nil(t, views[0].Availability[alice.ID])
	require.Nil(t, views[0].Availability[bob.ID])
	require.Nil(t, views[0].Availability[carol.ID])

	require.NoError(t, f.availability.SetStatus(ctx, match.MatchID, bob.ID, statusPtr(models.StatusIn)))

	views, err = f.matches.ListMatches(ctx)
	require.NoError(t, err)
	require.Nil(t, views[0].Availability[alice.ID])
	require.Equal(t, models.StatusIn, *views[0].Availability[bob.ID])
	require.Nil(t, views[0].Availability[carol.ID])

	require.NoError(t, f.players.DeletePlayer(ctx, alice.ID))

	views, err = f.matches.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, views[0].Availability, 2)
	require.NotContains(t, views[0].Availability, alice.ID)
	require.Equal(t, models.StatusIn, *views[0].Availability[bob.ID])
	require.Nil(t, views[0].Availability[carol.ID])
}
