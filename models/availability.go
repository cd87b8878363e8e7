package models

import "time"

type AvailabilityStatus string

const (
	StatusIn  AvailabilityStatus = "IN"
	StatusOut AvailabilityStatus = "OUT"
)

func (s AvailabilityStatus) Valid() bool {
	return s == StatusIn || s == StatusOut
}

// AvailabilityRecord is one ledger entry keyed by (match, player). A nil
// Status means the player has not responded yet; the persisted row for a
// cleared response is deleted rather than stored as an explicit "unset".
type AvailabilityRecord struct {
	ID        string              `json:"id" db:"id"`
	MatchID   string              `json:"match_id" db:"match_id"`
	PlayerID  string              `json:"player_id" db:"player_id"`
	Status    *AvailabilityStatus `json:"status" db:"status"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

type AvailabilitySummary struct {
	In         int  `json:"in"`
	Out        int  `json:"out"`
	NoResponse int  `json:"no_response"`
	Confirmed  bool `json:"confirmed"`
}

// MatchView is the read projection served to clients: the match itself plus
// its availability map with one entry per current player (nil = no response)
// and the aggregated counts.
type MatchView struct {
	MatchID      string                         `json:"matchId"`
	MatchDate    string                         `json:"matchDate"`
	CreatedAt    time.Time                      `json:"createdAt"`
	Availability map[string]*AvailabilityStatus `json:"availability"`
	Summary      AvailabilitySummary            `json:"summary"`
}
