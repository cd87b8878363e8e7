package models

import "time"

// MatchDateLayout is the wire and storage format for match dates.
// A match carries a calendar date only, no time component.
const MatchDateLayout = "2006-01-02"

type Match struct {
	ID        string    `json:"id" db:"id"`
	Date      string    `json:"match_date" db:"match_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
