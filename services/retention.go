package services

import (
	"time"

	"github.com/matchday/roster-system/models"
)

// RetentionPolicy decides which matches are still visible: a match is
// retained while its calendar date, truncated to local midnight, is today or
// later. Retention is recomputed from the wall clock on every use instead of
// being stored as a flag, so it self-corrects when the clock advances while
// the application sits idle or a match is edited into the past.
type RetentionPolicy struct {
	now func() time.Time
}

func NewRetentionPolicy() *RetentionPolicy {
	return &RetentionPolicy{now: time.Now}
}

// NewRetentionPolicyAt pins the clock. Used by tests.
func NewRetentionPolicyAt(now func() time.Time) *RetentionPolicy {
	return &RetentionPolicy{now: now}
}

// Today returns the current date in storage format, the lower bound queries
// use for retained matches.
func (p *RetentionPolicy) Today() string {
	return p.now().Format(models.MatchDateLayout)
}

// IsFutureOrToday reports whether the date is today or later, ignoring time
// of day entirely. Unparseable dates are not retained.
func (p *RetentionPolicy) IsFutureOrToday(date string) bool {
	parsed, err := time.ParseInLocation(models.MatchDateLayout, date, time.Local)
	if err != nil {
		return false
	}
	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !parsed.Before(today)
}

// FilterRetained keeps only matches whose date passes IsFutureOrToday,
// preserving input order.
func (p *RetentionPolicy) FilterRetained(matches []models.Match) []models.Match {
	retained := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		if p.IsFutureOrToday(match.Date) {
			retained = append(retained, match)
		}
	}
	return retained
}
