package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameConflict = errors.New("player name is already in use")
	ErrPlayerNotFound     = errors.New("player not found")

	ErrMatchDateRequired = errors.New("match date is required")
	ErrMatchDateInvalid  = errors.New("match date must be a valid YYYY-MM-DD date")
	ErrMatchDateConflict = errors.New("a match on this date already exists")
	ErrMatchNotFound     = errors.New("match not found")

	ErrAvailabilityStatusInvalid = errors.New("availability status must be IN or OUT")

	// Distinguishable from a generic storage failure so the UI can tell the
	// operator to run db/schema.sql.
	ErrSchemaNotInitialized = errors.New("database schema not initialized")
)
