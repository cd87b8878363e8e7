package services

// Event types pushed to connected clients when state changes. Clients treat
// every event as "reload this resource"; payloads are informational only, so
// the latest successful reload stays authoritative.
const (
	EventRosterUpdated       = "ROSTER_UPDATED"
	EventMatchesUpdated      = "MATCHES_UPDATED"
	EventAvailabilityUpdated = "AVAILABILITY_UPDATED"
	EventMatchesCleaned      = "MATCHES_CLEANED"
)

// Notifier pushes change events to connected clients. Implementations must
// not block. A nil Notifier disables notifications.
type Notifier interface {
	Notify(eventType string, payload interface{})
}
