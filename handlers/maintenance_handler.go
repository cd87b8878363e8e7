package handlers

import (
	"net/http"

	"github.com/matchday/roster-system/services"
)

type MaintenanceHandler struct {
	matchService        services.MatchService
	availabilityService services.AvailabilityService
}

func NewMaintenanceHandler(ms services.MatchService, as services.AvailabilityService) *MaintenanceHandler {
	return &MaintenanceHandler{
		matchService:        ms,
		availabilityService: as,
	}
}

// CleanupPastMatches removes matches whose date has passed and reports what
// was removed. Safe to call repeatedly.
func (h *MaintenanceHandler) CleanupPastMatches(w http.ResponseWriter, r *http.Request) {
	removed, err := h.matchService.CleanupPastMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"removed_count": len(removed),
		"removed":       removed,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReconcileAvailability backfills missing availability placeholders and
// reports how many were added.
func (h *MaintenanceHandler) ReconcileAvailability(w http.ResponseWriter, r *http.Request) {
	added, err := h.availabilityService.ReconcileAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"placeholders_added": added}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
