package handlers

import (
	"errors"
	"net/http"

	"github.com/matchday/roster-system/models"
	"github.com/matchday/roster-system/services"
)

type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

func NewAvailabilityHandler(as services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: as}
}

type setAvailabilityInput struct {
	PlayerID string  `json:"player_id"`
	Status   *string `json:"status"`
}

type toggleAvailabilityInput struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}

// SetAvailability applies a direct status set for one (match, player) pair.
// A null status clears the record.
func (h *AvailabilityHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	matchID, err := getStringIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input setAvailabilityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID == "" {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	var status *models.AvailabilityStatus
	if input.Status != nil {
		value := models.AvailabilityStatus(*input.Status)
		status = &value
	}

	if err := h.availabilityService.SetStatus(r.Context(), matchID, input.PlayerID, status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ToggleAvailability applies the IN/OUT button semantics server-side and
// returns the resulting status (null when the click deselected).
func (h *AvailabilityHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	matchID, err := getStringIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input toggleAvailabilityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID == "" {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	result, err := h.availabilityService.Toggle(r.Context(), matchID, input.PlayerID, models.AvailabilityStatus(input.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
