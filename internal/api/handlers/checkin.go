package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/api/middleware"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/feed"
	"github.com/jvmedeiros/gym-checkin-api/internal/service"
)

type CheckInHandler struct {
	checkInService *service.CheckInService
	hub            *feed.Hub
}

func NewCheckInHandler(checkInService *service.CheckInService, hub *feed.Hub) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService, hub: hub}
}

type CreateCheckInRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	gymID, err := uuid.Parse(chi.URLParam(r, "gymId"))
	if err != nil {
		http.Error(w, "Invalid gym ID", http.StatusBadRequest)
		return
	}

	var req CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	checkIn, err := h.checkInService.CheckIn(r.Context(), userID, gymID, req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGymNotFound):
			http.Error(w, "Gym not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrGymTooFar):
			http.Error(w, "Too far from gym to check in", http.StatusForbidden)
		case errors.Is(err, domain.ErrCheckInLimitReached):
			http.Error(w, "Already checked in today", http.StatusConflict)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.hub.Publish(feed.Event{
		Type:       feed.EventCheckInCreated,
		CheckInID:  checkIn.ID,
		UserID:     checkIn.UserID,
		GymID:      checkIn.GymID,
		OccurredAt: checkIn.CreatedAt,
	})

	writeJSON(w, http.StatusCreated, checkIn)
}

func (h *CheckInHandler) Validate(w http.ResponseWriter, r *http.Request) {
	checkInID, err := uuid.Parse(chi.URLParam(r, "checkInId"))
	if err != nil {
		http.Error(w, "Invalid check-in ID", http.StatusBadRequest)
		return
	}

	checkIn, err := h.checkInService.Validate(r.Context(), checkInID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCheckInNotFound):
			http.Error(w, "Check-in not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrAlreadyValidated):
			http.Error(w, "Check-in already validated", http.StatusConflict)
		case errors.Is(err, domain.ErrLateValidation):
			http.Error(w, "Check-in validation window has passed", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.hub.Publish(feed.Event{
		Type:       feed.EventCheckInValidated,
		CheckInID:  checkIn.ID,
		UserID:     checkIn.UserID,
		GymID:      checkIn.GymID,
		OccurredAt: *checkIn.ValidatedAt,
	})

	writeJSON(w, http.StatusOK, checkIn)
}

func (h *CheckInHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	checkIns, err := h.checkInService.History(r.Context(), userID, page)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, checkIns)
}

func (h *CheckInHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.checkInService.Metrics(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"checkInsCount": count})
}
