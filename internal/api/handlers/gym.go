package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jvmedeiros/gym-checkin-api/internal/service"
	"gorm.io/datatypes"
)

type GymHandler struct {
	gymService *service.GymService
}

func NewGymHandler(gymService *service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

type CreateGymRequest struct {
	Title        string          `json:"title" validate:"required"`
	Description  *string         `json:"description"`
	Phone        *string         `json:"phone"`
	Latitude     float64         `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64         `json:"longitude" validate:"gte=-180,lte=180"`
	OpeningHours json.RawMessage `json:"openingHours"`
}

func (h *GymHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gym, err := h.gymService.Create(r.Context(), service.CreateGymInput{
		Title:        req.Title,
		Description:  req.Description,
		Phone:        req.Phone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OpeningHours: datatypes.JSON(req.OpeningHours),
	})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, gym)
}

func (h *GymHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Query parameter q is required", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	gyms, err := h.gymService.Search(r.Context(), query, page)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gyms)
}

func (h *GymHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	latitude, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil || latitude < -90 || latitude > 90 {
		http.Error(w, "Invalid latitude", http.StatusBadRequest)
		return
	}
	longitude, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil || longitude < -180 || longitude > 180 {
		http.Error(w, "Invalid longitude", http.StatusBadRequest)
		return
	}

	gyms, err := h.gymService.FindNearby(r.Context(), latitude, longitude)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, gyms)
}
