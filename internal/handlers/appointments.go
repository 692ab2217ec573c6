package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

// Deliberately permissive: one @, one trailing domain segment. Full
// RFC 5322 rejection is not worth the false negatives here.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AppointmentStore interface {
	CreateAppointmentRequest(ctx context.Context, req models.AppointmentRequest) (*models.AppointmentRequest, error)
	ListAppointmentRequests(ctx context.Context) ([]models.AppointmentRequest, error)
	DeleteAppointmentRequest(ctx context.Context, id int64) error
}

type AppointmentsHandler struct {
	store AppointmentStore
}

func NewAppointmentsHandler(store AppointmentStore) *AppointmentsHandler {
	return &AppointmentsHandler{store: store}
}

type IntakeRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferredDate"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
}

// Intake accepts an unauthenticated appointment submission from the
// public site.
func (h *AppointmentsHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	if name == "" || email == "" || phone == "" {
		respondError(w, http.StatusBadRequest, "Name, email, and phone are required.")
		return
	}
	if !emailRegex.MatchString(email) {
		respondError(w, http.StatusBadRequest, "Invalid email address.")
		return
	}

	_, err := h.store.CreateAppointmentRequest(r.Context(), models.AppointmentRequest{
		Name:          name,
		Email:         email,
		Phone:         phone,
		PreferredDate: optional(req.PreferredDate),
		Reason:        optional(req.Reason),
		Message:       optional(req.Message),
	})
	if err != nil {
		log.Printf("create appointment request: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to submit appointment.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// List returns pending requests for admin review, newest first.
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.store.ListAppointmentRequests(r.Context())
	if err != nil {
		log.Printf("list appointment requests: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load appointments")
		return
	}
	if requests == nil {
		requests = []models.AppointmentRequest{}
	}
	respondJSON(w, http.StatusOK, requests)
}

func (h *AppointmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteAppointmentRequest(r.Context(), id); err != nil {
		log.Printf("delete appointment request: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to delete appointment. Please try again.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
