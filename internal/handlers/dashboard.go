package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

type DashboardStore interface {
	CountPostsByUser(ctx context.Context, userID string) (int, error)
	GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error)
}

type DashboardHandler struct {
	store DashboardStore
}

func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

type DashboardResponse struct {
	PostCount         int `json:"post_count"`
	CompletedFields   int `json:"completed_fields"`
	TotalFields       int `json:"total_fields"`
	CompletionPercent int `json:"completion_percent"`
}

// Stats backs the admin overview page: total posts plus how much of
// the public profile is filled in.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	count, err := h.store.CountPostsByUser(r.Context(), userID)
	if err != nil {
		log.Printf("count posts: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	profile, err := h.store.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		log.Printf("get profile: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	fields := profile.CompletionFields()
	completed := 0
	for _, filled := range fields {
		if filled {
			completed++
		}
	}

	respondJSON(w, http.StatusOK, DashboardResponse{
		PostCount:         count,
		CompletedFields:   completed,
		TotalFields:       len(fields),
		CompletionPercent: (completed*100 + len(fields)/2) / len(fields),
	})
}
