package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/razzuSharma/girwan-kumar/internal/models"
	"github.com/razzuSharma/girwan-kumar/internal/storage"
)

const maxAvatarSize = 5 << 20 // 5 MiB

type ProfileStore interface {
	GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error)
	SetAvatarURL(ctx context.Context, userID, avatarURL string) error
}

type AvatarSaver interface {
	Save(userID, contentType string, r io.Reader) (string, error)
}

type ProfileHandler struct {
	store         ProfileStore
	avatars       AvatarSaver
	publicBaseURL string
}

func NewProfileHandler(store ProfileStore, avatars AvatarSaver, publicBaseURL string) *ProfileHandler {
	return &ProfileHandler{store: store, avatars: avatars, publicBaseURL: publicBaseURL}
}

// Get returns the admin's profile, creating the blank row on first
// visit.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.GetOrCreateProfile(r.Context(), UserID(r.Context()))
	if err != nil {
		log.Printf("get profile: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	profile, err := h.store.UpdateProfile(r.Context(), UserID(r.Context()), in)
	if err != nil {
		log.Printf("update profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to save profile. Please try again.")
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UploadAvatar stores a PNG/JPEG avatar at {userID}/avatar.{ext},
// overwriting any previous one, and points the profile at its public
// URL. Concurrent uploads for the same account are last-write-wins.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Please choose an image file.")
		return
	}
	defer file.Close()

	userID := UserID(r.Context())
	relPath, err := h.avatars.Save(userID, header.Header.Get("Content-Type"), file)
	if err != nil {
		if err == storage.ErrUnsupportedType {
			respondError(w, http.StatusBadRequest, "Only PNG or JPG files are allowed.")
			return
		}
		log.Printf("save avatar: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to upload avatar. Please try again.")
		return
	}

	avatarURL := h.publicBaseURL + "/avatars/" + relPath
	if err := h.store.SetAvatarURL(r.Context(), userID, avatarURL); err != nil {
		log.Printf("set avatar url: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to upload avatar. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": avatarURL})
}
