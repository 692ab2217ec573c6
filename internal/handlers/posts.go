package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/razzuSharma/girwan-kumar/internal/db"
	"github.com/razzuSharma/girwan-kumar/internal/models"
	"github.com/razzuSharma/girwan-kumar/internal/slug"
)

// PostStore is the post persistence the handlers need. *db.Store
// satisfies it; tests use fakes.
type PostStore interface {
	ListPublished(ctx context.Context, limit, offset int) ([]models.PostListItem, int, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, userID, slug string, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, slug string, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) error
	SlugsWithPrefix(ctx context.Context, prefix string, excludeID int64) ([]string, error)
}

type PostsHandler struct {
	store PostStore
}

func NewPostsHandler(store PostStore) *PostsHandler {
	return &PostsHandler{store: store}
}

type PostsResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int         `json:"total"`
}

// ListPublic serves the public blog listing from the author view.
func (h *PostsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), 1)
	limit := parsePositiveInt(r.URL.Query().Get("limit"), 10)
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	posts, total, err := h.store.ListPublished(r.Context(), limit, offset)
	if err != nil {
		log.Printf("list published posts: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}

	respondJSON(w, http.StatusOK, PostsResponse{
		Data:  posts,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// GetBySlug serves a single published article.
func (h *PostsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	if slugParam == "" {
		respondError(w, http.StatusBadRequest, "missing slug")
		return
	}
	post, err := h.store.GetPublishedBySlug(r.Context(), slugParam)
	if err != nil {
		log.Printf("get post by slug: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// ListAdmin returns every post, drafts included.
func (h *PostsHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	post, err := h.store.GetPostByID(r.Context(), id)
	if err != nil {
		log.Printf("get post: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Create validates the submission, resolves a unique slug, fills
// derived fields, and persists the post.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	resolvedSlug, ok := h.prepare(r.Context(), w, &in, 0, "")
	if !ok {
		return
	}

	created, err := h.store.CreatePost(r.Context(), UserID(r.Context()), resolvedSlug, in)
	if err != nil {
		h.respondSaveError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update re-resolves the slug against all posts except this one, so an
// unchanged slug is kept without a uniqueness lookup.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	existing, err := h.store.GetPostByID(r.Context(), id)
	if err != nil {
		log.Printf("get post: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	var in models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	resolvedSlug, ok := h.prepare(r.Context(), w, &in, id, existing.Slug)
	if !ok {
		return
	}

	updated, err := h.store.UpdatePost(r.Context(), id, resolvedSlug, in)
	if err != nil {
		h.respondSaveError(w, err)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePost(r.Context(), id); err != nil {
		log.Printf("delete post: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// prepare trims and validates the input, then resolves the slug. A
// false return means a response was already written.
func (h *PostsHandler) prepare(ctx context.Context, w http.ResponseWriter, in *models.PostInput, postID int64, previousSlug string) (string, bool) {
	in.ApplyDefaults()

	if in.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required.")
		return "", false
	}
	if in.Content == "" {
		respondError(w, http.StatusBadRequest, "Content is required.")
		return "", false
	}

	candidate := in.Slug
	if candidate == "" {
		candidate = in.Title
	}
	base, err := slug.Normalize(candidate)
	if err != nil {
		// Titles are the usual slug source, so the message points
		// at the title field.
		respondError(w, http.StatusBadRequest, "Title must include letters or numbers.")
		return "", false
	}

	resolved, err := slug.Resolve(ctx, h.store, base, postID, previousSlug)
	if err != nil {
		log.Printf("resolve slug: %v", err)
		respondError(w, http.StatusInternalServerError, "Unable to save article. Please try again.")
		return "", false
	}
	in.Slug = resolved
	return resolved, true
}

func (h *PostsHandler) respondSaveError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrSlugTaken) {
		respondError(w, http.StatusConflict, "That slug is already in use. Please try again.")
		return
	}
	log.Printf("save post: %v", err)
	respondError(w, http.StatusInternalServerError, "Unable to save article. Please try again.")
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
