package models

import (
	"strings"
	"time"
)

// excerptLength is how much of the content becomes the excerpt when
// the author leaves it blank.
const excerptLength = 180

type Post struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	FeaturedImage   *string   `json:"featured_image"`
	IsPublished     bool      `json:"is_published"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PostListItem is a row of the posts_with_author view, used for the
// public blog listing.
type PostListItem struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Excerpt         string    `json:"excerpt"`
	FeaturedImage   *string   `json:"featured_image"`
	AuthorName      string    `json:"author_name"`
	AuthorSpecialty string    `json:"author_specialty"`
	AuthorAvatarURL *string   `json:"author_avatar_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// PostInput is the editable part of a post as submitted by the admin
// panel, before slug resolution and persistence.
type PostInput struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	FeaturedImage   string `json:"featured_image"`
	IsPublished     bool   `json:"is_published"`
}

// ApplyDefaults trims the input and fills blank SEO/display fields
// from the title and content. It runs once at save time; the results
// are stored as ordinary values, so blanking a field on a later edit
// regenerates its default from the then-current title and content.
// Re-applying to unchanged input produces identical values.
func (in *PostInput) ApplyDefaults() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.MetaTitle = strings.TrimSpace(in.MetaTitle)
	in.MetaDescription = strings.TrimSpace(in.MetaDescription)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)

	if in.Excerpt == "" {
		// Count characters, not bytes: slicing mid-rune would store
		// invalid UTF-8.
		if runes := []rune(in.Content); len(runes) > excerptLength {
			in.Excerpt = string(runes[:excerptLength])
		} else {
			in.Excerpt = in.Content
		}
	}
	if in.MetaTitle == "" {
		in.MetaTitle = in.Title
	}
	if in.MetaDescription == "" {
		in.MetaDescription = in.Excerpt
	}
	// FeaturedImage stays empty when blank; the store writes it as
	// NULL, never as a placeholder.
}
