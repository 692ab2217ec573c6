package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

const postColumns = `
	id,
	user_id::text,
	title,
	content,
	slug,
	COALESCE(excerpt, ''),
	COALESCE(meta_title, ''),
	COALESCE(meta_description, ''),
	featured_image,
	is_published,
	created_at,
	updated_at
`

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.Excerpt,
		&post.MetaTitle,
		&post.MetaDescription,
		&post.FeaturedImage,
		&post.IsPublished,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns published posts from the posts_with_author
// view, newest first.
func (s *Store) ListPublished(ctx context.Context, limit, offset int) ([]models.PostListItem, int, error) {
	if s.pool == nil {
		return nil, 0, errors.New("db not initialized")
	}

	const listQuery = `
		SELECT
			id,
			title,
			slug,
			COALESCE(excerpt, ''),
			featured_image,
			COALESCE(author_name, ''),
			COALESCE(author_specialty, ''),
			author_avatar_url,
			created_at
		FROM posts_with_author
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.PostListItem, 0, limit)
	for rows.Next() {
		var item models.PostListItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Slug,
			&item.Excerpt,
			&item.FeaturedImage,
			&item.AuthorName,
			&item.AuthorSpecialty,
			&item.AuthorAvatarURL,
			&item.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE is_published").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published posts: %w", err)
	}
	return posts, total, nil
}

// GetPublishedBySlug returns the published post with the given slug,
// or nil when no such post exists.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND is_published`
	post, err := scanPost(s.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}

// ListPosts returns every post, drafts included, newest first. Admin
// listing only.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// CreatePost inserts a post whose slug has already been resolved and
// whose derived fields have already been defaulted. A unique-violation
// on the slug comes back as ErrSlugTaken.
func (s *Store) CreatePost(ctx context.Context, userID string, slug string, in models.PostInput) (*models.Post, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	query := `
		INSERT INTO posts (user_id, title, content, slug, excerpt, meta_title, meta_description, featured_image, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
		RETURNING ` + postColumns

	post, err := scanPost(s.pool.QueryRow(
		ctx,
		query,
		userID,
		in.Title,
		in.Content,
		slug,
		in.Excerpt,
		in.MetaTitle,
		in.MetaDescription,
		in.FeaturedImage,
		in.IsPublished,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost overwrites the editable fields of an existing post.
// Returns nil when the post does not exist.
func (s *Store) UpdatePost(ctx context.Context, id int64, slug string, in models.PostInput) (*models.Post, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	query := `
		UPDATE posts
		SET title = $2,
			content = $3,
			slug = $4,
			excerpt = $5,
			meta_title = $6,
			meta_description = $7,
			featured_image = NULLIF($8, ''),
			is_published = $9,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(s.pool.QueryRow(
		ctx,
		query,
		id,
		in.Title,
		in.Content,
		slug,
		in.Excerpt,
		in.MetaTitle,
		in.MetaDescription,
		in.FeaturedImage,
		in.IsPublished,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	if _, err := s.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// SlugsWithPrefix lists stored slugs starting with prefix, excluding
// the post identified by excludeID (0 excludes nothing). One query
// fetches every slug the resolver could collide with.
func (s *Store) SlugsWithPrefix(ctx context.Context, prefix string, excludeID int64) ([]string, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT slug
		FROM posts
		WHERE slug LIKE $1 || '%' AND id <> $2
	`
	rows, err := s.pool.Query(ctx, query, prefix, excludeID)
	if err != nil {
		return nil, fmt.Errorf("slugs with prefix: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return slugs, nil
}

func (s *Store) CountPostsByUser(ctx context.Context, userID string) (int, error) {
	if s.pool == nil {
		return 0, errors.New("db not initialized")
	}
	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE user_id = $1", userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
