package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

const profileColumns = `
	id::text,
	COALESCE(full_name, ''),
	COALESCE(specialty, ''),
	COALESCE(clinic_name, ''),
	COALESCE(phone, ''),
	COALESCE(address, ''),
	COALESCE(bio, ''),
	avatar_url,
	updated_at
`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Specialty,
		&profile.ClinicName,
		&profile.Phone,
		&profile.Address,
		&profile.Bio,
		&profile.AvatarURL,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetOrCreateProfile returns the user's profile, inserting a blank row
// on first access.
func (s *Store) GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const insert = `
		INSERT INTO profile (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	query := `SELECT ` + profileColumns + ` FROM profile WHERE id = $1`
	profile, err := scanProfile(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// GetProfile returns the user's profile, or nil when it has not been
// created yet.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}
	query := `SELECT ` + profileColumns + ` FROM profile WHERE id = $1`
	profile, err := scanProfile(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, in models.ProfileInput) (*models.Profile, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	query := `
		UPDATE profile
		SET full_name = $2,
			specialty = $3,
			clinic_name = $4,
			phone = $5,
			address = $6,
			bio = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(s.pool.QueryRow(
		ctx,
		query,
		userID,
		in.FullName,
		in.Specialty,
		in.ClinicName,
		in.Phone,
		in.Address,
		in.Bio,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func (s *Store) SetAvatarURL(ctx context.Context, userID, avatarURL string) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	const query = `
		UPDATE profile
		SET avatar_url = $2, updated_at = now()
		WHERE id = $1
	`
	if _, err := s.pool.Exec(ctx, query, userID, avatarURL); err != nil {
		return fmt.Errorf("set avatar url: %w", err)
	}
	return nil
}
