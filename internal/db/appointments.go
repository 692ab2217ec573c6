package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/razzuSharma/girwan-kumar/internal/models"
)

// CreateAppointmentRequest persists a visitor submission. Optional
// fields arrive as nil and stay NULL.
func (s *Store) CreateAppointmentRequest(ctx context.Context, req models.AppointmentRequest) (*models.AppointmentRequest, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		INSERT INTO appointment_requests (name, email, phone, preferred_date, reason, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, phone, preferred_date, reason, message, created_at
	`

	var created models.AppointmentRequest
	err := s.pool.QueryRow(
		ctx,
		query,
		req.Name,
		req.Email,
		req.Phone,
		req.PreferredDate,
		req.Reason,
		req.Message,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Phone,
		&created.PreferredDate,
		&created.Reason,
		&created.Message,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create appointment request: %w", err)
	}
	return &created, nil
}

// ListAppointmentRequests returns all pending requests, newest first.
func (s *Store) ListAppointmentRequests(ctx context.Context) ([]models.AppointmentRequest, error) {
	if s.pool == nil {
		return nil, errors.New("db not initialized")
	}

	const query = `
		SELECT id, name, email, phone, preferred_date, reason, message, created_at
		FROM appointment_requests
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointment requests: %w", err)
	}
	defer rows.Close()

	var requests []models.AppointmentRequest
	for rows.Next() {
		var req models.AppointmentRequest
		if err := rows.Scan(
			&req.ID,
			&req.Name,
			&req.Email,
			&req.Phone,
			&req.PreferredDate,
			&req.Reason,
			&req.Message,
			&req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return requests, nil
}

func (s *Store) DeleteAppointmentRequest(ctx context.Context, id int64) error {
	if s.pool == nil {
		return errors.New("db not initialized")
	}
	if _, err := s.pool.Exec(ctx, "DELETE FROM appointment_requests WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete appointment request: %w", err)
	}
	return nil
}
