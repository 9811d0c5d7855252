package db

import (
	"context"

	"kegiatan-kampus/internal/models"
)

func (q *Queries) CreateSession(ctx context.Context, s *models.Session) error {
	query := "INSERT INTO sessions (id, data, expires_at) VALUES (?, ?, ?)"
	_, err := q.exec(ctx, query, s.ID, s.Data, s.ExpiresAt.UTC())
	return err
}

func (q *Queries) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := "SELECT id, data, expires_at, created_at FROM sessions WHERE id = ?"

	s := &models.Session{}
	if err := q.queryRow(ctx, query, id).Scan(&s.ID, &s.Data, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// UpdateSessionData replaces the payload only; expires_at is fixed at creation.
func (q *Queries) UpdateSessionData(ctx context.Context, id, data string) error {
	_, err := q.exec(ctx, "UPDATE sessions SET data = ? WHERE id = ?", data, id)
	return err
}

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.exec(ctx, "DELETE FROM sessions WHERE id = ?", id)
	return err
}
