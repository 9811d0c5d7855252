package db

import (
	"context"

	"kegiatan-kampus/internal/models"
)

func (q *Queries) CreateUser(ctx context.Context, user *models.User) error {
	query := "INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?) RETURNING id"
	err := q.queryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	return translate(err)
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := "SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ?"

	user := &models.User{}
	err := q.queryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)"

	var exists bool
	if err := q.queryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}
