// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"kegiatan-kampus/internal/db"
	"kegiatan-kampus/internal/models"

	"github.com/stretchr/testify/require"
)

// New returns a fresh database file under t.TempDir with every migration
// applied. It is closed when the test ends.
func New(t testing.TB) *db.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "kegiatan.db")
	database, err := db.Init(context.Background(), db.DriverSQLite, dsn, db.PoolConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// Activity inserts an activity spanning start..end (YYYY-MM-DD).
func Activity(t testing.TB, database *db.DB, name, start, end string) *models.Activity {
	t.Helper()

	s, err := models.ParseDate(start)
	require.NoError(t, err)
	e, err := models.ParseDate(end)
	require.NoError(t, err)

	a := &models.Activity{Name: name, Start: s, End: e}
	require.NoError(t, database.CreateActivity(context.Background(), a))
	return a
}

// User inserts an account with a placeholder hash.
func User(t testing.TB, database *db.DB, username, role string) *models.User {
	t.Helper()

	u := &models.User{
		Username:     username,
		Email:        username + "@kampus.ac.id",
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, database.CreateUser(context.Background(), u))
	return u
}
