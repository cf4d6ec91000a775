package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"Scribe/internal/core/users"
	"Scribe/internal/db/migrations"
)

// setupTestDB connects to TEST_DATABASE_URL, migrates, and empties every table.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL repository tests")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.Ping(), "Failed to ping test database")
	require.NoError(t, migrations.Up(db), "Failed to run migrations")

	_, err = db.Exec(`TRUNCATE post_likes, post_unlikes, comments, posts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// createTestUser inserts a user with a unique email and username
func createTestUser(t *testing.T, db *sql.DB, name string, staff bool) *users.User {
	t.Helper()
	u, err := NewUserRepository(db).Create(context.Background(), &users.User{
		Email:        fmt.Sprintf("%s@example.com", name),
		Username:     name,
		PasswordHash: "x",
		IsActive:     true,
		IsStaff:      staff,
	})
	require.NoError(t, err)
	return u
}
