package dao

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/db"
	"github.com/dev-mohitbeniwal/blog-api/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(config.DatabaseConfiguration{Path: filepath.Join(t.TempDir(), "blog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseSQLite(conn) })
	return conn
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seedAuthor(t *testing.T, conn *sql.DB, name, email string) int64 {
	t.Helper()
	id, err := NewAuthorDAO(conn).CreateAuthor(context.Background(), &model.Author{
		Name: name, Email: email, PasswordHash: "x", Role: model.RoleAuthor,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	require.NoError(t, err)
	return id
}

func seedCategory(t *testing.T, conn *sql.DB, name, slug string) int64 {
	t.Helper()
	id, err := NewCategoryDAO(conn).CreateCategory(context.Background(), &model.Category{
		Name: name, Slug: slug, CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	require.NoError(t, err)
	return id
}

func seedPost(t *testing.T, conn *sql.DB, p model.Post) int64 {
	t.Helper()
	if p.Content == "" {
		p.Content = "body"
	}
	if p.Status == "" {
		p.Status = model.PostStatusPublished
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = baseTime
		p.UpdatedAt = baseTime
	}
	if p.Status == model.PostStatusPublished && p.PublishedAt == nil {
		published := p.CreatedAt
		p.PublishedAt = &published
	}
	id, err := NewPostDAO(conn).CreatePost(context.Background(), &p)
	require.NoError(t, err)
	return id
}
