// dao/author_dao.go
package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type AuthorDAO struct {
	DB *sql.DB
}

func NewAuthorDAO(db *sql.DB) *AuthorDAO {
	return &AuthorDAO{DB: db}
}

const selectAuthors = `
SELECT a.id, a.name, a.email, a.password_hash, a.bio, a.avatar_url, a.role,
	(SELECT COUNT(*) FROM posts p WHERE p.author_id = a.id AND p.status = 'published'),
	a.created_at, a.updated_at
FROM authors a`

func scanAuthor(scanner rowScanner) (*model.Author, error) {
	var a model.Author
	var created, updated int64
	if err := scanner.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Bio, &a.AvatarURL, &a.Role,
		&a.PostCount, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blog_errors.ErrAuthorNotFound
		}
		return nil, err
	}
	a.CreatedAt = helper_util.FromUnix(created)
	a.UpdatedAt = helper_util.FromUnix(updated)
	return &a, nil
}

func (dao *AuthorDAO) ListAuthors(ctx context.Context) ([]*model.Author, error) {
	rows, err := dao.DB.QueryContext(ctx, selectAuthors+" ORDER BY a.name ASC")
	if err != nil {
		logger.Error("Error listing authors", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	authors := []*model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return authors, nil
}

func (dao *AuthorDAO) GetAuthorByID(ctx context.Context, id int64) (*model.Author, error) {
	a, err := scanAuthor(dao.DB.QueryRowContext(ctx, selectAuthors+" WHERE a.id = ?", id))
	if err != nil && !errors.Is(err, blog_errors.ErrAuthorNotFound) {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return a, err
}

// GetAuthorByEmail matches email case-insensitively.
func (dao *AuthorDAO) GetAuthorByEmail(ctx context.Context, email string) (*model.Author, error) {
	a, err := scanAuthor(dao.DB.QueryRowContext(ctx, selectAuthors+" WHERE a.email = ? COLLATE NOCASE", email))
	if err != nil && !errors.Is(err, blog_errors.ErrAuthorNotFound) {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return a, err
}

func (dao *AuthorDAO) CreateAuthor(ctx context.Context, a *model.Author) (int64, error) {
	logger.Info("Creating new author", zap.String("name", a.Name))
	res, err := dao.DB.ExecContext(ctx, `
INSERT INTO authors (name, email, password_hash, bio, avatar_url, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Email, a.PasswordHash, a.Bio, a.AvatarURL, a.Role, a.CreatedAt.Unix(), a.UpdatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, blog_errors.ErrEmailTaken
		}
		logger.Error("Error creating author", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return res.LastInsertId()
}

// UpdatePasswordHash replaces a stored digest, used to upgrade legacy hashes on login.
func (dao *AuthorDAO) UpdatePasswordHash(ctx context.Context, id int64, hash string, now time.Time) error {
	_, err := dao.DB.ExecContext(ctx, `UPDATE authors SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now.Unix(), id)
	if err != nil {
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return nil
}
