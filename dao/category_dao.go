// dao/category_dao.go
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

type CategoryDAO struct {
	DB *sql.DB
}

func NewCategoryDAO(db *sql.DB) *CategoryDAO {
	return &CategoryDAO{DB: db}
}

const selectCategories = `
SELECT c.id, c.name, c.slug, c.description,
	(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id AND p.status = 'published'),
	c.created_at, c.updated_at
FROM categories c`

func scanCategory(scanner rowScanner) (*model.Category, error) {
	var c model.Category
	var created, updated int64
	if err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PostCount, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blog_errors.ErrCategoryNotFound
		}
		return nil, err
	}
	c.CreatedAt = helper_util.FromUnix(created)
	c.UpdatedAt = helper_util.FromUnix(updated)
	return &c, nil
}

// ListCategories returns every category by name with its published post count.
func (dao *CategoryDAO) ListCategories(ctx context.Context) ([]*model.Category, error) {
	rows, err := dao.DB.QueryContext(ctx, selectCategories+" ORDER BY c.name ASC")
	if err != nil {
		logger.Error("Error listing categories", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	categories := []*model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return categories, nil
}

func (dao *CategoryDAO) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	c, err := scanCategory(dao.DB.QueryRowContext(ctx, selectCategories+" WHERE c.slug = ?", slug))
	if err != nil && !errors.Is(err, blog_errors.ErrCategoryNotFound) {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return c, err
}

func (dao *CategoryDAO) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	c, err := scanCategory(dao.DB.QueryRowContext(ctx, selectCategories+" WHERE c.id = ?", id))
	if err != nil && !errors.Is(err, blog_errors.ErrCategoryNotFound) {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return c, err
}

func (dao *CategoryDAO) CreateCategory(ctx context.Context, c *model.Category) (int64, error) {
	logger.Info("Creating new category", zap.String("slug", c.Slug))
	res, err := dao.DB.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Slug, c.Description, c.CreatedAt.Unix(), c.UpdatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, blog_errors.ErrSlugConflict
		}
		logger.Error("Error creating category", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return res.LastInsertId()
}

func (dao *CategoryDAO) UpdateCategory(ctx context.Context, id int64, update model.UpdateCategoryRequest, now time.Time) error {
	set := &setClause{}
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Slug != nil {
		set.add("slug", *update.Slug)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if set.empty() {
		return nil
	}
	set.add("updated_at", now.Unix())

	res, err := dao.DB.ExecContext(ctx, "UPDATE categories SET "+set.sql()+" WHERE id = ?", append(set.args, id)...)
	if err != nil {
		if isUniqueViolation(err) {
			return blog_errors.ErrSlugConflict
		}
		logger.Error("Error updating category", zap.Error(err), zap.Int64("categoryID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes the category; its posts become uncategorised.
func (dao *CategoryDAO) DeleteCategory(ctx context.Context, id int64) error {
	res, err := dao.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		logger.Error("Error deleting category", zap.Error(err), zap.Int64("categoryID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrCategoryNotFound
	}
	return nil
}
