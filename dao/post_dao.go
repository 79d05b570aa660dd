// dao/post_dao.go
package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type PostDAO struct {
	DB *sql.DB
}

func NewPostDAO(db *sql.DB) *PostDAO {
	return &PostDAO{DB: db}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, %s, p.featured_image, p.status, p.tags, p.views,
	p.author_id, COALESCE(a.name, ''), p.category_id, COALESCE(c.name, ''), COALESCE(c.slug, ''),
	p.published_at, p.created_at, p.updated_at`

const postJoins = `
FROM posts p
LEFT JOIN authors a ON a.id = p.author_id
LEFT JOIN categories c ON c.id = p.category_id`

// selectPosts builds the column list; lists leave content out.
func selectPosts(withContent bool) string {
	content := "''"
	if withContent {
		content = "p.content"
	}
	return "SELECT " + fmt.Sprintf(postColumns, content) + postJoins
}

func scanPost(scanner rowScanner, extra ...any) (*model.Post, error) {
	var p model.Post
	var tagsRaw string
	var categoryID, publishedAt sql.NullInt64
	var created, updated int64
	dest := []any{&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage, &p.Status, &tagsRaw, &p.Views,
		&p.AuthorID, &p.AuthorName, &categoryID, &p.CategoryName, &p.CategorySlug,
		&publishedAt, &created, &updated}
	if err := scanner.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blog_errors.ErrPostNotFound
		}
		return nil, err
	}
	p.Tags = []string{}
	if tagsRaw != "" {
		_ = json.Unmarshal([]byte(tagsRaw), &p.Tags)
	}
	if categoryID.Valid {
		id := categoryID.Int64
		p.CategoryID = &id
	}
	p.PublishedAt = helper_util.FromNullableUnix(publishedAt)
	p.CreatedAt = helper_util.FromUnix(created)
	p.UpdatedAt = helper_util.FromUnix(updated)
	return &p, nil
}

func postFilters(params model.PostListParams, publishedOnly bool) (string, []interface{}) {
	var where []string
	var args []interface{}
	if publishedOnly {
		where = append(where, "p.status = 'published'")
	}
	if params.Search != "" {
		pattern := likePattern(params.Search)
		where = append(where, `(p.title LIKE ? ESCAPE '\' OR p.excerpt LIKE ? ESCAPE '\' OR p.content LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if params.Category != "" {
		where = append(where, "c.slug = ?")
		args = append(args, params.Category)
	}
	if params.AuthorID > 0 {
		where = append(where, "p.author_id = ?")
		args = append(args, params.AuthorID)
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// ListPosts returns one page of posts, newest first.
func (dao *PostDAO) ListPosts(ctx context.Context, params model.PostListParams, publishedOnly bool) ([]*model.Post, error) {
	where, args := postFilters(params, publishedOnly)
	query := selectPosts(false) + where + `
ORDER BY COALESCE(p.published_at, p.created_at) DESC, p.id DESC
LIMIT ? OFFSET ?`
	args = append(args, params.Limit, helper_util.Offset(params.Page, params.Limit))

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Error listing posts", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return posts, nil
}

// CountPosts counts the rows ListPosts pages over.
func (dao *PostDAO) CountPosts(ctx context.Context, params model.PostListParams, publishedOnly bool) (int64, error) {
	where, args := postFilters(params, publishedOnly)
	var total int64
	err := dao.DB.QueryRowContext(ctx, "SELECT COUNT(*)"+postJoins+where, args...).Scan(&total)
	if err != nil {
		logger.Error("Error counting posts", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return total, nil
}

func (dao *PostDAO) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Post, error) {
	query := selectPosts(true) + " WHERE p.slug = ?"
	if publishedOnly {
		query += " AND p.status = 'published'"
	}
	post, err := scanPost(dao.DB.QueryRowContext(ctx, query, slug))
	if err != nil && !errors.Is(err, blog_errors.ErrPostNotFound) {
		logger.Error("Error retrieving post", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return post, err
}

func (dao *PostDAO) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := scanPost(dao.DB.QueryRowContext(ctx, selectPosts(true)+" WHERE p.id = ?", id))
	if err != nil && !errors.Is(err, blog_errors.ErrPostNotFound) {
		logger.Error("Error retrieving post", zap.Error(err), zap.Int64("postID", id))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return post, err
}

// CreatePost inserts post and returns its id. A duplicate slug yields ErrSlugConflict.
func (dao *PostDAO) CreatePost(ctx context.Context, post *model.Post) (int64, error) {
	start := time.Now()
	logger.Info("Creating new post", zap.String("slug", post.Slug))

	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal tags: %w", err)
	}
	res, err := dao.DB.ExecContext(ctx, `
INSERT INTO posts (title, slug, excerpt, content, featured_image, status, tags, views, author_id, category_id, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		post.Title, post.Slug, post.Excerpt, post.Content, post.FeaturedImage, post.Status, string(tags),
		post.AuthorID, post.CategoryID, helper_util.ToNullableUnix(post.PublishedAt),
		post.CreatedAt.Unix(), post.UpdatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, blog_errors.ErrSlugConflict
		}
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: unknown author or category", blog_errors.ErrInvalidPostData)
		}
		logger.Error("Error creating post", zap.Error(err), zap.String("slug", post.Slug))
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}

	logger.Info("Post created successfully", zap.Int64("postID", id), zap.Duration("duration", time.Since(start)))
	return id, nil
}

// UpdatePost applies the non-nil fields of update. publishedAt is written when set.
func (dao *PostDAO) UpdatePost(ctx context.Context, id int64, update model.UpdatePostRequest, publishedAt *time.Time, now time.Time) error {
	set := &setClause{}
	if update.Title != nil {
		set.add("title", *update.Title)
	}
	if update.Slug != nil {
		set.add("slug", *update.Slug)
	}
	if update.Excerpt != nil {
		set.add("excerpt", *update.Excerpt)
	}
	if update.Content != nil {
		set.add("content", *update.Content)
	}
	if update.FeaturedImage != nil {
		set.add("featured_image", *update.FeaturedImage)
	}
	if update.Status != nil {
		set.add("status", *update.Status)
	}
	if update.Tags != nil {
		tags, err := json.Marshal(*update.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		set.add("tags", string(tags))
	}
	if update.CategoryID != nil {
		if *update.CategoryID == 0 {
			set.add("category_id", nil)
		} else {
			set.add("category_id", *update.CategoryID)
		}
	}
	if publishedAt != nil {
		set.add("published_at", publishedAt.Unix())
	}
	if set.empty() {
		return nil
	}
	set.add("updated_at", now.Unix())

	res, err := dao.DB.ExecContext(ctx, "UPDATE posts SET "+set.sql()+" WHERE id = ?", append(set.args, id)...)
	if err != nil {
		if isUniqueViolation(err) {
			return blog_errors.ErrSlugConflict
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown category", blog_errors.ErrInvalidPostData)
		}
		logger.Error("Error updating post", zap.Error(err), zap.Int64("postID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrPostNotFound
	}
	return nil
}

func (dao *PostDAO) DeletePost(ctx context.Context, id int64) error {
	res, err := dao.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		logger.Error("Error deleting post", zap.Error(err), zap.Int64("postID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrPostNotFound
	}
	logger.Info("Post deleted successfully", zap.Int64("postID", id))
	return nil
}

func (dao *PostDAO) IncrementViews(ctx context.Context, id int64) error {
	res, err := dao.DB.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrPostNotFound
	}
	return nil
}

// relevance scores a post by where the query first matches.
const relevance = `CASE
	WHEN p.title LIKE ? ESCAPE '\' THEN 3
	WHEN p.excerpt LIKE ? ESCAPE '\' THEN 2
	ELSE 1 END`

// SearchPosts pages over published posts matching q, best match first.
func (dao *PostDAO) SearchPosts(ctx context.Context, q string, page, limit int) ([]*model.Post, int64, error) {
	params := model.PostListParams{Search: q}
	where, args := postFilters(params, true)
	pattern := likePattern(q)

	var total int64
	if err := dao.DB.QueryRowContext(ctx, "SELECT COUNT(*)"+postJoins+where, args...).Scan(&total); err != nil {
		logger.Error("Error counting search results", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}

	query := "SELECT " + fmt.Sprintf(postColumns, "''") + ", " + relevance + " AS relevance" + postJoins + where + `
ORDER BY relevance DESC, p.published_at DESC, p.id DESC
LIMIT ? OFFSET ?`
	queryArgs := []interface{}{pattern, pattern}
	queryArgs = append(queryArgs, args...)
	queryArgs = append(queryArgs, limit, helper_util.Offset(page, limit))

	rows, err := dao.DB.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		logger.Error("Error searching posts", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		var score int
		post, err := scanPost(rows, &score)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
		}
		post.Relevance = score
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return posts, total, nil
}
