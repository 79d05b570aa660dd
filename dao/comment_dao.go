// dao/comment_dao.go
package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type CommentDAO struct {
	DB *sql.DB
}

func NewCommentDAO(db *sql.DB) *CommentDAO {
	return &CommentDAO{DB: db}
}

func scanComment(scanner rowScanner) (*model.Comment, error) {
	var c model.Comment
	var created int64
	if err := scanner.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Status, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blog_errors.ErrCommentNotFound
		}
		return nil, err
	}
	c.CreatedAt = helper_util.FromUnix(created)
	return &c, nil
}

// ListComments returns the comments of postID in status, oldest first.
func (dao *CommentDAO) ListComments(ctx context.Context, postID int64, status string) ([]*model.Comment, error) {
	rows, err := dao.DB.QueryContext(ctx, `
SELECT id, post_id, author_name, author_email, content, status, created_at
FROM comments
WHERE post_id = ? AND status = ?
ORDER BY created_at ASC, id ASC`, postID, status)
	if err != nil {
		logger.Error("Error listing comments", zap.Error(err), zap.Int64("postID", postID))
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return comments, nil
}

func (dao *CommentDAO) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	c, err := scanComment(dao.DB.QueryRowContext(ctx, `
SELECT id, post_id, author_name, author_email, content, status, created_at
FROM comments WHERE id = ?`, id))
	if err != nil && !errors.Is(err, blog_errors.ErrCommentNotFound) {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return c, err
}

func (dao *CommentDAO) CreateComment(ctx context.Context, c *model.Comment) (int64, error) {
	res, err := dao.DB.ExecContext(ctx, `
INSERT INTO comments (post_id, author_name, author_email, content, status, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		c.PostID, c.AuthorName, c.AuthorEmail, c.Content, c.Status, c.CreatedAt.Unix())
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, blog_errors.ErrPostNotFound
		}
		logger.Error("Error creating comment", zap.Error(err), zap.Int64("postID", c.PostID))
		return 0, fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	return res.LastInsertId()
}

func (dao *CommentDAO) UpdateCommentStatus(ctx context.Context, id int64, status string) error {
	res, err := dao.DB.ExecContext(ctx, `UPDATE comments SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		logger.Error("Error updating comment status", zap.Error(err), zap.Int64("commentID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrCommentNotFound
	}
	return nil
}

func (dao *CommentDAO) DeleteComment(ctx context.Context, id int64) error {
	res, err := dao.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		logger.Error("Error deleting comment", zap.Error(err), zap.Int64("commentID", id))
		return fmt.Errorf("%w: %v", blog_errors.ErrDatabaseOperation, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return blog_errors.ErrCommentNotFound
	}
	return nil
}
