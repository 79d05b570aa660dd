// errors/content_errors.go
package errors

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidPostData    = errors.New("invalid post data")
	ErrSlugConflict       = errors.New("slug already in use")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidCategory    = errors.New("invalid category data")
	ErrAuthorNotFound     = errors.New("author not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidComment     = errors.New("invalid comment data")
	ErrInvalidCommentStat = errors.New("invalid comment status")
)
