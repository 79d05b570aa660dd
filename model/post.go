package model

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content,omitempty"`
	FeaturedImage string     `json:"featuredImage,omitempty"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags"`
	Views         int64      `json:"views"`
	Relevance     int        `json:"relevance,omitempty"`
	AuthorID      int64      `json:"authorId"`
	AuthorName    string     `json:"authorName,omitempty"`
	CategoryID    *int64     `json:"categoryId,omitempty"`
	CategoryName  string     `json:"categoryName,omitempty"`
	CategorySlug  string     `json:"categorySlug,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Slug          string   `json:"slug" binding:"omitempty,max=200"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content" binding:"required"`
	FeaturedImage string   `json:"featuredImage"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published"`
	Tags          []string `json:"tags"`
	AuthorID      int64    `json:"authorId"`
	CategoryID    *int64   `json:"categoryId"`
}

// UpdatePostRequest carries only the fields the client sent.
type UpdatePostRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Slug          *string   `json:"slug" validate:"omitempty,min=1,max=200"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content" validate:"omitempty,min=1"`
	FeaturedImage *string   `json:"featuredImage"`
	Status        *string   `json:"status" validate:"omitempty,oneof=draft published"`
	Tags          *[]string `json:"tags"`
	CategoryID    *int64    `json:"categoryId"`
}

// Empty reports whether the update sets nothing.
func (u UpdatePostRequest) Empty() bool {
	return u.Title == nil && u.Slug == nil && u.Excerpt == nil && u.Content == nil &&
		u.FeaturedImage == nil && u.Status == nil && u.Tags == nil && u.CategoryID == nil
}

// PostListParams is the shape of a post list query. Its fields, in order,
// make up the list cache key.
type PostListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	AuthorID int64
}
