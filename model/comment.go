package model

import "time"

const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusSpam     = "spam"
)

type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"postId"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CommentRequest struct {
	AuthorName  string `json:"authorName" binding:"required,max=100"`
	AuthorEmail string `json:"authorEmail" binding:"required,email"`
	Content     string `json:"content" binding:"required,max=5000"`
}

type CommentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved spam"`
}
