package model

import "time"

// MediaObject describes a stored blob.
type MediaObject struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	OriginalName string    `json:"originalName"`
	ETag         string    `json:"etag"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
