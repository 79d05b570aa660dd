// errors/media_errors.go
package errors

import "errors"

var (
	ErrMediaNotFound        = errors.New("media not found")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNoFile               = errors.New("no file uploaded")
	ErrInference            = errors.New("inference request failed")
)
