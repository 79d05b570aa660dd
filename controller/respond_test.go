package controller

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
)

func TestClientMessage(t *testing.T) {
	err := fmt.Errorf("failed to create post: %w", fmt.Errorf("%w: title and content are required", blog_errors.ErrInvalidPostData))
	assert.Equal(t, blog_errors.ErrInvalidPostData.Error()+": title and content are required", clientMessage(err))

	assert.Equal(t, "plain", clientMessage(fmt.Errorf("plain")))
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"a"`, `"a"`))
	assert.True(t, etagMatches(`"x", W/"a"`, `"a"`))
	assert.True(t, etagMatches(`*`, `"a"`))
	assert.False(t, etagMatches(`"b"`, `"a"`))
}
