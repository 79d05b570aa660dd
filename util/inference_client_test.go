package util

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/config"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
)

func TestInferenceClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/run/@cf/test-model", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req inferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "summarize this", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"success":true,"result":{"response":"  a summary \n"}}`))
	}))
	defer srv.Close()

	client := NewInferenceClient(config.AIConfiguration{
		Endpoint: srv.URL + "/run/",
		APIToken: "tok",
		Model:    "@cf/test-model",
		Timeout:  time.Second,
	})
	out, err := client.Generate(context.Background(), "be brief", "summarize this", 100)
	require.NoError(t, err)
	assert.Equal(t, "a summary", out)
}

func TestInferenceClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewInferenceClient(config.AIConfiguration{Endpoint: srv.URL, Model: "m"})
	_, err := client.Generate(context.Background(), "s", "p", 0)
	assert.ErrorIs(t, err, blog_errors.ErrInference)

	unconfigured := NewInferenceClient(config.AIConfiguration{})
	assert.False(t, unconfigured.Configured())
	_, err = unconfigured.Generate(context.Background(), "s", "p", 0)
	assert.ErrorIs(t, err, blog_errors.ErrInference)
}
