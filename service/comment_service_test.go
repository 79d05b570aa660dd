package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/dao"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

func newCommentService(env *testEnv) *CommentService {
	return NewCommentService(dao.NewCommentDAO(env.db), dao.NewPostDAO(env.db), env.valid, env.bus,
		[]string{"http://", "HTTPS://", "www.", "  "})
}

func seedPublishedPost(t *testing.T, env *testEnv, title string) *model.Post {
	t.Helper()
	authorID := env.seedAuthor(t, title+"@example.com")
	post, err := env.postService().CreatePost(context.Background(),
		model.CreatePostRequest{Title: title, Content: "c", Status: model.PostStatusPublished},
		&model.Principal{UserID: authorID})
	require.NoError(t, err)
	return post
}

func TestCommentSpamDetection(t *testing.T) {
	env := newTestEnv(t)
	svc := newCommentService(env)
	post := seedPublishedPost(t, env, "Post")
	events := record(env.bus, util.EventCommentCreated)

	spam, err := svc.CreateComment(context.Background(), post.ID, model.CommentRequest{
		AuthorName: "Bot", AuthorEmail: "bot@example.com", Content: "Buy now at HTTPS://cheap.example",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommentStatusSpam, spam.Status)

	ham, err := svc.CreateComment(context.Background(), post.ID, model.CommentRequest{
		AuthorName: "Reader", AuthorEmail: "reader@example.com", Content: "Great post!",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommentStatusPending, ham.Status)

	env.bus.Wait()
	assert.Len(t, events.types(), 2)

	approved, err := svc.ListApproved(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestCommentModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCommentService(env)
	post := seedPublishedPost(t, env, "Post")

	c, err := svc.CreateComment(ctx, post.ID, model.CommentRequest{
		AuthorName: "Reader", AuthorEmail: "reader@example.com", Content: "Nice",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, c.ID, "published", nil)
	assert.ErrorIs(t, err, blog_errors.ErrInvalidCommentStat)

	updated, err := svc.UpdateStatus(ctx, c.ID, model.CommentStatusApproved, &model.Principal{MasterKey: true})
	require.NoError(t, err)
	assert.Equal(t, model.CommentStatusApproved, updated.Status)

	approved, err := svc.ListApproved(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Empty(t, approved[0].AuthorEmail)

	require.NoError(t, svc.DeleteComment(ctx, c.ID, nil))
	assert.ErrorIs(t, svc.DeleteComment(ctx, c.ID, nil), blog_errors.ErrCommentNotFound)
}

func TestCommentOnUnpublishedPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCommentService(env)
	authorID := env.seedAuthor(t, "ada@example.com")
	draft, err := env.postService().CreatePost(ctx, model.CreatePostRequest{Title: "Draft", Content: "c"},
		&model.Principal{UserID: authorID})
	require.NoError(t, err)

	req := model.CommentRequest{AuthorName: "R", AuthorEmail: "r@example.com", Content: "hi"}
	_, err = svc.CreateComment(ctx, draft.ID, req)
	assert.ErrorIs(t, err, blog_errors.ErrPostNotFound)

	_, err = svc.CreateComment(ctx, 999, req)
	assert.ErrorIs(t, err, blog_errors.ErrPostNotFound)

	_, err = svc.CreateComment(ctx, draft.ID, model.CommentRequest{AuthorName: "R", AuthorEmail: "r@example.com", Content: "   "})
	assert.ErrorIs(t, err, blog_errors.ErrInvalidComment)
}
