package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/postline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Post     models.Post      `json:"post"`
		Comments []models.Comment `json:"comments"`
	} `json:"data"`
}

func decodePost(t *testing.T, body []byte) postResponse {
	t.Helper()

	var resp postResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestCreatePostRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")

	c, rec := env.newContext(http.MethodPost, "/api/v1/posts", `{"text":"hello world"}`, author.ID)
	require.NoError(t, env.posts.CreatePost(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodePost(t, rec.Body.Bytes())
	assert.Equal(t, "hello world", resp.Data.Post.Text)
	assert.Equal(t, author.ID, resp.Data.Post.AuthorID)
	assert.Nil(t, resp.Data.Post.GroupID, "Group defaults to absent")
	assert.Empty(t, resp.Data.Post.ImageRef, "Image defaults to absent")
	assert.False(t, resp.Data.Post.CreatedAt.IsZero())
}

func TestCreatePostEmptyText(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")

	c, _ := env.newContext(http.MethodPost, "/api/v1/posts", `{"text":""}`, author.ID)
	err := env.posts.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	var count int64
	require.NoError(t, env.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count, "Nothing may be persisted on validation failure")
}

func TestCreatePostUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	c, _ := env.newContext(http.MethodPost, "/api/v1/posts", `{"text":"hello"}`, 0)
	err := env.posts.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}

func TestCreatePostUnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")

	c, _ := env.newContext(http.MethodPost, "/api/v1/posts", `{"text":"hello","group_id":42}`, author.ID)
	err := env.posts.CreatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestUpdatePostByNonAuthorRedirects(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")
	intruder := env.createUser(t, "intruder")
	post := env.createPost(t, author, "original", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	c, rec := env.newContext(http.MethodPut, "/api/v1/posts/1", `{"text":"hijacked"}`, intruder.ID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.posts.UpdatePost(c))

	// Not an error: the caller is silently sent to the detail view
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/v1/posts/1", rec.Header().Get("Location"))

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "original", reloaded.Text, "A non-author edit must never mutate the post")
}

func TestUpdatePostByAuthor(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := env.createPost(t, author, "original", createdAt)

	c, rec := env.newContext(http.MethodPut, "/api/v1/posts/1", `{"text":"revised"}`, author.ID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.posts.UpdatePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Equal(t, "revised", reloaded.Text)
	assert.True(t, reloaded.CreatedAt.Equal(createdAt))
}

func TestUpdatePostDetachesGroupWithZeroID(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")
	group := &models.Group{Slug: "cats", Title: "Cats"}
	require.NoError(t, env.db.Create(group).Error)
	post := env.createPost(t, author, "grouped", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, env.db.Model(post).Update("group_id", group.ID).Error)

	c, rec := env.newContext(http.MethodPut, "/api/v1/posts/1", `{"group_id":0}`, author.ID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.posts.UpdatePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Post
	require.NoError(t, env.db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID)
	assert.Equal(t, "grouped", reloaded.Text)
}

func TestUpdatePostNotFound(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")

	c, _ := env.newContext(http.MethodPut, "/api/v1/posts/99", `{"text":"revised"}`, author.ID)
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := env.posts.UpdatePost(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestGetPostDetailWithComments(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")
	post := env.createPost(t, author, "discuss", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, env.db.Create(&models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "a comment"}).Error)

	c, rec := env.newContext(http.MethodGet, "/api/v1/posts/1", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.posts.GetPost(c))

	resp := decodePost(t, rec.Body.Bytes())
	assert.Equal(t, "discuss", resp.Data.Post.Text)
	require.Len(t, resp.Data.Comments, 1)
	assert.Equal(t, "a comment", resp.Data.Comments[0].Text)
}

func TestDeletePostByNonAuthorRedirects(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "writer")
	intruder := env.createUser(t, "intruder")
	post := env.createPost(t, author, "keep me", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	c, rec := env.newContext(http.MethodDelete, "/api/v1/posts/1", "", intruder.ID)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.posts.DeletePost(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
