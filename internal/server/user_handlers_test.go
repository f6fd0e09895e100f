package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserProfile(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	bob := createHandlerTestUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Post{Text: "hi", AuthorID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowedID: alice.ID}).Error)

	app := newTestApp(s, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/users/alice", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User           models.User   `json:"user"`
		Posts          []models.Post `json:"posts"`
		FollowerCount  int           `json:"follower_count"`
		FollowingCount int           `json:"following_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alice", body.User.Username)
	assert.Len(t, body.Posts, 1)
	assert.Equal(t, 1, body.FollowerCount)
	assert.Zero(t, body.FollowingCount)
}

func TestGetUserProfileNotFound(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newTestApp(s, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	bob := createHandlerTestUser(t, db, "bob")

	alicePost := &models.Post{Text: "by alice", AuthorID: alice.ID}
	require.NoError(t, db.Create(alicePost).Error)
	require.NoError(t, db.Create(&models.Comment{Text: "bob here", AuthorID: bob.ID, PostID: alicePost.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowedID: alice.ID}).Error)

	app := newTestApp(s, alice.ID)
	resp := doRequest(t, app, http.MethodDelete, "/api/users/me")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var users, posts, comments, edges int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)
	db.Model(&models.Follow{}).Count(&edges)

	assert.Equal(t, int64(1), users, "only bob remains")
	assert.Zero(t, posts)
	assert.Zero(t, comments, "bob's comment lived on alice's post and goes with it")
	assert.Zero(t, edges, "both directions of the follow relationship are gone")
}

func TestUpdateAccountEmail(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	app := newTestApp(s, alice.ID)

	raw, _ := json.Marshal(map[string]string{"email": "new@example.com"})
	req := httptest.NewRequest(http.MethodPut, "/api/users/me", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, alice.ID).Error)
	assert.Equal(t, "new@example.com", reloaded.Email)
}
