package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	app := newTestApp(s, alice.ID)

	resp := postJSON(t, app, "/api/groups", map[string]string{
		"title":       "Cat Pictures",
		"slug":        "cats",
		"description": "strictly cats",
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var group models.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&group))
	assert.Equal(t, "cats", group.Slug)
	assert.NotZero(t, group.ID)
}

func TestCreateGroupDuplicateSlug(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	app := newTestApp(s, alice.ID)

	first := postJSON(t, app, "/api/groups", map[string]string{"title": "Cats", "slug": "cats"})
	_ = first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, app, "/api/groups", map[string]string{"title": "More Cats", "slug": "cats"})
	defer func() { _ = second.Body.Close() }()

	assert.Equal(t, http.StatusConflict, second.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, models.CodeConstraintViolation, body.Code)
}

func TestCreateGroupInvalidSlug(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	app := newTestApp(s, alice.ID)

	resp := postJSON(t, app, "/api/groups", map[string]string{"title": "Bad", "slug": "no spaces!"})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetGroupWithPosts(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	group := &models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(group).Error)
	require.NoError(t, db.Create(&models.Post{Text: "meow", AuthorID: alice.ID, GroupID: &group.ID}).Error)

	app := newTestApp(s, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/groups/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "meow", got.Posts[0].Text)
}

func TestListGroupsOrderedBySlug(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	for _, slug := range []string{"zebra", "apple"} {
		require.NoError(t, db.Create(&models.Group{Title: slug, Slug: slug}).Error)
	}

	app := newTestApp(s, 0)
	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Groups []models.Group `json:"groups"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Groups, 2)
	assert.Equal(t, "apple", body.Groups[0].Slug)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)

	alice := createHandlerTestUser(t, db, "alice")
	group := &models.Group{Title: "Cats", Slug: "cats"}
	require.NoError(t, db.Create(group).Error)
	post := &models.Post{Text: "meow", AuthorID: alice.ID, GroupID: &group.ID}
	require.NoError(t, db.Create(post).Error)

	app := newTestApp(s, alice.ID)
	resp := doRequest(t, app, http.MethodDelete, "/api/groups/1")
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID)
}
