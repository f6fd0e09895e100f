package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newTestApp(s, 0)

	resp := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "alice", body.User.Username)

	// password hash never leaves the server
	var stored models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "Sup3rSecret", stored.Password)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newTestApp(s, 0)

	first := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	})
	_ = first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "Sup3rSecret",
	})
	defer func() { _ = second.Body.Close() }()

	assert.Equal(t, http.StatusConflict, second.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, models.CodeConstraintViolation, body.Code)
}

func TestSignupWeakPassword(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newTestApp(s, 0)

	resp := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	db := setupHandlerTestDB(t)
	s := newTestServer(t, db)
	app := newTestApp(s, 0)

	signup := postJSON(t, app, "/api/auth/signup", map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "Sup3rSecret",
	})
	_ = signup.Body.Close()
	require.Equal(t, http.StatusCreated, signup.StatusCode)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "Sup3rSecret",
		})
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", map[string]string{
			"email":    "bob@example.com",
			"password": "WrongPassw0rd",
		})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Sup3rSecret",
		})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
