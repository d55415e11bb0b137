package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Quill/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authRouter registers the auth handlers without the per-IP limiter so the
// suite is not throttled by its own signups.
func authRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup/", s.Signup)
	r.GET("/auth/login/", s.LoginForm)
	r.POST("/auth/login/", s.Login)
	r.POST("/auth/logout/", s.Logout)
	return r
}

func jsonRequest(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupAndLogin(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	w := jsonRequest(t, r, http.MethodPost, "/auth/signup/", map[string]string{
		"username": "Freya",
		"email":    "freya@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Usernames are normalized to lowercase on signup.
	response := decodeBody(t, w.Body.Bytes())["response"].(map[string]interface{})
	assert.Equal(t, "freya", response["username"])

	w = jsonRequest(t, r, http.MethodPost, "/auth/login/", map[string]string{
		"email":    "freya@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	login := decodeBody(t, w.Body.Bytes())["response"].(map[string]interface{})
	token, ok := login["token"].(string)
	require.True(t, ok, "token missing from login response")
	require.NotEmpty(t, token)
	assert.Equal(t, false, login["is_admin"])

	// The session cookie carries the same token for cookie-based clients.
	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestSignupDuplicateUsername(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	payload := map[string]string{
		"username": "twin",
		"email":    "one@example.com",
		"password": "password123",
	}
	w := jsonRequest(t, r, http.MethodPost, "/auth/signup/", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["email"] = "two@example.com"
	w = jsonRequest(t, r, http.MethodPost, "/auth/signup/", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs := decodeBody(t, w.Body.Bytes())["error"].(map[string]interface{})
	assert.Contains(t, errs, "Taken_username")
}

func TestSignupInvalidEmail(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	w := jsonRequest(t, r, http.MethodPost, "/auth/signup/", map[string]string{
		"username": "badmail",
		"email":    "not-an-email",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	errs := decodeBody(t, w.Body.Bytes())["errors"].(map[string]interface{})
	assert.Contains(t, errs, "Invalid_email")
}

func TestLoginWrongPassword(t *testing.T) {
	server, _ := newTestServer(t)
	seedUser(t, server, "cautious", false)
	r := authRouter(server)

	w := jsonRequest(t, r, http.MethodPost, "/auth/login/", map[string]string{
		"email":    "cautious@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs := decodeBody(t, w.Body.Bytes())["error"].(map[string]interface{})
	assert.Contains(t, errs, "Incorrect_password")
}

func TestLoginUnknownEmail(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	w := jsonRequest(t, r, http.MethodPost, "/auth/login/", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs := decodeBody(t, w.Body.Bytes())["error"].(map[string]interface{})
	assert.Contains(t, errs, "Incorrect_details")
}

func TestLoginFormEchoesNext(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	req := httptest.NewRequest(http.MethodGet, "/auth/login/?next=%2Fcreate%2F", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w.Body.Bytes())["response"].(map[string]interface{})
	assert.Equal(t, "/create/", response["next"])
}

func TestLogoutClearsCookie(t *testing.T) {
	server, _ := newTestServer(t)
	r := authRouter(server)

	w := jsonRequest(t, r, http.MethodPost, "/auth/logout/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)
}
