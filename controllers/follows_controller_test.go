package controllers

import (
	"net/http"
	"testing"

	"Quill/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	server, _ := newTestServer(t)
	follower := seedUser(t, server, "fan", false)
	author := seedUser(t, server, "idol", false)
	token := tokenFor(t, follower.ID)

	w := doRequest(t, server, http.MethodGet, "/profile/idol/follow/", token, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/idol/", w.Header().Get("Location"))

	// Following again changes nothing.
	w = doRequest(t, server, http.MethodGet, "/profile/idol/follow/", token, nil)
	require.Equal(t, http.StatusFound, w.Code)

	count, err := models.FollowerCount(server.DB, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	server, _ := newTestServer(t)
	follower := seedUser(t, server, "fickle", false)
	author := seedUser(t, server, "star", false)
	token := tokenFor(t, follower.ID)

	// Unfollowing without a follow in place is a quiet no-op.
	w := doRequest(t, server, http.MethodGet, "/profile/star/unfollow/", token, nil)
	require.Equal(t, http.StatusFound, w.Code)

	_, err := models.CreateFollow(server.DB, follower.ID, author.ID)
	require.NoError(t, err)

	w = doRequest(t, server, http.MethodGet, "/profile/star/unfollow/", token, nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = doRequest(t, server, http.MethodGet, "/profile/star/unfollow/", token, nil)
	require.Equal(t, http.StatusFound, w.Code)

	count, err := models.FollowerCount(server.DB, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSelfFollowIsRejected(t *testing.T) {
	server, _ := newTestServer(t)
	user := seedUser(t, server, "narcissus", false)

	w := doRequest(t, server, http.MethodGet, "/profile/narcissus/follow/", tokenFor(t, user.ID), nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/narcissus/", w.Header().Get("Location"))

	count, err := models.FollowerCount(server.DB, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFollowUnknownAuthor(t *testing.T) {
	server, _ := newTestServer(t)
	follower := seedUser(t, server, "searcher", false)

	w := doRequest(t, server, http.MethodGet, "/profile/ghost/follow/", tokenFor(t, follower.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowRequiresLogin(t *testing.T) {
	server, _ := newTestServer(t)
	seedUser(t, server, "idol", false)

	w := doRequest(t, server, http.MethodGet, "/profile/idol/follow/", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fprofile%2Fidol%2Ffollow%2F", w.Header().Get("Location"))
}
