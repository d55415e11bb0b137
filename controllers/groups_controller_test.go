package controllers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"Quill/cache"
	"Quill/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGroups(t *testing.T) {
	server, _ := newTestServer(t)
	seedGroup(t, server, "Writing", "writing")
	seedGroup(t, server, "Travel", "travel")

	w := doRequest(t, server, http.MethodGet, "/groups/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	groups := decodeBody(t, w.Body.Bytes())["response"].([]interface{})
	assert.Len(t, groups, 2)
}

func TestCreateGroupRequiresAdmin(t *testing.T) {
	server, _ := newTestServer(t)
	user := seedUser(t, server, "plain", false)

	form := url.Values{"title": {"Writing"}, "slug": {"writing"}}
	w := doRequest(t, server, http.MethodPost, "/groups/", tokenFor(t, user.ID), form)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Anonymous callers bounce to login instead.
	w = doRequest(t, server, http.MethodPost, "/groups/", "", form)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestAdminCreateGroup(t *testing.T) {
	server, _ := newTestServer(t)
	admin := seedUser(t, server, "boss", true)
	token := tokenFor(t, admin.ID)

	form := url.Values{"title": {"Writing"}, "slug": {"writing"}, "description": {"craft"}}
	w := doRequest(t, server, http.MethodPost, "/groups/", token, form)
	require.Equal(t, http.StatusCreated, w.Code)

	// The slug is taken now.
	form = url.Values{"title": {"Writing Again"}, "slug": {"writing"}}
	w = doRequest(t, server, http.MethodPost, "/groups/", token, form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateGroupBadSlug(t *testing.T) {
	server, _ := newTestServer(t)
	admin := seedUser(t, server, "boss", true)

	form := url.Values{"title": {"Bad"}, "slug": {"not a slug!"}}
	w := doRequest(t, server, http.MethodPost, "/groups/", tokenFor(t, admin.ID), form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	server, mr := newTestServer(t)
	admin := seedUser(t, server, "boss", true)
	author := seedUser(t, server, "member", false)
	group := seedGroup(t, server, "Doomed", "doomed")
	post := seedPost(t, server, author.ID, "still here after", &group.ID)

	// Prime the home cache so the delete has something to invalidate.
	w := doRequest(t, server, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mr.Exists(cache.HomeKey))

	w = doRequest(t, server, http.MethodDelete, "/groups/doomed/", tokenFor(t, admin.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The post survives, detached from the deleted group.
	reloaded, err := (&models.Post{}).FindPostByID(server.DB, post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.GroupID)
	assert.Nil(t, reloaded.Group)

	var count int64
	server.DB.Model(&models.Group{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Home cache was dropped, so the next render is current.
	assert.False(t, mr.Exists(cache.HomeKey))
}

func TestDeleteGroupUnknownSlug(t *testing.T) {
	server, _ := newTestServer(t)
	admin := seedUser(t, server, "boss", true)

	w := doRequest(t, server, http.MethodDelete, "/groups/ghost/", tokenFor(t, admin.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomeCacheExpiresAfterGroupChurn(t *testing.T) {
	server, mr := newTestServer(t)
	author := seedUser(t, server, "member", false)
	group := seedGroup(t, server, "Wave", "wave")
	seedPost(t, server, author.ID, "surfing", &group.ID)

	w := doRequest(t, server, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mr.Exists(cache.HomeKey))

	mr.FastForward(cache.HomeTTL + time.Second)
	assert.False(t, mr.Exists(cache.HomeKey))
}
