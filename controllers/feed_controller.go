package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Quill/cache"
	"Quill/models"
	"Quill/utils/httpctx"
	"Quill/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pageNumber reads the requested page from the query string. Anything
// unparsable falls back to the first page; out-of-range values clamp later
// in the paginator.
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// Index godoc
// @Summary      Home feed
// @Description  All posts, newest first, whole-page cached for a short TTL
// @Tags         feeds
// @Produce      json
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  FeedPageDTO
// @Router       / [get]
func (server *Server) Index(c *gin.Context) {
	page := pageNumber(c)

	// The home rendering is cached under one fixed key for every viewer
	// and page; within the TTL all visitors see the same bytes, deletions
	// included. Stale reads here are the documented trade-off.
	payload, err := server.Cache.GetOrRender(c.Request.Context(), cache.HomeKey, cache.HomeTTL, func() ([]byte, error) {
		feed, err := models.FindAllPosts(server.DB, page)
		if err != nil {
			return nil, err
		}
		return json.Marshal(gin.H{
			"status":   http.StatusOK,
			"response": feedToResponse(feed),
		})
	})
	if err != nil {
		logger.Sugar.Errorw("home feed failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load feed"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// GroupPosts godoc
// @Summary      Group feed
// @Description  Posts in one group, newest first
// @Tags         feeds
// @Produce      json
// @Param        slug  path   string  true   "Group slug"
// @Param        page  query  int     false  "Page number"
// @Success      200  {object}  FeedPageDTO
// @Failure      404  {object}  map[string]interface{}
// @Router       /group/{slug}/ [get]
func (server *Server) GroupPosts(c *gin.Context) {
	group, err := (&models.Group{}).FindGroupBySlug(server.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "No group found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load group"})
		return
	}

	feed, err := models.FindGroupPosts(server.DB, group.ID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"group": groupToResponse(group),
			"posts": feedToResponse(feed).Posts,
			"page":  feed.Page,
		},
	})
}

// Profile godoc
// @Summary      Author profile feed
// @Description  Posts by one author plus follow status for the viewer
// @Tags         feeds
// @Produce      json
// @Param        username  path   string  true   "Author username"
// @Param        page      query  int     false  "Page number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/ [get]
func (server *Server) Profile(c *gin.Context) {
	author, err := (&models.User{}).FindUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "No user found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load profile"})
		return
	}

	feed, err := models.FindAuthorPosts(server.DB, author.ID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load feed"})
		return
	}

	postCount, err := author.PostCount(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load profile"})
		return
	}
	followerCount, err := models.FollowerCount(server.DB, author.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load profile"})
		return
	}

	// Follow status only means something for an authenticated viewer.
	following := false
	if viewerID, ok := httpctx.CurrentUserID(c); ok {
		following, err = models.IsFollowing(server.DB, viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"author":         authorToResponse(author),
			"posts":          feedToResponse(feed).Posts,
			"page":           feed.Page,
			"post_count":     postCount,
			"follower_count": followerCount,
			"following":      following,
		},
	})
}

// FollowIndex godoc
// @Summary      Followed-authors feed
// @Description  Posts from authors the viewer follows; empty when following nobody
// @Tags         feeds
// @Produce      json
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  FeedPageDTO
// @Router       /follow/ [get]
// @Security     BearerAuth
func (server *Server) FollowIndex(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	feed, err := models.FindFollowedPosts(server.DB, viewerID, pageNumber(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": feedToResponse(feed),
	})
}
