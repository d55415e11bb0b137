package controllers

import (
	"errors"
	"net/http"

	"Quill/models"
	"Quill/utils/httpctx"
	"Quill/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// findProfileAuthor resolves the :username param for the follow routes.
func (server *Server) findProfileAuthor(c *gin.Context) (*models.User, bool) {
	author, err := (&models.User{}).FindUserByUsername(server.DB, c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "No user found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load profile"})
		return nil, false
	}
	return author, true
}

// ProfileFollow godoc
// @Summary      Follow an author
// @Description  Idempotent; following twice changes nothing. Self-follow is rejected.
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/follow/ [get]
// @Security     BearerAuth
func (server *Server) ProfileFollow(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	author, ok := server.findProfileAuthor(c)
	if !ok {
		return
	}

	created, err := models.CreateFollow(server.DB, viewerID, author.ID)
	if err != nil && !errors.Is(err, models.ErrSelfFollow) {
		logger.Sugar.Errorw("follow failed", "author_id", author.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to follow"})
		return
	}
	if created {
		logger.Sugar.Infow("follow created", "user_id", viewerID, "author_id", author.ID)
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow godoc
// @Summary      Unfollow an author
// @Description  Idempotent; unfollowing someone not followed is a no-op
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /profile/{username}/unfollow/ [get]
// @Security     BearerAuth
func (server *Server) ProfileUnfollow(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	author, ok := server.findProfileAuthor(c)
	if !ok {
		return
	}

	removed, err := models.DeleteFollow(server.DB, viewerID, author.ID)
	if err != nil {
		logger.Sugar.Errorw("unfollow failed", "author_id", author.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to unfollow"})
		return
	}
	if removed {
		logger.Sugar.Infow("follow removed", "user_id", viewerID, "author_id", author.ID)
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
