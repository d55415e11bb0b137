package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"Quill/models"
	"Quill/utils/httpctx"
	"Quill/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddComment godoc
// @Summary      Comment on a post
// @Description  Attaches a comment for the signed-in user and redirects to the post
// @Tags         comments
// @Accept       mpfd
// @Produce      json
// @Param        id    path      int     true  "Post ID"
// @Param        text  formData  string  true  "Comment text"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/comment/ [post]
// @Security     BearerAuth
func (server *Server) AddComment(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, ok := server.findPost(c)
	if !ok {
		return
	}

	var form CommentForm
	if !bindForm(c, &form) {
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: viewerID,
		Text:     form.Text,
	}
	comment.Prepare()
	if errMessages := comment.Validate(); len(errMessages) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": errMessages,
		})
		return
	}

	if _, err := comment.SaveComment(server.DB); err != nil {
		logger.Sugar.Errorw("comment create failed", "post_id", post.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save comment"})
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(post.ID), 10)+"/")
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Comment-author-only; redirects back to the commented post
// @Tags         comments
// @Produce      json
// @Param        id  path  int  true  "Comment ID"
// @Success      302
// @Failure      404  {object}  map[string]interface{}
// @Router       /comments/{id}/delete/ [post]
// @Security     BearerAuth
func (server *Server) DeleteComment(c *gin.Context) {
	cid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "No comment found",
		})
		return
	}
	comment, err := (&models.Comment{}).FindCommentByID(server.DB, uint(cid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "No comment found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load comment"})
		return
	}

	detailURL := "/posts/" + strconv.FormatUint(uint64(comment.PostID), 10) + "/"
	viewerID, _ := httpctx.CurrentUserID(c)
	if !comment.OwnedBy(viewerID) {
		c.Redirect(http.StatusFound, detailURL)
		return
	}

	if _, err := comment.DeleteAComment(server.DB); err != nil {
		logger.Sugar.Errorw("comment delete failed", "comment_id", comment.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete comment"})
		return
	}
	c.Redirect(http.StatusFound, detailURL)
}
