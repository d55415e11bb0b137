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

// findPost parses the :id param and loads the post, replying for the
// caller on any failure.
func (server *Server) findPost(c *gin.Context) (*models.Post, bool) {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "No post found",
		})
		return nil, false
	}
	post, err := (&models.Post{}).FindPostByID(server.DB, uint(pid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"error":  "No post found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load post"})
		return nil, false
	}
	return post, true
}

// resolveGroup validates an optional group selection from a post form.
// A missing group is reported the way any other field error is, so the
// client re-renders the form instead of surfacing a server error.
func (server *Server) resolveGroup(c *gin.Context, groupID *uint) (*uint, bool) {
	if groupID == nil {
		return nil, true
	}
	var group models.Group
	if err := server.DB.First(&group, *groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": http.StatusOK,
				"errors": map[string]string{"Invalid_group": "Selected group does not exist"},
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load group"})
		return nil, false
	}
	return &group.ID, true
}

// PostDetail godoc
// @Summary      Post detail
// @Description  One post with its comments, oldest comment first
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/ [get]
func (server *Server) PostDetail(c *gin.Context) {
	post, ok := server.findPost(c)
	if !ok {
		return
	}

	comments, err := (&models.Comment{}).FindPostComments(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load comments"})
		return
	}
	authorPosts, err := post.Author.PostCount(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load post"})
		return
	}

	isOwner := false
	if viewerID, authed := httpctx.CurrentUserID(c); authed {
		isOwner = post.OwnedBy(viewerID)
	}

	commentDTOs := make([]CommentDTO, 0, len(*comments))
	for i := range *comments {
		commentDTOs = append(commentDTOs, commentToResponse(&(*comments)[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":              postToResponse(post),
			"comments":          commentDTOs,
			"author_post_count": authorPosts,
			"is_owner":          isOwner,
		},
	})
}

// CreatePostForm godoc
// @Summary      New post form
// @Description  Field schema and selectable groups for composing a post
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /create/ [get]
// @Security     BearerAuth
func (server *Server) CreatePostForm(c *gin.Context) {
	groups, err := (&models.Group{}).FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load groups"})
		return
	}
	groupDTOs := make([]*GroupDTO, 0, len(*groups))
	for i := range *groups {
		groupDTOs = append(groupDTOs, groupToResponse(&(*groups)[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"fields": []string{"text", "group_id", "image"},
			"groups": groupDTOs,
		},
	})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Saves a new post for the signed-in user and redirects to their profile
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        text      formData  string  true   "Post text"
// @Param        group_id  formData  int     false  "Group ID"
// @Param        image     formData  file    false  "Attached image"
// @Success      302
// @Router       /create/ [post]
// @Security     BearerAuth
func (server *Server) CreatePost(c *gin.Context) {
	viewerID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var form PostForm
	if !bindForm(c, &form) {
		return
	}
	groupID, ok := server.resolveGroup(c, form.GroupID)
	if !ok {
		return
	}

	imagePath, err := uploadPostImage(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": map[string]string{"Invalid_image": err.Error()},
		})
		return
	}

	post := models.Post{
		Text:      form.Text,
		AuthorID:  viewerID,
		GroupID:   groupID,
		ImagePath: imagePath,
	}
	post.Prepare()
	if errMessages := post.Validate(); len(errMessages) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": errMessages,
		})
		return
	}

	saved, err := post.SavePost(server.DB)
	if err != nil {
		logger.Sugar.Errorw("post create failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save post"})
		return
	}

	username, _ := httpctx.CurrentUsername(c)
	logger.Sugar.Infow("post created", "post_id", saved.ID, "author_id", viewerID)
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// EditPostForm godoc
// @Summary      Edit post form
// @Description  Prefilled field values; non-authors are sent back to the post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Success      302
// @Router       /posts/{id}/edit/ [get]
// @Security     BearerAuth
func (server *Server) EditPostForm(c *gin.Context) {
	post, ok := server.findPost(c)
	if !ok {
		return
	}
	viewerID, _ := httpctx.CurrentUserID(c)
	if !post.OwnedBy(viewerID) {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(post.ID), 10)+"/")
		return
	}

	groups, err := (&models.Group{}).FindAllGroups(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load groups"})
		return
	}
	groupDTOs := make([]*GroupDTO, 0, len(*groups))
	for i := range *groups {
		groupDTOs = append(groupDTOs, groupToResponse(&(*groups)[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"post":   postToResponse(post),
			"fields": []string{"text", "group_id", "image"},
			"groups": groupDTOs,
		},
	})
}

// EditPost godoc
// @Summary      Edit a post
// @Description  Author-only update of text, group, and image; creation time is preserved
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Param        id        path      int     true   "Post ID"
// @Param        text      formData  string  true   "Post text"
// @Param        group_id  formData  int     false  "Group ID"
// @Param        image     formData  file    false  "Attached image"
// @Success      302
// @Router       /posts/{id}/edit/ [post]
// @Security     BearerAuth
func (server *Server) EditPost(c *gin.Context) {
	post, ok := server.findPost(c)
	if !ok {
		return
	}
	detailURL := "/posts/" + strconv.FormatUint(uint64(post.ID), 10) + "/"

	// A non-author is bounced to the post unchanged, with no error. The
	// edit form is never offered to them, so there is nothing to explain.
	viewerID, _ := httpctx.CurrentUserID(c)
	if !post.OwnedBy(viewerID) {
		c.Redirect(http.StatusFound, detailURL)
		return
	}

	var form PostForm
	if !bindForm(c, &form) {
		return
	}
	groupID, ok := server.resolveGroup(c, form.GroupID)
	if !ok {
		return
	}

	imagePath, err := uploadPostImage(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": map[string]string{"Invalid_image": err.Error()},
		})
		return
	}
	if imagePath == "" {
		imagePath = post.ImagePath
	}

	updated := models.Post{ID: post.ID, AuthorID: post.AuthorID, Text: form.Text, GroupID: groupID, ImagePath: imagePath}
	updated.Prepare()
	if errMessages := updated.Validate(); len(errMessages) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": errMessages,
		})
		return
	}

	if _, err := updated.UpdatePost(server.DB); err != nil {
		logger.Sugar.Errorw("post update failed", "post_id", post.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save post"})
		return
	}
	c.Redirect(http.StatusFound, detailURL)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Author-only; removes the post and its comments
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post ID"
// @Success      302
// @Router       /posts/{id}/delete/ [post]
// @Security     BearerAuth
func (server *Server) DeletePost(c *gin.Context) {
	post, ok := server.findPost(c)
	if !ok {
		return
	}
	viewerID, _ := httpctx.CurrentUserID(c)
	if !post.OwnedBy(viewerID) {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(uint64(post.ID), 10)+"/")
		return
	}

	if _, err := post.DeletePost(server.DB); err != nil {
		logger.Sugar.Errorw("post delete failed", "post_id", post.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete post"})
		return
	}
	logger.Sugar.Infow("post deleted", "post_id", post.ID, "author_id", viewerID)
	c.Redirect(http.StatusFound, "/")
}
