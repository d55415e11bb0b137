package controllers

import (
	"errors"
	"net/http"

	"Quill/models"
	"Quill/utils/formaterror"
	"Quill/utils/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetGroups godoc
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Success      200  {array}  GroupDTO
// @Router       /groups/ [get]
func (server *Server) GetGroups(c *gin.Context) {
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
		"status":   http.StatusOK,
		"response": groupDTOs,
	})
}

// CreateGroup godoc
// @Summary      Create a group
// @Description  Admin only; the slug must be unique
// @Tags         groups
// @Accept       mpfd
// @Produce      json
// @Param        title        formData  string  true   "Group title"
// @Param        slug         formData  string  true   "URL slug"
// @Param        description  formData  string  false  "Description"
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /groups/ [post]
// @Security     BearerAuth
func (server *Server) CreateGroup(c *gin.Context) {
	var form GroupForm
	if !bindForm(c, &form) {
		return
	}

	group := models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	group.Prepare()
	if errMessages := group.Validate(); len(errMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errMessages,
		})
		return
	}

	saved, err := group.SaveGroup(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}
	logger.Sugar.Infow("group created", "slug", saved.Slug)
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": groupToResponse(saved),
	})
}

// DeleteGroup godoc
// @Summary      Delete a group
// @Description  Admin only; member posts survive without a group
// @Tags         groups
// @Produce      json
// @Param        slug  path  string  true  "Group slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /groups/{slug}/ [delete]
// @Security     BearerAuth
func (server *Server) DeleteGroup(c *gin.Context) {
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

	if _, err := group.DeleteGroup(server.DB); err != nil {
		logger.Sugar.Errorw("group delete failed", "slug", group.Slug, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to delete group"})
		return
	}

	// The cached home rendering may still show the deleted group on its
	// posts; drop it rather than waiting out the TTL.
	if err := server.Cache.Clear(c.Request.Context()); err != nil {
		logger.Sugar.Warnw("home cache clear failed", "err", err)
	}

	logger.Sugar.Infow("group deleted", "slug", group.Slug)
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Group deleted",
	})
}
