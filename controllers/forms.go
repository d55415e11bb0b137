package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Form schemas. Required/optional fields and their rules live here as
// binding tags, decoupled from the persistence models; the generic binding
// validator enforces them before any mutation happens.

type SignupForm struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LoginForm struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type PostForm struct {
	Text    string `json:"text" form:"text" binding:"required"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}

type CommentForm struct {
	Text string `json:"text" form:"text" binding:"required"`
}

type GroupForm struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Slug        string `json:"slug" form:"slug" binding:"required"`
	Description string `json:"description" form:"description"`
}

// bindForm binds and validates the request body against the form schema.
// On failure it answers with the re-render payload (HTTP 200, field errors,
// no mutation performed) and reports false.
func bindForm(c *gin.Context, form interface{}) bool {
	err := c.ShouldBind(form)
	if err == nil {
		return true
	}
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"errors": fieldErrors(err),
	})
	return false
}

func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		for _, fe := range verr {
			field := strings.ToLower(fe.Field())
			label := titleCase(field)
			switch fe.Tag() {
			case "required":
				messages["Required_"+field] = "Required " + label
			case "email":
				messages["Invalid_"+field] = "Invalid Email"
			case "min":
				messages["Invalid_"+field] = label + " is too short"
			default:
				messages["Invalid_"+field] = "Invalid " + label
			}
		}
		return messages
	}

	messages["Invalid_body"] = "Invalid request body"
	return messages
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
