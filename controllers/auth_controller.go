package controllers

import (
	"net/http"
	"strings"

	"Quill/auth"
	"Quill/models"
	"Quill/security"
	"Quill/utils/formaterror"
	"Quill/utils/logger"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 60 * 60 * 24 // seconds, matches the token lifetime

// Signup godoc
// @Summary      Create an account
// @Description  Register with username, email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  SignupForm  true  "Signup payload"
// @Success      201  {object}  map[string]interface{}
// @Router       /auth/signup/ [post]
func (server *Server) Signup(c *gin.Context) {
	var form SignupForm
	if !bindForm(c, &form) {
		return
	}

	user := models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	}
	user.Prepare()
	if errorMessages := user.Validate(""); len(errorMessages) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"errors": errorMessages,
		})
		return
	}

	created, err := user.SaveUser(server.DB)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formaterror.FormatError(err.Error()),
		})
		return
	}

	logger.Sugar.Infow("user signed up", "username", created.Username)
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": gin.H{"id": created.ID, "username": created.Username, "email": created.Email},
	})
}

// LoginForm is the redirect target for anonymous visitors hitting a gated
// route. It echoes the next parameter so a client can come back after
// authenticating.
func (server *Server) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"message": "Authentication required",
			"next":    c.Query("next"),
		},
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password; sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginForm  true  "Login payload"
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/login/ [post]
func (server *Server) Login(c *gin.Context) {
	var form LoginForm
	if !bindForm(c, &form) {
		return
	}

	user := models.User{}
	err := server.DB.Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(form.Email))).
		Take(&user).Error
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  map[string]string{"Incorrect_details": "Incorrect Details"},
		})
		return
	}
	if err := security.VerifyPassword(user.Password, form.Password); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  map[string]string{"Incorrect_password": "Incorrect Password"},
		})
		return
	}

	token, err := auth.CreateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session"})
		return
	}

	c.SetCookie(auth.SessionCookieName, token, sessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"token":    token,
			"id":       user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// Logout clears the session cookie.
func (server *Server) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Logged out",
	})
}
