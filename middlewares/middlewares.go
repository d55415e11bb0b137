package middlewares

import (
	"net/http"
	"net/url"

	"Quill/auth"
	"Quill/models"
	"Quill/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginURL is where anonymous users are sent when they hit a gated route.
const LoginURL = "/auth/login/"

func attachUser(c *gin.Context, db *gorm.DB) bool {
	userID, err := auth.ExtractTokenID(c.Request)
	if err != nil {
		return false
	}
	var user models.User
	if err := db.Select("id", "username", "is_admin").First(&user, userID).Error; err != nil {
		return false
	}
	c.Set(httpctx.UserIDKey, user.ID)
	c.Set(httpctx.UsernameKey, user.Username)
	c.Set(httpctx.IsAdminKey, user.IsAdmin)
	return true
}

// LoginRequired gates mutating routes the way a browser flow expects:
// anonymous requests are redirected to the login page with the original
// path preserved in a next parameter, and the request ends there.
func LoginRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !attachUser(c, db) {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginURL+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalUser resolves the session if one exists but lets anonymous
// requests through. Read-only views use it to personalize output.
func OptionalUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		attachUser(c, db)
		c.Next()
	}
}

// AdminRequired layers an admin check on top of an authenticated session.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !attachUser(c, db) {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginURL+"?next="+next)
			c.Abort()
			return
		}
		if !httpctx.IsAdminRequest(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CORSMiddleware lets a browser frontend on another origin talk to the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Length, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
