package httpctx

import "github.com/gin-gonic/gin"

// Context keys set by the auth middlewares.
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	IsAdminKey  = "isAdmin"
)

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

// CurrentUsername returns the authenticated username, if any.
func CurrentUsername(c *gin.Context) (string, bool) {
	val, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	name, ok := val.(string)
	return name, ok
}

// IsAdminRequest indicates whether the current request is from an admin.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get(IsAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
