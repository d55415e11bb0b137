package controllers

import (
	"net/http"

	"Quill/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {
	// Read-only feed views; anonymous visitors welcome.
	s.Router.GET("/", middlewares.OptionalUser(s.DB), s.Index)
	s.Router.GET("/group/:slug/", middlewares.OptionalUser(s.DB), s.GroupPosts)
	s.Router.GET("/profile/:username/", middlewares.OptionalUser(s.DB), s.Profile)
	s.Router.GET("/posts/:id/", middlewares.OptionalUser(s.DB), s.PostDetail)
	s.Router.GET("/groups/", s.GetGroups)

	// Authenticated surface. Anonymous requests bounce to login with a
	// next parameter.
	gated := s.Router.Group("/", middlewares.LoginRequired(s.DB))
	{
		gated.GET("/create/", s.CreatePostForm)
		gated.POST("/create/", s.CreatePost)
		gated.GET("/posts/:id/edit/", s.EditPostForm)
		gated.POST("/posts/:id/edit/", s.EditPost)
		gated.POST("/posts/:id/delete/", s.DeletePost)
		gated.POST("/posts/:id/comment/", s.AddComment)
		gated.POST("/comments/:id/delete/", s.DeleteComment)
		gated.GET("/follow/", s.FollowIndex)
		gated.GET("/profile/:username/follow/", s.ProfileFollow)
		gated.GET("/profile/:username/unfollow/", s.ProfileUnfollow)
	}

	// Auth surface.
	authRoutes := s.Router.Group("/auth", middlewares.AuthRateLimitMiddleware())
	{
		authRoutes.POST("/signup/", s.Signup)
		authRoutes.GET("/login/", s.LoginForm)
		authRoutes.POST("/login/", s.Login)
		authRoutes.POST("/logout/", s.Logout)
	}

	// Group administration.
	admin := s.Router.Group("/groups", middlewares.AdminRequired(s.DB))
	{
		admin.POST("/", s.CreateGroup)
		admin.DELETE("/:slug/", s.DeleteGroup)
	}

	// Unknown paths get the dedicated not-found payload.
	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Page not found",
		})
	})
}
