package main

import (
	api "Quill"
)

// @title Quill API
// @version 1.0
// @description API for posts, groups, comments, and author follows
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
