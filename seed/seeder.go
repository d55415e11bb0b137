package seed

import (
	"fmt"
	"log"

	"Quill/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var groups = []models.Group{
	{Title: "Writing", Slug: "writing", Description: "Craft and process"},
	{Title: "Travel", Slug: "travel", Description: "Places worth the trip"},
	{Title: "Cooking", Slug: "cooking", Description: "Recipes and kitchen notes"},
}

// Load wipes the database and fills it with demo content. Development only.
func Load(db *gorm.DB) {
	gofakeit.Seed(42)

	err := db.Migrator().DropTable(&models.Follow{}, &models.Comment{}, &models.Post{}, &models.Group{}, &models.User{})
	if err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}, &models.Comment{}, &models.Follow{})
	if err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	users := make([]models.User, 0, 8)
	for i := 0; i < 8; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: "password",
		}
		user.Prepare()
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("cannot seed users: %v", err)
		}
		users = append(users, user)
	}

	// One known admin for exercising the group management routes.
	admin := models.User{Username: "admin", Email: "admin@example.com", Password: "password"}
	admin.Prepare()
	admin.IsAdmin = true
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("cannot seed admin: %v", err)
	}

	for i := range groups {
		if err := db.Create(&groups[i]).Error; err != nil {
			log.Fatalf("cannot seed groups: %v", err)
		}
	}

	posts := make([]models.Post, 0, 40)
	for i := 0; i < 40; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		post := models.Post{
			Text:     gofakeit.Paragraph(1, 3, 12, " "),
			AuthorID: author.ID,
		}
		if gofakeit.Bool() {
			gid := groups[gofakeit.Number(0, len(groups)-1)].ID
			post.GroupID = &gid
		}
		if err := db.Create(&post).Error; err != nil {
			log.Fatalf("cannot seed posts: %v", err)
		}
		posts = append(posts, post)
	}

	for i := 0; i < 60; i++ {
		comment := models.Comment{
			PostID:   posts[gofakeit.Number(0, len(posts)-1)].ID,
			AuthorID: users[gofakeit.Number(0, len(users)-1)].ID,
			Text:     gofakeit.Sentence(10),
		}
		if err := db.Create(&comment).Error; err != nil {
			log.Fatalf("cannot seed comments: %v", err)
		}
	}

	for i := 0; i < 20; i++ {
		follower := users[gofakeit.Number(0, len(users)-1)]
		author := users[gofakeit.Number(0, len(users)-1)]
		if follower.ID == author.ID {
			continue
		}
		// Duplicate picks collapse into one follow row.
		if _, err := models.CreateFollow(db, follower.ID, author.ID); err != nil {
			log.Fatalf("cannot seed follows: %v", err)
		}
	}
}
