package controllers

import (
	"time"

	"Quill/models"
	"Quill/utils/pagination"
)

// DTOs carry everything a client needs to display a view; author and group
// references arrive denormalized so no follow-up requests are necessary.

type AuthorDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type GroupDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type PostDTO struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Author    AuthorDTO `json:"author"`
	Group     *GroupDTO `json:"group,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    AuthorDTO `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedPageDTO struct {
	Posts []PostDTO       `json:"posts"`
	Page  pagination.Page `json:"page"`
}

func authorToResponse(u *models.User) AuthorDTO {
	return AuthorDTO{ID: u.ID, Username: u.Username}
}

func groupToResponse(g *models.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func postToResponse(p *models.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		Text:      p.Text,
		Author:    authorToResponse(&p.Author),
		Group:     groupToResponse(p.Group),
		ImageURL:  imageURL(p.ImagePath),
		CreatedAt: p.CreatedAt,
	}
}

func commentToResponse(c *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Author:    authorToResponse(&c.Author),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func feedToResponse(feed *models.FeedPage) FeedPageDTO {
	posts := make([]PostDTO, len(feed.Posts))
	for i := range feed.Posts {
		posts[i] = postToResponse(&feed.Posts[i])
	}
	return FeedPageDTO{Posts: posts, Page: feed.Page}
}
