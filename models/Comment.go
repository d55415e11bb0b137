package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Comment lives and dies with its post: deleting a post removes its comments.
type Comment struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Text = strings.TrimSpace(textPolicy.Sanitize(c.Text))
	c.Author = User{}
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Text == "" {
		errorMessages["Required_text"] = "Required Text"
	}
	if c.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	if c.PostID == 0 {
		errorMessages["Required_post"] = "Required Post"
	}
	return errorMessages
}

// OwnedBy is the ownership guard for comments.
func (c *Comment) OwnedBy(actorID uint) bool {
	return actorID != 0 && c.AuthorID == actorID
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	err := db.Create(&c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) FindCommentByID(db *gorm.DB, cid uint) (*Comment, error) {
	var comment Comment
	err := db.Preload("Author").Take(&comment, cid).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindPostComments returns a post's comment thread in insertion order.
func (c *Comment) FindPostComments(db *gorm.DB, pid uint) (*[]Comment, error) {
	comments := []Comment{}
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("created_at asc, id asc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

func (c *Comment) DeleteAComment(db *gorm.DB) (int64, error) {
	result := db.Where("id = ?", c.ID).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
