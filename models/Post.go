package models

import (
	"strings"
	"time"

	"Quill/utils/pagination"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Post is an authored entry. CreatedAt is assigned once by the server and is
// never touched by edits; the group reference is optional and survives group
// deletion as NULL.
type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImagePath string    `gorm:"size:255" json:"image_path"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_posts_created_id,priority:1" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

var textPolicy = bluemonday.StrictPolicy()

func (p *Post) Prepare() {
	p.Text = strings.TrimSpace(textPolicy.Sanitize(p.Text))
	p.Author = User{}
	p.Group = nil
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Text == "" {
		errorMessages["Required_text"] = "Required Text"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Required Author"
	}
	return errorMessages
}

// OwnedBy is the ownership guard: only the author may mutate a post.
func (p *Post) OwnedBy(actorID uint) bool {
	return actorID != 0 && p.AuthorID == actorID
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Author").Preload("Group").Take(&p, p.ID).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Preload("Author").Preload("Group").Take(&post, pid).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost rewrites the mutable fields only. CreatedAt and AuthorID stay
// whatever creation assigned.
func (p *Post) UpdatePost(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"text":       p.Text,
		"group_id":   p.GroupID,
		"image_path": p.ImagePath,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return p.FindPostByID(db, p.ID)
}

// DeletePost removes the post together with its comments.
func (p *Post) DeletePost(db *gorm.DB) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", p.ID).Delete(&Post{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// FeedPage is one display-ready window of a feed: posts carry their author
// and group so callers never need a follow-up query.
type FeedPage struct {
	Posts []Post          `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// assembleFeed counts the scoped posts, clamps the requested page number and
// fetches that window newest-first. Ties on the timestamp break by descending
// ID so the ordering is total.
func assembleFeed(db *gorm.DB, scope func(*gorm.DB) *gorm.DB, pageNumber int) (*FeedPage, error) {
	var total int64
	if err := scope(db.Model(&Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.Paginate(pagination.PostsPerPage, pageNumber, total)

	posts := []Post{}
	err := scope(db.Model(&Post{})).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Page: page}, nil
}

// FindAllPosts is the home feed scope.
func FindAllPosts(db *gorm.DB, pageNumber int) (*FeedPage, error) {
	return assembleFeed(db, func(q *gorm.DB) *gorm.DB { return q }, pageNumber)
}

// FindGroupPosts scopes the feed to one group.
func FindGroupPosts(db *gorm.DB, groupID uint, pageNumber int) (*FeedPage, error) {
	return assembleFeed(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("group_id = ?", groupID)
	}, pageNumber)
}

// FindAuthorPosts scopes the feed to one author.
func FindAuthorPosts(db *gorm.DB, authorID uint, pageNumber int) (*FeedPage, error) {
	return assembleFeed(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id = ?", authorID)
	}, pageNumber)
}

// FindFollowedPosts scopes the feed to authors the viewer follows. A viewer
// who follows nobody gets an empty page, not an error.
func FindFollowedPosts(db *gorm.DB, viewerID uint, pageNumber int) (*FeedPage, error) {
	return assembleFeed(db, func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"author_id IN (?)",
			db.Model(&Follow{}).Select("author_id").Where("user_id = ?", viewerID),
		)
	}, pageNumber)
}
