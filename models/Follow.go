package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow is a directed edge: user (the follower) receives author's posts in
// their followed feed. The (user, author) pair is unique at the store level.
type Follow struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ErrSelfFollow rejects edges from a user to themselves before they reach
// the store.
var ErrSelfFollow = errors.New("cannot follow yourself")

// CreateFollow records the edge idempotently: an existing edge makes the
// insert a conflict-absorbing no-op. Returns whether a new edge was created.
func CreateFollow(db *gorm.DB, userID, authorID uint) (bool, error) {
	if userID == authorID {
		return false, ErrSelfFollow
	}
	follow := Follow{UserID: userID, AuthorID: authorID}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteFollow removes the edge if present; a missing edge is a no-op.
func DeleteFollow(db *gorm.DB, userID, authorID uint) (bool, error) {
	result := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsFollowing reports whether the edge (user -> author) exists.
func IsFollowing(db *gorm.DB, userID, authorID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerCount is used by the profile view header.
func FollowerCount(db *gorm.DB, authorID uint) (int64, error) {
	var count int64
	err := db.Model(&Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
