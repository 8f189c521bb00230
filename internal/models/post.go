// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a feed post in the Ripple application.
// The owner reference (UserID) is set at creation and never changes.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `json:"image_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// Likes is the set of account IDs that currently like this post.
	// Not persisted on the posts table; resolved from the likes table at read time.
	Likes []uint `gorm:"-" json:"likes"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"comments_count"`
	Comments      []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
