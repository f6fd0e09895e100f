// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a post in the Murmur application.
type Post struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	// Image is an opaque path supplied by the client; it is stored verbatim
	// and never interpreted.
	Image     string    `json:"image,omitempty"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
