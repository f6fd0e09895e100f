// Package models contains data structures for the application's domain models.
package models

import "time"

// Group is a topic that posts can optionally be published under.
// Posts reference groups weakly: deleting a group detaches its posts
// instead of deleting them.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Posts []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
