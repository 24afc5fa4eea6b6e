package model

import "time"

// ArticleStatus is the closed set of publication states.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
)

// Valid reports whether s is one of the known statuses.
func (s ArticleStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Article represents a piece of content authored by a user.
// AuthorID is immutable after creation; status transitions are unconstrained.
type Article struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Title     string        `json:"title" gorm:"size:200;not null"`
	Content   string        `json:"content" gorm:"type:text;not null"`
	Status    ArticleStatus `json:"status" gorm:"size:20;not null;default:'DRAFT';index"`
	AuthorID  uint          `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}
