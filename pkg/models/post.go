package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type Post struct {
	ID               string     `gorm:"type:uuid;primary_key" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Slug             string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt          *string    `json:"excerpt"`
	Content          *string    `json:"content"`
	Category         string     `gorm:"default:'General'" json:"category"`
	Status           PostStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Featured         bool       `gorm:"default:false" json:"featured"`
	FeaturedImage    *string    `json:"featured_image"`
	FeaturedImageAlt *string    `json:"featured_image_alt"`
	AuthorID         string     `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
