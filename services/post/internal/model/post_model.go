package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID               string     `gorm:"type:uuid;primary_key" json:"id"`
	Title            string     `gorm:"type:text;not null" json:"title"`
	Slug             string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt          *string    `gorm:"type:text" json:"excerpt"`
	Content          *string    `gorm:"type:text" json:"content"`
	Category         string     `gorm:"type:varchar(100);default:'General'" json:"category"`
	Status           string     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Featured         bool       `gorm:"default:false" json:"featured"`
	FeaturedImage    *string    `gorm:"type:text" json:"featured_image"`
	FeaturedImageAlt *string    `gorm:"type:text" json:"featured_image_alt"`
	AuthorID         string     `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `gorm:"index" json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ProfileModel is read-only here; profiles are written by the auth service.
type ProfileModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Email     string    `gorm:"not null" json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `gorm:"default:'admin'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
