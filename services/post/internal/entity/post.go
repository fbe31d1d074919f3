package entity

import (
	"errors"
	"fmt"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Toggled is the status a post moves to when its publish switch is flipped.
func (s PostStatus) Toggled() PostStatus {
	if s == StatusPublished {
		return StatusDraft
	}
	return StatusPublished
}

const DefaultCategory = "General"

// KnownCategories are offered by the editor; stored posts may carry others.
var KnownCategories = []string{
	"General",
	"Tax Planning",
	"Business Advisory",
	"Financial Planning",
	"Compliance",
	"Industry News",
}

type Post struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          *string    `json:"excerpt"`
	Content          *string    `json:"content"`
	Category         string     `json:"category"`
	Status           PostStatus `json:"status"`
	Featured         bool       `json:"featured"`
	FeaturedImage    *string    `json:"featured_image"`
	FeaturedImageAlt *string    `json:"featured_image_alt"`
	AuthorID         string     `json:"author_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	PublishedAt      *time.Time `json:"published_at"`
}

// SetStatus changes the status and keeps published_at in step with it.
func (p *Post) SetStatus(status PostStatus, now time.Time) {
	switch status {
	case StatusPublished:
		if p.Status != StatusPublished || p.PublishedAt == nil {
			p.PublishedAt = &now
		}
	default:
		p.PublishedAt = nil
	}
	p.Status = status
}

// DisplayDate is the date shown on public listings.
func (p *Post) DisplayDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

func (p *Post) ContentText() string {
	if p.Content == nil {
		return ""
	}
	return *p.Content
}

func (p *Post) ExcerptText() string {
	if p.Excerpt == nil {
		return ""
	}
	return *p.Excerpt
}

type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPublished StatusFilter = "published"
	FilterDraft     StatusFilter = "draft"
)

var ErrUnknownFilter = errors.New("unknown status filter")

// ParseStatusFilter accepts all, published or draft; empty means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPublished, FilterDraft:
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// FilterByStatus keeps the order of posts.
func FilterByStatus(posts []*Post, filter StatusFilter) []*Post {
	if filter == FilterAll {
		return posts
	}
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if string(p.Status) == string(filter) {
			out = append(out, p)
		}
	}
	return out
}

type StatusCounts struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

func CountByStatus(posts []*Post) StatusCounts {
	counts := StatusCounts{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case StatusPublished:
			counts.Published++
		case StatusDraft:
			counts.Drafts++
		}
	}
	return counts
}
