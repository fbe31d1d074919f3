package entity

import (
	"errors"
	"strings"

	"wp-lite/pkg/content"
)

var ErrTitleRequired = errors.New("title is required")

// PostForm is the editable state of a post in the editor. It starts either
// from an existing post (edit mode) or from defaults (create mode).
type PostForm struct {
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	Category         string
	Status           PostStatus
	Featured         bool
	FeaturedImage    string
	FeaturedImageAlt string

	editing    bool
	slugEdited bool
}

func NewPostForm(existing *Post) *PostForm {
	if existing == nil {
		return &PostForm{
			Category: DefaultCategory,
			Status:   StatusDraft,
		}
	}

	f := &PostForm{
		Title:            existing.Title,
		Slug:             existing.Slug,
		Excerpt:          deref(existing.Excerpt),
		Content:          deref(existing.Content),
		Category:         existing.Category,
		Status:           existing.Status,
		Featured:         existing.Featured,
		FeaturedImage:    deref(existing.FeaturedImage),
		FeaturedImageAlt: deref(existing.FeaturedImageAlt),
		editing:          true,
	}
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	if f.Status == "" {
		f.Status = StatusDraft
	}
	return f
}

func (f *PostForm) IsEditing() bool {
	return f.editing
}

// SetTitle updates the title. A new post follows its title with a derived
// slug until the slug is edited by hand.
func (f *PostForm) SetTitle(title string) {
	f.Title = title
	if !f.editing && !f.slugEdited {
		f.Slug = content.Slugify(title)
	}
}

func (f *PostForm) SetSlug(slug string) {
	f.Slug = slug
	f.slugEdited = true
}

// RemoveImage clears the featured image together with its alt text.
func (f *PostForm) RemoveImage() {
	f.FeaturedImage = ""
	f.FeaturedImageAlt = ""
}

func (f *PostForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// PostPayload is what gets persisted on save.
type PostPayload struct {
	Title            string
	Slug             string
	Excerpt          *string
	Content          *string
	Category         string
	Status           PostStatus
	Featured         bool
	FeaturedImage    *string
	FeaturedImageAlt *string
}

func (f *PostForm) Payload() PostPayload {
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		slug = content.Slugify(f.Title)
	}

	return PostPayload{
		Title:            strings.TrimSpace(f.Title),
		Slug:             slug,
		Excerpt:          nullable(f.Excerpt),
		Content:          nullable(f.Content),
		Category:         f.Category,
		Status:           f.Status,
		Featured:         f.Featured,
		FeaturedImage:    nullable(f.FeaturedImage),
		FeaturedImageAlt: nullable(f.FeaturedImageAlt),
	}
}

// Apply copies the payload onto a post, leaving id, author and timestamps alone.
func (p PostPayload) Apply(post *Post) {
	post.Title = p.Title
	post.Slug = p.Slug
	post.Excerpt = p.Excerpt
	post.Content = p.Content
	post.Category = p.Category
	post.Featured = p.Featured
	post.FeaturedImage = p.FeaturedImage
	post.FeaturedImageAlt = p.FeaturedImageAlt
}

// nullable maps blank input to nil and keeps anything else verbatim.
func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
