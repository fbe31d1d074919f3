package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wp-lite/pkg/content"
	"wp-lite/pkg/logger"
	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/repo/persistent"
)

// BlogPost is a published post as the public blog shows it.
type BlogPost struct {
	*entity.Post
	ReadTime    string    `json:"read_time"`
	DisplayDate time.Time `json:"display_date"`
}

type BlogListing struct {
	Categories []string    `json:"categories"`
	Category   string      `json:"category"`
	Featured   []*BlogPost `json:"featured"`
	Posts      []*BlogPost `json:"posts"`
}

type BlogPostDetail struct {
	Post *BlogPost   `json:"post"`
	SEO  content.SEO `json:"seo"`
}

type BlogUseCase interface {
	// ListPublished loads published posts, derives the categories from them and
	// splits the category's posts into featured and regular ones.
	ListPublished(ctx context.Context, category string) (*BlogListing, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPostDetail, error)
	PageSEO(path string) content.SEO
}

type blogUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewBlogUseCase(postRepo persistent.PostRepository, logger *logger.Logger) BlogUseCase {
	return &blogUseCase{
		postRepo: postRepo,
		logger:   logger,
	}
}

func toBlogPost(p *entity.Post) *BlogPost {
	return &BlogPost{
		Post:        p,
		ReadTime:    content.ReadTime(p.ContentText()),
		DisplayDate: p.DisplayDate(),
	}
}

func categoryOf(p *entity.Post) string {
	return p.Category
}

func (uc *blogUseCase) ListPublished(ctx context.Context, category string) (*BlogListing, error) {
	posts, err := uc.postRepo.ListPublished(ctx)
	if err != nil {
		uc.logger.Error("Error fetching posts: %v", err)
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	if category == "" {
		category = content.AllCategories
	}

	listing := &BlogListing{
		Categories: content.Categories(posts, categoryOf),
		Category:   category,
		Featured:   []*BlogPost{},
		Posts:      []*BlogPost{},
	}

	for _, p := range content.FilterByCategory(posts, category, categoryOf) {
		if p.Featured {
			listing.Featured = append(listing.Featured, toBlogPost(p))
		} else {
			listing.Posts = append(listing.Posts, toBlogPost(p))
		}
	}
	return listing, nil
}

func (uc *blogUseCase) GetPublishedBySlug(ctx context.Context, slug string) (*BlogPostDetail, error) {
	post, err := uc.postRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		uc.logger.Error("Error fetching post: %v", err)
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}

	return &BlogPostDetail{
		Post: toBlogPost(post),
		SEO:  content.PostSEO(post.Title, post.ExcerptText()),
	}, nil
}

func (uc *blogUseCase) PageSEO(path string) content.SEO {
	return content.PageSEO(path)
}
