package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/repo/persistent"
)

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrSlugTaken            = errors.New("a post with this slug already exists")
	ErrConflict             = errors.New("post was changed since it was loaded")
	ErrNotAuthenticated     = errors.New("you must be logged in to create posts")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidStatus        = errors.New("status must be draft or published")
)

// SaveInput carries the editor fields. Nil fields keep the current value, so
// an update may send only what changed.
type SaveInput struct {
	Title            *string
	Slug             *string
	Excerpt          *string
	Content          *string
	Category         *string
	Status           *entity.PostStatus
	Featured         *bool
	FeaturedImage    *string
	FeaturedImageAlt *string

	// ExpectedUpdatedAt turns an update into a conditional write.
	ExpectedUpdatedAt *time.Time
}

func (in SaveInput) applyTo(form *entity.PostForm) error {
	if in.Title != nil {
		form.SetTitle(*in.Title)
	}
	if in.Slug != nil {
		form.SetSlug(*in.Slug)
	}
	if in.Excerpt != nil {
		form.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		form.Content = *in.Content
	}
	if in.Category != nil && *in.Category != "" {
		form.Category = *in.Category
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return ErrInvalidStatus
		}
		form.Status = *in.Status
	}
	if in.Featured != nil {
		form.Featured = *in.Featured
	}
	if in.FeaturedImage != nil {
		form.FeaturedImage = *in.FeaturedImage
		if *in.FeaturedImage == "" {
			form.RemoveImage()
		}
	}
	if in.FeaturedImageAlt != nil && form.FeaturedImage != "" {
		form.FeaturedImageAlt = *in.FeaturedImageAlt
	}
	return nil
}

type Dashboard struct {
	Profile *entity.Profile     `json:"profile"`
	Counts  entity.StatusCounts `json:"counts"`
	Posts   []*entity.Post      `json:"posts"`
}

type PostUseCase interface {
	ListPosts(ctx context.Context, filter entity.StatusFilter) ([]*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	CreatePost(ctx context.Context, s *session.Session, input SaveInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, id string, input SaveInput) (*entity.Post, error)
	// ToggleStatus flips draft/published and returns the refreshed collection.
	ToggleStatus(ctx context.Context, id string) ([]*entity.Post, error)
	// DeletePost removes the post permanently once confirmed and returns the
	// refreshed collection.
	DeletePost(ctx context.Context, id string, confirmed bool) ([]*entity.Post, error)
	GetDashboard(ctx context.Context, s *session.Session) (*Dashboard, error)
	CreateSamplePost(ctx context.Context, s *session.Session) (*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	profileRepo persistent.ProfileRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	profileRepo persistent.ProfileRepository,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.StatusFilter) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListRecentlyUpdated(ctx)
	if err != nil {
		uc.logger.Error("Failed to fetch posts: %v", err)
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return entity.FilterByStatus(posts, filter), nil
}

func (uc *postUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError("fetch post", err)
	}
	return post, nil
}

func (uc *postUseCase) CreatePost(ctx context.Context, s *session.Session, input SaveInput) (*entity.Post, error) {
	form := entity.NewPostForm(nil)
	if err := input.applyTo(form); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	post := &entity.Post{AuthorID: s.UserID}
	payload := form.Payload()
	payload.Apply(post)
	post.SetStatus(payload.Status, uc.now())

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, uc.mapRepoError("create post", err)
	}

	uc.logger.Info("Post created: %s (%s) by %s", post.ID, post.Slug, post.AuthorID)
	return post, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, id string, input SaveInput) (*entity.Post, error) {
	existing, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError("fetch post", err)
	}

	form := entity.NewPostForm(existing)
	if err := input.applyTo(form); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	post := *existing
	payload := form.Payload()
	payload.Apply(&post)
	post.SetStatus(payload.Status, uc.now())

	if err := uc.postRepo.Update(ctx, &post, input.ExpectedUpdatedAt); err != nil {
		return nil, uc.mapRepoError("update post", err)
	}

	uc.logger.Info("Post updated: %s", post.ID)
	return &post, nil
}

func (uc *postUseCase) ToggleStatus(ctx context.Context, id string) ([]*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError("fetch post", err)
	}

	post.SetStatus(post.Status.Toggled(), uc.now())
	if err := uc.postRepo.UpdateStatus(ctx, post.ID, post.Status, post.PublishedAt); err != nil {
		return nil, uc.mapRepoError("update post status", err)
	}

	uc.logger.Info("Post %s is now %s", post.ID, post.Status)
	return uc.ListPosts(ctx, entity.FilterAll)
}

func (uc *postUseCase) DeletePost(ctx context.Context, id string, confirmed bool) ([]*entity.Post, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	if err := uc.postRepo.Delete(ctx, id); err != nil {
		return nil, uc.mapRepoError("delete post", err)
	}

	uc.logger.Info("Post deleted: %s", id)
	return uc.ListPosts(ctx, entity.FilterAll)
}

func (uc *postUseCase) GetDashboard(ctx context.Context, s *session.Session) (*Dashboard, error) {
	dashboard := &Dashboard{}

	if s != nil {
		profile, err := uc.profileRepo.GetByUserID(ctx, s.UserID)
		switch {
		case err == nil:
			dashboard.Profile = profile
		case errors.Is(err, persistent.ErrNotFound):
			// a missing profile is shown as such, not as a failure
		default:
			uc.logger.Error("Failed to fetch profile: %v", err)
			return nil, fmt.Errorf("failed to fetch profile: %w", err)
		}
	}

	posts, err := uc.ListPosts(ctx, entity.FilterAll)
	if err != nil {
		return nil, err
	}

	dashboard.Posts = posts
	dashboard.Counts = entity.CountByStatus(posts)
	return dashboard, nil
}

const samplePostContent = `# Welcome to WP Lite CMS

This is your first blog post! WP Lite makes it easy to create and manage professional content for your accounting firm.

## Key Features

- **Easy Content Management**: Create and edit posts with our intuitive interface
- **SEO Optimized**: All posts are automatically optimized for search engines
- **Professional Design**: Beautiful, responsive layouts that work on all devices
- **Performance First**: Lightning-fast loading times for better user experience

Start creating amazing content that helps your accounting firm stand out online!`

func (uc *postUseCase) CreateSamplePost(ctx context.Context, s *session.Session) (*entity.Post, error) {
	if s == nil || s.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	excerpt := "This is your first blog post created through the WP Lite admin dashboard. You can edit, publish, and manage all your content from here."
	body := samplePostContent
	post := &entity.Post{
		Title:    "Welcome to WP Lite CMS",
		Slug:     "welcome-to-wp-lite-cms",
		Excerpt:  &excerpt,
		Content:  &body,
		Category: "Getting Started",
		Featured: true,
		AuthorID: s.UserID,
	}
	post.SetStatus(entity.StatusPublished, uc.now())

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, uc.mapRepoError("create sample post", err)
	}

	uc.logger.Info("Sample post created for %s", s.UserID)
	return post, nil
}

func (uc *postUseCase) mapRepoError(action string, err error) error {
	switch {
	case errors.Is(err, persistent.ErrNotFound):
		return ErrPostNotFound
	case errors.Is(err, persistent.ErrSlugTaken):
		return ErrSlugTaken
	case errors.Is(err, persistent.ErrConflict):
		return ErrConflict
	}
	uc.logger.Error("Failed to %s: %v", action, err)
	return fmt.Errorf("failed to %s: %w", action, err)
}
