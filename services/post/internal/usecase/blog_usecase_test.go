package usecase

import (
	"context"
	"strings"
	"testing"

	"wp-lite/pkg/content"
	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlog_ListPublished(t *testing.T) {
	postUC, db := setupPostUseCase(t)
	blog := NewBlogUseCase(persistent.NewPostRepository(db), testLogger())
	ctx := context.Background()

	featured := true
	_, err := postUC.CreatePost(ctx, admin, SaveInput{Title: str("Featured Tax"), Category: str("Tax"), Status: statusPtr(entity.StatusPublished), Featured: &featured})
	require.NoError(t, err)
	_, err = postUC.CreatePost(ctx, admin, SaveInput{Title: str("Payroll Basics"), Category: str("Payroll"), Status: statusPtr(entity.StatusPublished), Content: str(strings.Repeat("word ", 450))})
	require.NoError(t, err)
	_, err = postUC.CreatePost(ctx, admin, SaveInput{Title: str("Hidden Draft"), Category: str("Secret")})
	require.NoError(t, err)

	listing, err := blog.ListPublished(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, content.AllCategories, listing.Category)
	assert.ElementsMatch(t, []string{"All", "Tax", "Payroll"}, listing.Categories)
	assert.Equal(t, "All", listing.Categories[0])
	require.Len(t, listing.Featured, 1)
	assert.Equal(t, "Featured Tax", listing.Featured[0].Title)
	require.Len(t, listing.Posts, 1)
	assert.Equal(t, "3 min read", listing.Posts[0].ReadTime)
	assert.False(t, listing.Posts[0].DisplayDate.IsZero())

	listing, err = blog.ListPublished(ctx, "Payroll")
	require.NoError(t, err)
	assert.Empty(t, listing.Featured)
	require.Len(t, listing.Posts, 1)
	assert.Equal(t, "Payroll Basics", listing.Posts[0].Title)

	listing, err = blog.ListPublished(ctx, "Unknown")
	require.NoError(t, err)
	assert.Empty(t, listing.Featured)
	assert.Empty(t, listing.Posts)
}

func TestBlog_GetPublishedBySlug(t *testing.T) {
	postUC, db := setupPostUseCase(t)
	blog := NewBlogUseCase(persistent.NewPostRepository(db), testLogger())
	ctx := context.Background()

	_, err := postUC.CreatePost(ctx, admin, SaveInput{Title: str("Public"), Excerpt: str("Short summary"), Status: statusPtr(entity.StatusPublished)})
	require.NoError(t, err)
	_, err = postUC.CreatePost(ctx, admin, SaveInput{Title: str("Private")})
	require.NoError(t, err)

	detail, err := blog.GetPublishedBySlug(ctx, "public")
	require.NoError(t, err)
	assert.Equal(t, "Public", detail.Post.Title)
	assert.Equal(t, "0 min read", detail.Post.ReadTime)
	assert.Equal(t, "Short summary", detail.SEO.Description)
	assert.Contains(t, detail.SEO.Title, "Public")

	_, err = blog.GetPublishedBySlug(ctx, "private")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = blog.GetPublishedBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBlog_PageSEO(t *testing.T) {
	blog := NewBlogUseCase(nil, testLogger())
	assert.Equal(t, content.PageSEO("/blog"), blog.PageSEO("/blog"))
	assert.Equal(t, content.DefaultSEO(), blog.PageSEO("/unknown"))
}
