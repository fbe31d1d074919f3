package persistent

import (
	"context"
	"errors"
	"time"

	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlugTaken = errors.New("slug already in use")
	ErrConflict  = errors.New("post was modified by someone else")
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	// Update saves every editable column. When expectedUpdatedAt is set the
	// write only happens if the stored row still carries that timestamp.
	Update(ctx context.Context, post *entity.Post, expectedUpdatedAt *time.Time) error
	UpdateStatus(ctx context.Context, id string, status entity.PostStatus, publishedAt *time.Time) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// ListRecentlyUpdated returns every post, newest update first.
	ListRecentlyUpdated(ctx context.Context) ([]*entity.Post, error)
	// ListPublished returns published posts, newest publication first.
	ListPublished(ctx context.Context) ([]*entity.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return translate(err)
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post, expectedUpdatedAt *time.Time) error {
	if !validID(post.ID) {
		return ErrNotFound
	}
	postModel := ToPostModel(post)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.PostModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", postModel.ID).First(&current).Error; err != nil {
			return err
		}

		if expectedUpdatedAt != nil && !sameInstant(current.UpdatedAt, *expectedUpdatedAt) {
			return ErrConflict
		}

		postModel.AuthorID = current.AuthorID
		postModel.CreatedAt = current.CreatedAt
		return tx.Save(postModel).Error
	})
	if err != nil {
		return translate(err)
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, id string, status entity.PostStatus, publishedAt *time.Time) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       string(status),
		"published_at": publishedAt,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&model.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var postModel model.PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, string(entity.StatusPublished)).
		First(&postModel).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) ListRecentlyUpdated(ctx context.Context) ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

func (r *postRepository) ListPublished(ctx context.Context) ([]*entity.Post, error) {
	var postModels []model.PostModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entity.StatusPublished)).
		Order("published_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

// validID rejects ids Postgres would refuse to cast to uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// sameInstant compares at microsecond precision, which is what Postgres keeps.
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Microsecond).Equal(b.Truncate(time.Microsecond))
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrSlugTaken
	}
	return err
}
