package persistent

import (
	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:               m.ID,
		Title:            m.Title,
		Slug:             m.Slug,
		Excerpt:          m.Excerpt,
		Content:          m.Content,
		Category:         m.Category,
		Status:           entity.PostStatus(m.Status),
		Featured:         m.Featured,
		FeaturedImage:    m.FeaturedImage,
		FeaturedImageAlt: m.FeaturedImageAlt,
		AuthorID:         m.AuthorID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		PublishedAt:      m.PublishedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:               e.ID,
		Title:            e.Title,
		Slug:             e.Slug,
		Excerpt:          e.Excerpt,
		Content:          e.Content,
		Category:         e.Category,
		Status:           string(e.Status),
		Featured:         e.Featured,
		FeaturedImage:    e.FeaturedImage,
		FeaturedImageAlt: e.FeaturedImageAlt,
		AuthorID:         e.AuthorID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		PublishedAt:      e.PublishedAt,
	}
}

func toPostEntities(models []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, len(models))
	for i := range models {
		posts[i] = ToPostEntity(&models[i])
	}
	return posts
}

func ToProfileEntity(m *model.ProfileModel) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		FullName:  m.FullName,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
