package persistent

import (
	"context"

	"wp-lite/services/post/internal/entity"
	"wp-lite/services/post/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToProfileEntity(&profileModel), nil
}
