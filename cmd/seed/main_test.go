package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"wp-lite/pkg/config"
	"wp-lite/pkg/database"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDatabase_IsIdempotent(t *testing.T) {
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Post{}))

	cfg := &config.Config{ProfileDefaultRole: "admin"}
	var out bytes.Buffer
	log := logger.NewWithWriters(&out, &out)

	require.NoError(t, seedDatabase(db, cfg, "admin@example.com", "secret", "Admin", log))
	require.NoError(t, seedDatabase(db, cfg, "admin@example.com", "secret", "Admin", log))

	var users, profiles, posts, drafts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Profile{}).Count(&profiles)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Post{}).Where("status = ?", models.StatusDraft).Count(&drafts)

	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, profiles)
	assert.EqualValues(t, len(seedPosts), posts)
	assert.EqualValues(t, 1, drafts)

	var draft models.Post
	require.NoError(t, db.Where("status = ?", models.StatusDraft).First(&draft).Error)
	assert.Nil(t, draft.PublishedAt)
	assert.Nil(t, draft.Excerpt)
}
