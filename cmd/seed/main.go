package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"wp-lite/pkg/config"
	"wp-lite/pkg/content"
	"wp-lite/pkg/database"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedPost struct {
	title    string
	excerpt  string
	category string
	status   models.PostStatus
	featured bool
	body     string
}

var seedPosts = []seedPost{
	{
		title:    "Year-End Tax Planning Checklist for Small Businesses",
		excerpt:  "Ten steps to take before December 31st that can lower your tax bill.",
		category: "Tax Planning",
		status:   models.StatusPublished,
		featured: true,
		body:     "## Why plan now\n\nThe last quarter is your final chance to shape this year's return.\n\n## The checklist\n\n- Review estimated payments\n- Accelerate deductible expenses\n- Defer income where it makes sense\n",
	},
	{
		title:    "Cash Flow Forecasting Made Simple",
		excerpt:  "A thirteen-week forecast is the easiest way to see trouble coming.",
		category: "Financial Planning",
		status:   models.StatusPublished,
		body:     "## Start with what you know\n\nList every expected receipt and payment for the next thirteen weeks.\n",
	},
	{
		title:    "Choosing the Right Business Structure",
		excerpt:  "Sole proprietorship, LLC or S corporation: what changes for you.",
		category: "Business Advisory",
		status:   models.StatusPublished,
		body:     "## The options\n\nEach structure trades simplicity against liability protection and tax flexibility.\n",
	},
	{
		title:    "New Payroll Reporting Deadlines",
		category: "Compliance",
		status:   models.StatusDraft,
		body:     "## What changed\n\nDraft notes on the updated filing calendar.\n",
	},
}

func main() {
	var (
		email    string
		password string
		fullName string
	)
	flag.StringVar(&email, "email", "admin@wplite.test", "admin account email")
	flag.StringVar(&password, "password", "password123", "admin account password")
	flag.StringVar(&fullName, "name", "WP Lite Admin", "admin full name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	if err := database.MigrateLocal(cfg, db, &models.User{}, &models.Profile{}, &models.Post{}); err != nil {
		log.Error("Failed to prepare local database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, cfg, email, password, fullName, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, cfg *config.Config, email, password, fullName string, log *logger.Logger) error {
	user, err := ensureAdmin(db, cfg, email, password, fullName, log)
	if err != nil {
		return err
	}

	now := time.Now()
	for i, p := range seedPosts {
		slug := content.Slugify(p.title)

		var existing models.Post
		err := db.Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			log.Info("Post %s already exists, skipping", slug)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up post %s: %w", slug, err)
		}

		post := &models.Post{
			Title:    p.title,
			Slug:     slug,
			Content:  optional(p.body),
			Excerpt:  optional(p.excerpt),
			Category: p.category,
			Status:   p.status,
			Featured: p.featured,
			AuthorID: user.ID,
		}
		if p.status == models.StatusPublished {
			publishedAt := now.Add(-time.Duration(i) * 24 * time.Hour)
			post.PublishedAt = &publishedAt
		}

		if err := db.Create(post).Error; err != nil {
			log.Error("Failed to create post %s: %v", slug, err)
			continue
		}
		log.Info("Created post: %s (%s)", post.Title, post.Status)
	}

	return nil
}

func ensureAdmin(db *gorm.DB, cfg *config.Config, email, password, fullName string, log *logger.Logger) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		log.Info("User %s already exists, skipping", email)
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user = models.User{Email: email, Password: string(hashedPassword)}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{
			UserID:   user.ID,
			Email:    email,
			FullName: optional(fullName),
			Role:     cfg.ProfileDefaultRole,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("Created user: %s", email)
	return &user, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
