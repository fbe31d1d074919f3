package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"wp-lite/pkg/cache"
	"wp-lite/pkg/database"
	"wp-lite/pkg/jwt"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/auth/internal/model"
	"wp-lite/services/auth/internal/repo/persistent"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	uc          AuthUseCase
	jwtService  *jwt.Service
	revocations *cache.RevocationStore
}

func setupUseCase(t *testing.T) testEnv {
	t.Helper()

	db, err := database.NewSQLiteDB("file::memory:")
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.UserModel{}, &model.ProfileModel{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	revocations := cache.NewRevocationStore(client)

	var buf bytes.Buffer
	jwtService := jwt.NewService("test-secret")
	uc := NewAuthUseCase(persistent.NewUserRepository(db), jwtService, revocations, "admin", logger.NewWithWriters(&buf, &buf))

	return testEnv{uc: uc, jwtService: jwtService, revocations: revocations}
}

func TestSignUp_CreatesUserAndProfile(t *testing.T) {
	env := setupUseCase(t)
	ctx := context.Background()

	user, profile, token, err := env.uc.SignUp(ctx, " Ada@Example.com ", "secret1", "Ada Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.Password)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, "admin", profile.Role)
	require.NotNil(t, profile.FullName)
	assert.Equal(t, "Ada Lovelace", *profile.FullName)

	claims, err := env.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	env := setupUseCase(t)
	ctx := context.Background()

	_, _, _, err := env.uc.SignUp(ctx, "ada@example.com", "secret1", "")
	require.NoError(t, err)

	_, _, _, err = env.uc.SignUp(ctx, "ADA@example.com", "other12", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn(t *testing.T) {
	env := setupUseCase(t)
	ctx := context.Background()

	created, _, _, err := env.uc.SignUp(ctx, "ada@example.com", "secret1", "")
	require.NoError(t, err)

	user, token, err := env.uc.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = env.uc.SignIn(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.uc.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetSession(t *testing.T) {
	env := setupUseCase(t)
	ctx := context.Background()

	created, _, _, err := env.uc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	user, profile, err := env.uc.GetSession(ctx, &session.Session{UserID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	require.NotNil(t, profile)
	assert.Equal(t, "ada@example.com", profile.Email)

	_, _, err = env.uc.GetSession(ctx, &session.Session{UserID: "missing"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignOut_RevokesToken(t *testing.T) {
	env := setupUseCase(t)
	ctx := context.Background()

	_, _, token, err := env.uc.SignUp(ctx, "ada@example.com", "secret1", "")
	require.NoError(t, err)

	claims, err := env.jwtService.ValidateToken(token)
	require.NoError(t, err)

	s := &session.Session{UserID: claims.UserID, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}
	require.NoError(t, env.uc.SignOut(ctx, s))

	revoked, err := env.revocations.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestSignOut_WithoutRevoker(t *testing.T) {
	var buf bytes.Buffer
	uc := NewAuthUseCase(nil, jwt.NewService("x"), nil, "admin", logger.NewWithWriters(&buf, &buf))

	err := uc.SignOut(context.Background(), &session.Session{UserID: "u", TokenID: "t", ExpiresAt: time.Now().Add(time.Hour)})
	assert.NoError(t, err)
}
