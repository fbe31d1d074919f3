package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wp-lite/pkg/jwt"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/session"
	"wp-lite/services/auth/internal/entity"
	"wp-lite/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenRevoker denies a token id until the token would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AuthUseCase interface {
	SignUp(ctx context.Context, email, password, fullName string) (*entity.User, *entity.Profile, string, error)
	SignIn(ctx context.Context, email, password string) (*entity.User, string, error)
	// GetSession returns the user behind the session and its profile; the
	// profile is nil when it does not exist.
	GetSession(ctx context.Context, s *session.Session) (*entity.User, *entity.Profile, error)
	SignOut(ctx context.Context, s *session.Session) error
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	revoker     TokenRevoker
	defaultRole string
	logger      *logger.Logger
}

// NewAuthUseCase wires the use case. revoker may be nil, in which case sign-out
// only relies on the client dropping its token.
func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	revoker TokenRevoker,
	defaultRole string,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		revoker:     revoker,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

func (uc *authUseCase) SignUp(ctx context.Context, email, password, fullName string) (*entity.User, *entity.Profile, string, error) {
	email = normalizeEmail(email)

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, nil, "", ErrEmailTaken
	}
	if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, nil, "", fmt.Errorf("failed to process registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashedPassword),
	}
	profile := &entity.Profile{
		Email: email,
		Role:  uc.defaultRole,
	}
	if name := strings.TrimSpace(fullName); name != "" {
		profile.FullName = &name
	}

	if err := uc.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, persistent.ErrDuplicateEmail) {
			return nil, nil, "", ErrEmailTaken
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, profile.Role)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, nil, "", fmt.Errorf("failed to generate token")
	}

	uc.logger.Info("User signed up: %s", user.ID)
	user.Password = ""
	return user, profile, token, nil
}

func (uc *authUseCase) SignIn(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Error("Failed to look up user: %v", err)
		}
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	role := uc.defaultRole
	if profile, err := uc.userRepo.GetProfileByUserID(ctx, user.ID); err == nil {
		role = profile.Role
	}

	token, err := uc.jwtService.GenerateToken(user.ID, role)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetSession(ctx context.Context, s *session.Session) (*entity.User, *entity.Profile, error) {
	user, err := uc.userRepo.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	user.Password = ""

	profile, err := uc.userRepo.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}

func (uc *authUseCase) SignOut(ctx context.Context, s *session.Session) error {
	if uc.revoker == nil || s.TokenID == "" {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, s.TokenID, s.ExpiresAt); err != nil {
		uc.logger.Error("Failed to revoke token: %v", err)
		return fmt.Errorf("failed to sign out")
	}
	uc.logger.Info("User signed out: %s", s.UserID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
