package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pressroom/internal/auth"
	apperrors "pressroom/internal/errors"
	"pressroom/internal/model"
	"pressroom/internal/repository"
)

// AuthService handles registration, login and profile operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Profile(ctx context.Context, userID uint) (*model.User, int64, error)
	UpdateProfile(ctx context.Context, userID uint, name, email *string) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, articleRepo repository.ArticleRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		jwtService:  jwtService,
	}
}

// Register creates a new user with a hashed password and issues a token.
// An omitted role defaults to VIEWER.
func (s *authService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = model.RoleViewer
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	// The unique index is the backstop for races between the existence check
	// and the insert.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", apperrors.Translate(err, apperrors.ErrUserNotFound)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Profile returns the user together with their article count.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Translate(err, apperrors.ErrUserNotFound)
	}

	count, err := s.articleRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	return user, count, nil
}

// UpdateProfile updates the caller's own name and/or email.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, name, email *string) (*model.User, error) {
	if name == nil && email == nil {
		return nil, apperrors.NewValidationError("body", "At least one field must be provided for update")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Translate(err, apperrors.ErrUserNotFound)
	}

	if email != nil && *email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, *email, userID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Translate(err, apperrors.ErrUserNotFound)
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.Translate(err, apperrors.ErrUserNotFound)
	}

	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}
