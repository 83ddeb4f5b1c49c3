package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/config"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     string
	CoverImage string
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

// Register creates a user after a uniqueness check. The password is hashed
// exactly once, here; no later save path ever rewrites the hash column.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("user with email or username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     input.FullName,
		Avatar:       input.Avatar,
		CoverImage:   input.CoverImage,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Re-fetch without the credential columns.
	created, err := s.userRepo.GetPublicByID(ctx, user.ID)
	if err != nil {
		return nil, domain.Internal("something went wrong while registering the user", err)
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, username, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user does not exist")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.Unauthorized("invalid user credentials")
	}

	tokens, err := s.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	loggedIn, err := s.userRepo.GetPublicByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: loggedIn, Tokens: *tokens}, nil
}

// Logout clears the stored refresh token so the rotation check fails for
// every previously issued refresh token.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil)
}

// Refresh exchanges a still-current refresh token for a new pair.
//
// The presented token must verify, name a live user, and byte-equal the
// token currently stored on that user. The equality check is what rotates:
// issuing a new pair overwrites the stored value, so every earlier token is
// rejected without a revocation list. The check-then-set sequence is not
// atomic; two concurrent refreshes with the same token can both pass the
// equality check before either writes.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.Unauthorized(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, domain.Unauthorized("refresh token expired or used")
	}

	tokens, err := s.IssueTokenPair(ctx, user.ID)
	if err != nil {
		// Rotation failures are authorization failures, not server faults.
		return nil, domain.Unauthorized("invalid refresh token")
	}

	refreshed, err := s.userRepo.GetPublicByID(ctx, user.ID)
	if err != nil {
		return nil, domain.Unauthorized("invalid refresh token")
	}
	return &AuthResult{User: refreshed, Tokens: *tokens}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.BadRequest("invalid old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// ResolveUser loads the user a verified access token refers to, without the
// credential columns. Used by the auth middleware.
func (s *AuthService) ResolveUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetPublicByID(ctx, userID)
}
