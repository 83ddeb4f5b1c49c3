package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
)

// TokenPair is a freshly signed access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssueTokenPair signs a new access/refresh pair for the user and persists
// the refresh token on the user record, unconditionally replacing whatever
// was stored before. Failures are deliberately opaque: the caller cannot
// tell which step failed.
func (s *AuthService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to generate tokens", err)
	}

	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, domain.Internal("failed to generate tokens", err)
	}

	refreshToken, err := s.signRefreshToken(user.ID)
	if err != nil {
		return nil, domain.Internal("failed to generate tokens", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, domain.Internal("failed to generate tokens", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// signAccessToken embeds the identity fields clients render without an extra
// lookup. Short-lived.
func (s *AuthService) signAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"username": user.Username,
		"fullName": user.FullName,
		"exp":      now.Add(s.cfg.AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AccessTokenSecret))
}

// signRefreshToken carries only the user id. Long-lived.
func (s *AuthService) signRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(s.cfg.RefreshTokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.RefreshTokenSecret))
}

// VerifyAccessToken checks signature and expiry against the access secret
// and returns the subject user id.
func (s *AuthService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	return verifyToken(tokenString, s.cfg.AccessTokenSecret)
}

// VerifyRefreshToken does the same against the refresh secret.
func (s *AuthService) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	return verifyToken(tokenString, s.cfg.RefreshTokenSecret)
}

func verifyToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid token claims")
	}
	return userID, nil
}
