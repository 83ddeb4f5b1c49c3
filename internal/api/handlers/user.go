package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/config"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/media"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refreshToken"

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
	store       media.Store
	cfg         *config.Config
	logger      *zap.Logger
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, store media.Store, cfg *config.Config, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		store:       store,
		cfg:         cfg,
		logger:      logger.Named("handlers.user"),
	}
}

type registerRequest struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Password string `validate:"required,min=8"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, h.logger, domain.BadRequest("invalid multipart form"))
		return
	}

	req := registerRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}
	if err := validateStruct(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	avatar, err := uploadFormFile(r.Context(), h.store, r, "avatar")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	coverImage := ""
	coverKey := ""
	if hasFormFile(r, "coverImage") {
		cover, err := uploadFormFile(r.Context(), h.store, r, "coverImage")
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		coverImage = cover.URL
		coverKey = cover.Key
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     avatar.URL,
		CoverImage: coverImage,
	})
	if err != nil {
		// The user row never landed; don't keep the uploads.
		h.removeUploads(r, avatar.Key, coverKey)
		respondError(w, h.logger, err)
		return
	}

	respond(w, http.StatusCreated, user, "user registered successfully")
}

func (h *UserHandler) removeUploads(r *http.Request, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := h.store.Delete(r.Context(), key); err != nil {
			h.logger.Warn("failed to remove upload", zap.String("key", key), zap.Error(err))
		}
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Username == "" && req.Email == "" {
		respondError(w, h.logger, domain.BadRequest("username or email is required"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.setAuthCookies(w, result.Tokens)
	respond(w, http.StatusOK, map[string]any{
		"user":         result.User,
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	}, "user logged in successfully")
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.clearAuthCookies(w)
	respond(w, http.StatusOK, nil, "user logged out successfully")
}

// RefreshToken accepts the refresh token from its cookie or, for
// non-browser clients, from the request body.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.setAuthCookies(w, result.Tokens)
	respond(w, http.StatusOK, map[string]any{
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	}, "access token refreshed")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	var req changePasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil, "password changed successfully")
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	respond(w, http.StatusOK, user, "current user fetched successfully")
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	var req updateAccountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	updated, err := h.userService.UpdateAccount(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, updated, "account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.userService.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string, apply func(ctx context.Context, id uuid.UUID, url string) (*domain.User, error)) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, h.logger, domain.BadRequest("invalid multipart form"))
		return
	}

	result, err := uploadFormFile(r.Context(), h.store, r, field)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	updated, err := apply(r.Context(), user.ID, result.URL)
	if err != nil {
		h.removeUploads(r, result.Key)
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, updated, field+" updated successfully")
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		respondError(w, h.logger, domain.BadRequest("username is required"))
		return
	}

	var viewerID *uuid.UUID
	if viewer, ok := middleware.GetUser(r.Context()); ok {
		viewerID = &viewer.ID
	}

	profile, err := h.userService.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, profile, "channel profile fetched successfully")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	videos, err := h.userService.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toVideoDTOs(videos), "watch history fetched successfully")
}

func (h *UserHandler) setAuthCookies(w http.ResponseWriter, tokens service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cfg.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})
}

func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
		})
	}
}
