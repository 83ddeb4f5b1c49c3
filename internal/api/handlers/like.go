package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
	logger      *zap.Logger
}

func NewLikeHandler(likeService *service.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		logger:      logger.Named("handlers.like"),
	}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "videoId", h.likeService.ToggleVideo)
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "commentId", h.likeService.ToggleComment)
}

func (h *LikeHandler) TogglePost(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "postId", h.likeService.TogglePost)
}

func (h *LikeHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	fn func(ctx context.Context, userID, targetID uuid.UUID) (bool, error),
) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	targetID, err := uuidParam(r, param)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	liked, err := fn(r.Context(), user.ID, targetID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	message := "like removed successfully"
	if liked {
		message = "like added successfully"
	}
	respond(w, http.StatusOK, map[string]any{"liked": liked}, message)
}

func (h *LikeHandler) ListLikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	videos, err := h.likeService.ListLikedVideos(r.Context(), user.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toVideoDTOs(videos), "liked videos fetched successfully")
}
