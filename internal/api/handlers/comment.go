package handlers

import (
	"net/http"

	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

var commentSortFields = map[string]bool{
	"created_at": true,
}

type CommentHandler struct {
	commentService *service.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService *service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger.Named("handlers.comment"),
	}
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	q, err := parseListQuery(r, commentSortFields, "created_at")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	comments, total, err := h.commentService.ListByVideo(r.Context(), videoID, q)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	dtos := make([]commentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toCommentDTO(c))
	}
	respond(w, http.StatusOK, map[string]any{
		"comments":      dtos,
		"totalComments": total,
		"totalPages":    q.TotalPages(total),
		"page":          q.Page,
	}, "comments fetched successfully")
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	var req commentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	comment, err := h.commentService.Add(r.Context(), user.ID, videoID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toCommentDTO(comment), "comment added successfully")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	var req commentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	comment, err := h.commentService.Update(r.Context(), user.ID, commentID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toCommentDTO(comment), "comment updated successfully")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	commentID, err := uuidParam(r, "commentId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.commentService.Delete(r.Context(), user.ID, commentID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil, "comment deleted successfully")
}
