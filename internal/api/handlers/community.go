package handlers

import (
	"net/http"

	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

var postSortFields = map[string]bool{
	"created_at": true,
}

type CommunityHandler struct {
	communityService *service.CommunityService
	logger           *zap.Logger
}

func NewCommunityHandler(communityService *service.CommunityService, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
		logger:           logger.Named("handlers.community"),
	}
}

type postRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	var req postRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	post, err := h.communityService.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toPostDTO(post), "post created successfully")
}

func (h *CommunityHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	q, err := parseListQuery(r, postSortFields, "created_at")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	posts, total, err := h.communityService.ListByUser(r.Context(), userID, q)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	dtos := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toPostDTO(p))
	}
	respond(w, http.StatusOK, map[string]any{
		"posts":      dtos,
		"totalPosts": total,
		"totalPages": q.TotalPages(total),
		"page":       q.Page,
	}, "posts fetched successfully")
}

func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	postID, err := uuidParam(r, "postId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	var req postRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	post, err := h.communityService.Update(r.Context(), user.ID, postID, req.Content)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPostDTO(post), "post updated successfully")
}

func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	postID, err := uuidParam(r, "postId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.communityService.Delete(r.Context(), user.ID, postID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil, "post deleted successfully")
}
