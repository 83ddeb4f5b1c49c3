package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/media"
	"github.com/streamhive/streamhive/internal/repository"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

// videoSortFields is the sort allow-list for the public video listing.
var videoSortFields = map[string]bool{
	"title":      true,
	"duration":   true,
	"views":      true,
	"created_at": true,
}

type VideoHandler struct {
	videoService *service.VideoService
	store        media.Store
	logger       *zap.Logger
}

func NewVideoHandler(videoService *service.VideoService, store media.Store, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		store:        store,
		logger:       logger.Named("handlers.video"),
	}
}

// List runs the paginated aggregation over published videos: optional text
// search, optional owner filter, allow-listed sort, skip/limit paging.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r, videoSortFields, "created_at")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	filter := repository.VideoFilter{
		PublishedOnly: true,
		Search:        r.URL.Query().Get("query"),
	}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, h.logger, domain.BadRequest("invalid userId"))
			return
		}
		filter.OwnerID = &ownerID
	}

	videos, total, err := h.videoService.List(r.Context(), filter, q)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	// This endpoint treats an empty page as missing, unlike the other lists.
	if len(videos) == 0 {
		respondError(w, h.logger, domain.NotFound("no videos found"))
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"videos":      toVideoDTOs(videos),
		"totalVideos": total,
		"totalPages":  q.TotalPages(total),
		"page":        q.Page,
	}, "videos fetched successfully")
}

type publishVideoRequest struct {
	Title       string `validate:"required"`
	Description string
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, h.logger, domain.BadRequest("invalid multipart form"))
		return
	}

	req := publishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := validateStruct(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	duration := 0.0
	if raw := r.FormValue("duration"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondError(w, h.logger, domain.BadRequest("duration must be a non-negative number"))
			return
		}
		duration = parsed
	}

	videoFile, err := uploadFormFile(r.Context(), h.store, r, "videoFile")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	thumbnail, err := uploadFormFile(r.Context(), h.store, r, "thumbnail")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	video, err := h.videoService.Publish(r.Context(), user.ID, service.PublishInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    duration,
		VideoFile:   videoFile.URL,
		VideoKey:    videoFile.Key,
		Thumbnail:   thumbnail.URL,
		ThumbKey:    thumbnail.Key,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toVideoDTO(video), "video published successfully")
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var viewerID *uuid.UUID
	if viewer, ok := middleware.GetUser(r.Context()); ok {
		viewerID = &viewer.ID
	}

	video, err := h.videoService.Get(r.Context(), videoID, viewerID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toVideoDTO(video), "video fetched successfully")
}

type updateVideoRequest struct {
	Title       string `validate:"required"`
	Description string
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, h.logger, domain.BadRequest("invalid multipart form"))
		return
	}

	req := updateVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if err := validateStruct(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	input := service.VideoUpdateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if hasFormFile(r, "thumbnail") {
		thumbnail, err := uploadFormFile(r.Context(), h.store, r, "thumbnail")
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		input.Thumbnail = &thumbnail.URL
		input.ThumbKey = thumbnail.Key
	}

	video, err := h.videoService.Update(r.Context(), user.ID, videoID, input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toVideoDTO(video), "video updated successfully")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.videoService.Delete(r.Context(), user.ID, videoID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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

	video, err := h.videoService.TogglePublish(r.Context(), user.ID, videoID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toVideoDTO(video), "publish status toggled successfully")
}
