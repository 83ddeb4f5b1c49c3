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

type PlaylistHandler struct {
	playlistService *service.PlaylistService
	logger          *zap.Logger
}

func NewPlaylistHandler(playlistService *service.PlaylistService, logger *zap.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		logger:          logger.Named("handlers.playlist"),
	}
}

type playlistRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	var req playlistRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toPlaylistDTO(playlist), "playlist created successfully")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	playlist, err := h.playlistService.Get(r.Context(), playlistID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPlaylistDTO(playlist), "playlist fetched successfully")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	playlists, err := h.playlistService.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	dtos := make([]playlistDTO, 0, len(playlists))
	for _, p := range playlists {
		dtos = append(dtos, toPlaylistDTO(p))
	}
	respond(w, http.StatusOK, dtos, "playlists fetched successfully")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateVideo(w, r, h.playlistService.AddVideo, "video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateVideo(w, r, h.playlistService.RemoveVideo, "video removed from playlist successfully")
}

func (h *PlaylistHandler) mutateVideo(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, ownerID, playlistID, videoID uuid.UUID) (*domain.Playlist, error),
	message string,
) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	videoID, err := uuidParam(r, "videoId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	playlist, err := fn(r.Context(), user.ID, playlistID, videoID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPlaylistDTO(playlist), message)
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	var req playlistRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), user.ID, playlistID, req.Name, req.Description)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPlaylistDTO(playlist), "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	playlistID, err := uuidParam(r, "playlistId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.playlistService.Delete(r.Context(), user.ID, playlistID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil, "playlist deleted successfully")
}
