package handlers

import (
	"net/http"

	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"go.uber.org/zap"
)

var dashboardSortFields = map[string]bool{
	"created_at": true,
	"views":      true,
}

// DashboardHandler serves channel analytics for the authenticated owner.
// It reads from the repositories directly since the stats are pure lookups.
type DashboardHandler struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewDashboardHandler(repos *repository.Repositories, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		repos:  repos,
		logger: logger.Named("handlers.dashboard"),
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	ctx := r.Context()

	totalVideos, err := h.repos.Video.CountByOwner(ctx, user.ID)
	if err != nil {
		respondError(w, h.logger, domain.Internal("failed to fetch channel stats", err))
		return
	}
	totalViews, err := h.repos.Video.SumViewsByOwner(ctx, user.ID)
	if err != nil {
		respondError(w, h.logger, domain.Internal("failed to fetch channel stats", err))
		return
	}
	totalSubscribers, err := h.repos.Subscription.CountSubscribers(ctx, user.ID)
	if err != nil {
		respondError(w, h.logger, domain.Internal("failed to fetch channel stats", err))
		return
	}
	totalLikes, err := h.repos.Like.CountForVideosOwnedBy(ctx, user.ID)
	if err != nil {
		respondError(w, h.logger, domain.Internal("failed to fetch channel stats", err))
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"totalVideos":      totalVideos,
		"totalViews":       totalViews,
		"totalSubscribers": totalSubscribers,
		"totalLikes":       totalLikes,
	}, "channel stats fetched successfully")
}

// Videos lists every video of the channel, published or not.
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	q, err := parseListQuery(r, dashboardSortFields, "created_at")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	filter := repository.VideoFilter{OwnerID: &user.ID}
	videos, total, err := h.repos.Video.List(r.Context(), filter, q)
	if err != nil {
		respondError(w, h.logger, domain.Internal("failed to fetch channel videos", err))
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"videos":      toVideoDTOs(videos),
		"totalVideos": total,
		"totalPages":  q.TotalPages(total),
		"page":        q.Page,
	}, "channel videos fetched successfully")
}
