package handlers

import (
	"net/http"

	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	logger              *zap.Logger
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		logger:              logger.Named("handlers.subscription"),
	}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, h.logger, domain.Unauthorized("unauthorized request"))
		return
	}
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	subscribed, err := h.subscriptionService.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	respond(w, http.StatusOK, map[string]any{"subscribed": subscribed}, message)
}

// ListSubscribers returns the users subscribed to a channel.
func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuidParam(r, "channelId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	subscriptions, err := h.subscriptionService.ListSubscribers(r.Context(), channelID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	subscribers := make([]ownerDTO, 0, len(subscriptions))
	for _, sub := range subscriptions {
		subscribers = append(subscribers, toOwnerDTO(sub.Subscriber))
	}
	respond(w, http.StatusOK, subscribers, "subscribers fetched successfully")
}

// ListSubscribedChannels returns the channels a user is subscribed to.
func (h *SubscriptionHandler) ListSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := uuidParam(r, "subscriberId")
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	subscriptions, err := h.subscriptionService.ListSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	channels := make([]ownerDTO, 0, len(subscriptions))
	for _, sub := range subscriptions {
		channels = append(channels, toOwnerDTO(sub.Channel))
	}
	respond(w, http.StatusOK, channels, "subscribed channels fetched successfully")
}
