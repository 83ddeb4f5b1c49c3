package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle subscribes the user to the channel, or unsubscribes if already
// subscribed. It reports whether the user is subscribed after the call.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	if subscriberID == channelID {
		return false, domain.BadRequest("you cannot subscribe to your own channel")
	}
	if _, err := s.userRepo.GetPublicByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.NotFound("channel not found")
		}
		return false, err
	}

	existing, err := s.subRepo.Find(ctx, subscriberID, channelID)
	if err == nil {
		return false, s.subRepo.Delete(ctx, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	sub := &domain.Subscription{ID: uuid.New(), SubscriberID: subscriberID, ChannelID: channelID}
	return true, s.subRepo.Create(ctx, sub)
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.Subscription, error) {
	if _, err := s.userRepo.GetPublicByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("channel not found")
		}
		return nil, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID)
}

func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Subscription, error) {
	if _, err := s.userRepo.GetPublicByID(ctx, subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}
	return s.subRepo.ListSubscribedChannels(ctx, subscriberID)
}
