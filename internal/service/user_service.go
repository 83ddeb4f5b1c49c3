package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
}

func NewUserService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, videoRepo: videoRepo, subRepo: subRepo}
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (*domain.User, error) {
	if err := s.userRepo.UpdateAccount(ctx, userID, fullName, strings.TrimSpace(email)); err != nil {
		return nil, err
	}
	return s.userRepo.GetPublicByID(ctx, userID)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (*domain.User, error) {
	if err := s.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.userRepo.GetPublicByID(ctx, userID)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (*domain.User, error) {
	if err := s.userRepo.UpdateCoverImage(ctx, userID, url); err != nil {
		return nil, err
	}
	return s.userRepo.GetPublicByID(ctx, userID)
}

// GetChannelProfile resolves a channel page by username: the public profile
// plus subscriber counts, and whether the viewer subscribes to it.
func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewerID *uuid.UUID) (*domain.ChannelProfile, error) {
	channel, err := s.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("channel does not exist")
		}
		return nil, err
	}

	subscriberCount, err := s.subRepo.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountSubscriptions(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != nil {
		if _, err := s.subRepo.Find(ctx, *viewerID, channel.ID); err == nil {
			isSubscribed = true
		}
	}

	channel.PasswordHash = ""
	channel.RefreshToken = nil
	return &domain.ChannelProfile{
		User:              *channel,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// GetWatchHistory resolves the user's watch history ids to videos, keeping
// the stored most-recent-first order.
func (s *UserService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	user, err := s.userRepo.GetPublicByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.ListByIDs(ctx, user.WatchHistory)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID.String()] = v
	}

	ordered := make([]*domain.Video, 0, len(videos))
	for _, id := range user.WatchHistory {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}
