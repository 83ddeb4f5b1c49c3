package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/media"
	"github.com/streamhive/streamhive/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VideoService struct {
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	store       media.Store
	logger      *zap.Logger
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	store media.Store,
	logger *zap.Logger,
) *VideoService {
	return &VideoService{
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		store:       store,
		logger:      logger.Named("video"),
	}
}

func (s *VideoService) List(ctx context.Context, filter repository.VideoFilter, q repository.ListQuery) ([]*domain.Video, int64, error) {
	return s.videoRepo.List(ctx, filter, q)
}

type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   string
	VideoKey    string
	Thumbnail   string
	ThumbKey    string
}

func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input PublishInput) (*domain.Video, error) {
	video := &domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		VideoFile:   input.VideoFile,
		Thumbnail:   input.Thumbnail,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		// The records are gone but the uploads are not; clean up best-effort.
		s.removeMedia(ctx, input.VideoKey, input.ThumbKey)
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

// Get loads a video, counts the view, and records it in the viewer's watch
// history (most recent first, deduplicated) when a viewer is known.
func (s *VideoService) Get(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("video not found")
		}
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	video.Views++

	if viewerID != nil {
		if err := s.recordWatch(ctx, *viewerID, videoID); err != nil {
			s.logger.Warn("failed to record watch history",
				zap.String("videoId", videoID.String()), zap.Error(err))
		}
	}
	return video, nil
}

func (s *VideoService) recordWatch(ctx context.Context, viewerID, videoID uuid.UUID) error {
	viewer, err := s.userRepo.GetPublicByID(ctx, viewerID)
	if err != nil {
		return err
	}

	id := videoID.String()
	history := make([]string, 0, len(viewer.WatchHistory)+1)
	history = append(history, id)
	for _, prev := range viewer.WatchHistory {
		if prev != id {
			history = append(history, prev)
		}
	}
	return s.userRepo.UpdateWatchHistory(ctx, viewerID, history)
}

type VideoUpdateInput struct {
	Title       string
	Description string
	Thumbnail   *string
	ThumbKey    string
}

func (s *VideoService) Update(ctx context.Context, ownerID, videoID uuid.UUID, input VideoUpdateInput) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, ownerID, videoID, "you are not allowed to update this video")
	if err != nil {
		return nil, err
	}

	oldThumbnail := video.Thumbnail
	video.Title = input.Title
	video.Description = input.Description
	if input.Thumbnail != nil {
		video.Thumbnail = *input.Thumbnail
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	if input.Thumbnail != nil && oldThumbnail != *input.Thumbnail {
		s.removeMedia(ctx, mediaKey(oldThumbnail))
	}
	return s.videoRepo.GetByID(ctx, videoID)
}

func (s *VideoService) Delete(ctx context.Context, ownerID, videoID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, ownerID, videoID, "you are not allowed to delete this video")
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	// Secondary cleanup is not transactional: stray comments, likes, or files
	// are accepted over failing the delete.
	if err := s.commentRepo.DeleteByVideo(ctx, videoID); err != nil {
		s.logger.Warn("failed to delete video comments", zap.String("videoId", videoID.String()), zap.Error(err))
	}
	if err := s.likeRepo.DeleteForVideo(ctx, videoID); err != nil {
		s.logger.Warn("failed to delete video likes", zap.String("videoId", videoID.String()), zap.Error(err))
	}
	s.removeMedia(ctx, mediaKey(video.VideoFile), mediaKey(video.Thumbnail))
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, ownerID, videoID uuid.UUID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, ownerID, videoID, "you are not allowed to toggle publish status of this video")
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, ownerID, videoID uuid.UUID, forbiddenMsg string) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("video not found")
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, domain.Forbidden(forbiddenMsg)
	}
	return video, nil
}

func (s *VideoService) removeMedia(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete media file", zap.String("key", key), zap.Error(err))
		}
	}
}

// mediaKey extracts the storage key from a stored media URL.
func mediaKey(url string) string {
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == '/' {
			return url[i+1:]
		}
	}
	return url
}
