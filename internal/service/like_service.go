package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	postRepo    repository.CommunityPostRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.CommunityPostRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ToggleVideo likes the video for the user, or removes an existing like.
// It reports whether the video is liked after the call.
func (s *LikeService) ToggleVideo(ctx context.Context, userID, videoID uuid.UUID) (bool, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.NotFound("video not found")
		}
		return false, err
	}

	existing, err := s.likeRepo.FindForVideo(ctx, userID, videoID)
	if err == nil {
		return false, s.likeRepo.Delete(ctx, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &domain.Like{ID: uuid.New(), LikedByID: userID, VideoID: &videoID}
	return true, s.likeRepo.Create(ctx, like)
}

func (s *LikeService) ToggleComment(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.NotFound("comment not found")
		}
		return false, err
	}

	existing, err := s.likeRepo.FindForComment(ctx, userID, commentID)
	if err == nil {
		return false, s.likeRepo.Delete(ctx, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &domain.Like{ID: uuid.New(), LikedByID: userID, CommentID: &commentID}
	return true, s.likeRepo.Create(ctx, like)
}

func (s *LikeService) TogglePost(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.NotFound("post not found")
		}
		return false, err
	}

	existing, err := s.likeRepo.FindForPost(ctx, userID, postID)
	if err == nil {
		return false, s.likeRepo.Delete(ctx, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &domain.Like{ID: uuid.New(), LikedByID: userID, PostID: &postID}
	return true, s.likeRepo.Create(ctx, like)
}

func (s *LikeService) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	return s.likeRepo.ListLikedVideos(ctx, userID)
}
