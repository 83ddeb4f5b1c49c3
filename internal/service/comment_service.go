package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	likeRepo    repository.LikeRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, likeRepo repository.LikeRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID uuid.UUID, q repository.ListQuery) ([]*domain.Comment, int64, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.NotFound("video not found")
		}
		return nil, 0, err
	}
	return s.commentRepo.ListByVideo(ctx, videoID, q)
}

func (s *CommentService) Add(ctx context.Context, ownerID, videoID uuid.UUID, content string) (*domain.Comment, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("video not found")
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		Content: content,
		VideoID: videoID,
		OwnerID: ownerID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) Update(ctx context.Context, ownerID, commentID uuid.UUID, content string) (*domain.Comment, error) {
	comment, err := s.ownedComment(ctx, ownerID, commentID, "you are not allowed to update this comment")
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, ownerID, commentID uuid.UUID) error {
	if _, err := s.ownedComment(ctx, ownerID, commentID, "you are not allowed to delete this comment"); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	// Orphaned likes are removed best-effort after the comment is gone.
	_ = s.likeRepo.DeleteForComment(ctx, commentID)
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, ownerID, commentID uuid.UUID, forbiddenMsg string) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("comment not found")
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, domain.Forbidden(forbiddenMsg)
	}
	return comment, nil
}
