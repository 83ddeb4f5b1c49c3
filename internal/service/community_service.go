package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type CommunityService struct {
	postRepo repository.CommunityPostRepository
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
}

func NewCommunityService(postRepo repository.CommunityPostRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository) *CommunityService {
	return &CommunityService{postRepo: postRepo, userRepo: userRepo, likeRepo: likeRepo}
}

func (s *CommunityService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*domain.CommunityPost, error) {
	post := &domain.CommunityPost{
		ID:      uuid.New(),
		Content: content,
		OwnerID: ownerID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *CommunityService) ListByUser(ctx context.Context, userID uuid.UUID, q repository.ListQuery) ([]*domain.CommunityPost, int64, error) {
	if _, err := s.userRepo.GetPublicByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.NotFound("user not found")
		}
		return nil, 0, err
	}
	return s.postRepo.ListByOwner(ctx, userID, q)
}

func (s *CommunityService) Update(ctx context.Context, ownerID, postID uuid.UUID, content string) (*domain.CommunityPost, error) {
	post, err := s.ownedPost(ctx, ownerID, postID, "you are not allowed to update this post")
	if err != nil {
		return nil, err
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) Delete(ctx context.Context, ownerID, postID uuid.UUID) error {
	if _, err := s.ownedPost(ctx, ownerID, postID, "you are not allowed to delete this post"); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	_ = s.likeRepo.DeleteForPost(ctx, postID)
	return nil
}

func (s *CommunityService) ownedPost(ctx context.Context, ownerID, postID uuid.UUID, forbiddenMsg string) (*domain.CommunityPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("post not found")
		}
		return nil, err
	}
	if post.OwnerID != ownerID {
		return nil, domain.Forbidden(forbiddenMsg)
	}
	return post, nil
}
