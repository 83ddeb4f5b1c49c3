package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"gorm.io/gorm"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "id = ?", id).Error
}

func (r *likeRepository) FindForVideo(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND video_id = ?", userID, videoID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) FindForComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND comment_id = ?", userID, commentID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) FindForPost(ctx context.Context, userID, postID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND post_id = ?", userID, postID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.liked_by_id = ?", userID).
		Order("likes.created_at DESC").
		Preload("Owner", ownerFields).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *likeRepository) CountForVideosOwnedBy(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteForVideo(ctx context.Context, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "video_id = ?", videoID).Error
}

func (r *likeRepository) DeleteForComment(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "comment_id = ?", commentID).Error
}

func (r *likeRepository) DeleteForPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "post_id = ?", postID).Error
}
