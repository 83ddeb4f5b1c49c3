package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerFields).
		First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, q repository.ListQuery) ([]*domain.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("video_id = ?", videoID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*domain.Comment
	err := base.
		Preload("Owner", ownerFields).
		Scopes(sortAndPage(q)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id).Error
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, "video_id = ?", videoID).Error
}
