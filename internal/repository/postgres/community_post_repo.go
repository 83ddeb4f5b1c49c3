package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type communityPostRepository struct {
	db *gorm.DB
}

func NewCommunityPostRepository(db *gorm.DB) *communityPostRepository {
	return &communityPostRepository{db: db}
}

func (r *communityPostRepository) Create(ctx context.Context, post *domain.CommunityPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *communityPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityPost, error) {
	var post domain.CommunityPost
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerFields).
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *communityPostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, q repository.ListQuery) ([]*domain.CommunityPost, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.CommunityPost{}).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*domain.CommunityPost
	err := base.
		Preload("Owner", ownerFields).
		Scopes(sortAndPage(q)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *communityPostRepository) Update(ctx context.Context, post *domain.CommunityPost) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(post).Error
}

func (r *communityPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CommunityPost{}, "id = ?", id).Error
}
