package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *videoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerFields).
		First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List runs the canonical pipeline: match (filter + case-insensitive
// substring search), join (owner display fields), sort, paginate. The count
// is taken after the match stage so totals reflect the filter.
func (r *videoRepository) List(ctx context.Context, filter repository.VideoFilter, q repository.ListQuery) ([]*domain.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Video{})
	if filter.PublishedOnly {
		base = base.Where("is_published = ?", true)
	}
	if filter.OwnerID != nil {
		base = base.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []*domain.Video
	err := base.
		Preload("Owner", ownerFields).
		Scopes(sortAndPage(q)).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerFields).
		Where("id IN ?", ids).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id).Error
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *videoRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}
