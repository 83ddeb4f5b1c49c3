package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"gorm.io/gorm"
)

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *playlistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.db.WithContext(ctx).
		Preload("Owner", ownerFields).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Videos.Video").
		Preload("Videos.Video.Owner", ownerFields).
		First(&playlist, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	var playlists []*domain.Playlist
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Videos.Video").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Omit("Owner", "Videos").Save(playlist).Error
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.PlaylistVideo{}, "playlist_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Playlist{}, "id = ?", id).Error
	})
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		err := tx.Model(&domain.PlaylistVideo{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error
		if err != nil {
			return err
		}
		entry := &domain.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   maxPos + 1,
		}
		return tx.Create(entry).Error
	})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.PlaylistVideo{}, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
}

func (r *playlistRepository) HasVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}
