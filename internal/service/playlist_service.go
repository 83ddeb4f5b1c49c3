package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/gorm"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Playlist, error) {
	playlist := &domain.Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlist.ID)
}

func (s *PlaylistService) Get(ctx context.Context, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("playlist not found")
		}
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	return s.playlistRepo.ListByOwner(ctx, userID)
}

func (s *PlaylistService) AddVideo(ctx context.Context, ownerID, playlistID, videoID uuid.UUID) (*domain.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, ownerID, playlistID, "you are not allowed to modify this playlist"); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("video not found")
		}
		return nil, err
	}

	exists, err := s.playlistRepo.HasVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.BadRequest("video already in playlist")
	}

	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID uuid.UUID) (*domain.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, ownerID, playlistID, "you are not allowed to modify this playlist"); err != nil {
		return nil, err
	}

	exists, err := s.playlistRepo.HasVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.BadRequest("video not in playlist")
	}

	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) Update(ctx context.Context, ownerID, playlistID uuid.UUID, name, description string) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, ownerID, playlistID, "you are not allowed to update this playlist")
	if err != nil {
		return nil, err
	}

	playlist.Name = name
	playlist.Description = description
	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) Delete(ctx context.Context, ownerID, playlistID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, ownerID, playlistID, "you are not allowed to delete this playlist"); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, ownerID, playlistID uuid.UUID, forbiddenMsg string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("playlist not found")
		}
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, domain.Forbidden(forbiddenMsg)
	}
	return playlist, nil
}
