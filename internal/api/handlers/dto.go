package handlers

import (
	"time"

	"github.com/streamhive/streamhive/internal/domain"
)

// ownerDTO is the joined owner projection every list item carries: display
// fields only. A missing owner renders as the zero value.
type ownerDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func toOwnerDTO(u domain.User) ownerDTO {
	return ownerDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

type videoDTO struct {
	ID          string    `json:"id"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	Owner       ownerDTO  `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toVideoDTO(v *domain.Video) videoDTO {
	return videoDTO{
		ID:          v.ID.String(),
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		Owner:       toOwnerDTO(v.Owner),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toVideoDTOs(videos []*domain.Video) []videoDTO {
	out := make([]videoDTO, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoDTO(v))
	}
	return out
}

type commentDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	VideoID   string    `json:"videoId"`
	Owner     ownerDTO  `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentDTO(c *domain.Comment) commentDTO {
	return commentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		VideoID:   c.VideoID.String(),
		Owner:     toOwnerDTO(c.Owner),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type postDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Owner     ownerDTO  `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostDTO(p *domain.CommunityPost) postDTO {
	return postDTO{
		ID:        p.ID.String(),
		Content:   p.Content,
		Owner:     toOwnerDTO(p.Owner),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type playlistDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     string     `json:"ownerId"`
	Videos      []videoDTO `json:"videos"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toPlaylistDTO(p *domain.Playlist) playlistDTO {
	videos := make([]videoDTO, 0, len(p.Videos))
	for i := range p.Videos {
		videos = append(videos, toVideoDTO(&p.Videos[i].Video))
	}
	return playlistDTO{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
