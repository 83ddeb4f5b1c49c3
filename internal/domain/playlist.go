package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	OwnerID     uuid.UUID       `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner       User            `json:"owner" gorm:"foreignKey:OwnerID"`
	Videos      []PlaylistVideo `json:"videos" gorm:"foreignKey:PlaylistID"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PlaylistVideo is a membership row; Position keeps insertion order stable.
type PlaylistVideo struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlaylistID uuid.UUID `json:"playlistId" gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video"`
	VideoID    uuid.UUID `json:"videoId" gorm:"type:uuid;not null;uniqueIndex:idx_playlist_video"`
	Video      Video     `json:"video" gorm:"foreignKey:VideoID"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
}
