package domain

import (
	"time"

	"github.com/google/uuid"
)

type CommunityPost struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content   string    `json:"content" gorm:"not null"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Owner     User      `json:"owner" gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
