package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like records a user liking exactly one of a video, comment, or community
// post. The unused target columns stay NULL.
type Like struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LikedByID uuid.UUID  `json:"likedById" gorm:"type:uuid;not null;index"`
	VideoID   *uuid.UUID `json:"videoId,omitempty" gorm:"type:uuid;index"`
	CommentID *uuid.UUID `json:"commentId,omitempty" gorm:"type:uuid;index"`
	PostID    *uuid.UUID `json:"postId,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt"`
}
