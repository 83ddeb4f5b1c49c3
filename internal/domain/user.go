package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string                      `json:"username" gorm:"uniqueIndex;not null"`
	Email        string                      `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string                      `json:"fullName" gorm:"not null"`
	Avatar       string                      `json:"avatar" gorm:"not null"`
	CoverImage   string                      `json:"coverImage"`
	PasswordHash string                      `json:"-" gorm:"not null"`
	RefreshToken *string                     `json:"-"`
	WatchHistory datatypes.JSONSlice[string] `json:"watchHistory"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// ChannelProfile is a user's public channel page: profile fields plus
// subscription counts relative to the viewing user.
type ChannelProfile struct {
	User
	SubscriberCount   int64 `json:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}
