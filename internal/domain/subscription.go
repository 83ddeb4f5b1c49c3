package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_channel"`
	Subscriber   User      `json:"subscriber" gorm:"foreignKey:SubscriberID"`
	ChannelID    uuid.UUID `json:"channelId" gorm:"type:uuid;not null;uniqueIndex:idx_sub_channel"`
	Channel      User      `json:"channel" gorm:"foreignKey:ChannelID"`
	CreatedAt    time.Time `json:"createdAt"`
}
