package postgres

import (
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Video{},
		&domain.Comment{},
		&domain.CommunityPost{},
		&domain.Playlist{},
		&domain.PlaylistVideo{},
		&domain.Like{},
		&domain.Subscription{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Video:        NewVideoRepository(db),
		Comment:      NewCommentRepository(db),
		Post:         NewCommunityPostRepository(db),
		Playlist:     NewPlaylistRepository(db),
		Like:         NewLikeRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
