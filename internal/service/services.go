package service

import (
	"github.com/streamhive/streamhive/internal/config"
	"github.com/streamhive/streamhive/internal/media"
	"github.com/streamhive/streamhive/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	Video        *VideoService
	Comment      *CommentService
	Community    *CommunityService
	Playlist     *PlaylistService
	Like         *LikeService
	Subscription *SubscriptionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, store media.Store, logger *zap.Logger) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, cfg),
		User:         NewUserService(repos.User, repos.Video, repos.Subscription),
		Video:        NewVideoService(repos.Video, repos.Comment, repos.Like, repos.User, store, logger),
		Comment:      NewCommentService(repos.Comment, repos.Video, repos.Like),
		Community:    NewCommunityService(repos.Post, repos.User, repos.Like),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video),
		Like:         NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Post),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User),
	}
}
