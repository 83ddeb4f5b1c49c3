package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
)

// ListQuery is the shared shape of every paginated list endpoint: a sort
// field already validated against the endpoint's allow-list, a direction,
// and a 1-based page. Repositories translate it to the storage engine's
// native query form in a fixed order: match, join, sort, paginate.
type ListQuery struct {
	Page    int
	Limit   int
	SortBy  string
	SortAsc bool
}

// Offset converts the 1-based page number to a row offset.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TotalPages returns ceil(total / limit).
func (q ListQuery) TotalPages(total int64) int64 {
	if q.Limit <= 0 {
		return 0
	}
	pages := total / int64(q.Limit)
	if total%int64(q.Limit) > 0 {
		pages++
	}
	return pages
}

// VideoFilter is the match stage of the video listing pipeline.
type VideoFilter struct {
	OwnerID       *uuid.UUID
	PublishedOnly bool
	Search        string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetPublicByID loads a user without the password hash and refresh token.
	GetPublicByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdateWatchHistory(ctx context.Context, id uuid.UUID, history []string) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter, q ListQuery) ([]*domain.Video, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID, q ListQuery) ([]*domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByVideo(ctx context.Context, videoID uuid.UUID) error
}

type CommunityPostRepository interface {
	Create(ctx context.Context, post *domain.CommunityPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommunityPost, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]*domain.CommunityPost, int64, error)
	Update(ctx context.Context, post *domain.CommunityPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	HasVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindForVideo(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error)
	FindForComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error)
	FindForPost(ctx context.Context, userID, postID uuid.UUID) (*domain.Like, error)
	ListLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error)
	CountForVideosOwnedBy(ctx context.Context, ownerID uuid.UUID) (int64, error)
	DeleteForVideo(ctx context.Context, videoID uuid.UUID) error
	DeleteForComment(ctx context.Context, commentID uuid.UUID) error
	DeleteForPost(ctx context.Context, postID uuid.UUID) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.Subscription, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Subscription, error)
}

type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Post         CommunityPostRepository
	Playlist     PlaylistRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
}
