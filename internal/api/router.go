package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/streamhive/streamhive/internal/api/handlers"
	"github.com/streamhive/streamhive/internal/api/middleware"
	"github.com/streamhive/streamhive/internal/config"
	"github.com/streamhive/streamhive/internal/media"
	"github.com/streamhive/streamhive/internal/repository"
	"github.com/streamhive/streamhive/internal/service"
	"go.uber.org/zap"
)

// RouterDeps carries everything the HTTP surface needs. The cache client is
// optional; a nil client disables response caching.
type RouterDeps struct {
	Services *service.Services
	Repos    *repository.Repositories
	Config   *config.Config
	Store    media.Store
	Cache    *redis.Client
	Logger   *zap.Logger
	// StaticDir serves uploaded media when set. Empty when the media store
	// has no local directory to expose.
	StaticDir string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(deps.Config.CORSOrigin))

	r.Get("/healthcheck", handlers.Healthcheck)

	if deps.StaticDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.StaticDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	reject := handlers.Reject(deps.Logger)
	requireAuth := middleware.Auth(deps.Services.Auth, deps.Logger, reject)
	optionalAuth := middleware.OptionalAuth(deps.Services.Auth)
	cache := middleware.Cache(deps.Cache, deps.Config.CacheTTL, deps.Logger)

	userHandler := handlers.NewUserHandler(deps.Services.Auth, deps.Services.User, deps.Store, deps.Config, deps.Logger)
	videoHandler := handlers.NewVideoHandler(deps.Services.Video, deps.Store, deps.Logger)
	commentHandler := handlers.NewCommentHandler(deps.Services.Comment, deps.Logger)
	likeHandler := handlers.NewLikeHandler(deps.Services.Like, deps.Logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(deps.Services.Subscription, deps.Logger)
	playlistHandler := handlers.NewPlaylistHandler(deps.Services.Playlist, deps.Logger)
	communityHandler := handlers.NewCommunityHandler(deps.Services.Community, deps.Logger)
	dashboardHandler := handlers.NewDashboardHandler(deps.Repos, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Post("/refresh-token", userHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", userHandler.Logout)
				r.Post("/change-password", userHandler.ChangePassword)
				r.Get("/current-user", userHandler.CurrentUser)
				r.Patch("/update-account", userHandler.UpdateAccount)
				r.Patch("/avatar", userHandler.UpdateAvatar)
				r.Patch("/cover-image", userHandler.UpdateCoverImage)
				r.Get("/history", userHandler.WatchHistory)
			})

			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/c/{username}", userHandler.ChannelProfile)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(cache).Get("/", videoHandler.List)
			r.With(optionalAuth).Get("/{videoId}", videoHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", videoHandler.Publish)
				r.Patch("/{videoId}", videoHandler.Update)
				r.Delete("/{videoId}", videoHandler.Delete)
				r.Patch("/toggle/publish/{videoId}", videoHandler.TogglePublish)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoId}", commentHandler.ListByVideo)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{videoId}", commentHandler.Add)
				r.Patch("/c/{commentId}", commentHandler.Update)
				r.Delete("/c/{commentId}", commentHandler.Delete)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/toggle/v/{videoId}", likeHandler.ToggleVideo)
			r.Post("/toggle/c/{commentId}", likeHandler.ToggleComment)
			r.Post("/toggle/p/{postId}", likeHandler.TogglePost)
			r.Get("/videos", likeHandler.ListLikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/c/{channelId}", subscriptionHandler.Toggle)
			r.Get("/c/{channelId}", subscriptionHandler.ListSubscribers)
			r.Get("/u/{subscriberId}", subscriptionHandler.ListSubscribedChannels)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Get("/{playlistId}", playlistHandler.Get)
			r.Get("/user/{userId}", playlistHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", playlistHandler.Create)
				r.Patch("/add/{videoId}/{playlistId}", playlistHandler.AddVideo)
				r.Patch("/remove/{videoId}/{playlistId}", playlistHandler.RemoveVideo)
				r.Patch("/{playlistId}", playlistHandler.Update)
				r.Delete("/{playlistId}", playlistHandler.Delete)
			})
		})

		r.Route("/community", func(r chi.Router) {
			r.Get("/user/{userId}", communityHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", communityHandler.Create)
				r.Patch("/{postId}", communityHandler.Update)
				r.Delete("/{postId}", communityHandler.Delete)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/videos", dashboardHandler.Videos)
		})
	})

	return r
}

// Timeouts for the outer http.Server. Uploads can be large so the write
// deadline is generous.
const (
	ReadTimeout  = 30 * time.Second
	WriteTimeout = 2 * time.Minute
	IdleTimeout  = time.Minute
)
