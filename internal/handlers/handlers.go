package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"barangayconnect/api/internal/config"
	"barangayconnect/api/internal/federation"
	"barangayconnect/api/internal/middleware"
	"barangayconnect/api/internal/models"
	"barangayconnect/api/internal/payments"
	"barangayconnect/api/internal/repository"
	"barangayconnect/api/internal/service"
	"barangayconnect/api/internal/storage"
)

type HandlerSet struct {
	log   zerolog.Logger
	cfg   *config.AppConfig
	db    *mongo.Database
	cache *redis.Client
	store *storage.ObjectStore

	authService    *service.AuthService
	paymentService *service.PaymentService
	assistService  *service.AssistService

	users         repository.UserStore
	sessions      repository.SessionStore
	payments      repository.PaymentStore
	receipts      repository.ReceiptStore
	announcements repository.AnnouncementStore
	documents     repository.DocumentStore
	events        repository.EventStore
	discussions   repository.DiscussionStore
	notifications repository.NotificationStore
}

func NewHandlerSet(log zerolog.Logger, db *mongo.Database, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	users := repository.NewUserStore(db)
	sessions := repository.NewSessionStore(db)
	paymentStore := repository.NewPaymentStore(db)
	receipts := repository.NewReceiptStore(db)
	announcements := repository.NewAnnouncementStore(db)
	documents := repository.NewDocumentStore(db)
	events := repository.NewEventStore(db)
	discussions := repository.NewDiscussionStore(db)
	notifications := repository.NewNotificationStore(db)

	auth := service.NewAuthService(users, sessions, federation.NewClient(), cfg, log)
	payment := service.NewPaymentService(paymentStore, notifications, payments.NewStripeProvider(cfg.Payments), cfg, log)
	assist := service.NewAssistService(cfg.Assist)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		db:             db,
		cache:          cache,
		store:          store,
		authService:    auth,
		paymentService: payment,
		assistService:  assist,
		users:          users,
		sessions:       sessions,
		payments:       paymentStore,
		receipts:       receipts,
		announcements:  announcements,
		documents:      documents,
		events:         events,
		discussions:    discussions,
		notifications:  notifications,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)
	auth.POST("/google/callback", h.GoogleCallback)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", middleware.Auth(h.authService), h.Me)

	// Webhook is called by the payment provider, not by a logged-in user;
	// the payload signature is its authentication.
	router.POST("/webhook/stripe", h.StripeWebhook)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.authService))
	{
		protected.PUT("/users/profile", h.UpdateProfile)

		protected.POST("/payments/create", h.CreatePayment)
		protected.GET("/payments", h.ListPayments)
		protected.GET("/payments/:paymentId", h.GetPayment)

		protected.POST("/receipts/upload", h.UploadReceipt)
		protected.GET("/receipts", h.ListReceipts)

		protected.GET("/announcements", h.ListAnnouncements)
		protected.GET("/documents", h.ListDocuments)
		protected.GET("/events", h.ListEvents)
		protected.POST("/events/:eventId/attend", h.AttendEvent)

		protected.POST("/discussions", h.CreateDiscussion)
		protected.GET("/discussions", h.ListDiscussions)
		protected.POST("/discussions/:discussionId/reply", h.ReplyToDiscussion)

		protected.GET("/notifications", h.ListNotifications)
		protected.PUT("/notifications/:notificationId/read", h.MarkNotificationRead)
	}

	board := router.Group("")
	board.Use(
		middleware.Auth(h.authService),
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleBoardMember),
	)
	{
		board.POST("/announcements", h.CreateAnnouncement)
		board.POST("/announcements/ai-draft", h.DraftAnnouncement)
		board.POST("/documents", h.UploadDocument)
		board.POST("/events", h.CreateEvent)
	}

	admin := router.Group("/admin")
	admin.Use(
		middleware.Auth(h.authService),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	{
		admin.GET("/users", h.AdminListUsers)
		admin.GET("/analytics", h.AdminAnalytics)
	}
}
