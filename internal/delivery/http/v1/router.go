package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/config"
	"meup-backend/internal/cloudsync"
	"meup-backend/internal/delivery/http/middleware"
	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/internal/events"
	"meup-backend/internal/kv"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	JobUC        domain.JobUsecase
	OfferUC      domain.OfferUsecase
	AssignmentUC domain.AssignmentUsecase
	ChatUC       domain.ChatUsecase
	RatingUC     domain.RatingUsecase
	AdminUC      domain.AdminUsecase
	Store        domain.Store
	SyncManager  *cloudsync.Manager
	Slots        kv.SlotStore
	Bus          *events.Bus
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", gin.H{
			"last_update": deps.Store.LastUpdate(),
			"sync_room":   deps.SyncManager.Room(),
			"subscribers": deps.Bus.SubscriberCount(),
		})
	})

	// Public routes
	NewAuthHandler(v1, deps.AuthUC)
	NewKVHandler(v1, deps.Slots)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.AuthUC))
	{
		NewAuthMeHandler(protected, deps.AuthUC)
		NewJobHandler(protected, deps.JobUC)
		NewOfferHandler(protected, deps.OfferUC)
		NewAssignmentHandler(protected, deps.AssignmentUC)
		NewChatHandler(protected, deps.ChatUC)
		NewRatingHandler(protected, deps.RatingUC)
		NewSyncHandler(protected, deps.SyncManager, deps.Store)
		NewEventsHandler(protected, deps.Bus)
	}

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.AuthUC))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		NewAdminHandler(admin, deps.AdminUC)
	}

	return r
}
