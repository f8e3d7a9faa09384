package router

import (
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/postline/backend/internal/cache"
	"github.com/postline/backend/internal/handlers"
	"github.com/postline/backend/internal/middleware"
	"github.com/postline/backend/internal/models"
	"github.com/postline/backend/internal/repositories"
	"github.com/postline/backend/pkg/config"
	"github.com/postline/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// indexCacheTTL is how long a rendered index-feed page stays valid
const indexCacheTTL = 20 * time.Second

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.L.Info("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, cfg *config.Config) {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		logger.L.Fatal("Failed to auto migrate models: " + err.Error())
	}
	logger.L.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	imageRepo := repositories.NewMongoImageRepository(mgClient.Database(cfg.MongoDatabase))

	pageCache := cache.NewPageCache(indexCacheTTL)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.L.Info("Auth routes configured")

	// --- Public read routes (anonymous allowed, identity resolved when present) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))

	// --- Protected routes (require authentication) ---
	protected := e.Group("/api/v1")
	if firebaseAuthClient != nil && cfg.AuthProvider == "firebase" {
		protected.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient, userRepo))
		logger.L.Info("Firebase authentication middleware applied to /api/v1 group")
	} else {
		protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		logger.L.Info("JWT authentication middleware applied to /api/v1 group")
	}

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, groupRepo, followRepo, pageCache)
	feedHandler.RegisterFeedRoutes(public, protected)
	logger.L.Info("Feed routes configured")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo)
	postHandler.RegisterPostRoutes(public, protected)
	logger.L.Info("Post routes configured")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	logger.L.Info("Comment routes configured")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(protected)
	logger.L.Info("Follow routes configured")

	// Group routes
	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterGroupRoutes(public, protected)
	logger.L.Info("Group routes configured")

	// Image routes
	imageHandler := handlers.NewImageHandler(imageRepo)
	imageHandler.RegisterImageRoutes(public, protected)
	logger.L.Info("Image routes configured")

	logger.L.Info("All routes configured")
}
