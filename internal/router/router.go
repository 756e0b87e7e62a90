package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/makanlah-app/backend/internal/feed"
	"github.com/makanlah-app/backend/internal/handlers"
	"github.com/makanlah-app/backend/internal/middleware"
	"github.com/makanlah-app/backend/internal/models"
	"github.com/makanlah-app/backend/internal/repositories"
	"github.com/makanlah-app/backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.SavedPost{},
		&models.Follow{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(mongoDatabase))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)

	// --- Services and feed assembly ---
	interactions := services.NewInteractionService(postRepo, userRepo, likeRepo, savedPostRepo, followRepo, commentRepo)
	overlay := feed.NewOverlay(likeRepo, savedPostRepo)
	assembler := feed.NewAssembler(postRepo, userRepo, followRepo, overlay)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// Read routes personalize when a token is present but are served
	// anonymously otherwise.
	read := e.Group("/api/v1")
	read.Use(middleware.OptionalJWTMiddleware())

	// Protected routes require a valid JWT.
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	feedHandler := handlers.NewFeedHandler(assembler)
	feedHandler.RegisterFeedRoutes(read)
	log.Println("Feed routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(read, api)

	likeHandler := handlers.NewLikeHandler(interactions)
	likeHandler.RegisterLikeRoutes(read, api)

	savedPostHandler := handlers.NewSavedPostHandler(interactions)
	savedPostHandler.RegisterSavedPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(interactions)
	commentHandler.RegisterCommentRoutes(read, api)

	followHandler := handlers.NewFollowHandler(interactions)
	followHandler.RegisterFollowRoutes(read, api)

	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterProfileRoutes(read, api)

	log.Println("All routes configured.")
}
