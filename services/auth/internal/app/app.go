package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wp-lite/pkg/cache"
	"wp-lite/pkg/config"
	"wp-lite/pkg/database"
	"wp-lite/pkg/jwt"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/middleware"
	authHTTP "wp-lite/services/auth/internal/controller/http"
	"wp-lite/services/auth/internal/model"
	"wp-lite/services/auth/internal/repo/persistent"
	"wp-lite/services/auth/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "wp-lite/services/auth/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}
	if err := database.MigrateLocal(cfg, db, &model.UserModel{}, &model.ProfileModel{}); err != nil {
		log.Error("Failed to prepare local database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (sign-out will not revoke tokens)", err)
		// Redis is optional for auth service
		redisClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret).WithTTL(cfg.JWTTokenTTL),
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)

	var (
		revoker     usecase.TokenRevoker
		revocations middleware.RevocationChecker
	)
	if a.redisClient != nil {
		store := cache.NewRevocationStore(a.redisClient)
		revoker = store
		revocations = store
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, revoker, a.cfg.ProfileDefaultRole, a.log)
	authHandler := authHTTP.NewAuthHandler(authUseCase, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow))
	}
	{
		api.POST("/signup", authHandler.SignUp)
		api.POST("/signin", authHandler.SignIn)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, revocations))
		{
			protected.GET("/session", authHandler.Session)
			protected.POST("/signout", authHandler.SignOut)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Auth service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down auth service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Auth service exited")
	return nil
}
