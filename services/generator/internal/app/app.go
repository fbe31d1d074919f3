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
	"wp-lite/pkg/logger"
	"wp-lite/pkg/middleware"
	generatorHTTP "wp-lite/services/generator/internal/controller/http"
	"wp-lite/services/generator/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "wp-lite/services/generator/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	redisClient *redis.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	generatorUseCase := usecase.NewGeneratorUseCase(usecase.DefaultDependencies(), a.log)
	generatorHandler := generatorHTTP.NewGeneratorHandler(generatorUseCase, a.log)

	r := gin.Default()
	r.Use(middleware.EdgeCORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	functions := r.Group("/functions/v1")
	if a.redisClient != nil {
		functions.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.GenerateRateLimit, a.cfg.RateLimitWindow))
	}
	{
		functions.POST("/generate-blog-content", generatorHandler.GenerateBlogContent)
		functions.POST("/generate-blog-image", generatorHandler.GenerateBlogImage)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Generator service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down generator service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Generator service exited")
	return nil
}
