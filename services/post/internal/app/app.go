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
	"wp-lite/pkg/s3"
	postHTTP "wp-lite/services/post/internal/controller/http"
	"wp-lite/services/post/internal/model"
	"wp-lite/services/post/internal/repo/persistent"
	"wp-lite/services/post/internal/usecase"
	"wp-lite/services/post/internal/webapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "wp-lite/services/post/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
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
	if err := database.MigrateLocal(cfg, db, &model.PostModel{}, &model.ProfileModel{}); err != nil {
		log.Error("Failed to prepare local database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting and generation locks disabled)", err)
		redisClient = nil
	}

	var s3Client *s3.Client
	if creds := cfg.Storage(); creds.Complete() {
		s3Client, err = s3.NewClient(creds)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Client.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure bucket %s: %v", creds.Bucket, err)
		}
		cancel()
	} else {
		log.Warn("S3 credentials not configured, image uploads are disabled")
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret).WithTTL(cfg.JWTTokenTTL),
	}, nil
}

func (a *App) Run() error {
	postRepo := persistent.NewPostRepository(a.db)
	profileRepo := persistent.NewProfileRepository(a.db)

	var (
		storage     usecase.ImageStorage
		locker      usecase.Locker
		revocations middleware.RevocationChecker
	)
	if a.s3Client != nil {
		storage = a.s3Client
	}
	if a.redisClient != nil {
		locker = cache.NewLocker(a.redisClient, a.cfg.GenerationLockTTL)
		revocations = cache.NewRevocationStore(a.redisClient)
	}

	postUseCase := usecase.NewPostUseCase(postRepo, profileRepo, a.log)
	editorUseCase := usecase.NewEditorUseCase(storage, webapi.NewGeneratorClient(a.cfg.GeneratorServiceURL), locker, a.log)
	blogUseCase := usecase.NewBlogUseCase(postRepo, a.log)

	postHandler := postHTTP.NewPostHandler(postUseCase, a.log)
	editorHandler := postHTTP.NewEditorHandler(editorUseCase, a.log)
	blogHandler := postHTTP.NewBlogHandler(blogUseCase, a.log)

	r := gin.Default()
	r.MaxMultipartMemory = usecase.MaxImageSize + 1<<20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	// sessions resolve first so the limiter can key by user
	api.Use(middleware.ResolveSession(a.jwtService, revocations))
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow))
	}
	{
		api.GET("/blog/posts", blogHandler.ListPosts)
		api.GET("/blog/posts/:slug", blogHandler.GetPost)
		api.GET("/seo", blogHandler.PageSEO)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireSession())
		{
			admin.GET("/dashboard", postHandler.Dashboard)
			admin.GET("/posts", postHandler.ListPosts)
			admin.POST("/posts", postHandler.CreatePost)
			admin.POST("/posts/sample", postHandler.CreateSamplePost)
			admin.GET("/posts/:id", postHandler.GetPost)
			admin.PUT("/posts/:id", postHandler.UpdatePost)
			admin.PATCH("/posts/:id/status", postHandler.ToggleStatus)
			admin.DELETE("/posts/:id", postHandler.DeletePost)
			admin.POST("/uploads", editorHandler.UploadImage)

			generate := admin.Group("/generate")
			if a.redisClient != nil {
				generate.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.GenerateRateLimit, a.cfg.RateLimitWindow))
			}
			generate.POST("/content", editorHandler.GenerateContent)
			generate.POST("/image", editorHandler.GenerateImage)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Post service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down post service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

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

	a.log.Info("Post service exited")
	return nil
}
