package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/kafka"
	"catalog-service/logger"
	"catalog-service/middleware"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/services"
	"catalog-service/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := LoadConfig()
	if err != nil {
		logger.Initialize("")
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// --- 1. Infrastructure ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.DBName); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecret := os.Getenv("AWS_SECRET_ACCESS_KEY")

	cfgOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3Region),
	}
	if awsAccessKey != "" || awsSecret != "" {
		cfgOpts = append(cfgOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecret, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(), cfgOpts...)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})
	fileStorage := storage.NewS3Storage(s3Client, cfg.S3Bucket, cfg.S3Region, cfg.S3Endpoint)

	// The broker connection is owned here: constructed once, shared by all
	// request handlers, closed on shutdown.
	producer := kafka.NewProducer(cfg.KafkaBrokers)

	// Optional Redis-backed listing cache
	var redisClient *redis.Client
	var cache *controllers.CacheManager
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Fatal("Failed to parse REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(redisOpts)
		cache = controllers.NewCacheManager(redisClient)
	}

	jwks := middleware.NewJWKSClient(cfg.JWKSURI)

	// --- 2. Dependency injection ---

	categoryRepo := repository.NewCategoryRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	toppingRepo := repository.NewToppingRepository(database.DB)

	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo, fileStorage, producer)
	toppingService := services.NewToppingService(toppingRepo, fileStorage, producer)

	categoryController := controllers.NewCategoryController(categoryService, cache)
	productController := controllers.NewProductController(productService, cache)
	toppingController := controllers.NewToppingController(toppingService)

	// --- 3. HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, jwks, categoryController, productController, toppingController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 4. Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down catalog service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := producer.Close(); err != nil {
		zap.L().Error("Failed to close Kafka producer", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to disconnect from MongoDB", zap.Error(err))
	}

	zap.L().Info("Catalog service stopped gracefully")
}
