package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"tyremart/internal/caching"
	"tyremart/internal/common"
	"tyremart/internal/config"
	"tyremart/internal/handlers"
	"tyremart/internal/middleware"
	"tyremart/internal/repositories"
	"tyremart/internal/services"
	"tyremart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Optional file config for mail delivery and the OTP policy
	appConfig := &config.AppConfig{OTP: config.DefaultOTPConfig()}
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		appConfig, err = config.LoadAppConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), services.PatternImageBucket); err != nil {
		log.Printf("WARN: could not ensure pattern image bucket: %v", err)
	}

	// Repositories
	brandRepo := repositories.NewBrandRepository(pool)
	distributorRepo := repositories.NewDistributorRepository(pool)
	subUserRepo := repositories.NewSubUserRepository(pool)
	tyreModelRepo := repositories.NewTyreModelRepository(pool)
	tyrePatternRepo := repositories.NewTyrePatternRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services
	notificationSvc := services.NewNotificationService(appConfig.Mail)
	tokenSvc := services.NewTokenService(jwtSecret)
	otpSvc := services.NewOTPService(distributorRepo, notificationSvc, tokenSvc, cacheSvc, appConfig.OTP)
	identitySvc := services.NewIdentityService(tokenSvc, distributorRepo, subUserRepo)
	subUserSvc := services.NewSubUserService(subUserRepo, tokenSvc)
	distributorSvc := services.NewDistributorService(distributorRepo, cacheSvc)
	catalogSvc := services.NewCatalogService(tyrePatternRepo, distributorRepo, subUserRepo, cacheSvc, minioSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(otpSvc, subUserSvc, tokenSvc)
	distributorHandlers := handlers.NewDistributorHandlers(distributorSvc, subUserSvc)
	brandHandlers := handlers.NewBrandHandlers(brandRepo)
	tyreModelHandlers := handlers.NewTyreModelHandlers(tyreModelRepo)
	patternHandlers := handlers.NewPatternHandlers(catalogSvc)

	// Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	authenticate := middleware.Authenticate(identitySvc)
	requireDistributor := middleware.RequireRole(common.CallerDistributor)

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck(pool))

	v1 := e.Group("/v1")

	// Login flows (no session required)
	v1.POST("/distributor/send-otp", authHandlers.SendOTP)
	v1.POST("/distributor/verify-otp", authHandlers.VerifyOTP)
	v1.POST("/subuser/login", authHandlers.SubUserLogin)
	v1.POST("/auth/refresh", authHandlers.Refresh)

	// Public catalog reads: identity is resolved when a bearer token is
	// supplied so subusers see discounted prices, but anonymous browsing works.
	v1.GET("/patterns", patternHandlers.ListPatterns, authenticate)
	v1.GET("/patterns/:id", patternHandlers.GetPattern, authenticate)
	v1.GET("/brands", brandHandlers.ListBrands)
	v1.GET("/brands/:id", brandHandlers.GetBrand)
	v1.GET("/products", tyreModelHandlers.ListTyreModels)
	v1.GET("/products/:id", tyreModelHandlers.GetTyreModel)

	// Distributor profile
	me := v1.Group("/distributor/me", authenticate, requireDistributor)
	me.GET("", distributorHandlers.Me)
	me.PATCH("", distributorHandlers.UpdateMe)

	// Protected catalog and account management
	protected := v1.Group("", authenticate)

	protected.POST("/brands", brandHandlers.CreateBrand, requireDistributor)
	protected.PUT("/brands/:id", brandHandlers.UpdateBrand, requireDistributor)
	protected.DELETE("/brands/:id", brandHandlers.DeleteBrand, requireDistributor)

	protected.POST("/products", tyreModelHandlers.CreateTyreModel, requireDistributor)
	protected.PUT("/products/:id", tyreModelHandlers.UpdateTyreModel, requireDistributor)
	protected.DELETE("/products/:id", tyreModelHandlers.DeleteTyreModel, requireDistributor)

	protected.POST("/patterns", patternHandlers.CreatePattern, requireDistributor)
	protected.PUT("/patterns/:id", patternHandlers.UpdatePattern, requireDistributor)
	protected.DELETE("/patterns/:id", patternHandlers.DeletePattern, requireDistributor)
	protected.POST("/patterns/:id/image", patternHandlers.UploadImage, requireDistributor)

	protected.GET("/distributors", distributorHandlers.ListDistributors)
	protected.POST("/distributors", distributorHandlers.CreateDistributor)
	protected.GET("/distributors/:id", distributorHandlers.GetDistributor)
	protected.PUT("/distributors/:id", distributorHandlers.UpdateDistributor)
	protected.DELETE("/distributors/:id", distributorHandlers.DeleteDistributor)
	protected.PUT("/distributors/:id/brands", distributorHandlers.AssignBrands)

	// Nested subusers under their distributor
	protected.GET("/distributors/:id/subusers", distributorHandlers.ListSubUsers, requireDistributor)
	protected.POST("/distributors/:id/subusers", distributorHandlers.CreateSubUser, requireDistributor)
	protected.PUT("/distributors/:id/subusers/:subuserId", distributorHandlers.UpdateSubUser, requireDistributor)
	protected.DELETE("/distributors/:id/subusers/:subuserId", distributorHandlers.DeleteSubUser, requireDistributor)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Tyremart server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
