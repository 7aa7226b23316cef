package setup

import (
	"context"
	"testing"

	"github.com/satriadwi28/kabarproject/internal/delivery/http"
	"github.com/satriadwi28/kabarproject/internal/delivery/http/middleware"
	"github.com/satriadwi28/kabarproject/internal/delivery/http/route"
	"github.com/satriadwi28/kabarproject/internal/repository"
	"github.com/satriadwi28/kabarproject/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupTestApp(t *testing.T, pgURL, redisURL, minioURL string) (*fiber.App, *pgxpool.Pool, *redis.Client, *minio.Client) {
	t.Log("Setting up test application...")

	ctx := context.Background()

	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", pgURL)
	_ = testConfig.Set("REDIS_URL", redisURL)
	_ = testConfig.Set("MINIO_URL", minioURL)
	_ = testConfig.Set("MINIO_HTTP", "http://")
	_ = testConfig.Set("MINIO_BUCKET_NAME", "kabar-test")
	_ = testConfig.Set("JWT_SECRET_KEY", "test-secret-key-for-jwt-token-generation")

	// No SMTP server in the test stack, the welcome email send fails fast
	// and is only logged
	_ = testConfig.Set("SMTP_HOST", "127.0.0.1")
	_ = testConfig.Set("SMTP_PORT", 2525)
	_ = testConfig.Set("SENDER_NAME", "Kabar Test <noreply@kabar.test>")
	_ = testConfig.Set("SENDER_EMAIL", "noreply@kabar.test")
	_ = testConfig.Set("SENDER_PASSWORD", "")

	t.Log("Connecting to test PostgreSQL...")
	dbPool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("failed to connect to test db: %v", err)
	}

	t.Log("Connecting to test Redis...")
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
		DB:   0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to test redis: %v", err)
	}

	t.Log("Connecting to test MinIO...")
	minioClient, err := minio.New(minioURL, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to connect to minio: %v", err)
	}

	bucketName := "kabar-test"
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		t.Fatalf("failed to check minio bucket: %v", err)
	}

	if !exists {
		t.Logf("Creating MinIO bucket: %s", bucketName)
		err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			t.Fatalf("failed to create minio bucket: %v", err)
		}
	} else {
		t.Logf("MinIO bucket already exists: %s", bucketName)
	}

	zapLogger := zap.NewExample()

	userRepository := repository.NewUserRepository(zapLogger, dbPool, redisClient, minioClient)
	categoryRepository := repository.NewCategoryRepository(zapLogger, dbPool)
	articleRepository := repository.NewArticleRepository(zapLogger, dbPool)
	commentRepository := repository.NewCommentRepository(zapLogger, dbPool)

	userUsecase := usecase.NewUserUsecase(userRepository, dbPool, zapLogger, testConfig)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepository, dbPool, zapLogger, testConfig)
	articleUsecase := usecase.NewArticleUsecase(articleRepository, categoryRepository, dbPool, zapLogger, testConfig)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, articleRepository, dbPool, zapLogger, testConfig)

	userController := http.NewUserController(userUsecase, zapLogger, testConfig)
	categoryController := http.NewCategoryController(categoryUsecase, zapLogger, testConfig)
	articleController := http.NewArticleController(articleUsecase, zapLogger, testConfig)
	commentController := http.NewCommentController(commentUsecase, zapLogger, testConfig)
	proxyController := http.NewProxyController(zapLogger)

	authMiddleware := middleware.NewAuthMiddleware(nil, zapLogger, testConfig, userUsecase)

	fiberApp := fiber.New(fiber.Config{
		AppName:               "Kabar Test",
		DisableStartupMessage: true,
		DisableKeepalive:      true,
	})

	routeConfig := route.RouteConfig{
		App:                fiberApp,
		Log:                zapLogger,
		UserController:     userController,
		CategoryController: categoryController,
		ArticleController:  articleController,
		CommentController:  commentController,
		ProxyController:    proxyController,
		AuthMiddleware:     authMiddleware,
	}

	routeConfig.SetupRoute()

	t.Log("Test application setup completed successfully")

	return fiberApp, dbPool, redisClient, minioClient
}
