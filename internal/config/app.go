package config

import (
	http "github.com/satriadwi28/kabarproject/internal/delivery/http"
	"github.com/satriadwi28/kabarproject/internal/delivery/http/middleware"
	"github.com/satriadwi28/kabarproject/internal/delivery/http/route"
	"github.com/satriadwi28/kabarproject/internal/repository"
	"github.com/satriadwi28/kabarproject/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
}

func Server(config *ServerConfig) {
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache, config.MinIO)
	categoryRepository := repository.NewCategoryRepository(config.Log, config.DB)
	articleRepository := repository.NewArticleRepository(config.Log, config.DB)
	commentRepository := repository.NewCommentRepository(config.Log, config.DB)

	userUsecase := usecase.NewUserUsecase(userRepository, config.DB, config.Log, config.Config)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepository, config.DB, config.Log, config.Config)
	articleUsecase := usecase.NewArticleUsecase(articleRepository, categoryRepository, config.DB, config.Log, config.Config)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, articleRepository, config.DB, config.Log, config.Config)

	userController := http.NewUserController(userUsecase, config.Log, config.Config)
	categoryController := http.NewCategoryController(categoryUsecase, config.Log, config.Config)
	articleController := http.NewArticleController(articleUsecase, config.Log, config.Config)
	commentController := http.NewCommentController(commentUsecase, config.Log, config.Config)
	proxyController := http.NewProxyController(config.Log)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, userUsecase)

	routeConfig := route.RouteConfig{
		App:                config.Router,
		Log:                config.Log,
		UserController:     userController,
		CategoryController: categoryController,
		ArticleController:  articleController,
		CommentController:  commentController,
		ProxyController:    proxyController,
		AuthMiddleware:     authMiddleware,
	}

	routeConfig.SetupRoute()
}
