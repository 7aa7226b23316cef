package route

import (
	"github.com/satriadwi28/kabarproject/internal/delivery/http"
	"github.com/satriadwi28/kabarproject/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App                *fiber.App
	Log                *zap.Logger
	AuthMiddleware     *middleware.AuthMiddleware
	UserController     *http.UserController
	CategoryController *http.CategoryController
	ArticleController  *http.ArticleController
	CommentController  *http.CommentController
	ProxyController    *http.ProxyController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := api.Group("/auth", middleware.SetupAuthRateLimiter(c.Log))
	authGroup.Post("/register", c.UserController.Register)
	authGroup.Post("/login", c.UserController.Login)

	// Avatar reads are public (author avatars are dereferenced from comment
	// and article payloads without a session), the rest of the user surface
	// needs auth, so middleware is registered per route
	userGroup := api.Group("/users")
	userGroup.Get("/me", c.AuthMiddleware.ProtectedRoute(), c.UserController.GetUserInfo)
	userGroup.Patch("/me", c.AuthMiddleware.ProtectedRoute(), c.UserController.UpdateProfile)
	userGroup.Delete("/me", c.AuthMiddleware.ProtectedRoute(), c.UserController.DeleteAccount)
	userGroup.Post("/logout", c.AuthMiddleware.ProtectedRoute(), c.UserController.Logout)
	userGroup.Put("/me/avatar", c.AuthMiddleware.ProtectedRoute(), c.UserController.UpdateAvatar)
	userGroup.Get("/:userId/avatar", c.UserController.GetUserAvatar)

	// Reads are public, writes need auth, so the article and category groups
	// register middleware per route instead of on the prefix
	api.Get("/categories", c.CategoryController.GetCategories)
	api.Post("/categories", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.RequireAdmin(), c.CategoryController.CreateCategory)

	api.Get("/articles", c.ArticleController.GetArticles)
	api.Post("/articles", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.RequireAdmin(), c.ArticleController.CreateArticle)
	api.Get("/articles/:articleId", c.ArticleController.GetArticle)
	api.Put("/articles/:articleId", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.RequireAdmin(), c.ArticleController.UpdateArticle)
	api.Delete("/articles/:articleId", c.AuthMiddleware.ProtectedRoute(), c.AuthMiddleware.RequireAdmin(), c.ArticleController.DeleteArticle)

	api.Get("/articles/:articleId/comments", c.CommentController.GetComments)
	api.Post("/articles/:articleId/comments", c.AuthMiddleware.ProtectedRoute(), c.CommentController.CreateComment)
	api.Patch("/comments/:commentId", c.AuthMiddleware.ProtectedRoute(), c.CommentController.UpdateComment)
	api.Delete("/comments/:commentId", c.AuthMiddleware.ProtectedRoute(), c.CommentController.DeleteComment)

	api.Get("/proxy-image", c.ProxyController.ProxyImage)
}
