package middleware

import (
	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/usecase"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	App         *fiber.App
	Log         *zap.Logger
	Config      *koanf.Koanf
	UserUsecase *usecase.UserUsecase
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf, userUsecase *usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		App:         app,
		Log:         zap,
		Config:      koanf,
		UserUsecase: userUsecase,
	}
}

// ProtectedRoute rejects the request with 401 unless a valid, still cached
// access token is presented. The authenticated user id lands in ctx.Locals.
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		accessToken := ctx.Get("Authorization")
		tokenString, userId, err := util.ValidateAccessToken(accessToken, middleware.Log, middleware.Config.String("JWT_SECRET_KEY"))
		if err != nil {
			return util.SendDomainError(ctx, middleware.Log, err)
		}

		err = middleware.UserUsecase.GetAccessToken(ctx, userId, tokenString)
		if err != nil {
			return util.SendDomainError(ctx, middleware.Log, err)
		}

		ctx.Locals("userId", userId)

		return ctx.Next()
	}
}

// RequireAdmin must run after ProtectedRoute. A known user without the ADMIN
// role gets 403, not 401.
func (middleware *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId := ctx.Locals("userId").(uuid.UUID)

		role, err := middleware.UserUsecase.GetUserRole(ctx, userId)
		if err != nil {
			return util.SendDomainError(ctx, middleware.Log, err)
		}

		if role != model.RoleAdmin {
			return util.SendErrorResponseForbidden(ctx, &model.ForbiddenError{
				Code:    constant.ERR_FORBIDDEN_ERROR_CODE,
				Message: "Admin role is required for this operation",
				Param:   "role",
			})
		}

		return ctx.Next()
	}
}
