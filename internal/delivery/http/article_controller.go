package http

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

type ArticleController struct {
	ArticleUsecase *usecase.ArticleUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewArticleController(articleUsecase *usecase.ArticleUsecase, zap *zap.Logger, koanf *koanf.Koanf) *ArticleController {
	return &ArticleController{
		ArticleUsecase: articleUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller ArticleController) GetArticles(ctx *fiber.Ctx) error {
	response, err := controller.ArticleUsecase.GetArticles(ctx)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ArticleController) GetArticle(ctx *fiber.Ctx) error {
	articleIdParam := ctx.Params("articleId")

	response, err := controller.ArticleUsecase.GetArticle(ctx, articleIdParam)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ArticleController) CreateArticle(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.ArticleCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.ArticleUsecase.CreateArticle(ctx, userId, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ArticleController) UpdateArticle(ctx *fiber.Ctx) error {
	articleIdParam := ctx.Params("articleId")

	var payload model.ArticleUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.ArticleUsecase.UpdateArticle(ctx, articleIdParam, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller ArticleController) DeleteArticle(ctx *fiber.Ctx) error {
	articleIdParam := ctx.Params("articleId")

	err := controller.ArticleUsecase.DeleteArticle(ctx, articleIdParam)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
