package http

import (
	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/usecase"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type CategoryController struct {
	CategoryUsecase *usecase.CategoryUsecase
	Log             *zap.Logger
	Config          *koanf.Koanf
}

func NewCategoryController(categoryUsecase *usecase.CategoryUsecase, zap *zap.Logger, koanf *koanf.Koanf) *CategoryController {
	return &CategoryController{
		CategoryUsecase: categoryUsecase,
		Log:             zap,
		Config:          koanf,
	}
}

func (controller CategoryController) GetCategories(ctx *fiber.Ctx) error {
	response, err := controller.CategoryUsecase.GetCategories(ctx)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller CategoryController) CreateCategory(ctx *fiber.Ctx) error {
	var payload model.CategoryCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.CategoryUsecase.CreateCategory(ctx, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
