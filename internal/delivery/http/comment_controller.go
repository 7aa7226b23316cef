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

type CommentController struct {
	CommentUsecase *usecase.CommentUsecase
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewCommentController(commentUsecase *usecase.CommentUsecase, zap *zap.Logger, koanf *koanf.Koanf) *CommentController {
	return &CommentController{
		CommentUsecase: commentUsecase,
		Log:            zap,
		Config:         koanf,
	}
}

func (controller CommentController) GetComments(ctx *fiber.Ctx) error {
	articleIdParam := ctx.Params("articleId")

	response, err := controller.CommentUsecase.GetComments(ctx, articleIdParam)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller CommentController) CreateComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)
	articleIdParam := ctx.Params("articleId")

	var payload model.CommentCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.CommentUsecase.CreateComment(ctx, articleIdParam, userId, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller CommentController) UpdateComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)
	commentIdParam := ctx.Params("commentId")

	var payload model.CommentUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.CommentUsecase.UpdateComment(ctx, commentIdParam, userId, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller CommentController) DeleteComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)
	commentIdParam := ctx.Params("commentId")

	response, err := controller.CommentUsecase.DeleteComment(ctx, commentIdParam, userId)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}
