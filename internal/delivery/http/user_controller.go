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

type UserController struct {
	UserUsecase *usecase.UserUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewUserController(userUsecase *usecase.UserUsecase, zap *zap.Logger, koanf *koanf.Koanf) *UserController {
	return &UserController{
		UserUsecase: userUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller UserController) Register(ctx *fiber.Ctx) error {
	var payload model.UserRegisterRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.UserUsecase.Register(ctx, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) Login(ctx *fiber.Ctx) error {
	var payload model.UserLoginRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.UserUsecase.Login(ctx, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) GetUserInfo(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.UserUsecase.GetUserInfo(ctx, userId)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) UpdateProfile(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.UserProfileUpdateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.UserUsecase.UpdateProfile(ctx, userId, payload)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, response)
}

func (controller UserController) DeleteAccount(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.UserUsecase.DeleteAccount(ctx, userId)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller UserController) Logout(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.UserUsecase.Logout(ctx, userId)
	if err != nil {
		return util.SendErrorResponseInternalServer(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller UserController) UpdateAvatar(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.UserUsecase.UpdateAvatar(ctx, userId)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}

func (controller UserController) GetUserAvatar(ctx *fiber.Ctx) error {
	userIdParam := ctx.Params("userId")

	avatarUrl, err := controller.UserUsecase.GetUserAvatarUrl(ctx, userIdParam)
	if err != nil {
		return util.SendDomainError(ctx, controller.Log, err)
	}

	return ctx.Redirect(avatarUrl, fiber.StatusFound)
}
