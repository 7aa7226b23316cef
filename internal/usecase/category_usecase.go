package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/repository"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type CategoryUsecase struct {
	CategoryRepository *repository.CategoryRepository
	DB                 *pgxpool.Pool
	Log                *zap.Logger
	Config             *koanf.Koanf
}

func NewCategoryUsecase(categoryRepository *repository.CategoryRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *CategoryUsecase {
	return &CategoryUsecase{
		CategoryRepository: categoryRepository,
		DB:                 db,
		Log:                zap,
		Config:             koanf,
	}
}

func (usecase *CategoryUsecase) GetCategories(ctx *fiber.Ctx) ([]model.CategoryResponse, error) {
	return usecase.CategoryRepository.GetCategories(ctx.Context())
}

func (usecase *CategoryUsecase) CreateCategory(ctx *fiber.Ctx, payload model.CategoryCreateRequest) (model.CategoryResponse, error) {
	ctxContext := ctx.Context()
	response := model.CategoryResponse{}

	name := strings.TrimSpace(payload.Name)

	if name == "" {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name is required to not be empty",
			Param:   "name",
		}
	} else if len([]rune(name)) < constant.MIN_NAME_LENGTH {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Name must be at least %d characters", constant.MIN_NAME_LENGTH),
			Param:   "name",
		}
	} else if len(name) > 100 {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name must be at most 100 characters",
			Param:   "name",
		}
	}

	exists, err := usecase.CategoryRepository.CheckNameUnique(ctxContext, name)
	if err != nil {
		return response, err
	}

	if exists == 1 {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Category already exists",
			Param:   "name",
		}
	}

	now := time.Now().UTC()

	category := model.Category{
		Id:             uuid.New(),
		Name:           name,
		Slug:           util.Slugify(name),
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.CategoryRepository.CreateCategory(ctxContext, category)
	if err != nil {
		return response, err
	}

	return model.CategoryResponse{
		Id:             category.Id,
		Name:           category.Name,
		Slug:           category.Slug,
		CreateDatetime: category.CreateDatetime,
		UpdateDatetime: category.UpdateDatetime,
	}, nil
}
