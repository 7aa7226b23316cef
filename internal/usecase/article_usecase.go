package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/repository"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type ArticleUsecase struct {
	ArticleRepository  *repository.ArticleRepository
	CategoryRepository *repository.CategoryRepository
	DB                 *pgxpool.Pool
	Log                *zap.Logger
	Config             *koanf.Koanf
}

func NewArticleUsecase(articleRepository *repository.ArticleRepository, categoryRepository *repository.CategoryRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *ArticleUsecase {
	return &ArticleUsecase{
		ArticleRepository:  articleRepository,
		CategoryRepository: categoryRepository,
		DB:                 db,
		Log:                zap,
		Config:             koanf,
	}
}

func (usecase *ArticleUsecase) validateArticlePayload(title string, content string, categoryIdParam string) (uuid.UUID, error) {
	if title == "" {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Title is required to not be empty",
			Param:   "title",
		}
	} else if len([]rune(title)) < constant.MIN_TITLE_LENGTH {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Title must be at least %d characters", constant.MIN_TITLE_LENGTH),
			Param:   "title",
		}
	} else if len(title) > 255 {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Title must be at most 255 characters",
			Param:   "title",
		}
	}

	if content == "" {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content is required to not be empty",
			Param:   "content",
		}
	} else if len([]rune(content)) < constant.MIN_CONTENT_LENGTH {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Content must be at least %d characters", constant.MIN_CONTENT_LENGTH),
			Param:   "content",
		}
	}

	categoryId, err := uuid.Parse(categoryIdParam)
	if err != nil {
		return uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid category id",
			Param:   "categoryId",
		}
	}

	return categoryId, nil
}

func (usecase *ArticleUsecase) GetArticles(ctx *fiber.Ctx) ([]model.ArticleResponse, error) {
	ctxContext := ctx.Context()

	limit := constant.DEFAULT_LIMIT
	limitParam := ctx.Query("limit")
	if limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			return nil, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Limit must be a positive number",
				Param:   "limit",
			}
		} else if parsed > constant.MAX_LIMIT {
			return nil, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: fmt.Sprintf("Limit is exceeded max limit: %d", constant.MAX_LIMIT),
				Param:   "limit",
			}
		}
		limit = parsed
	}

	var categoryId *uuid.UUID
	categorySlug := ctx.Query("category")
	if categorySlug != "" {
		category, err := usecase.CategoryRepository.GetCategoryBySlug(ctxContext, categorySlug)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Unknown category filter matches nothing
				return []model.ArticleResponse{}, nil
			}
			return nil, err
		}
		categoryId = &category.Id
	}

	publishedOnly := ctx.Query("published", "true") != "false"

	articles, err := usecase.ArticleRepository.GetArticles(ctxContext, categoryId, publishedOnly, limit)
	if err != nil {
		return nil, err
	}

	for i := range articles {
		usecase.resolveAuthorAvatarUrl(&articles[i])
	}

	return articles, nil
}

func (usecase *ArticleUsecase) GetArticle(ctx *fiber.Ctx, articleIdParam string) (model.ArticleResponse, error) {
	response := model.ArticleResponse{}

	articleId, err := uuid.Parse(articleIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid article id",
			Param:   "articleId",
		}
	}

	response, err = usecase.ArticleRepository.GetArticle(ctx.Context(), articleId)
	if err != nil {
		return response, err
	}

	usecase.resolveAuthorAvatarUrl(&response)

	return response, nil
}

func (usecase *ArticleUsecase) CreateArticle(ctx *fiber.Ctx, userId uuid.UUID, payload model.ArticleCreateRequest) (model.ArticleResponse, error) {
	ctxContext := ctx.Context()
	response := model.ArticleResponse{}

	payload.Title = strings.TrimSpace(payload.Title)
	payload.Content = strings.TrimSpace(payload.Content)

	categoryId, err := usecase.validateArticlePayload(payload.Title, payload.Content, payload.CategoryId)
	if err != nil {
		return response, err
	}

	exists, err := usecase.CategoryRepository.CheckCategoryExists(ctxContext, categoryId)
	if err != nil {
		return response, err
	}

	if exists != 1 {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Category not found",
			Param:   "categoryId",
		}
	}

	published := true
	if payload.Published != nil {
		published = *payload.Published
	}

	now := time.Now().UTC()
	articleId := uuid.New()

	article := model.Article{
		Id:             articleId,
		Title:          payload.Title,
		Slug:           fmt.Sprintf("%s-%s", util.Slugify(payload.Title), articleId.String()[:8]),
		Excerpt:        payload.Excerpt,
		Content:        payload.Content,
		CoverImageUrl:  payload.CoverImageUrl,
		Published:      published,
		AuthorId:       userId,
		CategoryId:     categoryId,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.ArticleRepository.CreateArticle(ctxContext, article)
	if err != nil {
		return response, err
	}

	return usecase.GetArticle(ctx, articleId.String())
}

func (usecase *ArticleUsecase) UpdateArticle(ctx *fiber.Ctx, articleIdParam string, payload model.ArticleUpdateRequest) (model.ArticleResponse, error) {
	ctxContext := ctx.Context()
	response := model.ArticleResponse{}

	articleId, err := uuid.Parse(articleIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid article id",
			Param:   "articleId",
		}
	}

	payload.Title = strings.TrimSpace(payload.Title)
	payload.Content = strings.TrimSpace(payload.Content)

	categoryId, err := usecase.validateArticlePayload(payload.Title, payload.Content, payload.CategoryId)
	if err != nil {
		return response, err
	}

	article, err := usecase.ArticleRepository.GetArticleRecord(ctxContext, articleId)
	if err != nil {
		return response, err
	}

	exists, err := usecase.CategoryRepository.CheckCategoryExists(ctxContext, categoryId)
	if err != nil {
		return response, err
	}

	if exists != 1 {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Category not found",
			Param:   "categoryId",
		}
	}

	if payload.Title != article.Title {
		article.Slug = fmt.Sprintf("%s-%s", util.Slugify(payload.Title), articleId.String()[:8])
	}

	article.Title = payload.Title
	article.Excerpt = payload.Excerpt
	article.Content = payload.Content
	article.CoverImageUrl = payload.CoverImageUrl
	article.CategoryId = categoryId
	article.UpdateDatetime = time.Now().UTC()

	if payload.Published != nil {
		article.Published = *payload.Published
	}

	err = usecase.ArticleRepository.UpdateArticle(ctxContext, article)
	if err != nil {
		return response, err
	}

	return usecase.GetArticle(ctx, articleId.String())
}

func (usecase *ArticleUsecase) DeleteArticle(ctx *fiber.Ctx, articleIdParam string) error {
	ctxContext := ctx.Context()

	articleId, err := uuid.Parse(articleIdParam)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid article id",
			Param:   "articleId",
		}
	}

	exists, err := usecase.ArticleRepository.CheckArticleExists(ctxContext, articleId)
	if err != nil {
		return err
	}

	if exists != 1 {
		return &model.NotFoundError{
			Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
			Message: "Article not found",
			Param:   "articleId",
		}
	}

	// Comments cascade from the article row
	return usecase.ArticleRepository.DeleteArticle(ctxContext, articleId)
}

func (usecase *ArticleUsecase) resolveAuthorAvatarUrl(article *model.ArticleResponse) {
	if article.Author.AvatarUrl == nil {
		return
	}

	MINIO_URL := usecase.Config.String("MINIO_URL")
	MINIO_BUCKET_NAME := usecase.Config.String("MINIO_BUCKET_NAME")
	MINIO_HTTP := usecase.Config.String("MINIO_HTTP")

	*article.Author.AvatarUrl = fmt.Sprintf("%s%s/%s/%s", MINIO_HTTP, MINIO_URL, MINIO_BUCKET_NAME, *article.Author.AvatarUrl)
}
