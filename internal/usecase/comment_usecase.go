package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type CommentUsecase struct {
	CommentRepository *repository.CommentRepository
	ArticleRepository *repository.ArticleRepository
	DB                *pgxpool.Pool
	Log               *zap.Logger
	Config            *koanf.Koanf
}

func NewCommentUsecase(commentRepository *repository.CommentRepository, articleRepository *repository.ArticleRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *CommentUsecase {
	return &CommentUsecase{
		CommentRepository: commentRepository,
		ArticleRepository: articleRepository,
		DB:                db,
		Log:               zap,
		Config:            koanf,
	}
}

// validateCommentContent trims the content and checks the length bounds
// against the trimmed value.
func validateCommentContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Content is required to not be empty",
			Param:   "content",
		}
	} else if len([]rune(trimmed)) > constant.MAX_COMMENT_LENGTH {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Content must be at most %d characters", constant.MAX_COMMENT_LENGTH),
			Param:   "content",
		}
	}

	return trimmed, nil
}

func (usecase *CommentUsecase) GetComments(ctx *fiber.Ctx, articleIdParam string) ([]model.CommentResponse, error) {
	articleId, err := uuid.Parse(articleIdParam)
	if err != nil {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid article id",
			Param:   "articleId",
		}
	}

	ctxContext := ctx.Context()

	exists, err := usecase.ArticleRepository.CheckArticleExists(ctxContext, articleId)
	if err != nil {
		return nil, err
	}

	if exists != 1 {
		return nil, &model.NotFoundError{
			Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
			Message: "Article not found",
			Param:   "articleId",
		}
	}

	rows, err := usecase.CommentRepository.GetCommentsByArticle(ctxContext, articleId)
	if err != nil {
		return nil, err
	}

	usecase.resolveAvatarUrls(rows)

	return AssembleCommentTree(rows), nil
}

func (usecase *CommentUsecase) CreateComment(ctx *fiber.Ctx, articleIdParam string, userId uuid.UUID, payload model.CommentCreateRequest) (model.CommentResponse, error) {
	response := model.CommentResponse{}

	articleId, err := uuid.Parse(articleIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid article id",
			Param:   "articleId",
		}
	}

	content, err := validateCommentContent(payload.Content)
	if err != nil {
		return response, err
	}

	var parentId *uuid.UUID
	if payload.ParentId != nil && *payload.ParentId != "" {
		parsed, err := uuid.Parse(*payload.ParentId)
		if err != nil {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Invalid parent comment id",
				Param:   "parentId",
			}
		}
		parentId = &parsed
	}

	ctxContext := ctx.Context()

	exists, err := usecase.ArticleRepository.CheckArticleExists(ctxContext, articleId)
	if err != nil {
		return response, err
	}

	if exists != 1 {
		return response, &model.NotFoundError{
			Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
			Message: "Article not found",
			Param:   "articleId",
		}
	}

	if parentId != nil {
		parent, err := usecase.CommentRepository.GetComment(ctxContext, *parentId)
		if err != nil {
			var notFoundErr *model.NotFoundError
			if errors.As(err, &notFoundErr) {
				return response, &model.ValidationError{
					Code:    constant.ERR_VALIDATION_CODE,
					Message: "Parent comment not found",
					Param:   "parentId",
				}
			}
			return response, err
		}

		if parent.ArticleId != articleId {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Parent comment belongs to a different article",
				Param:   "parentId",
			}
		}

		// One level of nesting only, a reply can never become a parent
		if parent.ParentId != nil {
			return response, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Replying to a reply is not allowed",
				Param:   "parentId",
			}
		}
	}

	now := time.Now().UTC()

	comment := model.Comment{
		Id:             uuid.New(),
		ArticleId:      articleId,
		UserId:         userId,
		ParentId:       parentId,
		Content:        content,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.CommentRepository.CreateComment(ctxContext, comment)
	if err != nil {
		return response, err
	}

	row, err := usecase.CommentRepository.GetCommentRow(ctxContext, comment.Id)
	if err != nil {
		return response, err
	}

	rows := []model.CommentRow{row}
	usecase.resolveAvatarUrls(rows)

	return model.CommentResponse{
		Id:             rows[0].Id,
		ArticleId:      rows[0].ArticleId,
		ParentId:       rows[0].ParentId,
		Content:        rows[0].Content,
		Author:         rows[0].Author,
		CreateDatetime: rows[0].CreateDatetime,
		UpdateDatetime: rows[0].UpdateDatetime,
		Replies:        []model.CommentResponse{},
	}, nil
}

func (usecase *CommentUsecase) UpdateComment(ctx *fiber.Ctx, commentIdParam string, userId uuid.UUID, payload model.CommentUpdateRequest) (model.CommentResponse, error) {
	response := model.CommentResponse{}

	commentId, err := uuid.Parse(commentIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid comment id",
			Param:   "commentId",
		}
	}

	content, err := validateCommentContent(payload.Content)
	if err != nil {
		return response, err
	}

	ctxContext := ctx.Context()

	comment, err := usecase.CommentRepository.GetComment(ctxContext, commentId)
	if err != nil {
		return response, err
	}

	if comment.UserId != userId {
		return response, &model.ForbiddenError{
			Code:    constant.ERR_FORBIDDEN_ERROR_CODE,
			Message: "You are not allowed to edit this comment",
			Param:   "commentId",
		}
	}

	err = usecase.CommentRepository.UpdateCommentContent(ctxContext, commentId, content, time.Now().UTC())
	if err != nil {
		return response, err
	}

	row, err := usecase.CommentRepository.GetCommentRow(ctxContext, commentId)
	if err != nil {
		return response, err
	}

	rows := []model.CommentRow{row}
	usecase.resolveAvatarUrls(rows)

	return model.CommentResponse{
		Id:             rows[0].Id,
		ArticleId:      rows[0].ArticleId,
		ParentId:       rows[0].ParentId,
		Content:        rows[0].Content,
		Author:         rows[0].Author,
		CreateDatetime: rows[0].CreateDatetime,
		UpdateDatetime: rows[0].UpdateDatetime,
		Replies:        []model.CommentResponse{},
	}, nil
}

func (usecase *CommentUsecase) DeleteComment(ctx *fiber.Ctx, commentIdParam string, userId uuid.UUID) (model.CommentDeleteResponse, error) {
	response := model.CommentDeleteResponse{}

	commentId, err := uuid.Parse(commentIdParam)
	if err != nil {
		return response, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid comment id",
			Param:   "commentId",
		}
	}

	ctxContext := ctx.Context()

	comment, err := usecase.CommentRepository.GetComment(ctxContext, commentId)
	if err != nil {
		return response, err
	}

	if comment.UserId != userId {
		return response, &model.ForbiddenError{
			Code:    constant.ERR_FORBIDDEN_ERROR_CODE,
			Message: "You are not allowed to delete this comment",
			Param:   "commentId",
		}
	}

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return response, err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	// Replies go first so the parent and its subtree disappear atomically
	replyCount, err := usecase.CommentRepository.DeleteReplies(ctxContext, tx, commentId)
	if err != nil {
		return response, err
	}

	deleted, err := usecase.CommentRepository.DeleteComment(ctxContext, tx, commentId)
	if err != nil {
		return response, err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return response, err
	}

	commited = true

	response.DeletedCount = replyCount + deleted

	return response, nil
}

// resolveAvatarUrls rewrites the joined object keys into public MinIO URLs.
func (usecase *CommentUsecase) resolveAvatarUrls(rows []model.CommentRow) {
	MINIO_URL := usecase.Config.String("MINIO_URL")
	MINIO_BUCKET_NAME := usecase.Config.String("MINIO_BUCKET_NAME")
	MINIO_HTTP := usecase.Config.String("MINIO_HTTP")

	for i := range rows {
		if rows[i].Author.AvatarUrl != nil {
			*rows[i].Author.AvatarUrl = fmt.Sprintf("%s%s/%s/%s", MINIO_HTTP, MINIO_URL, MINIO_BUCKET_NAME, *rows[i].Author.AvatarUrl)
		}
	}
}
