package repository

import (
	"context"
	"errors"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CommentRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewCommentRepository(zap *zap.Logger, db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *CommentRepository) CreateComment(ctx context.Context, comment model.Comment) error {
	query := "INSERT INTO comments (id, article_id, user_id, parent_id, content, create_datetime, update_datetime) VALUES ($1,$2,$3,$4,$5,$6,$7)"

	_, err := repository.DB.Exec(ctx, query, comment.Id, comment.ArticleId, comment.UserId, comment.ParentId, comment.Content, comment.CreateDatetime, comment.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *CommentRepository) GetComment(ctx context.Context, commentId uuid.UUID) (model.Comment, error) {
	query := "SELECT id, article_id, user_id, parent_id, content, create_datetime, update_datetime FROM comments WHERE id=$1 LIMIT 1"

	comment := model.Comment{}
	err := repository.DB.QueryRow(ctx, query, commentId).Scan(&comment.Id, &comment.ArticleId, &comment.UserId, &comment.ParentId, &comment.Content, &comment.CreateDatetime, &comment.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return comment, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "Comment not found",
				Param:   "commentId",
			}
		}
		return comment, err
	}

	return comment, nil
}

func (repository *CommentRepository) GetCommentRow(ctx context.Context, commentId uuid.UUID) (model.CommentRow, error) {
	query := `SELECT A.id, A.article_id, A.parent_id, A.content,
			B.id, B.name, C.object_key,
			A.create_datetime, A.update_datetime
			FROM comments A
			JOIN users B ON A.user_id = B.id
			LEFT JOIN user_profile_images C ON B.id = C.user_id
			WHERE A.id=$1
			LIMIT 1`

	row := model.CommentRow{}
	err := repository.DB.QueryRow(ctx, query, commentId).Scan(
		&row.Id, &row.ArticleId, &row.ParentId, &row.Content,
		&row.Author.Id, &row.Author.Name, &row.Author.AvatarUrl,
		&row.CreateDatetime, &row.UpdateDatetime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return row, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "Comment not found",
				Param:   "commentId",
			}
		}
		return row, err
	}

	return row, nil
}

func (repository *CommentRepository) GetCommentsByArticle(ctx context.Context, articleId uuid.UUID) ([]model.CommentRow, error) {
	query := `SELECT A.id, A.article_id, A.parent_id, A.content,
			B.id, B.name, C.object_key,
			A.create_datetime, A.update_datetime
			FROM comments A
			JOIN users B ON A.user_id = B.id
			LEFT JOIN user_profile_images C ON B.id = C.user_id
			WHERE A.article_id=$1`

	rows, err := repository.DB.Query(ctx, query, articleId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.CommentRow{}
	for rows.Next() {
		row := model.CommentRow{}
		err = rows.Scan(
			&row.Id, &row.ArticleId, &row.ParentId, &row.Content,
			&row.Author.Id, &row.Author.Name, &row.Author.AvatarUrl,
			&row.CreateDatetime, &row.UpdateDatetime,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (repository *CommentRepository) UpdateCommentContent(ctx context.Context, commentId uuid.UUID, content string, updateDatetime time.Time) error {
	query := "UPDATE comments SET content=$1, update_datetime=$2 WHERE id=$3"

	_, err := repository.DB.Exec(ctx, query, content, updateDatetime, commentId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *CommentRepository) DeleteReplies(ctx context.Context, tx pgx.Tx, parentId uuid.UUID) (int64, error) {
	query := "DELETE FROM comments WHERE parent_id=$1"

	tag, err := tx.Exec(ctx, query, parentId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (repository *CommentRepository) DeleteComment(ctx context.Context, tx pgx.Tx, commentId uuid.UUID) (int64, error) {
	query := "DELETE FROM comments WHERE id=$1"

	tag, err := tx.Exec(ctx, query, commentId)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
