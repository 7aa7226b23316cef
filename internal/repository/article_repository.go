package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ArticleRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewArticleRepository(zap *zap.Logger, db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *ArticleRepository) CreateArticle(ctx context.Context, article model.Article) error {
	query := "INSERT INTO articles (id, title, slug, excerpt, content, cover_image_url, published, author_id, category_id, create_datetime, update_datetime) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)"

	_, err := repository.DB.Exec(ctx, query, article.Id, article.Title, article.Slug, article.Excerpt, article.Content, article.CoverImageUrl, article.Published, article.AuthorId, article.CategoryId, article.CreateDatetime, article.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *ArticleRepository) UpdateArticle(ctx context.Context, article model.Article) error {
	query := "UPDATE articles SET title=$1, slug=$2, excerpt=$3, content=$4, cover_image_url=$5, published=$6, category_id=$7, update_datetime=$8 WHERE id=$9"

	_, err := repository.DB.Exec(ctx, query, article.Title, article.Slug, article.Excerpt, article.Content, article.CoverImageUrl, article.Published, article.CategoryId, article.UpdateDatetime, article.Id)
	if err != nil {
		return err
	}

	return nil
}

func (repository *ArticleRepository) DeleteArticle(ctx context.Context, articleId uuid.UUID) error {
	query := "DELETE FROM articles WHERE id=$1"

	_, err := repository.DB.Exec(ctx, query, articleId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *ArticleRepository) CheckArticleExists(ctx context.Context, articleId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM articles WHERE id=$1 LIMIT 1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, articleId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}
		return exists, err
	}

	return exists, nil
}

const articleSelect = `SELECT A.id, A.title, A.slug, A.excerpt, A.content, A.cover_image_url, A.published,
		B.id, B.name, D.object_key,
		C.id, C.name, C.slug, C.create_datetime, C.update_datetime,
		(SELECT COUNT(*) FROM comments E WHERE E.article_id = A.id),
		A.create_datetime, A.update_datetime
		FROM articles A
		JOIN users B ON A.author_id = B.id
		JOIN categories C ON A.category_id = C.id
		LEFT JOIN user_profile_images D ON B.id = D.user_id`

func (repository *ArticleRepository) GetArticle(ctx context.Context, articleId uuid.UUID) (model.ArticleResponse, error) {
	query := articleSelect + " WHERE A.id=$1 LIMIT 1"

	article := model.ArticleResponse{}
	err := repository.DB.QueryRow(ctx, query, articleId).Scan(
		&article.Id, &article.Title, &article.Slug, &article.Excerpt, &article.Content, &article.CoverImageUrl, &article.Published,
		&article.Author.Id, &article.Author.Name, &article.Author.AvatarUrl,
		&article.Category.Id, &article.Category.Name, &article.Category.Slug, &article.Category.CreateDatetime, &article.Category.UpdateDatetime,
		&article.CommentCount,
		&article.CreateDatetime, &article.UpdateDatetime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "Article not found",
				Param:   "articleId",
			}
		}
		return article, err
	}

	return article, nil
}

func (repository *ArticleRepository) GetArticles(ctx context.Context, categoryId *uuid.UUID, publishedOnly bool, limit int) ([]model.ArticleResponse, error) {
	query := articleSelect
	args := []interface{}{}
	conditions := ""

	if publishedOnly {
		conditions = " WHERE A.published = TRUE"
	}

	if categoryId != nil {
		args = append(args, *categoryId)
		if conditions == "" {
			conditions = fmt.Sprintf(" WHERE A.category_id = $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND A.category_id = $%d", len(args))
		}
	}

	args = append(args, limit)
	query += conditions + fmt.Sprintf(" ORDER BY A.create_datetime DESC, A.id DESC LIMIT $%d", len(args))

	rows, err := repository.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []model.ArticleResponse{}
	for rows.Next() {
		article := model.ArticleResponse{}
		err = rows.Scan(
			&article.Id, &article.Title, &article.Slug, &article.Excerpt, &article.Content, &article.CoverImageUrl, &article.Published,
			&article.Author.Id, &article.Author.Name, &article.Author.AvatarUrl,
			&article.Category.Id, &article.Category.Name, &article.Category.Slug, &article.Category.CreateDatetime, &article.Category.UpdateDatetime,
			&article.CommentCount,
			&article.CreateDatetime, &article.UpdateDatetime,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (repository *ArticleRepository) GetArticleRecord(ctx context.Context, articleId uuid.UUID) (model.Article, error) {
	query := "SELECT id, title, slug, excerpt, content, cover_image_url, published, author_id, category_id, create_datetime, update_datetime FROM articles WHERE id=$1 LIMIT 1"

	article := model.Article{}
	err := repository.DB.QueryRow(ctx, query, articleId).Scan(&article.Id, &article.Title, &article.Slug, &article.Excerpt, &article.Content, &article.CoverImageUrl, &article.Published, &article.AuthorId, &article.CategoryId, &article.CreateDatetime, &article.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "Article not found",
				Param:   "articleId",
			}
		}
		return article, err
	}

	return article, nil
}
