package repository

import (
	"context"
	"errors"

	"github.com/satriadwi28/kabarproject/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	Log *zap.Logger
	DB  *pgxpool.Pool
}

func NewCategoryRepository(zap *zap.Logger, db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		Log: zap,
		DB:  db,
	}
}

func (repository *CategoryRepository) CreateCategory(ctx context.Context, category model.Category) error {
	query := "INSERT INTO categories (id, name, slug, create_datetime, update_datetime) VALUES ($1,$2,$3,$4,$5)"

	_, err := repository.DB.Exec(ctx, query, category.Id, category.Name, category.Slug, category.CreateDatetime, category.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *CategoryRepository) CheckNameUnique(ctx context.Context, name string) (int, error) {
	query := "SELECT 1 FROM categories WHERE LOWER(name)=LOWER($1) LIMIT 1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, name).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}
		return exists, err
	}

	return exists, nil
}

func (repository *CategoryRepository) CheckCategoryExists(ctx context.Context, categoryId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM categories WHERE id=$1 LIMIT 1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, categoryId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}
		return exists, err
	}

	return exists, nil
}

func (repository *CategoryRepository) GetCategories(ctx context.Context) ([]model.CategoryResponse, error) {
	query := "SELECT id, name, slug, create_datetime, update_datetime FROM categories ORDER BY name ASC"

	rows, err := repository.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.CategoryResponse{}
	for rows.Next() {
		category := model.CategoryResponse{}
		err = rows.Scan(&category.Id, &category.Name, &category.Slug, &category.CreateDatetime, &category.UpdateDatetime)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (repository *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	query := "SELECT id, name, slug, create_datetime, update_datetime FROM categories WHERE slug=$1 LIMIT 1"

	category := model.Category{}
	err := repository.DB.QueryRow(ctx, query, slug).Scan(&category.Id, &category.Name, &category.Slug, &category.CreateDatetime, &category.UpdateDatetime)
	if err != nil {
		return category, err
	}

	return category, nil
}
