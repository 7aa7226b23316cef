package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satriadwi28/kabarproject/internal/constant"
	"github.com/satriadwi28/kabarproject/internal/model"
	"github.com/satriadwi28/kabarproject/internal/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log      *zap.Logger
	DB       *pgxpool.Pool
	DBCache  *redis.Client
	DBObject *minio.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client, minio *minio.Client) *UserRepository {
	return &UserRepository{
		Log:      zap,
		DB:       db,
		DBCache:  dbCache,
		DBObject: minio,
	}
}

// Postgresql
func (repository *UserRepository) Register(ctx context.Context, user model.User) error {
	query := "INSERT INTO users (id, name, email, password, role, create_datetime, update_datetime) VALUES ($1,$2,$3,$4,$5,$6,$7)"

	_, err := repository.DB.Exec(ctx, query, user.Id, user.Name, user.Email, user.Password, user.Role, user.CreateDatetime, user.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) CheckEmailUnique(ctx context.Context, email string) (int, error) {
	query := "SELECT 1 FROM users WHERE email=$1 LIMIT 1"

	var exists int
	err := repository.DB.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}
		return exists, err
	}

	return exists, nil
}

func (repository *UserRepository) GetUserAuth(ctx context.Context, email string) (uuid.UUID, string, error) {
	query := "SELECT id,password FROM users WHERE email=$1 LIMIT 1"

	var id uuid.UUID
	var passwordHash string

	err := repository.DB.QueryRow(ctx, query, email).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id, passwordHash, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Email is not registered",
				Param:   "email",
			}
		}
		return id, passwordHash, err
	}

	return id, passwordHash, nil
}

func (repository *UserRepository) GetUserRole(ctx context.Context, userId uuid.UUID) (string, error) {
	query := "SELECT role FROM users WHERE id=$1 LIMIT 1"

	var role string
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role, &model.UnauthorizedError{
				Code:    constant.ERR_UNAUTHORIZED_ERROR_CODE,
				Message: "User account no longer exists",
				Param:   "userId",
			}
		}
		return role, err
	}

	return role, nil
}

func (repository *UserRepository) GetUserInfo(ctx context.Context, id uuid.UUID) (model.UserResponse, error) {
	query := `SELECT A.id,A.name,A.email,A.role,B.object_key,A.create_datetime,A.update_datetime
			FROM users A
			LEFT JOIN user_profile_images B ON A.id = B.user_id
			WHERE A.id=$1
			LIMIT 1`

	user := model.UserResponse{}
	err := repository.DB.QueryRow(ctx, query, id).Scan(&user.Id, &user.Name, &user.Email, &user.Role, &user.AvatarUrl, &user.CreateDatetime, &user.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "User not found",
				Param:   "userId",
			}
		}
		return user, err
	}

	return user, nil
}

func (repository *UserRepository) UpdateName(ctx context.Context, userId uuid.UUID, name string, updateDatetime time.Time) error {
	query := "UPDATE users SET name = $1, update_datetime = $2 WHERE id = $3"

	_, err := repository.DB.Exec(ctx, query, name, updateDatetime, userId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) DeleteUser(ctx context.Context, tx pgx.Tx, userId uuid.UUID) error {
	query := "DELETE FROM users WHERE id = $1"

	_, err := tx.Exec(ctx, query, userId)
	if err != nil {
		return err
	}

	return nil
}

// Redis - Cache
func (repository *UserRepository) SetAuthTokenInCache(ctx context.Context, accessToken string, refreshToken string, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	// Hash tokens before storing in Redis for security
	hashedAccessToken := util.HashToken(accessToken)
	hashedRefreshToken := util.HashToken(refreshToken)

	err := repository.DBCache.Set(ctx, accessTokenKey, hashedAccessToken, 15*time.Minute).Err()
	if err != nil {
		return err
	}

	err = repository.DBCache.Set(ctx, refreshTokenKey, hashedRefreshToken, util.RefreshTokenDuration).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error) {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey).Result()
	if err == redis.Nil {
		return hashedToken, &model.UnauthorizedError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR_CODE,
			Message: "Authorization token not found or expired",
			Param:   "accessToken",
		}
	} else if err != nil {
		return hashedToken, err
	}

	return hashedToken, nil
}

func (repository *UserRepository) RemoveAuthToken(ctx context.Context, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)
	refreshTokenKey := fmt.Sprintf("auth:refreshToken:%s", userId)

	err := repository.DBCache.Del(ctx, accessTokenKey).Err()
	if err != nil {
		return err
	}

	err = repository.DBCache.Del(ctx, refreshTokenKey).Err()
	if err != nil {
		return err
	}

	return nil
}

// MinIO - Object storage
func (repository *UserRepository) UploadProfileImage(ctx context.Context, bucketName string, imageName string, imageFile *bytes.Reader, imageSize int64) error {
	_, err := repository.DBObject.PutObject(ctx, bucketName, imageName, imageFile, imageSize,
		minio.PutObjectOptions{
			ContentType:  "image/webp",
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) RemoveProfileImageObject(ctx context.Context, bucketName string, fileName string) error {
	err := repository.DBObject.RemoveObject(ctx, bucketName, fileName, minio.RemoveObjectOptions{})
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetProfileImageKey(ctx context.Context, tx pgx.Tx, userId uuid.UUID) (string, error) {
	query := "SELECT object_key FROM user_profile_images WHERE user_id=$1 LIMIT 1"

	var objectKey string
	err := tx.QueryRow(ctx, query, userId).Scan(&objectKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return objectKey, err
	}

	return objectKey, nil
}

func (repository *UserRepository) GetProfileImage(ctx context.Context, userId uuid.UUID) (model.UserProfileImage, error) {
	query := "SELECT id, user_id, bucket, object_key, mime_type, size, create_datetime, update_datetime FROM user_profile_images WHERE user_id=$1 LIMIT 1"

	image := model.UserProfileImage{}
	err := repository.DB.QueryRow(ctx, query, userId).Scan(&image.Id, &image.UserId, &image.Bucket, &image.ObjectKey, &image.MimeType, &image.Size, &image.CreateDatetime, &image.UpdateDatetime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return image, &model.NotFoundError{
				Code:    constant.ERR_NOT_FOUND_ERROR_CODE,
				Message: "Profile image not found",
				Param:   "userId",
			}
		}
		return image, err
	}

	return image, nil
}

func (repository *UserRepository) DeleteProfileImageRecord(ctx context.Context, tx pgx.Tx, userId uuid.UUID) error {
	query := "DELETE FROM user_profile_images WHERE user_id=$1"

	_, err := tx.Exec(ctx, query, userId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) AddProfileImage(ctx context.Context, tx pgx.Tx, image model.UserProfileImage) error {
	query := "INSERT INTO user_profile_images (id, user_id, bucket, object_key, mime_type, size, create_datetime, update_datetime) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"

	_, err := tx.Exec(ctx, query, image.Id, image.UserId, image.Bucket, image.ObjectKey, image.MimeType, image.Size, image.CreateDatetime, image.UpdateDatetime)
	if err != nil {
		return err
	}

	return nil
}
