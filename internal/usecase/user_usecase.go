package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"net/mail"
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
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	UserRepository *repository.UserRepository
	DB             *pgxpool.Pool
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewUserUsecase(userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		DB:             db,
		Log:            zap,
		Config:         koanf,
	}
}

func (usecase *UserUsecase) Register(ctx *fiber.Ctx, payload model.UserRegisterRequest) (model.UserResponse, error) {
	ctxContext := ctx.Context()
	user := model.UserResponse{}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if payload.Name == "" {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name is required to not be empty",
			Param:   "name",
		}
	} else if len([]rune(payload.Name)) < constant.MIN_NAME_LENGTH {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Name must be at least %d characters", constant.MIN_NAME_LENGTH),
			Param:   "name",
		}
	} else if len(payload.Name) > 100 {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Name must be at most 100 characters",
			Param:   "name",
		}
	}

	if payload.Email == "" {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is required to not be empty",
			Param:   "email",
		}
	} else if _, err := mail.ParseAddress(payload.Email); err != nil {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email format is invalid",
			Param:   "email",
		}
	}

	if payload.Password == "" {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	} else if len(payload.Password) < constant.MIN_PASSWORD_LENGTH {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Password must be at least %d characters", constant.MIN_PASSWORD_LENGTH),
			Param:   "password",
		}
	} else if len(payload.Password) > 72 {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at most 72 characters",
			Param:   "password",
		}
	}

	exists, err := usecase.UserRepository.CheckEmailUnique(ctxContext, payload.Email)
	if err != nil {
		return user, err
	}

	if exists == 1 {
		return user, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is already registered",
			Param:   "email",
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return user, err
	}

	now := time.Now().UTC()

	newUser := model.User{
		Id:             uuid.New(),
		Name:           payload.Name,
		Email:          payload.Email,
		Password:       string(hashedPassword),
		Role:           model.RoleUser,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	err = usecase.UserRepository.Register(ctxContext, newUser)
	if err != nil {
		return user, err
	}

	// Welcome email is best effort, registration never fails on SMTP errors
	go usecase.sendWelcomeEmail(newUser.Name, newUser.Email)

	return model.UserResponse{
		Id:             newUser.Id,
		Name:           newUser.Name,
		Email:          newUser.Email,
		Role:           newUser.Role,
		AvatarUrl:      nil,
		CreateDatetime: newUser.CreateDatetime,
		UpdateDatetime: newUser.UpdateDatetime,
	}, nil
}

func (usecase *UserUsecase) sendWelcomeEmail(name string, email string) {
	tmpl, err := template.ParseFS(util.TemplateFS, "template/welcome.html")
	if err != nil {
		usecase.Log.Warn("failed to parse welcome email template", zap.Error(err))
		return
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, struct{ Name string }{Name: name})
	if err != nil {
		usecase.Log.Warn("failed to render welcome email", zap.Error(err))
		return
	}

	err = util.SendEmail(
		usecase.Config.String("SMTP_HOST"),
		usecase.Config.Int("SMTP_PORT"),
		usecase.Config.String("SENDER_NAME"),
		usecase.Config.String("SENDER_EMAIL"),
		usecase.Config.String("SENDER_PASSWORD"),
		email,
		"Welcome to Kabar",
		body.String(),
	)
	if err != nil {
		usecase.Log.Warn("failed to send welcome email", zap.String("email", email), zap.Error(err))
	}
}

func (usecase *UserUsecase) Login(ctx *fiber.Ctx, payload model.UserLoginRequest) (model.TokenResponse, error) {
	ctxContext := ctx.Context()
	token := model.TokenResponse{}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	if payload.Email == "" {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is required to not be empty",
			Param:   "email",
		}
	}

	if payload.Password == "" {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	}

	userId, password, err := usecase.UserRepository.GetUserAuth(ctxContext, payload.Email)
	if err != nil {
		return token, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(password), []byte(payload.Password))
	if err != nil {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is incorrect",
			Param:   "password",
		}
	}

	token, err = util.GenerateTokenPair(userId, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return token, err
	}

	err = usecase.UserRepository.SetAuthTokenInCache(ctxContext, token.AccessToken, token.RefreshToken, userId)
	if err != nil {
		return token, err
	}

	return token, nil
}

func (usecase *UserUsecase) GetUserInfo(ctx *fiber.Ctx, userId uuid.UUID) (model.UserResponse, error) {
	user, err := usecase.UserRepository.GetUserInfo(ctx.Context(), userId)
	if err != nil {
		return user, err
	}

	MINIO_URL := usecase.Config.String("MINIO_URL")
	MINIO_BUCKET_NAME := usecase.Config.String("MINIO_BUCKET_NAME")
	MINIO_HTTP := usecase.Config.String("MINIO_HTTP")

	if user.AvatarUrl != nil {
		*user.AvatarUrl = fmt.Sprintf("%s%s/%s/%s", MINIO_HTTP, MINIO_URL, MINIO_BUCKET_NAME, *user.AvatarUrl)
	}

	return user, nil
}

func (usecase *UserUsecase) GetUserRole(ctx *fiber.Ctx, userId uuid.UUID) (string, error) {
	return usecase.UserRepository.GetUserRole(ctx.Context(), userId)
}

func (usecase *UserUsecase) GetAccessToken(ctx *fiber.Ctx, userId uuid.UUID, accessToken string) error {
	hashedTokenFromCache, err := usecase.UserRepository.GetAccessTokenInCache(ctx.Context(), userId)
	if err != nil {
		return err
	}

	// Hash the token from client before comparing with cached hash
	hashedTokenFromClient := util.HashToken(accessToken)

	if hashedTokenFromClient != hashedTokenFromCache {
		return &model.UnauthorizedError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR_CODE,
			Message: "Authorization token is expired",
			Param:   "accessToken",
		}
	}

	return nil
}

func (usecase *UserUsecase) Logout(ctx *fiber.Ctx, userId uuid.UUID) error {
	err := usecase.UserRepository.RemoveAuthToken(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return nil
}

func (usecase *UserUsecase) UpdateProfile(ctx *fiber.Ctx, userId uuid.UUID, payload model.UserProfileUpdateRequest) (model.UserResponse, error) {
	ctxContext := ctx.Context()
	user := model.UserResponse{}

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if len([]rune(name)) < constant.MIN_NAME_LENGTH {
			return user, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: fmt.Sprintf("Name must be at least %d characters", constant.MIN_NAME_LENGTH),
				Param:   "name",
			}
		} else if len(name) > 100 {
			return user, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Name must be at most 100 characters",
				Param:   "name",
			}
		}

		err := usecase.UserRepository.UpdateName(ctxContext, userId, name, time.Now().UTC())
		if err != nil {
			return user, err
		}
	}

	if payload.RemoveImage {
		err := usecase.removeProfileImage(ctx, userId)
		if err != nil {
			return user, err
		}
	}

	return usecase.GetUserInfo(ctx, userId)
}

func (usecase *UserUsecase) removeProfileImage(ctx *fiber.Ctx, userId uuid.UUID) error {
	ctxContext := ctx.Context()

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	fileName, err := usecase.UserRepository.GetProfileImageKey(ctxContext, tx, userId)
	if err != nil {
		return err
	}

	if fileName == "" {
		return nil
	}

	err = usecase.UserRepository.DeleteProfileImageRecord(ctxContext, tx, userId)
	if err != nil {
		return err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return err
	}

	commited = true

	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")
	err = usecase.UserRepository.RemoveProfileImageObject(ctxContext, bucketName, fileName)
	if err != nil {
		usecase.Log.Warn("failed to remove profile image object", zap.String("objectKey", fileName), zap.Error(err))
	}

	return nil
}

func (usecase *UserUsecase) DeleteAccount(ctx *fiber.Ctx, userId uuid.UUID) error {
	ctxContext := ctx.Context()

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	fileName, err := usecase.UserRepository.GetProfileImageKey(ctxContext, tx, userId)
	if err != nil {
		return err
	}

	// Profile image rows, comments and articles cascade from the user row
	err = usecase.UserRepository.DeleteUser(ctxContext, tx, userId)
	if err != nil {
		return err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return err
	}

	commited = true

	if fileName != "" {
		bucketName := usecase.Config.String("MINIO_BUCKET_NAME")
		err = usecase.UserRepository.RemoveProfileImageObject(ctxContext, bucketName, fileName)
		if err != nil {
			usecase.Log.Warn("failed to remove profile image object", zap.String("objectKey", fileName), zap.Error(err))
		}
	}

	err = usecase.UserRepository.RemoveAuthToken(ctxContext, userId)
	if err != nil {
		return err
	}

	return nil
}

func (usecase *UserUsecase) UpdateAvatar(ctx *fiber.Ctx, userId uuid.UUID) error {
	ctxContext := ctx.Context()

	fieldName := "avatar"
	fileHeader, err := ctx.FormFile(fieldName)
	if err != nil {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar is required to not be empty",
			Param:   fieldName,
		}
	}

	imageFile, imageSize, err := util.ValidateImage(fileHeader, fieldName)
	if err != nil {
		return err
	}

	profileImageId := uuid.New()

	now := time.Now().UTC()

	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")

	profileImage := model.UserProfileImage{
		Id:             profileImageId,
		UserId:         userId,
		Bucket:         bucketName,
		ObjectKey:      fmt.Sprintf("user/avatar/%s.webp", profileImageId),
		MimeType:       "webp",
		Size:           imageSize,
		CreateDatetime: now,
		UpdateDatetime: now,
	}

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	fileName, err := usecase.UserRepository.GetProfileImageKey(ctxContext, tx, userId)
	if err != nil {
		return err
	}

	if fileName != "" {
		err = usecase.UserRepository.DeleteProfileImageRecord(ctxContext, tx, userId)
		if err != nil {
			return err
		}

		err = usecase.UserRepository.RemoveProfileImageObject(ctxContext, bucketName, fileName)
		if err != nil {
			return err
		}
	}

	err = usecase.UserRepository.AddProfileImage(ctxContext, tx, profileImage)
	if err != nil {
		return err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return err
	}

	commited = true

	err = usecase.UserRepository.UploadProfileImage(ctxContext, bucketName, profileImage.ObjectKey, imageFile, imageSize)
	if err != nil {
		return err
	}

	return nil
}

func (usecase *UserUsecase) GetUserAvatarUrl(ctx *fiber.Ctx, userIdParam string) (string, error) {
	userId, err := uuid.Parse(userIdParam)
	if err != nil {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid user id",
			Param:   "userId",
		}
	}

	image, err := usecase.UserRepository.GetProfileImage(ctx.Context(), userId)
	if err != nil {
		return "", err
	}

	MINIO_URL := usecase.Config.String("MINIO_URL")
	MINIO_HTTP := usecase.Config.String("MINIO_HTTP")

	return fmt.Sprintf("%s%s/%s/%s", MINIO_HTTP, MINIO_URL, image.Bucket, image.ObjectKey), nil
}
