package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	Id             uuid.UUID
	Name           string
	Email          string
	Password       string
	Role           string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserProfileUpdateRequest struct {
	Name        *string `json:"name"`
	RemoveImage bool    `json:"removeImage"`
}

type UserResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	AvatarUrl      *string   `json:"avatarUrl"`
	CreateDatetime time.Time `json:"createDatetime"`
	UpdateDatetime time.Time `json:"updateDatetime"`
}
