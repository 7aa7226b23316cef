package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	Id             uuid.UUID
	Name           string
	Slug           string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type CategoryResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	CreateDatetime time.Time `json:"createDatetime"`
	UpdateDatetime time.Time `json:"updateDatetime"`
}
