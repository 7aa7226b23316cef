package model

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	Id             uuid.UUID
	Title          string
	Slug           string
	Excerpt        *string
	Content        string
	CoverImageUrl  *string
	Published      bool
	AuthorId       uuid.UUID
	CategoryId     uuid.UUID
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type ArticleCreateRequest struct {
	Title         string  `json:"title"`
	Excerpt       *string `json:"excerpt"`
	Content       string  `json:"content"`
	CoverImageUrl *string `json:"coverImageUrl"`
	Published     *bool   `json:"published"`
	CategoryId    string  `json:"categoryId"`
}

type ArticleUpdateRequest struct {
	Title         string  `json:"title"`
	Excerpt       *string `json:"excerpt"`
	Content       string  `json:"content"`
	CoverImageUrl *string `json:"coverImageUrl"`
	Published     *bool   `json:"published"`
	CategoryId    string  `json:"categoryId"`
}

type ArticleAuthor struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarUrl *string   `json:"avatarUrl"`
}

type ArticleResponse struct {
	Id             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	Excerpt        *string          `json:"excerpt"`
	Content        string           `json:"content"`
	CoverImageUrl  *string          `json:"coverImageUrl"`
	Published      bool             `json:"published"`
	Author         ArticleAuthor    `json:"author"`
	Category       CategoryResponse `json:"category"`
	CommentCount   int64            `json:"commentCount"`
	CreateDatetime time.Time        `json:"createDatetime"`
	UpdateDatetime time.Time        `json:"updateDatetime"`
}
