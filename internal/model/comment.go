package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	Id             uuid.UUID
	ArticleId      uuid.UUID
	UserId         uuid.UUID
	ParentId       *uuid.UUID
	Content        string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type CommentCreateRequest struct {
	Content  string  `json:"content"`
	ParentId *string `json:"parentId"`
}

type CommentUpdateRequest struct {
	Content string `json:"content"`
}

type CommentAuthor struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarUrl *string   `json:"avatarUrl"`
}

// CommentRow is one flat row from the comments query, author already joined.
type CommentRow struct {
	Id             uuid.UUID
	ArticleId      uuid.UUID
	ParentId       *uuid.UUID
	Content        string
	Author         CommentAuthor
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type CommentResponse struct {
	Id             uuid.UUID         `json:"id"`
	ArticleId      uuid.UUID         `json:"articleId"`
	ParentId       *uuid.UUID        `json:"parentId"`
	Content        string            `json:"content"`
	Author         CommentAuthor     `json:"author"`
	CreateDatetime time.Time         `json:"createDatetime"`
	UpdateDatetime time.Time         `json:"updateDatetime"`
	Replies        []CommentResponse `json:"replies"`
}

type CommentDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
