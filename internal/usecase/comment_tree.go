package usecase

import (
	"sort"

	"github.com/satriadwi28/kabarproject/internal/model"

	"github.com/google/uuid"
)

// AssembleCommentTree turns the flat comment rows of one article into a
// two-level tree. Top-level comments are ordered newest first, replies under
// each parent oldest first. Ties on create_datetime fall back to the comment
// id so the order is stable regardless of input order.
func AssembleCommentTree(rows []model.CommentRow) []model.CommentResponse {
	repliesByParent := make(map[uuid.UUID][]model.CommentResponse)
	topLevel := []model.CommentResponse{}

	for _, row := range rows {
		comment := model.CommentResponse{
			Id:             row.Id,
			ArticleId:      row.ArticleId,
			ParentId:       row.ParentId,
			Content:        row.Content,
			Author:         row.Author,
			CreateDatetime: row.CreateDatetime,
			UpdateDatetime: row.UpdateDatetime,
			Replies:        []model.CommentResponse{},
		}

		if row.ParentId != nil {
			repliesByParent[*row.ParentId] = append(repliesByParent[*row.ParentId], comment)
		} else {
			topLevel = append(topLevel, comment)
		}
	}

	sort.Slice(topLevel, func(i, j int) bool {
		if !topLevel[i].CreateDatetime.Equal(topLevel[j].CreateDatetime) {
			return topLevel[i].CreateDatetime.After(topLevel[j].CreateDatetime)
		}
		return topLevel[i].Id.String() > topLevel[j].Id.String()
	})

	for i := range topLevel {
		replies := repliesByParent[topLevel[i].Id]
		if replies == nil {
			replies = []model.CommentResponse{}
		}
		sort.Slice(replies, func(a, b int) bool {
			if !replies[a].CreateDatetime.Equal(replies[b].CreateDatetime) {
				return replies[a].CreateDatetime.Before(replies[b].CreateDatetime)
			}
			return replies[a].Id.String() < replies[b].Id.String()
		})
		topLevel[i].Replies = replies
	}

	return topLevel
}
