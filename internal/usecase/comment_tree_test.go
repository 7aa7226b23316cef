package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriadwi28/kabarproject/internal/model"
)

func commentRowAt(articleId uuid.UUID, parentId *uuid.UUID, content string, createdAt time.Time) model.CommentRow {
	return model.CommentRow{
		Id:             uuid.New(),
		ArticleId:      articleId,
		ParentId:       parentId,
		Content:        content,
		Author:         model.CommentAuthor{Id: uuid.New(), Name: "Author"},
		CreateDatetime: createdAt,
		UpdateDatetime: createdAt,
	}
}

func TestAssembleCommentTreeOrdering(t *testing.T) {
	articleId := uuid.New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	oldest := commentRowAt(articleId, nil, "oldest", base)
	middle := commentRowAt(articleId, nil, "middle", base.Add(time.Minute))
	newest := commentRowAt(articleId, nil, "newest", base.Add(2*time.Minute))

	firstReply := commentRowAt(articleId, &oldest.Id, "first reply", base.Add(10*time.Second))
	secondReply := commentRowAt(articleId, &oldest.Id, "second reply", base.Add(20*time.Second))
	replyToMiddle := commentRowAt(articleId, &middle.Id, "reply to middle", base.Add(90*time.Second))

	// Deliberately shuffled input. The assembler must not depend on row order.
	rows := []model.CommentRow{secondReply, newest, firstReply, oldest, replyToMiddle, middle}

	tree := AssembleCommentTree(rows)
	require.Len(t, tree, 3)

	assert.Equal(t, "newest", tree[0].Content, "top-level comments are newest first")
	assert.Equal(t, "middle", tree[1].Content)
	assert.Equal(t, "oldest", tree[2].Content)

	require.Len(t, tree[2].Replies, 2)
	assert.Equal(t, "first reply", tree[2].Replies[0].Content, "replies are oldest first")
	assert.Equal(t, "second reply", tree[2].Replies[1].Content)

	require.Len(t, tree[1].Replies, 1)
	assert.Equal(t, "reply to middle", tree[1].Replies[0].Content)

	assert.NotNil(t, tree[0].Replies, "a comment without replies still carries an empty slice")
	assert.Empty(t, tree[0].Replies)
}

func TestAssembleCommentTreeTieBreak(t *testing.T) {
	articleId := uuid.New()
	sameInstant := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := commentRowAt(articleId, nil, "a", sameInstant)
	b := commentRowAt(articleId, nil, "b", sameInstant)

	first := AssembleCommentTree([]model.CommentRow{a, b})
	second := AssembleCommentTree([]model.CommentRow{b, a})

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Id, second[0].Id, "equal timestamps fall back to the id, so order is stable")
	assert.Equal(t, first[1].Id, second[1].Id)
}

func TestAssembleCommentTreeEmpty(t *testing.T) {
	tree := AssembleCommentTree(nil)
	assert.NotNil(t, tree, "an article without comments serializes as an empty array")
	assert.Empty(t, tree)
}

func TestValidateCommentContent(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		trimmed, err := validateCommentContent("  hello world \n")
		require.NoError(t, err)
		assert.Equal(t, "hello world", trimmed)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := validateCommentContent("")
		require.Error(t, err)

		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "content", validationErr.Param)
	})

	t.Run("rejects whitespace only content", func(t *testing.T) {
		_, err := validateCommentContent("   \t\n  ")
		require.Error(t, err)
	})

	t.Run("accepts exactly the maximum length", func(t *testing.T) {
		content := make([]rune, 500)
		for i := range content {
			content[i] = 'x'
		}
		trimmed, err := validateCommentContent(string(content))
		require.NoError(t, err)
		assert.Len(t, []rune(trimmed), 500)
	})

	t.Run("rejects one character past the maximum", func(t *testing.T) {
		content := make([]rune, 501)
		for i := range content {
			content[i] = 'x'
		}
		_, err := validateCommentContent(string(content))
		require.Error(t, err)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		content := make([]rune, 500)
		for i := range content {
			content[i] = 'é'
		}
		_, err := validateCommentContent(string(content))
		require.NoError(t, err, "500 multibyte characters are still within the limit")
	})

	t.Run("length check applies after trimming", func(t *testing.T) {
		content := make([]rune, 500)
		for i := range content {
			content[i] = 'x'
		}
		_, err := validateCommentContent("   " + string(content) + "   ")
		require.NoError(t, err)
	})
}
