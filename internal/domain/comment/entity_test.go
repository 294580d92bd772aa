package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	c := NewComment("item-1", "user-1", "とても使いやすかったです", now)

	assert.Equal(t, "item-1", c.ItemID)
	assert.Equal(t, "user-1", c.AuthorID)
	assert.Equal(t, "とても使いやすかったです", c.Text)
	assert.Equal(t, now, c.CreatedAt)
	assert.Empty(t, c.AuthorName)
}

func TestComment_Validate(t *testing.T) {
	t.Run("有効なコメント", func(t *testing.T) {
		c := &Comment{Text: "良い品でした"}
		require.NoError(t, c.Validate())
	})

	t.Run("本文が空", func(t *testing.T) {
		c := &Comment{Text: ""}
		err := c.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTextRequired)
	})
}
