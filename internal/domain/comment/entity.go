package comment

import "time"

// Comment はアイテムへのフィードバックコメントを表す
// AuthorName は読み取り時に users との結合で埋められる派生属性
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// NewComment は新しいコメントを作成する
func NewComment(itemID, authorID, text string, now time.Time) *Comment {
	return &Comment{
		ItemID:    itemID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
	}
}

// Validate はコメントの検証を行う
func (c *Comment) Validate() error {
	if c.Text == "" {
		return ErrTextRequired
	}
	return nil
}
