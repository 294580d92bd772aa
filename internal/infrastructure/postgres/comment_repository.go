package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zigvert/go-shareit/internal/domain/comment"
)

type commentRow struct {
	ID         string    `db:"id"`
	ItemID     string    `db:"item_id"`
	AuthorID   string    `db:"author_id"`
	AuthorName string    `db:"author_name"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
}

type CommentRepository struct{ db *sqlx.DB }

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, c.ItemID, c.AuthorID, c.Text, c.CreatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("コメント作成に失敗: %w", err)
	}
	return nil
}

// ListByItem は作者名を users との結合で解決しつつコメント一覧を返す
func (r *CommentRepository) ListByItem(ctx context.Context, itemID string) ([]*comment.Comment, error) {
	var rows []commentRow
	query := `SELECT c.id, c.item_id, c.author_id, u.name AS author_name, c.text, c.created_at
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1 ORDER BY c.created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query, itemID); err != nil {
		return nil, fmt.Errorf("コメント一覧取得に失敗: %w", err)
	}
	result := make([]*comment.Comment, len(rows))
	for i, row := range rows {
		result[i] = &comment.Comment{
			ID:         row.ID,
			ItemID:     row.ItemID,
			AuthorID:   row.AuthorID,
			AuthorName: row.AuthorName,
			Text:       row.Text,
			CreatedAt:  row.CreatedAt,
		}
	}
	return result, nil
}

var _ comment.Repository = (*CommentRepository)(nil)
