package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zigvert/go-shareit/internal/domain/item"
)

type itemRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Available   bool      `db:"available"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const itemColumns = `id, owner_id, name, description, available, created_at, updated_at`

type ItemRepository struct{ db *sqlx.DB }

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	query := `INSERT INTO items (owner_id, name, description, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		i.OwnerID, i.Name, i.Description, i.Available, i.CreatedAt, i.UpdatedAt,
	).Scan(&i.ID); err != nil {
		return fmt.Errorf("アイテム作成に失敗: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*item.Item, error) {
	var row itemRow
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("アイテム取得に失敗: %w", err)
	}
	return toItem(&row), nil
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*item.Item, error) {
	var rows []itemRow
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE owner_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("アイテム一覧取得に失敗: %w", err)
	}
	return toItems(rows), nil
}

func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	query := `UPDATE items SET name = $1, description = $2, available = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, i.Name, i.Description, i.Available, i.UpdatedAt, i.ID)
	if err != nil {
		return fmt.Errorf("アイテム更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return item.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Search(ctx context.Context, text string, limit, offset int) ([]*item.Item, error) {
	var rows []itemRow
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE available = TRUE AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, text, limit, offset); err != nil {
		return nil, fmt.Errorf("アイテム検索に失敗: %w", err)
	}
	return toItems(rows), nil
}

func toItem(row *itemRow) *item.Item {
	return &item.Item{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toItems(rows []itemRow) []*item.Item {
	result := make([]*item.Item, len(rows))
	for i := range rows {
		result[i] = toItem(&rows[i])
	}
	return result
}

var _ item.Repository = (*ItemRepository)(nil)
