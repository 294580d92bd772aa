package comment

import "context"

// Repository はコメントリポジトリのインターフェース
type Repository interface {
	// Create は新しいコメントを作成する
	Create(ctx context.Context, c *Comment) error

	// ListByItem はアイテムのコメント一覧を作成日時の昇順で取得する
	ListByItem(ctx context.Context, itemID string) ([]*Comment, error)
}
