package item

import "context"

// Repository はアイテムリポジトリのインターフェース
type Repository interface {
	// Create は新しいアイテムを作成する
	Create(ctx context.Context, i *Item) error

	// GetByID はIDからアイテムを取得する
	GetByID(ctx context.Context, id string) (*Item, error)

	// ListByOwner は所有者のアイテム一覧を取得する
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Item, error)

	// Update はアイテムを更新する
	Update(ctx context.Context, i *Item) error

	// Search は名前・説明に対する部分一致検索を行う（貸し出し可能なもののみ）
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
}
