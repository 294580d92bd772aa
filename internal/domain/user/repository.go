package user

import "context"

// Repository は利用者リポジトリのインターフェース
type Repository interface {
	// Create は新しい利用者を作成する
	Create(ctx context.Context, u *User) error

	// GetByID はIDから利用者を取得する
	GetByID(ctx context.Context, id string) (*User, error)

	// List は利用者一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update は利用者を更新する
	Update(ctx context.Context, u *User) error

	// Delete は利用者を削除する
	Delete(ctx context.Context, id string) error

	// Exists はIDの利用者が存在するかを返す
	Exists(ctx context.Context, id string) (bool, error)
}
