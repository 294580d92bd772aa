package booking

import (
	"context"
	"time"

	"github.com/Zigvert/go-shareit/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, b *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// UpdateStatus は pending の予約のステータスを更新する（トランザクション必須）
	// 同一IDへの並行 resolve を直列化するため、status = 'pending' を条件にした
	// compare-and-set として実装されなければならない
	UpdateStatus(ctx context.Context, tx transaction.Tx, b *Booking) error

	// ListByBooker は予約者の予約一覧を開始時刻の降順で取得する
	ListByBooker(ctx context.Context, bookerID string) ([]*Booking, error)

	// ListByItemOwner はアイテム所有者に対する予約一覧を開始時刻の降順で取得する
	ListByItemOwner(ctx context.Context, ownerID string) ([]*Booking, error)

	// ListApprovedByItem はアイテムの承認済み予約一覧を取得する
	ListApprovedByItem(ctx context.Context, itemID string) ([]*Booking, error)

	// ListCompletedApproved は予約者がアイテムに対して before より前に終えた
	// 承認済み予約の一覧を取得する（コメント資格判定用）
	ListCompletedApproved(ctx context.Context, bookerID, itemID string, before time.Time) ([]*Booking, error)

	// CountByStatus はステータス別の予約件数を返す
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
