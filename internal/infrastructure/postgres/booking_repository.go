package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/transaction"
)

type bookingRow struct {
	ID        string    `db:"id"`
	ItemID    string    `db:"item_id"`
	BookerID  string    `db:"booker_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const bookingColumns = `id, item_id, booker_id, start_date, end_date, status, created_at, updated_at`

type BookingRepository struct{ db *sqlx.DB }

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("不正なトランザクション型です")
	}
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query,
		b.ItemID, b.BookerID, b.Start, b.End, string(b.Status), b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return toBooking(&row), nil
}

// UpdateStatus は pending の行のみを対象にステータスを書き換える
// WHERE status = 'pending' の compare-and-set により、
// 同一IDへ並行した resolve のうち1つだけが成功する
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("不正なトランザクション型です")
	}
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = 'pending'`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrAlreadyProcessed
	}
	return nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE booker_id = $1 ORDER BY start_date DESC, id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, bookerID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

func (r *BookingRepository) ListByItemOwner(ctx context.Context, ownerID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at
		FROM bookings b JOIN items i ON i.id = b.item_id
		WHERE i.owner_id = $1 ORDER BY b.start_date DESC, b.id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("所有者向け予約一覧取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

func (r *BookingRepository) ListApprovedByItem(ctx context.Context, itemID string) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE item_id = $1 AND status = 'approved' ORDER BY start_date ASC`
	if err := r.db.SelectContext(ctx, &rows, query, itemID); err != nil {
		return nil, fmt.Errorf("承認済み予約取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

func (r *BookingRepository) ListCompletedApproved(ctx context.Context, bookerID, itemID string, before time.Time) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE booker_id = $1 AND item_id = $2 AND status = 'approved' AND end_date < $3
		ORDER BY end_date DESC`
	if err := r.db.SelectContext(ctx, &rows, query, bookerID, itemID, before); err != nil {
		return nil, fmt.Errorf("完了済み予約取得に失敗: %w", err)
	}
	return toBookings(rows), nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[booking.Status]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("予約件数の集計に失敗: %w", err)
	}
	counts := make(map[booking.Status]int, len(rows))
	for _, row := range rows {
		counts[booking.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func toBooking(row *bookingRow) *booking.Booking {
	return &booking.Booking{
		ID:        row.ID,
		ItemID:    row.ItemID,
		BookerID:  row.BookerID,
		Start:     row.StartDate,
		End:       row.EndDate,
		Status:    booking.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toBookings(rows []bookingRow) []*booking.Booking {
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		result[i] = toBooking(&rows[i])
	}
	return result
}

var _ booking.Repository = (*BookingRepository)(nil)
