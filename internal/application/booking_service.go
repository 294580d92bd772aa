package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/item"
	"github.com/Zigvert/go-shareit/internal/domain/transaction"
	"github.com/Zigvert/go-shareit/internal/domain/user"
	redislock "github.com/Zigvert/go-shareit/internal/infrastructure/redis"
	"github.com/Zigvert/go-shareit/internal/pkg/clock"
	"github.com/Zigvert/go-shareit/internal/pkg/metrics"
)

// 同一予約IDへの resolve を直列化するロックの設定
const (
	resolveLockTTL        = 5 * time.Second
	resolveLockMaxRetries = 3
	resolveLockRetryDelay = 100 * time.Millisecond
)

type BookingService struct {
	txManager   transaction.Manager
	bookingRepo booking.Repository
	itemRepo    item.Repository
	userRepo    user.Repository
	lockManager *redislock.LockManager
	clk         clock.Clock
	metrics     *metrics.Metrics
}

func NewBookingService(
	txManager transaction.Manager,
	br booking.Repository,
	ir item.Repository,
	ur user.Repository,
	lm *redislock.LockManager,
	clk clock.Clock,
	m *metrics.Metrics,
) *BookingService {
	return &BookingService{
		txManager:   txManager,
		bookingRepo: br,
		itemRepo:    ir,
		userRepo:    ur,
		lockManager: lm,
		clk:         clk,
		metrics:     m,
	}
}

type CreateBookingInput struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

// CreateBooking は予約の受付判定を行い、pending 状態で永続化する
// 検査は「予約者の存在 → アイテムの存在 → 貸し出し可否 → 自己予約 → 期間 → 重複」
// の順で行い、最初に失敗した検査のエラーを返す
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (b *booking.Booking, err error) {
	defer func() { s.recordOperation("create", err) }()

	exists, err := s.userRepo.Exists(ctx, input.BookerID)
	if err != nil {
		return nil, fmt.Errorf("予約者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	it, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, item.ErrItemNotAvailable
	}
	if it.IsOwnedBy(input.BookerID) {
		return nil, booking.ErrOwnItemBooking
	}

	now := s.clk.Now()
	b = booking.NewBooking(input.ItemID, input.BookerID, input.Start, input.End, now)
	if err = b.ValidatePeriod(now); err != nil {
		return nil, err
	}

	// 承認済み予約との重複チェック
	approved, err := s.bookingRepo.ListApprovedByItem(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("承認済み予約の取得に失敗: %w", err)
	}
	for _, a := range approved {
		if a.Overlaps(b.Start, b.End) {
			return nil, booking.ErrPeriodOverlap
		}
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err = s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return b, nil
}

// ResolveBooking は pending の予約を承認または却下する
// 同一予約IDへの並行 resolve は分散ロックで直列化する
// 処理済みの予約への再実行は常にエラーとなり、状態が戻ることはない
func (s *BookingService) ResolveBooking(ctx context.Context, actorID, bookingID string, approved bool) (b *booking.Booking, err error) {
	defer func() { s.recordOperation("resolve", err) }()

	exists, err := s.userRepo.Exists(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("利用者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	if s.lockManager != nil {
		lockStart := time.Now()
		lock, lockErr := s.lockManager.AcquireLockWithRetry(
			ctx, "booking:"+bookingID, resolveLockTTL, resolveLockMaxRetries, resolveLockRetryDelay)
		s.observeLock("acquire", lockStart, lockErr)
		if lockErr != nil {
			if errors.Is(lockErr, redislock.ErrLockNotAcquired) {
				return nil, fmt.Errorf("予約が他のリクエストによって処理中です")
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", lockErr)
		}
		defer func() {
			releaseStart := time.Now()
			releaseErr := lock.Release(ctx)
			s.observeLock("release", releaseStart, releaseErr)
		}()
	}

	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.itemRepo.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actorID) {
		return nil, booking.ErrNotItemOwner
	}

	if err = b.Resolve(approved, s.clk.Now()); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err = s.bookingRepo.UpdateStatus(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	return b, nil
}

// GetBooking は予約を取得する
// 参照できるのは予約者本人とアイテム所有者のみ
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID string) (*booking.Booking, error) {
	exists, err := s.userRepo.Exists(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("利用者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BookerID == actorID {
		return b, nil
	}

	it, err := s.itemRepo.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actorID) {
		return nil, booking.ErrNotBookerOrOwner
	}
	return b, nil
}

type ListBookingsInput struct {
	UserID    string
	Viewpoint booking.Viewpoint
	State     string
	From      int
	Size      int
}

// ListBookings は視点と状態で絞り込んだ予約一覧を返す
// 両視点で同一のアルゴリズムを共有し、取得ステップだけが異なる
// 順序は開始時刻の降順で固定、now は呼び出しごとに一度だけ評価する
func (s *BookingService) ListBookings(ctx context.Context, input ListBookingsInput) ([]*booking.Booking, error) {
	exists, err := s.userRepo.Exists(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("利用者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	state, err := booking.ParseState(input.State)
	if err != nil {
		return nil, err
	}
	if input.From < 0 || input.Size <= 0 {
		return nil, booking.ErrInvalidPagination
	}

	var bookings []*booking.Booking
	switch input.Viewpoint {
	case booking.ViewpointBooker:
		bookings, err = s.bookingRepo.ListByBooker(ctx, input.UserID)
	case booking.ViewpointOwner:
		bookings, err = s.bookingRepo.ListByItemOwner(ctx, input.UserID)
	default:
		return nil, fmt.Errorf("不明な視点です: %s", input.Viewpoint)
	}
	if err != nil {
		return nil, fmt.Errorf("予約一覧の取得に失敗: %w", err)
	}

	booking.SortByStartDesc(bookings)
	now := s.clk.Now()
	filtered := booking.FilterByState(bookings, state, now)
	return booking.Paginate(filtered, input.From, input.Size), nil
}

func (s *BookingService) recordOperation(op string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingsTotal.WithLabelValues(op, operationStatus(err)).Inc()
}

func operationStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, booking.ErrOwnItemBooking),
		errors.Is(err, booking.ErrNotItemOwner):
		return "forbidden"
	case errors.Is(err, booking.ErrInvalidPeriod),
		errors.Is(err, booking.ErrPeriodOverlap),
		errors.Is(err, booking.ErrAlreadyProcessed),
		errors.Is(err, item.ErrItemNotAvailable):
		return "invalid"
	default:
		return "error"
	}
}

func (s *BookingService) observeLock(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.BookingLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}
