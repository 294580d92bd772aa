package booking

import "time"

// Status は予約の状態を表す
// pending からは approved か rejected への一方向遷移のみ許される
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Booking は予約エンティティを表す
type Booking struct {
	ID        string
	ItemID    string
	BookerID  string
	Start     time.Time
	End       time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking は pending 状態の新しい予約を作成する
func NewBooking(itemID, bookerID string, start, end, now time.Time) *Booking {
	return &Booking{
		ItemID:    itemID,
		BookerID:  bookerID,
		Start:     start,
		End:       end,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidatePeriod は予約期間の検証を行う
// 開始・終了は必須、開始は終了より厳密に前、開始は now 以降（start == now は許容）
func (b *Booking) ValidatePeriod(now time.Time) error {
	if b.Start.IsZero() || b.End.IsZero() {
		return ErrInvalidPeriod
	}
	if !b.Start.Before(b.End) {
		return ErrInvalidPeriod
	}
	if b.Start.Before(now) {
		return ErrInvalidPeriod
	}
	return nil
}

// IsPending は予約が保留中かを返す
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// Resolve は予約を承認または却下する
// pending 以外の状態からの遷移は常にエラー（再処理は冪等ではなく拒否）
func (b *Booking) Resolve(approved bool, now time.Time) error {
	if b.Status != StatusPending {
		return ErrAlreadyProcessed
	}
	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	b.UpdatedAt = now
	return nil
}

// Overlaps は半開区間 [start, end) が予約期間と交差するかを返す
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

// InEffectAt は now 時点で予約期間中か（start <= now < end）を返す
func (b *Booking) InEffectAt(now time.Time) bool {
	return !b.Start.After(now) && b.End.After(now)
}

// EndedBefore は予約が now より前に終了しているかを返す
func (b *Booking) EndedBefore(now time.Time) bool {
	return b.End.Before(now)
}

// StartsAfter は予約が now より後に開始するかを返す
func (b *Booking) StartsAfter(now time.Time) bool {
	return b.Start.After(now)
}
