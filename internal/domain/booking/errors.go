package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound   = errors.New("予約が見つかりません")
	ErrInvalidPeriod     = errors.New("予約期間が不正です")
	ErrPeriodOverlap     = errors.New("指定期間は既存の承認済み予約と重複しています")
	ErrOwnItemBooking    = errors.New("自分のアイテムは予約できません")
	ErrAlreadyProcessed  = errors.New("予約は既に処理されています")
	ErrNotItemOwner      = errors.New("アイテムの所有者のみが予約を処理できます")
	ErrNotBookerOrOwner  = errors.New("予約者またはアイテム所有者のみが参照できます")
	ErrUnknownState      = errors.New("不明な予約状態です")
	ErrInvalidPagination = errors.New("ページネーション指定が不正です")
)
