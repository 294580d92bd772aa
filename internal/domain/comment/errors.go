package comment

import "errors"

// Comment ドメインのエラー定義
var (
	ErrTextRequired        = errors.New("コメント本文は必須です")
	ErrBookingNotCompleted = errors.New("このアイテムの予約を完了していないためコメントできません")
)
