package item

import "errors"

// Item ドメインのエラー定義
var (
	ErrItemNotFound        = errors.New("アイテムが見つかりません")
	ErrItemNotAvailable    = errors.New("アイテムは現在貸し出しできません")
	ErrOwnerRequired       = errors.New("所有者IDは必須です")
	ErrNameRequired        = errors.New("アイテム名は必須です")
	ErrDescriptionRequired = errors.New("アイテムの説明は必須です")
)
