package item

import "time"

// Item は貸し出しアイテムエンティティを表す
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem は新しいアイテムを作成する
func NewItem(ownerID, name, description string, available bool, now time.Time) *Item {
	return &Item{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Available:   available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate はアイテムの検証を行う
func (i *Item) Validate() error {
	if i.OwnerID == "" {
		return ErrOwnerRequired
	}
	if i.Name == "" {
		return ErrNameRequired
	}
	if i.Description == "" {
		return ErrDescriptionRequired
	}
	return nil
}

// IsOwnedBy は指定の利用者が所有者かを返す
func (i *Item) IsOwnedBy(userID string) bool {
	return i.OwnerID == userID
}
