package user

import "time"

// User は利用者エンティティを表す
// アイテムの所有者にも予約者にもなり得る
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser は新しい利用者を作成する
func NewUser(name, email string, now time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は利用者の検証を行う
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	return nil
}
