package application

import (
	"context"
	"fmt"

	"github.com/Zigvert/go-shareit/internal/domain/user"
	"github.com/Zigvert/go-shareit/internal/pkg/clock"
)

type UserService struct {
	userRepo user.Repository
	clk      clock.Clock
}

func NewUserService(ur user.Repository, clk clock.Clock) *UserService {
	return &UserService{userRepo: ur, clk: clk}
}

type CreateUserInput struct {
	Name  string
	Email string
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*user.User, error) {
	u := user.NewUser(input.Name, input.Email, s.clk.Now())
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*user.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

type UpdateUserInput struct {
	ID    string
	Name  *string
	Email *string
}

// UpdateUser は利用者を部分更新する
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	u.UpdatedAt = s.clk.Now()

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("利用者の削除に失敗しました: %w", err)
	}
	return nil
}
