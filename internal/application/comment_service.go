package application

import (
	"context"
	"fmt"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
	"github.com/Zigvert/go-shareit/internal/domain/user"
	"github.com/Zigvert/go-shareit/internal/pkg/clock"
)

type CommentService struct {
	commentRepo comment.Repository
	userRepo    user.Repository
	itemRepo    item.Repository
	bookingRepo booking.Repository
	clk         clock.Clock
}

func NewCommentService(
	cr comment.Repository,
	ur user.Repository,
	ir item.Repository,
	br booking.Repository,
	clk clock.Clock,
) *CommentService {
	return &CommentService{
		commentRepo: cr,
		userRepo:    ur,
		itemRepo:    ir,
		bookingRepo: br,
		clk:         clk,
	}
}

type AddCommentInput struct {
	AuthorID string
	ItemID   string
	Text     string
}

// AddComment はアイテムへのコメントを追加する
// 承認済みかつ終了済みの予約を持つ利用者のみがコメントできる
// （承認のみ・未来の予約では資格を満たさない）
func (s *CommentService) AddComment(ctx context.Context, input AddCommentInput) (*comment.Comment, error) {
	author, err := s.userRepo.GetByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.GetByID(ctx, input.ItemID); err != nil {
		return nil, err
	}

	eligible, err := s.mayComment(ctx, input.AuthorID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, comment.ErrBookingNotCompleted
	}

	c := comment.NewComment(input.ItemID, input.AuthorID, input.Text, s.clk.Now())
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("コメント作成に失敗しました: %w", err)
	}
	c.AuthorName = author.Name
	return c, nil
}

// mayComment はコメント資格を判定する
// now より前に終了した承認済み予約が1件でもあれば資格あり
func (s *CommentService) mayComment(ctx context.Context, authorID, itemID string) (bool, error) {
	completed, err := s.bookingRepo.ListCompletedApproved(ctx, authorID, itemID, s.clk.Now())
	if err != nil {
		return false, fmt.Errorf("予約履歴の取得に失敗: %w", err)
	}
	return len(completed) > 0, nil
}
