package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
	"github.com/Zigvert/go-shareit/internal/domain/user"
	redisinfra "github.com/Zigvert/go-shareit/internal/infrastructure/redis"
	"github.com/Zigvert/go-shareit/internal/pkg/clock"
	"github.com/Zigvert/go-shareit/internal/pkg/logger"
)

const itemCacheTTL = 5 * time.Minute

// ItemDetail はアイテムの読み取りビュー
// LastBooking / NextBooking は所有者が参照したときのみ埋められる派生値で、
// 保存はせず読み取りのたびに予約履歴から再計算する
type ItemDetail struct {
	Item        *item.Item
	Comments    []*comment.Comment
	LastBooking *booking.Booking
	NextBooking *booking.Booking
}

type ItemService struct {
	itemRepo    item.Repository
	userRepo    user.Repository
	bookingRepo booking.Repository
	commentRepo comment.Repository
	cache       *redisinfra.ItemCache
	clk         clock.Clock
}

func NewItemService(
	ir item.Repository,
	ur user.Repository,
	br booking.Repository,
	cr comment.Repository,
	cache *redisinfra.ItemCache,
	clk clock.Clock,
) *ItemService {
	return &ItemService{
		itemRepo:    ir,
		userRepo:    ur,
		bookingRepo: br,
		commentRepo: cr,
		cache:       cache,
		clk:         clk,
	}
}

type CreateItemInput struct {
	OwnerID     string
	Name        string
	Description string
	Available   bool
}

func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput) (*item.Item, error) {
	exists, err := s.userRepo.Exists(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("所有者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	it := item.NewItem(input.OwnerID, input.Name, input.Description, input.Available, s.clk.Now())
	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("アイテム作成に失敗しました: %w", err)
	}
	return it, nil
}

type UpdateItemInput struct {
	ItemID      string
	ActorID     string
	Name        *string
	Description *string
	Available   *bool
}

// UpdateItem はアイテムを部分更新する
// 所有者以外にはアイテムの存在自体を明かさないため、更新不可ではなく NotFound を返す
func (s *ItemService) UpdateItem(ctx context.Context, input UpdateItemInput) (*item.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(input.ActorID) {
		return nil, item.ErrItemNotFound
	}

	if input.Name != nil {
		it.Name = *input.Name
	}
	if input.Description != nil {
		it.Description = *input.Description
	}
	if input.Available != nil {
		it.Available = *input.Available
	}
	it.UpdatedAt = s.clk.Now()

	if err := it.Validate(); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("アイテム更新に失敗しました: %w", err)
	}
	s.invalidateCache(ctx, it.ID)
	return it, nil
}

// GetItem はアイテムをコメント付きで取得する
// 参照者が所有者の場合のみ last/next の予約射影を付与する
func (s *ItemService) GetItem(ctx context.Context, actorID, itemID string) (*ItemDetail, error) {
	exists, err := s.userRepo.Exists(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("利用者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	it, err := s.getItemCached(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, it, it.IsOwnedBy(actorID))
}

// ListOwnItems は所有者のアイテム一覧を射影・コメント付きで返す
func (s *ItemService) ListOwnItems(ctx context.Context, ownerID string, from, size int) ([]*ItemDetail, error) {
	exists, err := s.userRepo.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("利用者の確認に失敗: %w", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	from, size = clampPage(from, size)
	items, err := s.itemRepo.ListByOwner(ctx, ownerID, size, from)
	if err != nil {
		return nil, fmt.Errorf("アイテム一覧の取得に失敗: %w", err)
	}

	details := make([]*ItemDetail, 0, len(items))
	for _, it := range items {
		detail, err := s.buildDetail(ctx, it, true)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// SearchItems は名前・説明の部分一致でアイテムを検索する
// 空文字の検索は空の結果を返し、貸し出し不可のアイテムは含めない
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*item.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*item.Item{}, nil
	}
	from, size = clampPage(from, size)
	items, err := s.itemRepo.Search(ctx, text, size, from)
	if err != nil {
		return nil, fmt.Errorf("アイテム検索に失敗: %w", err)
	}
	return items, nil
}

func (s *ItemService) buildDetail(ctx context.Context, it *item.Item, withProjection bool) (*ItemDetail, error) {
	comments, err := s.commentRepo.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf("コメント取得に失敗: %w", err)
	}

	detail := &ItemDetail{Item: it, Comments: comments}
	if withProjection {
		approved, err := s.bookingRepo.ListApprovedByItem(ctx, it.ID)
		if err != nil {
			return nil, fmt.Errorf("承認済み予約の取得に失敗: %w", err)
		}
		detail.LastBooking, detail.NextBooking = booking.Project(approved, s.clk.Now())
	}
	return detail, nil
}

// getItemCached はキャッシュ経由でアイテムを取得する
// キャッシュ障害は読み取りを止めず、リポジトリへフォールバックする
func (s *ItemService) getItemCached(ctx context.Context, itemID string) (*item.Item, error) {
	if s.cache != nil {
		it, err := s.cache.Get(ctx, itemID)
		if err == nil {
			return it, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("アイテムキャッシュの取得に失敗", zap.String("item_id", itemID), zap.Error(err))
		}
	}

	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, it, itemCacheTTL); err != nil {
			logger.Warn("アイテムキャッシュの保存に失敗", zap.String("item_id", itemID), zap.Error(err))
		}
	}
	return it, nil
}

func (s *ItemService) invalidateCache(ctx context.Context, itemID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, itemID); err != nil {
		logger.Warn("アイテムキャッシュの無効化に失敗", zap.String("item_id", itemID), zap.Error(err))
	}
}

func clampPage(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return from, size
}
