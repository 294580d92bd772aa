package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Zigvert/go-shareit/internal/domain/item"
)

var ErrCacheMiss = errors.New("キャッシュが見つかりません")

// ItemCache はアイテムレコードのリードスルーキャッシュ
// キャッシュするのは静的なアイテム行のみで、予約の射影（last/next）は対象外
type ItemCache struct {
	client *redis.Client
}

// NewItemCache は新しいItemCacheインスタンスを作成する
func NewItemCache(client *redis.Client) *ItemCache {
	return &ItemCache{client: client}
}

// Get はアイテムをキャッシュから取得する
func (c *ItemCache) Get(ctx context.Context, itemID string) (*item.Item, error) {
	data, err := c.client.Get(ctx, c.itemKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var it item.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return &it, nil
}

// Set はアイテムをキャッシュに保存する
func (c *ItemCache) Set(ctx context.Context, it *item.Item, ttl time.Duration) error {
	data, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("キャッシュの直列化に失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.itemKey(it.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はアイテムのキャッシュを無効化する
// アイテム更新時に必ず呼ぶこと
func (c *ItemCache) Invalidate(ctx context.Context, itemID string) error {
	if err := c.client.Del(ctx, c.itemKey(itemID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *ItemCache) itemKey(itemID string) string {
	return fmt.Sprintf("items:record:%s", itemID)
}
