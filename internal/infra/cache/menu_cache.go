package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"online-food/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// MenuCache はレストラン単位のメニュー一覧をredisに載せる読み取りキャッシュ。
// 注文のスナップショット価格は常にDBから読む（キャッシュは一覧表示専用）。
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{client: client, ttl: ttl}
}

func menuKey(restaurantID int64) string {
	return "menu:restaurant:" + strconv.FormatInt(restaurantID, 10)
}

// Get はキャッシュヒット時に(items, true)を返す。ミスやredis障害は(nil, false)。
func (c *MenuCache) Get(ctx context.Context, restaurantID int64) ([]model.MenuItem, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, menuKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		// redisが落ちていてもDBで答えられるので握りつぶす
		return nil, false
	}

	var items []model.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *MenuCache) Set(ctx context.Context, restaurantID int64, items []model.MenuItem) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, menuKey(restaurantID), raw, c.ttl).Err()
}

// Invalidate はメニューの書き込み後に呼ぶ。
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID int64) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, menuKey(restaurantID)).Err()
}
