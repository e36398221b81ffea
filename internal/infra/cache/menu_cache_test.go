package cache

import (
	"context"
	"testing"
	"time"

	"online-food/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupCache(t *testing.T, ttl time.Duration) (*MenuCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewMenuCache(client, ttl), mr
}

func TestMenuCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t, 5*time.Minute)

	items := []model.MenuItem{
		{ID: 7, RestaurantID: 5, Name: "Margherita", Price: 899, Category: "pizza"},
		{ID: 8, RestaurantID: 5, Name: "Pepperoni", Price: 999, Category: "pizza"},
	}

	c.Set(ctx, 5, items)

	got, ok := c.Get(ctx, 5)
	assert.True(t, ok)
	assert.Equal(t, items, got)
}

func TestMenuCache_MissOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t, 5*time.Minute)

	_, ok := c.Get(ctx, 42)
	assert.False(t, ok)
}

func TestMenuCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t, 5*time.Minute)

	c.Set(ctx, 5, []model.MenuItem{{ID: 7, RestaurantID: 5}})
	c.Invalidate(ctx, 5)

	_, ok := c.Get(ctx, 5)
	assert.False(t, ok)
}

func TestMenuCache_TTLExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t, time.Minute)

	c.Set(ctx, 5, []model.MenuItem{{ID: 7, RestaurantID: 5}})

	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, 5)
	assert.False(t, ok)
}

func TestMenuCache_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()

	var c *MenuCache

	c.Set(ctx, 5, []model.MenuItem{{ID: 7}})
	c.Invalidate(ctx, 5)
	_, ok := c.Get(ctx, 5)
	assert.False(t, ok)
}
