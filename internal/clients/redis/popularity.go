package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/pawmart/pawmart-backend/internal/domain"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/utils"
)

// PopularityCache is a read-through cache for the user-independent
// popularity fallback list. A nil cache is always valid: callers fall back
// to the catalog query.
type PopularityCache interface {
	GetPopular(ctx context.Context, limit int) ([]*types.Product, bool)
	SetPopular(ctx context.Context, limit int, products []*types.Product)
	Close() error
}

type popularityCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewPopularityCache(log *logger.Logger) (PopularityCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("REDIS_POPULAR_TTL", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &popularityCache{
		log: log.With("client", "PopularityCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func popularKey(limit int) string {
	return fmt.Sprintf("popular:%d", limit)
}

func (c *popularityCache) GetPopular(ctx context.Context, limit int) ([]*types.Product, bool) {
	raw, err := c.rdb.Get(ctx, popularKey(limit)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Popularity cache read failed", "error", err)
		}
		return nil, false
	}
	var products []*types.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.log.Warn("Popularity cache payload corrupt, ignoring", "error", err)
		return nil, false
	}
	return products, true
}

func (c *popularityCache) SetPopular(ctx context.Context, limit int, products []*types.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.log.Warn("Failed to marshal popularity list", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, popularKey(limit), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Popularity cache write failed", "error", err)
	}
}

func (c *popularityCache) Close() error {
	return c.rdb.Close()
}
