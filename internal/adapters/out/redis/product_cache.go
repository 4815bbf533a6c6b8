package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/domain/model/product"
	"flowershop/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// CatalogTTL is how long a cached catalog entry counts as fresh.
const CatalogTTL = 30 * time.Minute

const keyPrefix = "catalog:"

// CachedProductRepository decorates a ProductRepository with a Redis cache
// for catalog reads.
//
// Entries are stored without a Redis expiry; freshness is tracked inside
// the payload instead. A fresh entry is served directly. A stale entry
// triggers a database read that refreshes the cache, but if the database
// is unavailable the stale entry is served anyway: an outdated catalog
// beats an empty shop window. Cache failures are logged and never surface
// to the caller.
//
// Writes pass straight through to the decorated repository and drop the
// cached catalog.
type CachedProductRepository struct {
	inner  ports.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProductRepository wraps the given repository with the catalog cache.
func NewCachedProductRepository(
	inner ports.ProductRepository, client *redis.Client, logger *slog.Logger,
) *CachedProductRepository {
	return &CachedProductRepository{
		inner:  inner,
		client: client,
		ttl:    CatalogTTL,
		logger: logger.With("component", "catalog_cache"),
	}
}

// catalogEnvelope is the cached payload. CachedAt drives freshness checks.
type catalogEnvelope struct {
	CachedAt time.Time        `json:"cached_at"`
	Products []productPayload `json:"products"`
}

type productPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetAll serves the catalog, preferring a fresh cache entry, then the
// database, then a stale cache entry.
func (c *CachedProductRepository) GetAll(ctx context.Context, category string) ([]*product.Product, error) {
	key := cacheKey(category)

	envelope, cacheErr := c.read(ctx, key)
	if cacheErr == nil && time.Since(envelope.CachedAt) <= c.ttl {
		return unpack(envelope.Products)
	}

	products, dbErr := c.inner.GetAll(ctx, category)
	if dbErr != nil {
		if cacheErr == nil {
			c.logger.WarnContext(ctx, "Catalog read failed, serving stale cache",
				"category", category, "cached_at", envelope.CachedAt, "error", dbErr)
			return unpack(envelope.Products)
		}
		return nil, dbErr
	}

	c.store(ctx, key, products)
	return products, nil
}

// Get passes through to the decorated repository.
func (c *CachedProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return c.inner.Get(ctx, id)
}

// Add writes through and drops the cached catalog.
func (c *CachedProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := c.inner.Add(ctx, aggregate); err != nil {
		return err
	}

	c.Invalidate(ctx)
	return nil
}

// Update writes through and drops the cached catalog.
func (c *CachedProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := c.inner.Update(ctx, aggregate); err != nil {
		return err
	}

	c.Invalidate(ctx)
	return nil
}

// Delete writes through and drops the cached catalog.
func (c *CachedProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}

	c.Invalidate(ctx)
	return nil
}

// Invalidate drops every cached catalog entry. Failures are logged and
// swallowed: a lingering entry self-corrects after the freshness window.
func (c *CachedProductRepository) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.WarnContext(ctx, "Catalog cache scan failed", "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "Catalog cache invalidation failed", "error", err)
	}
}

func (c *CachedProductRepository) read(ctx context.Context, key string) (catalogEnvelope, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "Catalog cache read failed", "key", key, "error", err)
		}
		return catalogEnvelope{}, err
	}

	var envelope catalogEnvelope
	if err = json.Unmarshal(data, &envelope); err != nil {
		c.logger.WarnContext(ctx, "Catalog cache entry is corrupt", "key", key, "error", err)
		return catalogEnvelope{}, err
	}

	return envelope, nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, products []*product.Product) {
	envelope := catalogEnvelope{
		CachedAt: time.Now().UTC(),
		Products: pack(products),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		c.logger.WarnContext(ctx, "Catalog cache marshal failed", "key", key, "error", err)
		return
	}

	// no Redis expiry: stale entries are the fallback when the database is down
	if err = c.client.Set(ctx, key, data, 0).Err(); err != nil {
		c.logger.WarnContext(ctx, "Catalog cache write failed", "key", key, "error", err)
	}
}

func cacheKey(category string) string {
	if category == "" {
		return keyPrefix + "all"
	}
	return keyPrefix + "category:" + category
}

func pack(products []*product.Product) []productPayload {
	payloads := make([]productPayload, 0, len(products))
	for _, p := range products {
		payloads = append(payloads, productPayload{
			ID:          p.ID().String(),
			Name:        p.Name(),
			Price:       p.Price().String(),
			Description: p.Description(),
			Category:    p.Category(),
			ImageURL:    p.ImageURL(),
			CreatedAt:   p.CreatedAt(),
			UpdatedAt:   p.UpdatedAt(),
		})
	}
	return payloads
}

func unpack(payloads []productPayload) ([]*product.Product, error) {
	products := make([]*product.Product, 0, len(payloads))
	for _, payload := range payloads {
		id, err := kernel.UUIDFromString(payload.ID)
		if err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(payload.Price)
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(amount)
		if err != nil {
			return nil, err
		}

		p, err := product.RestoreProduct(
			id, payload.Name, price, payload.Description, payload.Category, payload.ImageURL,
			payload.CreatedAt, payload.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
