package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
	"github.com/bayusbkt/patungan-bay/internal/infra/metrics"
	red "github.com/bayusbkt/patungan-bay/internal/infra/redis"
)

var _ repository.ProductRepository = (*productRepoCacheDecorator)(nil)

// productRepoCacheDecorator caches product reads in redis. The catalog is
// read-heavy (every storefront view and every booking quote hits it) and
// writes are rare admin actions, so invalidate-on-write is enough.
type productRepoCacheDecorator struct {
	inner repository.ProductRepository
	cache red.RedisClient
	ttl   time.Duration
}

const productListKey = "products:all"

func NewProductRepoCacheDecorator(inner repository.ProductRepository, cache red.RedisClient, ttl time.Duration) repository.ProductRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &productRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func productKey(id string) string { return fmt.Sprintf("product:%s", id) }

func (d *productRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	if tx != repository.NoTX {
		// transactional reads must see the transaction's own writes
		return d.inner.FindByID(ctx, tx, id)
	}
	if val, err := d.cache.Get(ctx, productKey(id)); err == nil {
		var p model.Product
		if json.Unmarshal([]byte(val), &p) == nil {
			metrics.IncCacheRequest("product", "hit")
			return &p, nil
		}
	}
	metrics.IncCacheRequest("product", "miss")

	p, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(p); err == nil {
		_ = d.cache.Set(ctx, productKey(id), bytes, d.ttl)
	}
	return p, nil
}

func (d *productRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Product, error) {
	if tx != repository.NoTX {
		return d.inner.ListAll(ctx, tx)
	}
	if val, err := d.cache.Get(ctx, productListKey); err == nil {
		var ps []*model.Product
		if json.Unmarshal([]byte(val), &ps) == nil {
			metrics.IncCacheRequest("product_list", "hit")
			return ps, nil
		}
	}
	metrics.IncCacheRequest("product_list", "miss")

	ps, err := d.inner.ListAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(ps); err == nil {
		_ = d.cache.Set(ctx, productListKey, bytes, d.ttl)
	}
	return ps, nil
}

func (d *productRepoCacheDecorator) invalidate(ctx context.Context, id string) {
	_ = d.cache.Del(ctx, productKey(id), productListKey)
}

func (d *productRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, p *model.Product) error {
	d.invalidate(ctx, p.ID)
	return d.inner.Save(ctx, tx, p)
}

func (d *productRepoCacheDecorator) Update(ctx context.Context, tx repository.Tx, p *model.Product) error {
	d.invalidate(ctx, p.ID)
	return d.inner.Update(ctx, tx, p)
}

func (d *productRepoCacheDecorator) SoftDelete(ctx context.Context, tx repository.Tx, id string) error {
	d.invalidate(ctx, id)
	return d.inner.SoftDelete(ctx, tx, id)
}

func (d *productRepoCacheDecorator) Restore(ctx context.Context, tx repository.Tx, id string) error {
	d.invalidate(ctx, id)
	return d.inner.Restore(ctx, tx, id)
}
