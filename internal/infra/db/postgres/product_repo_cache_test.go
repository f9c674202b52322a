//go:build !integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

// mockRedisClient implements red.RedisClient with overridable funcs.
type mockRedisClient struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc func(ctx context.Context, keys ...string) error
}

func (m *mockRedisClient) Ping(ctx context.Context) error { return nil }

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", redis.Nil
}

func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}

func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	return nil
}

func (m *mockRedisClient) Close() error { return nil }

// mockInnerProductRepo implements repository.ProductRepository with
// overridable funcs.
type mockInnerProductRepo struct {
	SaveFunc     func(ctx context.Context, tx repository.Tx, p *model.Product) error
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Product, error)
	ListAllFunc  func(ctx context.Context, tx repository.Tx) ([]*model.Product, error)
}

func (m *mockInnerProductRepo) Save(ctx context.Context, tx repository.Tx, p *model.Product) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, p)
	}
	return nil
}

func (m *mockInnerProductRepo) Update(ctx context.Context, tx repository.Tx, p *model.Product) error {
	return nil
}

func (m *mockInnerProductRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	return nil, nil
}

func (m *mockInnerProductRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Product, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, tx)
	}
	return nil, nil
}

func (m *mockInnerProductRepo) SoftDelete(ctx context.Context, tx repository.Tx, id string) error {
	return nil
}

func (m *mockInnerProductRepo) Restore(ctx context.Context, tx repository.Tx, id string) error {
	return nil
}

func TestProductRepoCacheDecorator(t *testing.T) {
	ctx := context.Background()
	product := &model.Product{ID: "prod-123", Name: "Netflix Family", Price: 1_000_000, Capacity: 5}
	productJSON, _ := json.Marshal(product)

	t.Run("FindByID returns from cache on hit", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				return string(productJSON), nil
			},
		}
		innerCalled := false
		inner := &mockInnerProductRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
				innerCalled = true
				return nil, nil
			},
		}

		decorator := NewProductRepoCacheDecorator(inner, mockRedis, time.Hour)
		result, err := decorator.FindByID(ctx, nil, "prod-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if innerCalled {
			t.Error("inner repository should not be called on a cache hit")
		}
		if result == nil || result.ID != "prod-123" || result.Price != 1_000_000 {
			t.Errorf("wrong product from cache: %+v", result)
		}
	})

	t.Run("FindByID falls through and fills cache on miss", func(t *testing.T) {
		var setKey string
		mockRedis := &mockRedisClient{
			SetFunc: func(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
				setKey = key
				return nil
			},
		}
		inner := &mockInnerProductRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
				return product, nil
			},
		}

		decorator := NewProductRepoCacheDecorator(inner, mockRedis, time.Hour)
		result, err := decorator.FindByID(ctx, nil, "prod-123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil || result.ID != "prod-123" {
			t.Errorf("wrong product: %+v", result)
		}
		if setKey != "product:prod-123" {
			t.Errorf("cache not filled, set key %q", setKey)
		}
	})

	t.Run("writes invalidate the item and list keys", func(t *testing.T) {
		var deletedKeys []string
		mockRedis := &mockRedisClient{
			DelFunc: func(ctx context.Context, keys ...string) error {
				deletedKeys = append(deletedKeys, keys...)
				return nil
			},
		}
		decorator := NewProductRepoCacheDecorator(&mockInnerProductRepo{}, mockRedis, time.Hour)

		if err := decorator.Save(ctx, nil, product); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if len(deletedKeys) != 2 {
			t.Fatalf("expected 2 keys deleted, got %v", deletedKeys)
		}
	})

	t.Run("transactional reads bypass the cache", func(t *testing.T) {
		mockRedis := &mockRedisClient{
			GetFunc: func(ctx context.Context, key string) (string, error) {
				t.Error("cache must not serve transactional reads")
				return "", nil
			},
		}
		inner := &mockInnerProductRepo{
			FindByIDFunc: func(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
				return product, nil
			},
		}

		decorator := NewProductRepoCacheDecorator(inner, mockRedis, time.Hour)
		if _, err := decorator.FindByID(ctx, struct{ fake string }{"tx"}, "prod-123"); err != nil {
			t.Fatalf("FindByID in tx: %v", err)
		}
	})
}
