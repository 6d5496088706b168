package testutil

import (
	"context"
	"sync"
	"time"
)

type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	GetFunc   func(ctx context.Context, key string) (string, error)
	DelFunc   func(ctx context.Context, keys ...string) error
	CloseFunc func() error
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return "", nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	return nil
}

func (m *MockRedisClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}

	return nil
}

// NewExpiringRedisClient keeps keys in memory and expires them against the
// given clock instead of the wall clock.
func NewExpiringRedisClient(now func() time.Time) *MockRedisClient {
	var mutex sync.Mutex
	values := map[string]string{}
	expires := map[string]time.Time{}

	return &MockRedisClient{
		SetNXFunc: func(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
			mutex.Lock()
			defer mutex.Unlock()

			if exp, ok := expires[key]; ok && now().Before(exp) {
				return false, nil
			}

			values[key] = value
			expires[key] = now().Add(ttl)
			return true, nil
		},
		GetFunc: func(_ context.Context, key string) (string, error) {
			mutex.Lock()
			defer mutex.Unlock()

			if exp, ok := expires[key]; !ok || !now().Before(exp) {
				return "", nil
			}

			return values[key], nil
		},
		DelFunc: func(_ context.Context, keys ...string) error {
			mutex.Lock()
			defer mutex.Unlock()

			for _, key := range keys {
				delete(values, key)
				delete(expires, key)
			}

			return nil
		},
	}
}
