package locationcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	data     map[string]string
	ttls     map[string]time.Duration
	failWith error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.failWith)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if m.failWith != nil {
		return redis.NewStatusResult("", m.failWith)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if m.failWith != nil {
		return redis.NewStringResult("", m.failWith)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestRedisCache_PutGet(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	c := newRedisCache(store, 30*time.Second)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, c.Put(ctx, ports.Position{UserID: 42, Lat: 31.2, Lng: 121.5, RecordedAt: at}))
	assert.Equal(t, 30*time.Second, store.ttls["crowddelivery:location:42"])

	p, err := c.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ports.Position{UserID: 42, Lat: 31.2, Lng: 121.5, RecordedAt: at}, p)
}

func TestRedisCache_Missing(t *testing.T) {
	_, err := newRedisCache(newMockCmdable(), 0).Get(context.Background(), 7)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRedisCache_Unavailable(t *testing.T) {
	store := newMockCmdable()
	store.failWith = errors.New("connection refused")
	c := newRedisCache(store, 0)

	require.ErrorIs(t, c.Put(context.Background(), ports.Position{UserID: 1}), errs.ErrUnavailable)
	_, err := c.Get(context.Background(), 1)
	require.ErrorIs(t, err, errs.ErrUnavailable)
	require.Error(t, c.Ping(context.Background()))
}

func TestNewRedisCache_RequiresAddress(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{})
	require.Error(t, err)
}
