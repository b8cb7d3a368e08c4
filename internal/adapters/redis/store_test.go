package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	redisstore "github.com/skene-dev/skene/internal/adapters/redis"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...redisstore.Option) (*redisstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewFromClient(client, opts...), mr
}

func TestStore_SaveLoadDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	state := domain.SessionState{domain.KeyScene: "question", domain.KeyQuestionID: "q1"}
	require.NoError(t, store.Save(ctx, "u1", state))
	assert.True(t, mr.Exists("skene:session:u1"))

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "question", loaded[domain.KeyScene])
	assert.Equal(t, "q1", loaded[domain.KeyQuestionID])

	require.NoError(t, store.Delete(ctx, "u1"))
	assert.False(t, mr.Exists("skene:session:u1"))
	_, err = store.Load(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_ListPrunesExpired(t *testing.T) {
	store, mr := newTestStore(t, redisstore.WithTTL(50*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "stale", domain.SessionState{}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, ids)

	// The index scores against wall-clock expiry; miniredis needs its own
	// clock advanced for the value key itself.
	time.Sleep(100 * time.Millisecond)
	mr.FastForward(time.Second)

	// A session saved after the expiry survives the prune.
	require.NoError(t, store.Save(ctx, "fresh", domain.SessionState{}))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)

	_, err = store.Load(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_CustomPrefix(t *testing.T) {
	store, mr := newTestStore(t, redisstore.WithPrefix("quiz:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", domain.SessionState{}))
	assert.True(t, mr.Exists("quiz:u1"))
	assert.True(t, mr.Exists("quiz:index"))
}

func TestStore_NoTTLKeepsSessions(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u1", domain.SessionState{}))
	mr.FastForward(24 * time.Hour)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)
}
