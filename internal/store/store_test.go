package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryan-cox/pointledger/internal/model"
)

// exerciseStore runs the same round trip against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	_, ok, err := s.Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)

	tasks := model.DefaultTasks()
	value, err := Encode(tasks)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyTasks, value))

	got := Load(ctx, s, log, KeyTasks, []model.Task(nil))
	assert.Equal(t, tasks, got)

	minutes := map[int64]int{5: 45, 6: 10}
	value, err = Encode(minutes)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyTimedMinutes, value))
	assert.Equal(t, minutes, Load(ctx, s, log, KeyTimedMinutes, map[int64]int{}))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "ledger.yml")
	s, err := OpenFile(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	exerciseStore(t, s)

	reopened, err := OpenFile(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	raw, ok, err := reopened.Get(context.Background(), KeyTasks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, raw, "Out of bed @ alarm")
}

func TestFileStoreMalformedDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml ["), 0o644))

	s, err := OpenFile(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), KeyHistory)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)

	// Upsert replaces the previous value.
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyLastSaved, "2026-10-17"))
	require.NoError(t, s.Set(ctx, KeyLastSaved, "2026-10-18"))
	v, ok, err := s.Get(ctx, KeyLastSaved)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2026-10-18", v)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(client, "")
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)

	assert.True(t, mr.Exists(DefaultRedisPrefix+KeyTasks))
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestLoadFallsBackOnMalformedValue(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewMemory()
	require.NoError(t, s.Set(ctx, KeyHistory, "{not: [valid"))

	def := []model.HistoryEntry{}
	got := Load(ctx, s, zap.New(core), KeyHistory, def)
	assert.Equal(t, def, got)
	assert.Equal(t, 1, logs.FilterMessage("state decode failed, using default").Len())
}

type failingStore struct{ *Memory }

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

// slowStore holds every write until release is closed.
type slowStore struct {
	*Memory
	release chan struct{}
}

func (s slowStore) Set(ctx context.Context, key, value string) error {
	<-s.release
	return s.Memory.Set(ctx, key, value)
}

func TestPersister(t *testing.T) {
	t.Run("keeps the latest value per key", func(t *testing.T) {
		s := NewMemory()
		p := NewPersister(s, zaptest.NewLogger(t))
		for i := 1; i <= 20; i++ {
			p.Save(KeyTimedMinutes, map[int64]int{5: i})
		}
		p.Close()

		got := Load(context.Background(), s, zap.NewNop(), KeyTimedMinutes, map[int64]int{})
		assert.Equal(t, map[int64]int{5: 20}, got)
	})

	t.Run("failed writes are logged and dropped", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		p := NewPersister(failingStore{NewMemory()}, zap.New(core))
		p.Save(KeyLastSaved, "2026-10-18")
		p.Close()

		entries := logs.FilterMessage("state write failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, KeyLastSaved, entries[0].ContextMap()["key"])
	})

	t.Run("saves do not wait for a slow store", func(t *testing.T) {
		s := slowStore{Memory: NewMemory(), release: make(chan struct{})}
		p := NewPersister(s, zap.NewNop())

		saved := make(chan struct{})
		go func() {
			for i := 1; i <= 200; i++ {
				p.Save(KeyTimedMinutes, map[int64]int{5: i})
				p.Save(KeyLastSaved, "2026-10-18")
			}
			close(saved)
		}()
		select {
		case <-saved:
		case <-time.After(2 * time.Second):
			t.Fatal("Save blocked while the store was busy")
		}

		close(s.release)
		p.Close()
		ctx := context.Background()
		assert.Equal(t, map[int64]int{5: 200}, Load(ctx, s, zap.NewNop(), KeyTimedMinutes, map[int64]int{}))
		assert.Equal(t, "2026-10-18", Load(ctx, s, zap.NewNop(), KeyLastSaved, ""))
	})

	t.Run("save after close is ignored", func(t *testing.T) {
		p := NewPersister(NewMemory(), zap.NewNop())
		p.Close()
		assert.NotPanics(t, func() { p.Save(KeyLastSaved, "x") })
		assert.NotPanics(t, p.Close)
	})
}
