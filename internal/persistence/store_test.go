package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-calendar/internal/cache"
	"github.com/spec-kit/ticket-calendar/internal/config"
)

func TestOpenStoreLocalDrivers(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()

	cfg := config.Config{Cache: config.CacheConfig{Driver: config.CacheDriverMemory, CorruptPolicy: config.CorruptPolicyEmpty}}
	store, closeFn, err := OpenStore(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	closeFn()
	if _, ok := store.(*cache.MemoryStore); !ok {
		t.Fatalf("memory driver returned %T", store)
	}

	path := filepath.Join(t.TempDir(), "tickets.json")
	cfg.Cache = config.CacheConfig{Driver: config.CacheDriverFile, FilePath: path, CorruptPolicy: config.CorruptPolicyError}
	store, closeFn, err = OpenStore(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	defer closeFn()
	fs, ok := store.(*cache.FileStore)
	if !ok || fs.Path() != path {
		t.Fatalf("file driver returned %T", store)
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Cache: config.CacheConfig{Driver: "sqlite"}}
	if _, _, err := OpenStore(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenStorePostgresRequiresDSN(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Cache: config.CacheConfig{Driver: config.CacheDriverPostgres}}
	if _, _, err := OpenStore(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error without DSN")
	}
}

func TestOpenStoreRedisDriver(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	cfg := config.Config{
		Cache: config.CacheConfig{Driver: config.CacheDriverRedis, Key: "tickets", CorruptPolicy: config.CorruptPolicyEmpty},
		Redis: config.RedisConfig{Addr: mr.Addr()},
	}
	store, closeFn, err := OpenStore(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	defer closeFn()
	if _, ok := store.(*cache.RedisStore); !ok {
		t.Fatalf("redis driver returned %T", store)
	}
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := mr.Get("tickets"); got != "[]" {
		t.Fatalf("stored document = %q, want []", got)
	}
}

func TestOpenStoreRedisUnreachable(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	cfg := config.Config{
		Cache: config.CacheConfig{Driver: config.CacheDriverRedis, Key: "tickets"},
		Redis: config.RedisConfig{Addr: addr},
	}
	if _, _, err := OpenStore(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error when redis does not answer")
	}
}
