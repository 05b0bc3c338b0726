package kv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := []byte(`{"a":1}`)
	if err := m.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'x'

	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("expected stored copy, got %s", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty store, got %d keys", m.Len())
	}
}

func TestRedis_NilClientIsUnavailable(t *testing.T) {
	var r *Redis
	if _, _, err := r.Get(context.Background(), "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.Set(context.Background(), "k", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("expected nil close, got %v", err)
	}
}

func TestRedis_UnreachableServerReturnsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisFromClient(client, nil)
	defer r.Close()

	ctx := context.Background()
	if _, ok, err := r.Get(ctx, "k"); err == nil || ok {
		t.Fatalf("expected get error, got ok=%v err=%v", ok, err)
	}
	if err := r.Set(ctx, "k", []byte("v")); err == nil {
		t.Fatalf("expected set error")
	}
	if err := r.Delete(ctx, "k"); err == nil {
		t.Fatalf("expected delete error")
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
	if !r.warnedUnavailable.Load() {
		t.Fatalf("expected unavailable warning to be recorded")
	}
}
