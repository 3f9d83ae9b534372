package cache

import (
	"context"
	"net"
	"os"
	"testing"
	"time"
)

func newTestClient(t *testing.T) *RedisClient {
	t.Helper()

	addr := os.Getenv("STUDYHALL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STUDYHALL_TEST_REDIS_ADDR not set")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("bad redis address %q: %v", addr, err)
	}

	client, err := NewRedisClient(RedisConfig{
		Host:     host,
		Port:     port,
		DB:       1,
		PoolSize: 2,
	}, "test-"+t.Name(), time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client
}

func TestRedisClient_GetSetDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	key := "/notebooks/1/content?path=1"

	t.Cleanup(func() { client.Delete(context.Background(), key) })

	_, ok, err := client.Get(ctx, key)
	if err != nil || ok {
		t.Fatalf("Get() before Set: ok = %v, err = %v; want miss", ok, err)
	}

	if err := client.Set(ctx, key, []byte(`{"title":"1장"}`)); err != nil {
		t.Fatalf("Set() err: %v", err)
	}

	got, ok, err := client.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() after Set: ok = %v, err = %v", ok, err)
	}
	if string(got) != `{"title":"1장"}` {
		t.Errorf("Get() = %s", got)
	}

	if err := client.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() err: %v", err)
	}
	if _, ok, _ := client.Get(ctx, key); ok {
		t.Error("key still cached after Delete()")
	}
}

func TestRedisClient_Ping(t *testing.T) {
	client := newTestClient(t)

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() err: %v", err)
	}
}
