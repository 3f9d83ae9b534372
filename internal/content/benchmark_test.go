package content_test

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"studyhall/highlighter/internal/cache"
	"studyhall/highlighter/internal/content"
)

const benchmarkChapter = `{"title":"1장","metadata":"","documentContent":[
	{"type":"heading","level":2,"content":"개요"},
	{"type":"paragraph","content":"머신러닝과 **인공지능**의 관계"},
	{"type":"list","items":["지도학습","비지도학습","강화학습"]}
]}`

func newBenchmarkBackend(b *testing.B) *httptest.Server {
	b.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// stands in for a backend that reads the chapter from disk
		time.Sleep(time.Millisecond)
		w.Write([]byte(benchmarkChapter))
	}))
	b.Cleanup(srv.Close)
	return srv
}

func BenchmarkContentWithoutCache(b *testing.B) {
	srv := newBenchmarkBackend(b)
	client := content.NewClient(srv.URL, nil, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	b.ResetTimer()

	for b.Loop() {
		if _, err := client.Content(ctx, "1", "1"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkContentWithCache(b *testing.B) {
	addr := os.Getenv("STUDYHALL_TEST_REDIS_ADDR")
	if addr == "" {
		b.Skip("STUDYHALL_TEST_REDIS_ADDR not set")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		b.Fatalf("bad redis address %q: %v", addr, err)
	}

	redis, err := cache.NewRedisClient(cache.RedisConfig{
		Host:     host,
		Port:     port,
		DB:       1, // 1 for tests
		PoolSize: 10,
	}, "bench", time.Minute)
	if err != nil {
		b.Fatalf("failed to connect to redis: %v", err)
	}
	defer redis.Close()

	srv := newBenchmarkBackend(b)
	client := content.NewClient(srv.URL, redis, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	// warm the cache so the loop only measures hits
	if _, err := client.Content(ctx, "1", "1"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := client.Content(ctx, "1", "1"); err != nil {
			b.Fatal(err)
		}
	}
}
