package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "page:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Roundtrip
	if err := c.Set(ctx, "page:abc", []byte("<html>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "page:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != "<html>" {
		t.Errorf("Get data = %q, want %q", data, "<html>")
	}

	// Delete
	if err := c.Delete(ctx, "page:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "page:abc")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Delete of a missing key is not an error
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// HTTPKey
	httpKey := k.HTTPKey("catalog:", "audi/tt_rs")
	if httpKey != "http:catalog::audi/tt_rs" {
		t.Errorf("HTTPKey unexpected: %s", httpKey)
	}

	// PageKey should differ per URL
	pk1 := k.PageKey("audi", "tt rs", "https://example.com/a.html")
	pk2 := k.PageKey("audi", "tt rs", "https://example.com/b.html")
	if pk1 == pk2 {
		t.Error("Different URLs should produce different page keys")
	}
	if !strings.HasPrefix(pk1, "page:") {
		t.Errorf("PageKey should carry the page prefix: %s", pk1)
	}

	// SpecKey is stable per page hash
	if k.SpecKey("abc") != k.SpecKey("abc") {
		t.Error("SpecKey should be deterministic")
	}

	// ImageKey
	if k.ImageKey("https://a/img.jpg") == k.ImageKey("https://b/img.jpg") {
		t.Error("Different URLs should produce different image keys")
	}

	// PosterKey should include options in hash
	ok1 := k.PosterKey("hash123", PosterKeyOpts{Width: 1200, Height: 1600, Format: "png"})
	ok2 := k.PosterKey("hash123", PosterKeyOpts{Width: 800, Height: 1600, Format: "png"})
	if ok1 == ok2 {
		t.Error("Different PosterKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "run:123:")

	// All keys should be prefixed
	httpKey := scoped.HTTPKey("catalog:", "audi")
	if httpKey != "run:123:http:catalog::audi" {
		t.Errorf("ScopedKeyer HTTPKey unexpected: %s", httpKey)
	}

	pageKey := scoped.PageKey("audi", "tt rs", "https://example.com")
	if len(pageKey) < 13 || pageKey[:8] != "run:123:" {
		t.Errorf("ScopedKeyer PageKey should be prefixed: %s", pageKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.HTTPKey("test:", "key")
	if key != "prefix:http:test::key" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		c, err := Open(ctx, Config{Backend: BackendNone})
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		defer c.Close()
		if _, ok := c.(*NullCache); !ok {
			t.Errorf("Open(none) = %T, want *NullCache", c)
		}
	})

	t.Run("file", func(t *testing.T) {
		c, err := Open(ctx, Config{Backend: BackendFile, Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		defer c.Close()
		if _, ok := c.(*FileCache); !ok {
			t.Errorf("Open(file) = %T, want *FileCache", c)
		}
	})

	t.Run("default is file", func(t *testing.T) {
		c, err := Open(ctx, Config{Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		defer c.Close()
		if _, ok := c.(*FileCache); !ok {
			t.Errorf("Open(default) = %T, want *FileCache", c)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := Open(ctx, Config{Backend: "memcached"}); err == nil {
			t.Error("Open(unknown) should fail")
		}
	})
}
