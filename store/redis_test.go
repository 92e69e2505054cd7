package store

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════
// RedisStateStore tests (miniredis-backed)
// ══════════════════════════════════════════════

func newRedisStore(t *testing.T, config ...RedisStoreConfig) *RedisStateStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStateStore(client, config...)
}

func TestRedisStateStore_RoundTrip(t *testing.T) {
	s := newRedisStore(t)

	if _, found, err := s.Load("missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	if err := s.Save("emotional_state", []byte(`{"mood":"calm"}`)); err != nil {
		t.Fatal(err)
	}
	data, found, err := s.Load("emotional_state")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if string(data) != `{"mood":"calm"}` {
		t.Fatalf("data = %q", data)
	}
}

func TestRedisStateStore_DeleteAndKeys(t *testing.T) {
	s := newRedisStore(t)

	if err := s.Save("a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("b", []byte("2")); err != nil {
		t.Fatal(err)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %v", keys)
	}
	for _, k := range keys {
		if k != "a" && k != "b" {
			t.Fatalf("prefix not stripped: %q", k)
		}
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s.Load("a"); found {
		t.Fatal("delete did not remove the key")
	}
}

func TestRedisStateStore_CustomPrefixIsolates(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s1 := NewRedisStateStore(client, RedisStoreConfig{Prefix: "one"})
	s2 := NewRedisStateStore(client, RedisStoreConfig{Prefix: "two"})

	if err := s1.Save("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := s2.Load("k"); found {
		t.Fatal("prefixes must isolate key spaces")
	}
	keys, err := s2.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Fatalf("keys leaked across prefixes: %v", keys)
	}
}
