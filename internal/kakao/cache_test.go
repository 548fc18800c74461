// README: Read-through cache policy tests over a fake store.
package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeCacheStore records writes and serves reads from a plain map.
type fakeCacheStore struct {
	data   map[string]string
	sets   map[string]string
	getErr error
	setErr error
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{data: map[string]string{}, sets: map[string]string{}}
}

func (f *fakeCacheStore) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCacheStore) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.sets[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func cachedBody(t *testing.T, p Place) string {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestCachedSearchServesHitWithoutAPICall(t *testing.T) {
	// The underlying client has no canned responses, so any API call would
	// surface as a 404 error.
	_, c := newFakeLocal(t)
	store := newFakeCacheStore()
	store.data[searchKey("경복궁", "AT4")] = cachedBody(t, Place{Name: "경복궁", Lat: 37.579, Lng: 126.977})
	cc := NewCachedClient(c, store, time.Minute)

	p, err := cc.Search(context.Background(), "경복궁", "AT4")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if p == nil || p.Name != "경복궁" {
		t.Fatalf("want cached place, got %+v", p)
	}
}

func TestCachedSearchStoresMiss(t *testing.T) {
	f, c := newFakeLocal(t)
	f.responses["/v2/local/search/keyword.json"] = docsBody(t, []map[string]string{
		{"place_name": "경복궁", "x": "126.977", "y": "37.579"},
	})
	store := newFakeCacheStore()
	cc := NewCachedClient(c, store, time.Minute)

	p, err := cc.Search(context.Background(), "경복궁", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if p == nil || p.Name != "경복궁" {
		t.Fatalf("got %+v", p)
	}

	raw, ok := store.sets[searchKey("경복궁", "")]
	if !ok {
		t.Fatal("result not written to cache")
	}
	var stored Place
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.Name != "경복궁" {
		t.Errorf("stored value = %q (%v)", raw, err)
	}
}

func TestCachedSearchNeverCachesEmptyResults(t *testing.T) {
	f, c := newFakeLocal(t)
	f.responses["/v2/local/search/keyword.json"] = `{"documents":[]}`
	store := newFakeCacheStore()
	cc := NewCachedClient(c, store, time.Minute)

	p, err := cc.Search(context.Background(), "없는곳", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if p != nil {
		t.Fatalf("want nil place, got %+v", p)
	}
	if len(store.sets) != 0 {
		t.Errorf("empty result cached: %v", store.sets)
	}
}

func TestCachedSearchIgnoresStoreFailures(t *testing.T) {
	f, c := newFakeLocal(t)
	f.responses["/v2/local/search/keyword.json"] = docsBody(t, []map[string]string{
		{"place_name": "경복궁", "x": "126.977", "y": "37.579"},
	})
	store := newFakeCacheStore()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	cc := NewCachedClient(c, store, time.Minute)

	p, err := cc.Search(context.Background(), "경복궁", "")
	if err != nil {
		t.Fatalf("store failure must be invisible: %v", err)
	}
	if p == nil || p.Name != "경복궁" {
		t.Fatalf("got %+v", p)
	}
}

func TestCachedResolveGeneratedUsesCachedSearch(t *testing.T) {
	// Hint hits the cache, so the API is never called.
	_, c := newFakeLocal(t)
	store := newFakeCacheStore()
	store.data[searchKey("힌트", "")] = cachedBody(t, Place{Name: "힌트장소", Lat: 37.0, Lng: 127.0})
	cc := NewCachedClient(c, store, time.Minute)

	p, err := cc.ResolveGenerated(context.Background(), "생성이름", "힌트", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p == nil || p.Name != "힌트장소" {
		t.Fatalf("want cached hint result, got %+v", p)
	}
}
