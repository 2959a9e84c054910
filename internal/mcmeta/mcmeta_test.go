package mcmeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		want Version
		ok   bool
	}{
		{"1.21", Version{1, 21, 0}, true},
		{"1.20.2", Version{1, 20, 2}, true},
		{" 1.21.5 ", Version{1, 21, 5}, true},
		{"1", Version{}, false},
		{"1.2.3.4", Version{}, false},
		{"1.x", Version{}, false},
		{"", Version{}, false},
	}
	for _, c := range cases {
		got, err := ParseVersion(c.in)
		if c.ok != (err == nil) {
			t.Fatalf("%q: err=%v", c.in, err)
		}
		if c.ok && got != c.want {
			t.Fatalf("%q: got %+v", c.in, got)
		}
	}
}

func TestVersionOrdering(t *testing.T) {
	a := Version{1, 20, 2}
	b := Version{1, 21, 0}
	if !a.Less(b) || b.Less(a) {
		t.Fatal("1.20.2 < 1.21")
	}
	if !b.AtLeast(a) || !b.AtLeast(b) {
		t.Fatal("AtLeast")
	}
	if (Version{1, 21, 0}).String() != "1.21" {
		t.Fatalf("String: %s", Version{1, 21, 0})
	}
}

func TestPackFormatLookup(t *testing.T) {
	cases := []struct {
		v    Version
		want int
	}{
		{Version{1, 20, 2}, 18},
		{Version{1, 20, 4}, 26},
		{Version{1, 20, 6}, 41},
		{Version{1, 21, 0}, 48},
		{Version{1, 21, 1}, 48},
		{Version{1, 21, 5}, 71},
		{Version{1, 22, 0}, 71}, // future versions use the newest known format
	}
	for _, c := range cases {
		got, err := PackFormat(c.v)
		if err != nil {
			t.Fatalf("%s: %v", c.v, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %d, want %d", c.v, got, c.want)
		}
	}
}

func TestPackFormatRejectsTooOld(t *testing.T) {
	if _, err := PackFormat(Version{1, 20, 1}); err == nil {
		t.Fatal("1.20.1 predates the return command and must be rejected")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := openDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	in := &cachedManifest{
		Schema:    cacheSchemaVersion,
		FetchedAt: time.Now().Unix(),
		Latest:    "1.21.5",
		Versions:  []string{"1.21.5", "1.21.4"},
	}
	if err := cache.put(in); err != nil {
		t.Fatalf("put: %v", err)
	}
	var out cachedManifest
	hit, err := cache.get(&out)
	if err != nil || !hit {
		t.Fatalf("get: hit=%v err=%v", hit, err)
	}
	if out.Latest != in.Latest || len(out.Versions) != 2 {
		t.Fatalf("round trip: %+v", out)
	}
}

func TestCacheMissOnEmptyDir(t *testing.T) {
	cache, err := openDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var out cachedManifest
	hit, err := cache.get(&out)
	if err != nil || hit {
		t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
	}
}

func TestResolverFetchesAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(`{
			"latest": {"release": "1.21.5"},
			"versions": [
				{"id": "1.21.5", "type": "release"},
				{"id": "25w01a", "type": "snapshot"},
				{"id": "1.21.4", "type": "release"}
			]
		}`))
	}))
	defer srv.Close()

	cache, _ := openDiskCacheAt(t.TempDir())
	r := NewResolver(cache, srv.Client())
	r.URL = srv.URL

	if got := r.ResolveLatest(context.Background()); got != (Version{1, 21, 5}) {
		t.Fatalf("latest: %v", got)
	}
	if !r.KnownVersion(context.Background(), Version{1, 21, 4}) {
		t.Fatal("1.21.4 is listed")
	}
	if r.KnownVersion(context.Background(), Version{1, 19, 0}) {
		t.Fatal("1.19 is not listed")
	}
	if hits != 1 {
		t.Fatalf("manifest must be fetched once and then served from cache, hits=%d", hits)
	}
}

func TestResolverOfflineFallsBack(t *testing.T) {
	cache, _ := openDiskCacheAt(t.TempDir())
	r := NewResolver(cache, nil)
	if got := r.ResolveLatest(context.Background()); got != DefaultVersion {
		t.Fatalf("offline latest must be the default: %v", got)
	}
	if !r.KnownVersion(context.Background(), Version{1, 42, 0}) {
		t.Fatal("without manifest data every version is assumed valid")
	}
}
