package mcmeta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ManifestURL is Mojang's public version index.
const ManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

const manifestTTL = 24 * time.Hour

// Resolver answers version questions, preferring the disk cache and only
// touching the network when the cache is stale and a client is configured.
// A nil Client makes the resolver fully offline.
type Resolver struct {
	Cache  *DiskCache
	Client *http.Client
	URL    string

	now func() time.Time
}

func NewResolver(cache *DiskCache, client *http.Client) *Resolver {
	return &Resolver{Cache: cache, Client: client, URL: ManifestURL, now: time.Now}
}

// ResolveLatest returns the newest release version. Resolution is
// best-effort: with no cache and no network it falls back to
// DefaultVersion.
func (r *Resolver) ResolveLatest(ctx context.Context) Version {
	if m := r.manifest(ctx); m != nil && m.Latest != "" {
		if v, err := ParseVersion(m.Latest); err == nil {
			return v
		}
	}
	return DefaultVersion
}

// KnownVersion reports whether Mojang's manifest lists the release. Without
// manifest data every version is assumed valid.
func (r *Resolver) KnownVersion(ctx context.Context, v Version) bool {
	m := r.manifest(ctx)
	if m == nil || len(m.Versions) == 0 {
		return true
	}
	want := v.String()
	for _, id := range m.Versions {
		if id == want {
			return true
		}
	}
	return false
}

// manifest returns cached data, refreshing over HTTP when stale. Any
// network failure silently degrades to whatever the cache holds.
func (r *Resolver) manifest(ctx context.Context) *cachedManifest {
	var cached cachedManifest
	hit, _ := r.Cache.get(&cached)

	fresh := hit && r.clock().Sub(time.Unix(cached.FetchedAt, 0)) < manifestTTL
	if fresh || r.Client == nil {
		if hit {
			return &cached
		}
		return nil
	}

	fetched, err := r.fetch(ctx)
	if err != nil {
		if hit {
			return &cached
		}
		return nil
	}
	_ = r.Cache.put(fetched)
	return fetched
}

func (r *Resolver) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

type wireManifest struct {
	Latest struct {
		Release string `json:"release"`
	} `json:"latest"`
	Versions []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"versions"`
}

func (r *Resolver) fetch(ctx context.Context) (*cachedManifest, error) {
	url := r.URL
	if url == "" {
		url = ManifestURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("manifest fetch: %s", resp.Status)
	}

	var wire wireManifest
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, err
	}

	out := &cachedManifest{
		Schema:    cacheSchemaVersion,
		FetchedAt: r.clock().Unix(),
		Latest:    wire.Latest.Release,
	}
	for _, v := range wire.Versions {
		if v.Type == "release" {
			out.Versions = append(out.Versions, v.ID)
		}
	}
	return out, nil
}
