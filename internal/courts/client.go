// Package courts proxies the public court-register search. Failures degrade
// to an empty result list; the caller never sees upstream errors.
package courts

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/courtprep/backend/internal/model"
)

const (
	maxResults = 8
	// cacheTTL trims duplicate upstream lookups while a user types. Purely a
	// latency optimisation, not a correctness mechanism.
	cacheTTL = time.Hour
)

// Client looks up court names against the register.
type Client struct {
	http *resty.Client
	log  zerolog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	results []model.Court
	expires time.Time
}

func NewClient(searchURL string, log zerolog.Logger) *Client {
	c := resty.New().
		SetBaseURL(searchURL).
		SetTimeout(5 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{http: c, log: log, cache: map[string]cacheEntry{}}
}

// Search returns at most 8 normalized results. Queries shorter than 2
// characters and any upstream failure return an empty list.
func (c *Client) Search(ctx context.Context, query string) []model.Court {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []model.Court{}
	}

	if hit, ok := c.cached(query); ok {
		return hit
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("")
	if err != nil || resp.StatusCode() != 200 {
		c.log.Warn().Err(err).Str("query", query).Msg("court lookup failed")
		return []model.Court{}
	}

	results := normalize(resp.Body())
	c.store(query, results)
	return results
}

func (c *Client) cached(query string) ([]model.Court, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[query]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.results, true
}

func (c *Client) store(query string, results []model.Court) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[query] = cacheEntry{results: results, expires: time.Now().Add(cacheTTL)}
}

// normalize copes with the register's loosely specified payload: a bare
// array, or an object wrapping the array under "results" or "courts", with
// name/title and slug/id variants per entry.
func normalize(body []byte) []model.Court {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return []model.Court{}
	}

	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		if arr, ok := v["results"].([]interface{}); ok {
			items = arr
		} else if arr, ok := v["courts"].([]interface{}); ok {
			items = arr
		}
	}

	out := []model.Court{}
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		name := strings.TrimSpace(firstString(m, "name", "title"))
		if name == "" {
			continue
		}
		out = append(out, model.Court{
			Name: name,
			Slug: strings.TrimSpace(firstString(m, "slug", "id")),
		})
		if len(out) == maxResults {
			break
		}
	}
	return out
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
