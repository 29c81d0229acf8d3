// Package fetch downloads entry mmCIF files and caches them in
// memory and, optionally, in a store.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/rcsb/molpreset/pkg/cif"
	"github.com/rcsb/molpreset/pkg/logging"
	"github.com/rcsb/molpreset/pkg/store"
)

// DefaultBaseURL serves deposited entry files.
const DefaultBaseURL = "https://files.rcsb.org/download"

// defaultCacheSize bounds the in-memory entry cache. Entry files run
// a few MB each.
const defaultCacheSize = 32

var entryIDRe = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// Client fetches entries: store, then memory cache, then HTTP, with
// write-through on a network hit.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	cache   *lru.Cache[string, []byte]
	store   store.Store
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different file server, e.g. a
// mirror or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithStore adds a persistent cache consulted before the network and
// written through after it.
func WithStore(s store.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithCacheSize resizes the in-memory LRU.
func WithCacheSize(n int) Option {
	return func(c *Client) {
		if cache, err := lru.New[string, []byte](n); err == nil {
			c.cache = cache
		}
	}
}

// WithRetries sets the maximum number of HTTP retries.
func WithRetries(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// New creates a Client.
func New(opts ...Option) *Client {
	h := retryablehttp.NewClient()
	h.RetryMax = 3
	h.Logger = nil

	cache, _ := lru.New[string, []byte](defaultCacheSize)
	c := &Client{
		http:    h,
		baseURL: DefaultBaseURL,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Entry returns the raw mmCIF bytes of an entry.
func (c *Client) Entry(ctx context.Context, entryID string) ([]byte, error) {
	id, err := normalizeID(entryID)
	if err != nil {
		return nil, err
	}

	if data, ok := c.cache.Get(id); ok {
		return data, nil
	}
	if c.store != nil {
		data, ok, err := c.store.GetEntry(id)
		if err != nil {
			logging.L().Warn("entry store lookup failed, falling back to network",
				zap.String("entry_id", id), zap.Error(err))
		} else if ok {
			c.cache.Add(id, data)
			return data, nil
		}
	}

	data, err := c.download(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.Add(id, data)
	if c.store != nil {
		if err := c.store.PutEntry(id, data); err != nil {
			logging.L().Warn("entry store write failed",
				zap.String("entry_id", id), zap.Error(err))
		}
	}
	return data, nil
}

// Document fetches and parses an entry.
func (c *Client) Document(ctx context.Context, entryID string) (*cif.Document, error) {
	data, err := c.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	doc, err := cif.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing entry %s: %w", entryID, err)
	}
	return doc, nil
}

func (c *Client) download(ctx context.Context, id string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.cif", c.baseURL, id)
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", id, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching entry %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetching entry %s: unexpected status %d", id, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", id, err)
	}
	return data, nil
}

// normalizeID uppercases and validates a PDB entry id.
func normalizeID(entryID string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(entryID))
	if !entryIDRe.MatchString(id) {
		return "", fmt.Errorf("invalid entry id %q", entryID)
	}
	return id, nil
}
