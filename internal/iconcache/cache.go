// Package iconcache keeps decoded, resized app icons for the apps referenced
// by pinned slots. Reads never block: a miss returns a placeholder and
// schedules a background load.
package iconcache

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"
)

const (
	DefaultSize    = 64
	DefaultWorkers = 2
	queueSize      = 64
)

// ErrIconLoadFailed wraps every failure to fetch or decode an icon.
var ErrIconLoadFailed = errors.New("icon load failed")

// IconSource supplies encoded icon bytes. platform.IconProvider satisfies it.
type IconSource interface {
	AppIcon(appID string) ([]byte, error)
}

// Options configures a Cache.
type Options struct {
	Size    int // edge length in pixels
	Workers int
}

type entry struct {
	img    image.Image
	failed bool
}

// Cache maps app ids to icons. Readers load an immutable map through an
// atomic pointer; writers hold mu and publish a modified copy.
type Cache struct {
	src  IconSource
	opts Options
	log  zerolog.Logger

	entries atomic.Pointer[map[string]entry]

	mu       sync.Mutex
	inflight map[string]struct{}
	closed   bool

	placeholders sync.Map // appID -> image.Image

	queue    chan string
	done     chan struct{}
	workers  sync.WaitGroup
	handoffs sync.WaitGroup
	pending  sync.WaitGroup

	startOnce sync.Once
	closeOnce sync.Once
}

// New creates a cache. Call Start before scheduling loads.
func New(src IconSource, opts Options, log zerolog.Logger) *Cache {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	c := &Cache{
		src:      src,
		opts:     opts,
		log:      log.With().Str("component", "iconcache").Logger(),
		inflight: make(map[string]struct{}),
		queue:    make(chan string, queueSize),
		done:     make(chan struct{}),
	}
	empty := make(map[string]entry)
	c.entries.Store(&empty)
	return c
}

// Start launches the worker pool.
func (c *Cache) Start() {
	c.startOnce.Do(func() {
		for i := 0; i < c.opts.Workers; i++ {
			c.workers.Add(1)
			go c.worker()
		}
	})
}

// Close stops the workers. Queued loads that have not started are dropped,
// and loads scheduled afterwards are ignored.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
	c.workers.Wait()
	c.handoffs.Wait()
	c.drain()
}

// Get returns the cached icon for appID, or a placeholder while a load is
// scheduled.
func (c *Cache) Get(appID string) image.Image {
	if e, ok := (*c.entries.Load())[appID]; ok {
		return e.img
	}
	c.schedule(appID)
	return c.placeholder(appID)
}

// Cached reports whether appID has a loaded icon, and whether that load
// failed.
func (c *Cache) Cached(appID string) (loaded, failed bool) {
	e, ok := (*c.entries.Load())[appID]
	return ok, e.failed
}

// Warm schedules loads for apps not yet cached.
func (c *Cache) Warm(appIDs ...string) {
	m := *c.entries.Load()
	for _, id := range appIDs {
		if _, ok := m[id]; !ok {
			c.schedule(id)
		}
	}
}

// Prune drops every entry not in keep, plus every failed entry so the next
// Get retries it. In-flight loads for dropped apps are discarded when they
// finish.
func (c *Cache) Prune(keep map[string]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := *c.entries.Load()
	next := make(map[string]entry, len(old))
	dropped := 0
	for id, e := range old {
		if _, ok := keep[id]; ok && !e.failed {
			next[id] = e
		} else {
			dropped++
		}
	}
	for id := range c.inflight {
		if _, ok := keep[id]; !ok {
			delete(c.inflight, id)
		}
	}
	c.entries.Store(&next)
	c.placeholders.Range(func(k, _ any) bool {
		if _, ok := keep[k.(string)]; !ok {
			c.placeholders.Delete(k)
		}
		return true
	})
	if dropped > 0 {
		c.log.Debug().Int("dropped", dropped).Int("kept", len(next)).Msg("pruned icons")
	}
}

// Keys returns the cached app ids, sorted.
func (c *Cache) Keys() []string {
	m := *c.entries.Load()
	keys := make([]string, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Wait blocks until every scheduled load has finished.
func (c *Cache) Wait() {
	c.pending.Wait()
}

// Load fetches, decodes and resizes the icon for appID synchronously,
// bypassing the cache.
func (c *Cache) Load(appID string) (image.Image, error) {
	data, err := c.src.AppIcon(appID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIconLoadFailed, appID, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decode: %v", ErrIconLoadFailed, appID, err)
	}
	size := uint(c.opts.Size)
	return resize.Thumbnail(size, size, img, resize.Lanczos3), nil
}

func (c *Cache) schedule(appID string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if _, ok := c.inflight[appID]; ok {
		c.mu.Unlock()
		return
	}
	c.inflight[appID] = struct{}{}
	c.pending.Add(1)
	c.mu.Unlock()

	select {
	case c.queue <- appID:
	default:
		// Queue full: hand off without blocking the caller.
		c.handoffs.Add(1)
		go func() {
			defer c.handoffs.Done()
			select {
			case c.queue <- appID:
			case <-c.done:
				c.pending.Done()
			}
		}()
	}
}

func (c *Cache) worker() {
	defer c.workers.Done()
	for {
		select {
		case <-c.done:
			c.drain()
			return
		case id := <-c.queue:
			c.load(id)
		}
	}
}

// drain releases Wait for loads that will never run.
func (c *Cache) drain() {
	for {
		select {
		case <-c.queue:
			c.pending.Done()
		default:
			return
		}
	}
}

func (c *Cache) load(appID string) {
	defer c.pending.Done()

	img, err := c.Load(appID)
	e := entry{img: img}
	if err != nil {
		c.log.Debug().Err(err).Str("app", appID).Msg("using placeholder icon")
		e = entry{img: c.placeholder(appID), failed: true}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[appID]; !ok {
		// Pruned while loading.
		return
	}
	delete(c.inflight, appID)
	old := *c.entries.Load()
	next := make(map[string]entry, len(old)+1)
	for id, x := range old {
		next[id] = x
	}
	next[appID] = e
	c.entries.Store(&next)
}

func (c *Cache) placeholder(appID string) image.Image {
	if img, ok := c.placeholders.Load(appID); ok {
		return img.(image.Image)
	}
	img, _ := c.placeholders.LoadOrStore(appID, Placeholder(appID, c.opts.Size))
	return img.(image.Image)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
