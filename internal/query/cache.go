package query

import (
	"context"
	"sync"
	"time"
)

// Defaults mirror the UI's sync policy: a successful result stays fresh for
// 30s, and a failed fetch is retried 3 times before surfacing.
const (
	DefaultStaleAfter = 30 * time.Second
	DefaultMaxRetries = 3
)

// FetchFunc loads the raw value for one logical query.
type FetchFunc func(ctx context.Context) (any, error)

// Options configures a Cache. The zero value gets the defaults.
type Options struct {
	StaleAfter time.Duration
	MaxRetries int
	// Backoff returns the pause before retry attempt n (1-based).
	Backoff func(attempt int) time.Duration
	Recorder Recorder
	// Now is the clock; tests inject their own.
	Now func() time.Time
}

func defaultBackoff(attempt int) time.Duration {
	return 250 * time.Millisecond << (attempt - 1)
}

// Cache is the one piece of process-wide shared state: cached raw responses
// keyed by logical query identity. It is an explicit service with a lifecycle
// (construct at startup, Close on shutdown) so tests get isolated instances.
//
// Guarantees:
//   - a read within the freshness window performs zero network calls;
//   - at most one fetch is in flight per key; concurrent readers share it;
//   - a completion from a superseded fetch (the key was invalidated while it
//     ran) is discarded, never applied;
//   - a previously cached value is never discarded by a failed or in-flight
//     refresh (stale-while-revalidate).
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	opts    Options
	closed  bool
	pollers sync.WaitGroup
}

type entry struct {
	version   uint64
	data      any
	hasData   bool
	err       error
	fetchedAt time.Time

	// inflight is non-nil while one fetch owns this entry; it is closed when
	// that fetch completes, waking deduplicated readers.
	inflight chan struct{}

	subscribers int
	stopPoll    chan struct{}
}

// New creates a Cache, applying defaults for unset options.
func New(opts Options) *Cache {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Backoff == nil {
		opts.Backoff = defaultBackoff
	}
	if opts.Recorder == nil {
		opts.Recorder = NopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{entries: make(map[Key]*entry), opts: opts}
}

// Get returns the cached value for key, fetching through fn when the entry is
// missing or stale. Errors never cross this boundary as panics or untyped
// failures; they come back inside the Result.
func (c *Cache) Get(ctx context.Context, key Key, fn FetchFunc) Result {
	for {
		c.mu.Lock()
		e := c.ent(key)
		now := c.opts.Now()

		if e.hasData && now.Sub(e.fetchedAt) < c.opts.StaleAfter {
			res := c.snapshot(e)
			c.mu.Unlock()
			c.opts.Recorder.Hit(ctx, key.Op())
			return res
		}

		if e.inflight != nil {
			wait := e.inflight
			c.mu.Unlock()
			select {
			case <-wait:
			case <-ctx.Done():
				return Result{Err: ctx.Err()}
			}
			c.mu.Lock()
			res := c.snapshot(e)
			c.mu.Unlock()
			if !res.HasData && res.Err == nil {
				// The fetch we joined was superseded by an invalidation and
				// the entry never held a value. Re-enter the loop and attach
				// to the replacement fetch; a read never resolves to the
				// loading state.
				continue
			}
			c.opts.Recorder.Hit(ctx, key.Op())
			return res
		}

		// Own the fetch for this entry.
		done := make(chan struct{})
		e.inflight = done
		version := e.version
		c.mu.Unlock()

		c.opts.Recorder.Miss(ctx, key.Op())
		data, err := c.fetchWithRetry(ctx, key, fn)

		c.mu.Lock()
		e.inflight = nil
		applied := e.version == version
		if applied {
			c.apply(e, data, err)
		}
		res := c.snapshot(e)
		c.mu.Unlock()
		close(done)

		if applied {
			return res
		}
		// The key was invalidated while we fetched; our result was discarded.
		// Read again under the current version.
	}
}

// Invalidate marks key stale and supersedes any in-flight fetch for it. The
// cached value stays visible until a refetch replaces it.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.invalidate(e)
	}
}

// InvalidateOp invalidates every entry whose key was built from op,
// regardless of parameters. Used for mutation-driven refetch: a successful
// intake submission invalidates all list pages.
func (c *Cache) InvalidateOp(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Op() == op {
			c.invalidate(e)
		}
	}
}

// Subscribe registers interest in background revalidation of key every
// interval, regardless of freshness. The returned cancel function must be
// called when the consumer goes away; polling stops once the key's subscriber
// count reaches zero. Refetching is timer- or mutation-driven only.
func (c *Cache) Subscribe(key Key, interval time.Duration, fn FetchFunc) (cancel func()) {
	c.mu.Lock()
	if c.closed || interval <= 0 {
		c.mu.Unlock()
		return func() {}
	}
	e := c.ent(key)
	e.subscribers++
	if e.stopPoll == nil {
		stop := make(chan struct{})
		e.stopPoll = stop
		c.pollers.Add(1)
		go c.poll(key, interval, fn, stop)
	}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			e.subscribers--
			if e.subscribers <= 0 && e.stopPoll != nil {
				close(e.stopPoll)
				e.stopPoll = nil
			}
		})
	}
}

// Close stops all pollers and waits for them. Entries are left in place; a
// closed cache still serves reads but starts no new subscriptions.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, e := range c.entries {
		if e.stopPoll != nil {
			close(e.stopPoll)
			e.stopPoll = nil
			e.subscribers = 0
		}
	}
	c.mu.Unlock()
	c.pollers.Wait()
}

func (c *Cache) poll(key Key, interval time.Duration, fn FetchFunc, stop chan struct{}) {
	defer c.pollers.Done()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.refresh(key, fn)
		}
	}
}

// refresh fetches key unconditionally, keeping the displayed value until the
// new one arrives. A tick that finds a fetch already in flight is skipped
// rather than stacked.
func (c *Cache) refresh(key Key, fn FetchFunc) {
	c.mu.Lock()
	e := c.ent(key)
	if e.inflight != nil {
		c.mu.Unlock()
		return
	}
	done := make(chan struct{})
	e.inflight = done
	version := e.version
	c.mu.Unlock()

	data, err := c.fetchWithRetry(context.Background(), key, fn)

	c.mu.Lock()
	e.inflight = nil
	if e.version == version {
		c.apply(e, data, err)
	}
	c.mu.Unlock()
	close(done)
}

func (c *Cache) fetchWithRetry(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	op := key.Op()
	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			c.opts.Recorder.Retry(ctx, op)
			select {
			case <-time.After(c.opts.Backoff(attempt)):
			case <-ctx.Done():
				c.opts.Recorder.Failure(ctx, op)
				return nil, ctx.Err()
			}
		}
		start := c.opts.Now()
		data, err := fn(ctx)
		c.opts.Recorder.Fetch(ctx, op, c.opts.Now().Sub(start), err == nil)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	c.opts.Recorder.Failure(ctx, op)
	return nil, lastErr
}

// ent returns the entry for key, creating it if needed. Callers hold c.mu.
func (c *Cache) ent(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// apply writes a fetch outcome into an entry. A failure keeps the previous
// value so consumers never lose a displayed state to a bad refresh.
// Callers hold c.mu.
func (c *Cache) apply(e *entry, data any, err error) {
	if err != nil {
		e.err = err
		return
	}
	e.data = data
	e.hasData = true
	e.err = nil
	e.fetchedAt = c.opts.Now()
}

// Callers hold c.mu.
func (c *Cache) invalidate(e *entry) {
	e.version++
	e.fetchedAt = time.Time{}
}

// Callers hold c.mu.
func (c *Cache) snapshot(e *entry) Result {
	return Result{
		Data:      e.data,
		Err:       e.err,
		HasData:   e.hasData,
		Stale:     e.hasData && c.opts.Now().Sub(e.fetchedAt) >= c.opts.StaleAfter,
		FetchedAt: e.fetchedAt,
	}
}
