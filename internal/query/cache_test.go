package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock drives freshness checks without real sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func noBackoff(int) time.Duration { return 0 }

func TestGet_FreshnessWindow(t *testing.T) {
	clock := newFakeClock()
	c := New(Options{StaleAfter: 30 * time.Second, Now: clock.Now, Backoff: noBackoff})
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}
	key := NewKey("fnols.list", "page=1")

	res := c.Get(context.Background(), key, fetch)
	if res.Err != nil || res.Data != "v1" {
		t.Fatalf("first read: %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 call after first read, got %d", n)
	}

	// Second read inside the window: zero network calls.
	res = c.Get(context.Background(), key, fetch)
	if res.Data != "v1" {
		t.Fatalf("second read: %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected cached read to make no call, got %d total", n)
	}

	// Read after expiry: exactly one more call.
	clock.Advance(31 * time.Second)
	res = c.Get(context.Background(), key, fetch)
	if res.Data != "v1" {
		t.Fatalf("expired read: %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected exactly one call after expiry, got %d total", n)
	}
}

func TestGet_DeduplicatesConcurrentReads(t *testing.T) {
	c := New(Options{Backoff: noBackoff})
	defer c.Close()

	const readers = 8
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		close(entered)
		<-release
		return "shared", nil
	}
	key := NewKey("fnols.detail", "id=F1")

	results := make(chan Result, readers)
	go func() { results <- c.Get(context.Background(), key, fetch) }()
	<-entered

	for i := 1; i < readers; i++ {
		go func() { results <- c.Get(context.Background(), key, fetch) }()
	}
	// Give the remaining readers time to attach to the in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)

	for i := 0; i < readers; i++ {
		res := <-results
		if res.Err != nil || res.Data != "shared" {
			t.Fatalf("reader %d got %+v", i, res)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected exactly 1 network call for %d concurrent readers, got %d", readers, n)
	}
}

func TestGet_RetriesBeforeSurfacing(t *testing.T) {
	c := New(Options{MaxRetries: 3, Backoff: noBackoff})
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("flaky")
		}
		return "recovered", nil
	}

	res := c.Get(context.Background(), NewKey("metrics.overview"), fetch)
	if res.Err != nil || res.Data != "recovered" {
		t.Fatalf("expected recovery after retries, got %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
}

func TestGet_FailureAfterAllRetries(t *testing.T) {
	c := New(Options{MaxRetries: 3, Backoff: noBackoff})
	defer c.Close()

	var calls int32
	boom := errors.New("backend down")
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	res := c.Get(context.Background(), NewKey("dashboard.stats"), fetch)
	if !res.Failed() {
		t.Fatalf("expected hard failure, got %+v", res)
	}
	if !errors.Is(res.Err, boom) {
		t.Errorf("expected cause to surface, got %v", res.Err)
	}
	// Initial attempt plus 3 retries.
	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Errorf("expected 4 attempts, got %d", n)
	}
}

func TestGet_StaleValueSurvivesFailedRefresh(t *testing.T) {
	clock := newFakeClock()
	c := New(Options{StaleAfter: 30 * time.Second, MaxRetries: 1, Backoff: noBackoff, Now: clock.Now})
	defer c.Close()

	healthy := true
	fetch := func(ctx context.Context) (any, error) {
		if healthy {
			return "good", nil
		}
		return nil, errors.New("backend down")
	}
	key := NewKey("fnols.list", "page=1")

	if res := c.Get(context.Background(), key, fetch); res.Data != "good" {
		t.Fatalf("seed read: %+v", res)
	}

	healthy = false
	clock.Advance(time.Minute)

	res := c.Get(context.Background(), key, fetch)
	if !res.HasData || res.Data != "good" {
		t.Fatalf("expected stale value to survive failed refresh, got %+v", res)
	}
	if res.Err == nil {
		t.Error("expected refresh error to be reported alongside stale data")
	}
	if !res.Stale {
		t.Error("expected result to be marked stale")
	}
	if res.Failed() {
		t.Error("a stale value with a refresh error is not a hard failure")
	}
}

func TestInvalidate_DiscardsSupersededCompletion(t *testing.T) {
	c := New(Options{Backoff: noBackoff})
	defer c.Close()

	key := NewKey("fnols.list", "page=1")
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	fetch := func(ctx context.Context) (any, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			close(entered)
			<-release
			return "superseded", nil
		}
		return "current", nil
	}

	done := make(chan Result, 1)
	go func() { done <- c.Get(context.Background(), key, fetch) }()
	<-entered

	// The identity is invalidated while its first fetch is still in flight.
	c.Invalidate(key)
	close(release)

	res := <-done
	if res.Data != "current" {
		t.Fatalf("expected superseded completion to be discarded, got %+v", res)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected refetch under the new version, got %d calls", n)
	}

	// The discarded value must never become visible later.
	if res := c.Get(context.Background(), key, fetch); res.Data != "current" {
		t.Errorf("stale completion leaked into cache: %+v", res)
	}
}

func TestGet_WaiterOnSupersededColdFetchSeesResolvedValue(t *testing.T) {
	c := New(Options{Backoff: noBackoff})
	defer c.Close()

	key := NewKey("fnols.list", "page=1")
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
			return "superseded", nil
		}
		// The replacement fetch is slow, so a waiter that wakes from the
		// discarded first fetch finds an empty entry rather than a value.
		time.Sleep(50 * time.Millisecond)
		return "current", nil
	}

	owner := make(chan Result, 1)
	waiter := make(chan Result, 1)
	go func() { owner <- c.Get(context.Background(), key, fetch) }()
	<-entered
	go func() { waiter <- c.Get(context.Background(), key, fetch) }()
	// Give the second reader time to attach to the in-flight fetch.
	time.Sleep(20 * time.Millisecond)

	// The key had no prior value, so discarding the first completion leaves
	// the entry empty until the refetch lands.
	c.Invalidate(key)
	close(release)

	for _, ch := range []chan Result{owner, waiter} {
		res := <-ch
		if res.Err != nil || res.Data != "current" {
			t.Fatalf("reader resolved to %+v, want the refetched value", res)
		}
		if !res.HasData {
			t.Fatal("reader returned a loading-state result")
		}
	}
}

func TestInvalidateOp_MatchesAllParameterSets(t *testing.T) {
	clock := newFakeClock()
	c := New(Options{StaleAfter: time.Hour, Now: clock.Now, Backoff: noBackoff})
	defer c.Close()

	var listCalls, detailCalls int32
	list := func(ctx context.Context) (any, error) { atomic.AddInt32(&listCalls, 1); return "l", nil }
	detail := func(ctx context.Context) (any, error) { atomic.AddInt32(&detailCalls, 1); return "d", nil }

	p1 := NewKey("fnols.list", "page=1")
	p2 := NewKey("fnols.list", "page=2")
	d1 := NewKey("fnols.detail", "id=F1")

	c.Get(context.Background(), p1, list)
	c.Get(context.Background(), p2, list)
	c.Get(context.Background(), d1, detail)

	c.InvalidateOp("fnols.list")

	c.Get(context.Background(), p1, list)
	c.Get(context.Background(), p2, list)
	c.Get(context.Background(), d1, detail)

	if n := atomic.LoadInt32(&listCalls); n != 4 {
		t.Errorf("expected both list pages refetched, got %d calls", n)
	}
	if n := atomic.LoadInt32(&detailCalls); n != 1 {
		t.Errorf("expected detail entry untouched, got %d calls", n)
	}
}

func TestSubscribe_PollsAndStopsAtZeroSubscribers(t *testing.T) {
	c := New(Options{Backoff: noBackoff})
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}
	key := NewKey("dashboard.stats")

	cancelA := c.Subscribe(key, 5*time.Millisecond, fetch)
	cancelB := c.Subscribe(key, 5*time.Millisecond, fetch)

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 3 {
		select {
		case <-deadline:
			t.Fatal("poller never fired")
		case <-time.After(time.Millisecond):
		}
	}

	// One subscriber left: polling continues.
	cancelA()
	cancelA() // cancel is idempotent
	before := atomic.LoadInt32(&calls)
	deadline = time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) == before {
		select {
		case <-deadline:
			t.Fatal("poller stopped with a live subscriber")
		case <-time.After(time.Millisecond):
		}
	}

	// Last subscriber gone: polling stops.
	cancelB()
	time.Sleep(20 * time.Millisecond)
	stopped := atomic.LoadInt32(&calls)
	time.Sleep(30 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != stopped {
		t.Errorf("poller kept running after last unsubscribe: %d -> %d", stopped, n)
	}
}

func TestSubscribe_RefreshKeepsValueUntilReplacement(t *testing.T) {
	c := New(Options{MaxRetries: 1, Backoff: noBackoff})
	defer c.Close()

	key := NewKey("metrics.overview")
	seed := func(ctx context.Context) (any, error) { return "seed", nil }
	failing := func(ctx context.Context) (any, error) { return nil, errors.New("down") }

	c.Get(context.Background(), key, seed)
	c.refresh(key, failing)

	res := c.Get(context.Background(), key, seed)
	if !res.HasData || res.Data != "seed" {
		t.Fatalf("background failure must not blank the cached value: %+v", res)
	}
}

func TestValue_TypeAssertion(t *testing.T) {
	res := Result{Data: 42, HasData: true}

	if v, ok := Value[int](res); !ok || v != 42 {
		t.Errorf("Value[int] = %v, %v", v, ok)
	}
	if _, ok := Value[string](res); ok {
		t.Error("expected type mismatch to report false")
	}
	if _, ok := Value[int](Result{}); ok {
		t.Error("expected loading state to report false")
	}
}

func TestClose_StopsPollers(t *testing.T) {
	c := New(Options{Backoff: noBackoff})

	var calls int32
	fetch := func(ctx context.Context) (any, error) { return atomic.AddInt32(&calls, 1), nil }
	c.Subscribe(NewKey("fnols.list", "page=1"), 5*time.Millisecond, fetch)

	c.Close()
	after := atomic.LoadInt32(&calls)
	time.Sleep(30 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != after {
		t.Errorf("poller survived Close: %d -> %d", after, n)
	}

	// A closed cache refuses new subscriptions but still serves reads.
	cancel := c.Subscribe(NewKey("fnols.list", "page=2"), time.Millisecond, fetch)
	cancel()
	if res := c.Get(context.Background(), NewKey("fnols.list", "page=3"), fetch); res.Err != nil {
		t.Errorf("read on closed cache: %v", res.Err)
	}
}
