package adminclient

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/caredesk/hospital-admin/pkg/pagination"
)

// DefaultDebounce is how long typing must pause before the search fires.
const DefaultDebounce = 500 * time.Millisecond

// Snapshot is the list state handed to the view after every change.
type Snapshot[T any] struct {
	Items      []T
	TotalCount int
	Page       int
	TotalPages int
	Loading    bool
	Err        error
}

// Fetcher loads one page of a listing, typically Client.ListHospitals or
// Client.ListHospitalUsers.
type Fetcher[T any] func(ctx context.Context, q Query) (Page[T], error)

// ListController drives a searchable, paginated listing. Search and filter
// edits share one trailing-edge debounce; page turns fetch immediately. Each
// fetch carries a sequence number and cancels its predecessor, so an answer
// from a superseded request can never overwrite a newer one regardless of
// arrival order.
type ListController[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	onChange func(Snapshot[T])
	log      zerolog.Logger

	debounce time.Duration
	limit    int

	query    Query
	timer    *time.Timer
	timerGen uint64
	cancel   context.CancelFunc
	seq      uint64

	snap       Snapshot[T]
	pending    []Snapshot[T]
	delivering bool
}

func NewListController[T any](fetch Fetcher[T], onChange func(Snapshot[T])) *ListController[T] {
	return &ListController[T]{
		fetch:    fetch,
		onChange: onChange,
		log:      zerolog.Nop(),
		debounce: DefaultDebounce,
		limit:    pagination.DefaultLimit,
		query:    Query{Page: 1, Filters: map[string]string{}},
		snap:     Snapshot[T]{Page: 1},
	}
}

// SetLogger installs a logger for fetch failures. Call before first use.
func (c *ListController[T]) SetLogger(log zerolog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = log
}

// SetDebounce overrides the search debounce interval. Call before first use.
func (c *ListController[T]) SetDebounce(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debounce = d
}

// SetLimit overrides the page size. Call before first use.
func (c *ListController[T]) SetLimit(limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
}

// Refresh refetches the current page immediately. Called on first render and
// after every successful create, update or delete.
func (c *ListController[T]) Refresh() {
	c.mu.Lock()
	c.startFetchLocked()
	c.mu.Unlock()
}

// SetSearch records a new search term and arms the debounce timer. Only the
// term in place when the timer fires is fetched, and the listing rewinds to
// page one.
func (c *ListController[T]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.query.Search == term {
		return
	}
	c.query.Search = term
	c.query.Page = 1
	c.armTimerLocked()
}

// SetFilter records a filter value under the same debounce as the search, so
// typing a term and picking a filter together cost one request.
func (c *ListController[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.query.Filters[key] == value {
		return
	}
	c.query.Filters[key] = value
	c.query.Page = 1
	c.armTimerLocked()
}

// SetPage turns to the given page immediately, without debounce.
func (c *ListController[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.query.Page = page
	c.startFetchLocked()
}

// Snapshot returns the current list state.
func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// PageWindow returns the run of page numbers the pager should render around
// the current page.
func (c *ListController[T]) PageWindow() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pagination.Window(c.snap.TotalPages, c.snap.Page)
}

func (c *ListController[T]) armTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Stop cannot unschedule a timer that already fired; if a fetch or a
		// newer timer superseded this one while its callback waited on the
		// lock, it must not fire a duplicate request.
		if gen != c.timerGen {
			return
		}
		c.startFetchLocked()
	})
}

func (c *ListController[T]) startFetchLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	q := c.query
	q.Limit = c.limit
	q.Filters = make(map[string]string, len(c.query.Filters))
	for k, v := range c.query.Filters {
		q.Filters[k] = v
	}
	c.snap.Loading = true
	c.notifyLocked()

	go func() {
		page, err := c.fetch(ctx, q)

		c.mu.Lock()
		if seq != c.seq {
			// A newer request owns the snapshot now.
			c.mu.Unlock()
			return
		}
		c.snap.Loading = false
		if err != nil {
			// Keep the last good page on screen alongside the error.
			c.log.Error().Err(err).Str("search", q.Search).Int("page", q.Page).
				Msg("list fetch failed")
			c.snap.Err = err
		} else {
			c.snap.Err = nil
			c.snap.Items = page.Items
			c.snap.TotalCount = page.TotalCount
			c.snap.Page = page.Page
			c.snap.TotalPages = pagination.TotalPages(page.TotalCount, q.Limit)
		}
		c.notifyLocked()
		c.mu.Unlock()
	}()
}

// notifyLocked queues the current snapshot for delivery. A single drain
// goroutine hands queued snapshots to onChange one at a time, in the order
// they were produced, so a view can never see a loading snapshot after the
// result it belongs to. The state lock is not held during the callback.
func (c *ListController[T]) notifyLocked() {
	if c.onChange == nil {
		return
	}
	c.pending = append(c.pending, c.snap)
	if c.delivering {
		return
	}
	c.delivering = true
	go c.drainPending()
}

func (c *ListController[T]) drainPending() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.delivering = false
			c.mu.Unlock()
			return
		}
		snap := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		c.onChange(snap)
	}
}
