// Package viewstate holds the generic controller every screen uses to load a
// remote collection, derive its visible subset and push mutations back.
package viewstate

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/observable"
)

// Gateway is the remote side of one resource collection.
type Gateway[T any, P any] interface {
	List(ctx context.Context, params P) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id int64, payload any) (T, error)
	Delete(ctx context.Context, id int64) error
	Action(ctx context.Context, id int64, verb string, payload any) (T, error)
	BulkAction(ctx context.Context, verb string, payload any) ([]T, error)
}

// Session is the part of the session context a controller reads.
type Session interface {
	IsAuthenticated() bool
	Done() <-chan struct{}
	Invalidate(reason string)
}

type Config[T any, P any] struct {
	Resource string
	Gateway  Gateway[T, P]
	IDOf     func(T) *int64
	Params   P
	AutoLoad bool

	// Filters are the selectable predicates; tab i selects Filters[i]. The
	// first filter is active initially.
	Filters  []Filter[T]
	Search   func(item T, needle string) bool
	Less     func(a, b T) bool
	PageSize int

	Capabilities user.Capabilities
	// Verbs maps action verbs to the capability they need. Unmapped verbs
	// need CanApprove.
	Verbs map[string]Need
	// Messages holds success messages keyed by verb, or by mutation kind for
	// create, update and delete.
	Messages map[string]string

	Session Session
	Logger  *slog.Logger
}

type Controller[T any, P any] struct {
	cfg    Config[T, P]
	logger *slog.Logger
	hub    *observable.Hub[Snapshot[T, P]]

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	closed     bool
	seq        uint64
	loadCancel context.CancelFunc

	status    Status
	items     []T
	errMsg    string
	errKind   apierr.Kind
	notice    string
	hasLoaded bool
	params    P
	lastFetch P

	filter   string
	match    func(T) bool
	tab      int
	search   string
	page     int
	pageSize int
	view     []T
	pageInfo PageInfo

	submitting int
	submitErr  string
	outcomes   []Outcome
}

func NewController[T any, P any](cfg Config[T, P]) *Controller[T, P] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.IDOf == nil {
		cfg.IDOf = func(T) *int64 { return nil }
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[T, P]{
		cfg:      cfg,
		logger:   logger.With(slog.String("resource", cfg.Resource)),
		hub:      observable.NewHub[Snapshot[T, P]](),
		ctx:      ctx,
		cancel:   cancel,
		params:   cfg.Params,
		items:    []T{},
		page:     1,
		pageSize: cfg.PageSize,
		tab:      -1,
	}
	if len(cfg.Filters) > 0 {
		c.filter, c.match, c.tab = cfg.Filters[0].Name, cfg.Filters[0].Match, 0
	}
	c.recompute()

	if cfg.Session != nil {
		go c.watchSession(cfg.Session.Done())
	}

	if cfg.AutoLoad {
		if seq, callCtx, done, err := c.beginLoad(ctx, cfg.Params); err == nil {
			go c.finishLoad(callCtx, done, seq, cfg.Params)
		}
	}

	return c
}

// Load fetches the collection for params. A later Load supersedes this one:
// its result is then discarded and ErrSuperseded returned. Failures are
// recorded in the state and also returned as *apierr.Error.
func (c *Controller[T, P]) Load(ctx context.Context, params P) error {
	seq, callCtx, done, err := c.beginLoad(ctx, params)
	if err != nil {
		return err
	}
	return c.finishLoad(callCtx, done, seq, params)
}

// Reload repeats the most recently requested load.
func (c *Controller[T, P]) Reload(ctx context.Context) error {
	c.mu.Lock()
	params := c.params
	c.mu.Unlock()
	return c.Load(ctx, params)
}

func (c *Controller[T, P]) beginLoad(ctx context.Context, params P) (uint64, context.Context, context.CancelFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, nil, nil, ErrClosed
	}

	c.seq++
	seq := c.seq
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	c.params = params

	if c.cfg.Session != nil && !c.cfg.Session.IsAuthenticated() {
		err := &apierr.Error{Kind: apierr.KindUnauthorized, Message: apierr.MessageUnauthorized}
		c.status, c.errMsg, c.errKind, c.notice = StatusError, err.Message, err.Kind, ""
		c.publishLocked()
		return 0, nil, nil, err
	}

	callCtx, done := c.callContext(ctx)
	c.loadCancel = done
	c.status, c.errMsg, c.errKind, c.notice = StatusLoading, "", apierr.KindUnknown, ""
	c.logger.Debug("Load started", "seq", seq)
	c.publishLocked()

	return seq, callCtx, done, nil
}

func (c *Controller[T, P]) finishLoad(ctx context.Context, done context.CancelFunc, seq uint64, params P) error {
	items, err := c.cfg.Gateway.List(ctx, params)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if seq != c.seq {
		c.logger.Debug("Load result discarded", "seq", seq, "latest", c.seq)
		return ErrSuperseded
	}
	c.loadCancel = nil

	if err != nil {
		apiErr := apierr.From(err)
		c.applyLoadFailureLocked(apiErr)
		c.publishLocked()
		return apiErr
	}

	c.items = c.dedupe(items)
	c.status = StatusLoaded
	c.hasLoaded = true
	c.lastFetch = params
	c.recompute()
	c.logger.Debug("Load completed", "seq", seq, "count", len(c.items))
	c.publishLocked()
	return nil
}

func (c *Controller[T, P]) applyLoadFailureLocked(err *apierr.Error) {
	switch {
	case err.Kind == apierr.KindCanceled:
		// Abandoned by the caller; nothing to report
		if c.hasLoaded {
			c.status = StatusLoaded
		} else {
			c.status = StatusIdle
		}
		return
	case err.Kind == apierr.KindUnauthorized:
		c.invalidateSession("unauthorized response while loading " + c.cfg.Resource)
	case err.Transient() && c.hasLoaded:
		c.status = StatusLoaded
		c.notice = err.Message
		c.logger.Warn("Load failed, keeping last good items", "kind", err.Kind.String(), "error", err)
		return
	}

	c.status = StatusError
	c.errMsg = err.Message
	c.errKind = err.Kind
	c.logger.Warn("Load failed", "kind", err.Kind.String(), "error", err)
}

// Fetch loads a single item and merges it into the collection. A NotFound
// removes any stale local copy and reloads the collection.
func (c *Controller[T, P]) Fetch(ctx context.Context, id int64) (T, error) {
	var zero T

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.mu.Unlock()

	callCtx, done := c.callContext(ctx)
	item, err := c.cfg.Gateway.Get(callCtx, id)
	done()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if err != nil {
		apiErr := apierr.From(err)
		reload := false
		switch apiErr.Kind {
		case apierr.KindUnauthorized:
			c.invalidateSession("unauthorized response while fetching " + c.cfg.Resource)
		case apierr.KindNotFound:
			if c.status != StatusLoading {
				c.removeLocked(id)
				c.recompute()
				c.publishLocked()
			}
			reload = true
		}
		params := c.params
		c.mu.Unlock()
		if reload {
			_ = c.Load(ctx, params)
		}
		return zero, apiErr
	}

	if c.hasLoaded && c.status != StatusLoading {
		c.upsertLocked(item)
		c.recompute()
		c.publishLocked()
	}
	c.mu.Unlock()
	return item, nil
}

// SetFilter activates the named filter. An unknown name shows nothing.
func (c *Controller[T, P]) SetFilter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter, c.match, c.tab = name, matchNone[T], -1
	for i, f := range c.cfg.Filters {
		if f.Name == name {
			c.match, c.tab = f.Match, i
			break
		}
	}
	c.page = 1
	c.recompute()
	c.publishLocked()
}

// SetTab activates Filters[index].
func (c *Controller[T, P]) SetTab(index int) {
	if index < 0 || index >= len(c.cfg.Filters) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.filter, c.match, c.tab = "", matchNone[T], -1
		c.page = 1
		c.recompute()
		c.publishLocked()
		return
	}
	c.SetFilter(c.cfg.Filters[index].Name)
}

func (c *Controller[T, P]) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.search = text
	c.page = 1
	c.recompute()
	c.publishLocked()
}

// SetPage moves to page n when it exists and reports whether it moved.
func (c *Controller[T, P]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 1 || n > c.pageInfo.TotalPages {
		return false
	}
	c.page = n
	c.recompute()
	c.publishLocked()
	return true
}

// SetPageSize changes the page size; n <= 0 disables paging.
func (c *Controller[T, P]) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pageSize = n
	c.page = 1
	c.recompute()
	c.publishLocked()
}

// ViewFor derives the unpaged view for another filter using the current
// search, independently of the active filter.
func (c *Controller[T, P]) ViewFor(filter string) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	match := matchNone[T]
	for _, f := range c.cfg.Filters {
		if f.Name == filter {
			match = f.Match
			break
		}
	}
	view, _ := Derive(c.items, Criteria[T]{
		Match:  match,
		Search: c.cfg.Search,
		Needle: c.search,
		Less:   c.cfg.Less,
	})
	return view
}

func (c *Controller[T, P]) Snapshot() Snapshot[T, P] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe streams snapshots, starting with the current one. Call the
// returned function to unsubscribe.
func (c *Controller[T, P]) Subscribe() (<-chan Snapshot[T, P], func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hub.Subscribe(c.snapshotLocked())
}

func (c *Controller[T, P]) Capabilities() user.Capabilities {
	return c.cfg.Capabilities
}

// Close tears the controller down. In-flight calls are cancelled and their
// results ignored; subscriber channels are closed.
func (c *Controller[T, P]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	c.hub.Close()
}

// callContext derives a call context cancelled by either the caller or the
// controller's teardown.
func (c *Controller[T, P]) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (c *Controller[T, P]) watchSession(done <-chan struct{}) {
	select {
	case <-c.ctx.Done():
		return
	case <-done:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.status == StatusLoading {
		c.seq++
		if c.loadCancel != nil {
			c.loadCancel()
			c.loadCancel = nil
		}
		c.status = StatusError
		c.errMsg = apierr.MessageUnauthorized
		c.errKind = apierr.KindUnauthorized
		c.publishLocked()
	}
	c.logger.Debug("Session ended")
}

func (c *Controller[T, P]) invalidateSession(reason string) {
	if c.cfg.Session != nil {
		c.cfg.Session.Invalidate(reason)
	}
}

func (c *Controller[T, P]) recompute() {
	view, info := Derive(c.items, Criteria[T]{
		Match:    c.match,
		Search:   c.cfg.Search,
		Needle:   c.search,
		Less:     c.cfg.Less,
		Page:     c.page,
		PageSize: c.pageSize,
	})
	c.view = view
	c.pageInfo = info
	c.page = info.Page
}

func (c *Controller[T, P]) publishLocked() {
	if c.closed {
		return
	}
	c.hub.Publish(c.snapshotLocked())
}

func (c *Controller[T, P]) snapshotLocked() Snapshot[T, P] {
	s := Snapshot[T, P]{
		Status:          c.status,
		Items:           slices.Clone(c.items),
		ErrorMessage:    c.errMsg,
		ErrorKind:       c.errKind,
		Notice:          c.notice,
		HasLoaded:       c.hasLoaded,
		IsSubmitting:    c.submitting > 0,
		SubmitError:     c.submitErr,
		View:            slices.Clone(c.view),
		Page:            c.pageInfo,
		Filter:          c.filter,
		Tab:             c.tab,
		Search:          c.search,
		Params:          c.params,
		LastFetchParams: c.lastFetch,
		Capabilities:    c.cfg.Capabilities,
	}
	if len(c.outcomes) > 0 {
		o := c.outcomes[0]
		s.Outcome = &o
	}
	return s
}

// dedupe keeps the first position of each id and the last value seen for it.
func (c *Controller[T, P]) dedupe(items []T) []T {
	out := make([]T, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if id := c.cfg.IDOf(item); id != nil {
			if i, ok := index[*id]; ok {
				out[i] = item
				continue
			}
			index[*id] = len(out)
		}
		out = append(out, item)
	}
	return out
}

func (c *Controller[T, P]) upsertLocked(item T) {
	id := c.cfg.IDOf(item)
	if id != nil {
		for i, existing := range c.items {
			if other := c.cfg.IDOf(existing); other != nil && *other == *id {
				c.items[i] = item
				return
			}
		}
	}
	c.items = append(c.items, item)
}

func (c *Controller[T, P]) removeLocked(id int64) {
	c.items = slices.DeleteFunc(c.items, func(item T) bool {
		other := c.cfg.IDOf(item)
		return other != nil && *other == id
	})
}
