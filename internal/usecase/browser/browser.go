// Package browser runs listing queries for a changing filter. Only the most
// recently requested filter may publish results.
package browser

import (
	"context"
	"errors"
	"sync"

	"jobboard/internal/domain/listing"
	"jobboard/internal/filter"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/logging"
)

// ErrSuperseded is returned by Apply when a newer Apply started before this
// one's results arrived. Its results were discarded.
var ErrSuperseded = errors.New("browser: superseded by a newer request")

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is what the browser currently exposes. Listings is only set in
// Loaded; Location only changes when a filter loads successfully.
type Snapshot struct {
	State    State
	Filter   filter.State
	Query    string
	Location string
	Listings []listing.Listing
	Count    int
	Failed   bool
}

type Option func(*Browser)

// WithBasePath sets the path the canonical location is built on. Default "/jobs".
func WithBasePath(base string) Option {
	return func(b *Browser) { b.base = base }
}

func WithLimit(n int) Option {
	return func(b *Browser) { b.limit = n }
}

func WithLogger(log *logging.Logger) Option {
	return func(b *Browser) { b.log = log }
}

// OnChange registers fn to receive every accepted transition, in order. fn
// runs with the browser locked and must not call back into it.
func OnChange(fn func(Snapshot)) Option {
	return func(b *Browser) { b.onChange = fn }
}

type Browser struct {
	store listing.Store
	base  string
	limit int
	log   *logging.Logger

	mu       sync.Mutex
	token    uint64
	snap     Snapshot
	onChange func(Snapshot)
}

func New(store listing.Store, opts ...Option) *Browser {
	b := &Browser{store: store, base: "/jobs", log: logging.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	b.snap.Location = b.base
	return b
}

// Apply moves to Loading for f and queries the store. The returned snapshot
// is the one this call published; a call overtaken by a newer Apply returns
// the current snapshot and ErrSuperseded.
func (b *Browser) Apply(ctx context.Context, f filter.State) (Snapshot, error) {
	b.mu.Lock()
	b.token++
	token := b.token
	b.snap = Snapshot{
		State:    Loading,
		Filter:   f,
		Query:    filter.Encode(f),
		Location: b.snap.Location,
	}
	b.publish()
	b.mu.Unlock()

	items, err := b.store.Select(ctx, filter.ToPredicate(f), b.limit)

	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.token {
		b.log.Debug("discarding stale browse result", "token", token, "latest", b.token)
		return b.snap, ErrSuperseded
	}

	if err != nil {
		b.snap.State = Failed
		b.snap.Failed = true
		b.snap.Listings = nil
		b.snap.Count = 0
		b.publish()
		return b.snap, apperr.Store("failed to load listings", err)
	}

	b.snap.State = Loaded
	b.snap.Listings = items
	b.snap.Count = len(items)
	b.snap.Location = f.Path(b.base)
	b.publish()
	return b.snap, nil
}

// Refresh re-applies the current filter.
func (b *Browser) Refresh(ctx context.Context) (Snapshot, error) {
	return b.Apply(ctx, b.Snapshot().Filter)
}

func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

func (b *Browser) publish() {
	if b.onChange != nil {
		b.onChange(b.snap)
	}
}
