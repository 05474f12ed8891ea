// Package panel implements the faceted search panel: filter inputs, the
// paginated result set, the bookmark set and the per-category activation
// lifecycle. Rendering is left to callers.
package panel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// State is the activation state of a panel.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// Backend is the resource API as the panel consumes it.
type Backend interface {
	SearchAPI
	BookmarkAPI
}

// Panel ties a category's result set, the filter inputs and the bookmark set
// together. It is safe for concurrent use.
type Panel struct {
	api       Backend
	notifier  Notifier
	logger    *zap.Logger
	bookmarks *Bookmarks

	mu         sync.Mutex
	activation uint64
	resolution Resolution
	state      State
	filter     FilterState
	results    *ResultSet
	mounted    bool
}

// New creates an inactive panel.
func New(api Backend, notifier Notifier, logger *zap.Logger) *Panel {
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier = orNop(notifier)
	return &Panel{
		api:        api,
		notifier:   notifier,
		logger:     logger,
		bookmarks:  NewBookmarks(api, Anonymous(), notifier, logger),
		resolution: Unsupported{},
	}
}

// Mount loads the bookmark set for the current session. Only the first call
// does any work.
func (p *Panel) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.mounted {
		p.mu.Unlock()
		return nil
	}
	p.mounted = true
	p.mu.Unlock()
	return p.bookmarks.LoadForSession(ctx)
}

// Activate makes key the active category. Switching category resets the
// filter and results and runs the initial listing fetch. Re-activating the
// current category does nothing. Unknown keys leave the panel idle and
// resolve to Unsupported.
func (p *Panel) Activate(ctx context.Context, key string) (Resolution, error) {
	p.mu.Lock()
	if cur, ok := p.resolution.(Supported); ok && string(cur.Config.Key) == key && p.state != StateIdle {
		defer p.mu.Unlock()
		return p.resolution, nil
	}

	p.activation++
	p.filter.Reset()
	if p.results != nil {
		p.results.Reset()
	}
	p.resolution = Lookup(key)
	p.state = StateIdle
	supported, ok := p.resolution.(Supported)
	if !ok {
		p.results = nil
		p.mu.Unlock()
		p.logger.Debug("category not supported", zap.String("category", key))
		return p.resolution, nil
	}
	p.results = NewResultSet(p.api, supported.Config.Type, p.notifier, p.logger)
	p.mu.Unlock()

	return supported, p.load(ctx)
}

// load runs the initial fetch of the active category when it has not
// completed yet, moving Idle → Loading → Loaded. A failed fetch still ends
// in Loaded with empty results.
func (p *Panel) load(ctx context.Context) error {
	p.mu.Lock()
	if p.results == nil || p.state != StateIdle {
		p.mu.Unlock()
		return nil
	}
	act := p.activation
	results := p.results
	p.state = StateLoading
	p.mu.Unlock()

	_, err := results.InitialFetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if act == p.activation && p.state == StateLoading {
		p.state = StateLoaded
	}
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}

// Reset clears the filter and results of the active category and, like a
// fresh activation, fetches the initial listing again.
func (p *Panel) Reset(ctx context.Context) error {
	p.mu.Lock()
	if p.results == nil {
		p.mu.Unlock()
		return nil
	}
	p.activation++
	p.filter.Reset()
	p.results.Reset()
	p.state = StateIdle
	p.mu.Unlock()
	return p.load(ctx)
}

// SetQuery sets the free-text query.
func (p *Panel) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.SetQuery(q)
}

// SetBranch sets the branch code.
func (p *Panel) SetBranch(code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.SetBranch(code)
}

// SetSemester sets the semester number.
func (p *Panel) SetSemester(number string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.SetSemester(number)
}

// Selection returns the current filter inputs.
func (p *Panel) Selection() Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter.Selection()
}

// Search runs a search with the current filter inputs.
func (p *Panel) Search(ctx context.Context) (Snapshot, error) {
	results, sel := p.active()
	if results == nil {
		return Snapshot{Page: 1}, nil
	}
	return results.Search(ctx, sel)
}

// LoadMore appends the next page of results.
func (p *Panel) LoadMore(ctx context.Context) (Snapshot, error) {
	results, _ := p.active()
	if results == nil {
		return Snapshot{Page: 1}, nil
	}
	return results.LoadMore(ctx)
}

// Results returns the current result state.
func (p *Panel) Results() Snapshot {
	results, _ := p.active()
	if results == nil {
		return Snapshot{Page: 1}
	}
	return results.Snapshot()
}

// ToggleBookmark flips the bookmark of resourceID.
func (p *Panel) ToggleBookmark(ctx context.Context, resourceID string) (bool, error) {
	return p.bookmarks.Toggle(ctx, resourceID)
}

// Bookmarks returns the bookmark set.
func (p *Panel) Bookmarks() *Bookmarks { return p.bookmarks }

// State returns the activation state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Resolution returns the active category resolution.
func (p *Panel) Resolution() Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolution
}

func (p *Panel) active() (*ResultSet, Selection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results, p.filter.Selection()
}
