package panel

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

// PageSize is the number of results shown initially and fetched per page.
const PageSize = 5

// ErrStale is returned when a response arrived after a Reset or a newer
// Search and was discarded.
var ErrStale = errors.New("panel: response discarded after reset")

// SearchAPI is the part of the resource API the result set needs.
type SearchAPI interface {
	ListResources(ctx context.Context, resourceType models.ResourceType) ([]models.Resource, error)
	BranchID(ctx context.Context, branchName string) (string, error)
	SemesterID(ctx context.Context, semNumber string) (string, error)
	Search(ctx context.Context, filter models.SearchFilter) (*models.SearchPage, error)
}

// Snapshot is a copy of the result state.
type Snapshot struct {
	Results       []models.Resource
	Total         int
	Page          int
	HasMore       bool
	InitialLoaded bool
	Searched      bool
}

// ResultSet owns the accumulated results of one category activation.
// Every network round trip is tagged with the generation current when it
// started; Reset and Search bump the generation so late answers are dropped.
type ResultSet struct {
	api          SearchAPI
	resourceType models.ResourceType
	notifier     Notifier
	logger       *zap.Logger

	mu            sync.Mutex
	generation    uint64
	results       []models.Resource
	total         int
	page          int
	hasMore       bool
	initialLoaded bool
	initialBusy   bool
	initialGen    uint64
	listing       []models.Resource
	searched      *Selection
	searchBusy    bool
	searchGen     uint64
	moreBusy      bool
	moreGen       uint64
}

// NewResultSet creates a result set for one resource type.
func NewResultSet(api SearchAPI, resourceType models.ResourceType, notifier Notifier, logger *zap.Logger) *ResultSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultSet{
		api:          api,
		resourceType: resourceType,
		notifier:     orNop(notifier),
		logger:       logger,
		page:         1,
	}
}

// Snapshot returns a copy of the current state.
func (r *ResultSet) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *ResultSet) snapshotLocked() Snapshot {
	return Snapshot{
		Results:       append([]models.Resource{}, r.results...),
		Total:         r.total,
		Page:          r.page,
		HasMore:       r.hasMore,
		InitialLoaded: r.initialLoaded,
		Searched:      r.searched != nil,
	}
}

// InitialFetch shows the first PageSize entries of the unfiltered listing.
// It runs at most once until Reset; later calls return the current state.
// A failure still marks the initial load done, leaving results empty.
func (r *ResultSet) InitialFetch(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	if r.initialLoaded || r.initialBusy {
		defer r.mu.Unlock()
		return r.snapshotLocked(), nil
	}
	gen := r.generation
	r.initialBusy, r.initialGen = true, gen
	r.mu.Unlock()

	list, err := r.api.ListResources(ctx, r.resourceType)

	r.mu.Lock()
	owner := r.initialBusy && r.initialGen == gen
	if owner {
		r.initialBusy = false
	}
	if gen != r.generation {
		// A Search overtook the listing; the activation no longer needs it.
		if owner {
			r.initialLoaded = true
		}
		snap := r.snapshotLocked()
		r.mu.Unlock()
		return snap, ErrStale
	}
	r.initialLoaded = true
	if err != nil {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		r.logger.Warn("initial fetch failed", zap.String("type", string(r.resourceType)), zap.Error(err))
		return snap, r.fail(appErrors.ErrInitialFetchFailed, err)
	}

	r.listing = list
	r.results = append([]models.Resource{}, list[:min(PageSize, len(list))]...)
	r.total = len(list)
	r.page = 1
	r.hasMore = len(list) > PageSize
	snap := r.snapshotLocked()
	r.mu.Unlock()
	return snap, nil
}

// Search replaces the results with page 1 for sel. An incomplete selection
// fails with a validation error before any network call. On failure the
// previous results are kept.
func (r *ResultSet) Search(ctx context.Context, sel Selection) (Snapshot, error) {
	if !sel.Valid() {
		return r.Snapshot(), r.fail(appErrors.Clone(appErrors.ErrValidation, "Please fill in all fields"), nil)
	}

	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.searchBusy, r.searchGen = true, gen
	r.mu.Unlock()

	page, err := r.fetchPage(ctx, sel, 1)

	r.mu.Lock()
	if r.searchGen == gen {
		r.searchBusy = false
	}
	if gen != r.generation {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		return snap, ErrStale
	}
	if err != nil {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		r.logger.Warn("search failed", zap.String("type", string(r.resourceType)), zap.Error(err))
		return snap, r.fail(appErrors.ErrSearchFailed, err)
	}

	r.results = append([]models.Resource{}, page.Data...)
	r.total = page.Total
	r.page = 1
	r.hasMore = page.HasMore
	r.listing = nil
	r.searched = &sel
	snap := r.snapshotLocked()
	r.mu.Unlock()
	return snap, nil
}

// LoadMore appends the next page. It is a no-op when there is nothing more,
// another LoadMore is in flight or a Search has not resolved yet. Before any
// Search it reveals the next entries of the retained unfiltered listing
// without a network call.
func (r *ResultSet) LoadMore(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	if !r.hasMore || r.searchBusy || (r.moreBusy && r.moreGen == r.generation) {
		defer r.mu.Unlock()
		return r.snapshotLocked(), nil
	}

	if r.searched == nil {
		defer r.mu.Unlock()
		end := min(len(r.results)+PageSize, len(r.listing))
		r.results = append(r.results, r.listing[len(r.results):end]...)
		r.page++
		r.hasMore = end < len(r.listing)
		return r.snapshotLocked(), nil
	}

	sel := *r.searched
	next := r.page + 1
	gen := r.generation
	r.moreBusy, r.moreGen = true, gen
	r.mu.Unlock()

	page, err := r.fetchPage(ctx, sel, next)

	r.mu.Lock()
	if r.moreGen == gen {
		r.moreBusy = false
	}
	if gen != r.generation {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		return snap, ErrStale
	}
	if err != nil {
		snap := r.snapshotLocked()
		r.mu.Unlock()
		r.logger.Warn("load more failed", zap.Int("page", next), zap.Error(err))
		return snap, r.fail(appErrors.ErrLoadMoreFailed, err)
	}

	r.results = append(r.results, page.Data...)
	r.total = page.Total
	r.page = next
	r.hasMore = page.HasMore
	snap := r.snapshotLocked()
	r.mu.Unlock()
	return snap, nil
}

// Reset clears results, the page cursor and the initial-load flag, and
// invalidates every request still in flight.
func (r *ResultSet) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.results = nil
	r.total = 0
	r.page = 1
	r.hasMore = false
	r.initialLoaded = false
	r.initialBusy = false
	r.listing = nil
	r.searched = nil
	r.searchBusy = false
	r.moreBusy = false
}

// fetchPage resolves branch and semester ids afresh and requests one page.
func (r *ResultSet) fetchPage(ctx context.Context, sel Selection, page int) (*models.SearchPage, error) {
	branchCode, semesterCode := sel.Resolve()

	branchID, err := r.api.BranchID(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	semesterID, err := r.api.SemesterID(ctx, semesterCode)
	if err != nil {
		return nil, err
	}

	return r.api.Search(ctx, models.SearchFilter{
		Type:     r.resourceType,
		Branch:   branchID,
		Semester: semesterID,
		Query:    sel.Query,
		Page:     page,
		Limit:    PageSize,
	})
}

// fail publishes condition as a notice and returns it wrapping cause.
// It must be called without r.mu held.
func (r *ResultSet) fail(condition *appErrors.Error, cause error) error {
	r.notifier.Notify(Notice{Level: LevelError, Code: condition.Code, Message: condition.Message})
	if cause == nil {
		return condition
	}
	return appErrors.Wrap(cause, condition.Code, condition.Status, condition.Message)
}
