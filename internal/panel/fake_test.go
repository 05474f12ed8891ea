package panel

import (
	"context"
	"fmt"
	"sync"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
)

// fakeBackend is an in-memory resource API. Gates, when set, block the
// matching call until a value is sent; started is signalled on entry.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	listing   map[models.ResourceType][]models.Resource
	listErr   error
	pages     map[int]*models.SearchPage
	searchErr error
	searches  []models.SearchFilter
	branches  []string
	sems      []string

	searchStarted chan struct{}
	searchGate    chan struct{}
	listStarted   chan struct{}
	listGate      chan struct{}

	session       models.SessionStatus
	sessionErr    error
	bookmarks     []models.Bookmark
	ack           models.Ack
	ackErr        error
	toggleStarted chan struct{}
	toggleGate    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		listing: map[models.ResourceType][]models.Resource{},
		pages:   map[int]*models.SearchPage{},
		ack:     models.Ack{Success: true},
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) ListResources(_ context.Context, t models.ResourceType) ([]models.Resource, error) {
	f.record("list:" + string(t))
	f.mu.Lock()
	started, gate := f.listStarted, f.listGate
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing[t], nil
}

// holdListing makes the next ListResources calls block until the returned
// release func runs; started is signalled on entry.
func (f *fakeBackend) holdListing() (started chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listStarted = make(chan struct{}, 1)
	f.listGate = make(chan struct{})
	gate := f.listGate
	return f.listStarted, func() { close(gate) }
}

// passListing lets later ListResources calls through without blocking.
func (f *fakeBackend) passListing() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listStarted, f.listGate = nil, nil
}

func (f *fakeBackend) BranchID(_ context.Context, name string) (string, error) {
	f.record("branch:" + name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.branches = append(f.branches, name)
	return "branch-" + name, nil
}

func (f *fakeBackend) SemesterID(_ context.Context, number string) (string, error) {
	f.record("semester:" + number)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sems = append(f.sems, number)
	return "sem-" + number, nil
}

func (f *fakeBackend) Search(_ context.Context, filter models.SearchFilter) (*models.SearchPage, error) {
	f.record(fmt.Sprintf("search:%d", filter.Page))
	if f.searchStarted != nil {
		f.searchStarted <- struct{}{}
	}
	if f.searchGate != nil {
		<-f.searchGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, filter)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	page, ok := f.pages[filter.Page]
	if !ok {
		return &models.SearchPage{Data: []models.Resource{}}, nil
	}
	return page, nil
}

func (f *fakeBackend) Session(context.Context) (models.SessionStatus, error) {
	f.record("session")
	return f.session, f.sessionErr
}

func (f *fakeBackend) ListBookmarks(_ context.Context, userID string) ([]models.Bookmark, error) {
	f.record("bookmarks:" + userID)
	return f.bookmarks, nil
}

func (f *fakeBackend) AddBookmark(_ context.Context, userID, resourceID string) (models.Ack, error) {
	f.record("add:" + resourceID)
	return f.toggle()
}

func (f *fakeBackend) RemoveBookmark(_ context.Context, userID, resourceID string) (models.Ack, error) {
	f.record("remove:" + resourceID)
	return f.toggle()
}

func (f *fakeBackend) toggle() (models.Ack, error) {
	if f.toggleStarted != nil {
		f.toggleStarted <- struct{}{}
	}
	if f.toggleGate != nil {
		<-f.toggleGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ack, f.ackErr
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *noticeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func resources(prefix string, n int) []models.Resource {
	out := make([]models.Resource, n)
	for i := range out {
		out[i] = models.Resource{ID: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return out
}

func ids(list []models.Resource) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}
