package panel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

var validSelection = Selection{Query: "data structures", Branch: "CSE", Semester: "3"}

func newResultSet(api *fakeBackend, notices *noticeRecorder, t models.ResourceType) *ResultSet {
	return NewResultSet(api, t, notices, nil)
}

func TestInitialFetchShowsFirstPage(t *testing.T) {
	for _, n := range []int{0, 3, 5, 6, 12} {
		t.Run(fmt.Sprintf("%d listed", n), func(t *testing.T) {
			api := newFakeBackend()
			api.listing[models.ResourceNotes] = resources("r", n)
			rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

			snap, err := rs.InitialFetch(context.Background())
			require.NoError(t, err)
			assert.Len(t, snap.Results, min(n, PageSize))
			assert.Equal(t, n > PageSize, snap.HasMore)
			assert.True(t, snap.InitialLoaded)
			assert.Equal(t, 1, snap.Page)
		})
	}
}

func TestInitialFetchRunsOnce(t *testing.T) {
	api := newFakeBackend()
	api.listing[models.ResourceSyllabus] = resources("r", 2)
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceSyllabus)

	_, err := rs.InitialFetch(context.Background())
	require.NoError(t, err)
	_, err = rs.InitialFetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("list:"))

	rs.Reset()
	_, err = rs.InitialFetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.callCount("list:"))
}

func TestInitialFetchFailure(t *testing.T) {
	api := newFakeBackend()
	api.listErr = appErrors.Clone(appErrors.ErrNetwork, "GET /resource failed")
	notices := &noticeRecorder{}
	rs := newResultSet(api, notices, models.ResourceNotes)

	snap, err := rs.InitialFetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInitialFetchFailed))
	assert.True(t, snap.InitialLoaded)
	assert.Empty(t, snap.Results)
	assert.Equal(t, Notice{Level: LevelError, Code: "INITIAL_FETCH_FAILED", Message: "Failed to fetch initial resources"}, notices.last())

	_, err = rs.InitialFetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("list:"))
}

func TestSearchInvalidSelectionMakesNoCalls(t *testing.T) {
	for _, sel := range []Selection{
		{Query: " ", Branch: "CSE", Semester: "3"},
		{Query: "trees", Semester: "3"},
		{Query: "trees", Branch: "CSE"},
		{},
	} {
		api := newFakeBackend()
		notices := &noticeRecorder{}
		rs := newResultSet(api, notices, models.ResourceNotes)

		_, err := rs.Search(context.Background(), sel)
		assert.True(t, errors.Is(err, appErrors.ErrValidation))
		assert.Zero(t, api.totalCalls())
		assert.Equal(t, "Please fill in all fields", notices.last().Message)
	}
}

func TestSearchMidsemScenario(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("m", 5), Total: 9, HasMore: true}
	rs := newResultSet(api, &noticeRecorder{}, Lookup("midsem-papers").(Supported).Config.Type)

	snap, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	assert.Equal(t, []string{"CSE"}, api.branches)
	assert.Equal(t, []string{"3"}, api.sems)
	require.Len(t, api.searches, 1)
	assert.Equal(t, models.SearchFilter{
		Type:     models.ResourceMidSemPaper,
		Branch:   "branch-CSE",
		Semester: "sem-3",
		Query:    "data structures",
		Page:     1,
		Limit:    5,
	}, api.searches[0])

	assert.Len(t, snap.Results, 5)
	assert.Equal(t, 9, snap.Total)
	assert.Equal(t, 1, snap.Page)
	assert.True(t, snap.HasMore)
	assert.True(t, snap.Searched)
}

func TestSearchBestNotesFirstSemesterUsesSharedCurriculum(t *testing.T) {
	api := newFakeBackend()
	rs := newResultSet(api, &noticeRecorder{}, Lookup("best-notes").(Supported).Config.Type)

	_, err := rs.Search(context.Background(), Selection{Query: "maths", Branch: "ME", Semester: "1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"COMMON"}, api.branches)
	assert.Equal(t, []string{"0"}, api.sems)
	assert.Equal(t, "branch-COMMON", api.searches[0].Branch)
	assert.Equal(t, "sem-0", api.searches[0].Semester)
	assert.Equal(t, models.ResourceNotes, api.searches[0].Type)
}

func TestSearchFailureKeepsPreviousResults(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 3), Total: 3}
	notices := &noticeRecorder{}
	rs := newResultSet(api, notices, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchErr = errors.New("connection reset")
	snap, err := rs.Search(context.Background(), Selection{Query: "other", Branch: "EE", Semester: "5"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrSearchFailed))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(snap.Results))
	assert.Equal(t, "Search failed. Please try again.", notices.last().Message)
}

func TestLoadMoreAppendsPagesInOrder(t *testing.T) {
	const k = 3
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("p1-", 5), Total: 20, HasMore: true}
	for p := 2; p <= k+1; p++ {
		api.pages[p] = &models.SearchPage{Data: resources(fmt.Sprintf("p%d-", p), 5), Total: 20, HasMore: p < k+1}
	}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)
	var snap Snapshot
	for i := 0; i < k; i++ {
		snap, err = rs.LoadMore(context.Background())
		require.NoError(t, err)
	}

	assert.Len(t, snap.Results, 5+5*k)
	assert.Equal(t, "p1-1", snap.Results[0].ID)
	assert.Equal(t, "p2-1", snap.Results[5].ID)
	assert.Equal(t, "p4-5", snap.Results[len(snap.Results)-1].ID)
	assert.Equal(t, k+1, snap.Page)
	assert.False(t, snap.HasMore)

	// Identifiers are resolved again for every page.
	assert.Equal(t, k+1, api.callCount("branch:"))
	assert.Equal(t, k+1, api.callCount("semester:"))
	for i, f := range api.searches {
		assert.Equal(t, i+1, f.Page)
		assert.Equal(t, PageSize, f.Limit)
		assert.Equal(t, "data structures", f.Query)
	}
}

func TestLoadMoreWithoutMoreIsNoOp(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("r", 3), Total: 3, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	before, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)
	calls := api.totalCalls()

	after, err := rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, calls, api.totalCalls())
}

func TestLoadMoreRevealsInitialListing(t *testing.T) {
	api := newFakeBackend()
	api.listing[models.ResourceNotes] = resources("r", 12)
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.InitialFetch(context.Background())
	require.NoError(t, err)

	snap, err := rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Results, 10)
	assert.True(t, snap.HasMore)

	snap, err = rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ids(resources("r", 12)), ids(snap.Results))
	assert.False(t, snap.HasMore)
	assert.Equal(t, 1, api.totalCalls())
}

func TestLoadMoreFailureKeepsResults(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("r", 5), Total: 10, HasMore: true}
	notices := &noticeRecorder{}
	rs := newResultSet(api, notices, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchErr = errors.New("timeout")
	snap, err := rs.LoadMore(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrLoadMoreFailed))
	assert.Len(t, snap.Results, 5)
	assert.Equal(t, 1, snap.Page)
	assert.True(t, snap.HasMore)
	assert.Equal(t, "Failed to load more resources", notices.last().Message)
	assert.Equal(t, 2, api.callCount("search:"))
}

func TestLoadMoreDiscardedAfterReset(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 5), Total: 10, HasMore: true}
	api.pages[2] = &models.SearchPage{Data: resources("b", 5), Total: 10, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchStarted = make(chan struct{})
	api.searchGate = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := rs.LoadMore(context.Background())
		done <- err
	}()

	<-api.searchStarted
	rs.Reset()
	api.searchGate <- struct{}{}

	assert.ErrorIs(t, <-done, ErrStale)
	snap := rs.Snapshot()
	assert.Empty(t, snap.Results)
	assert.Equal(t, 1, snap.Page)
	assert.False(t, snap.HasMore)
}

func TestLoadMoreDiscardedAfterNewSearch(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 5), Total: 10, HasMore: true}
	api.pages[2] = &models.SearchPage{Data: resources("stale", 5), Total: 10, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchStarted = make(chan struct{})
	api.searchGate = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := rs.LoadMore(context.Background())
		done <- err
	}()
	<-api.searchStarted

	searched := make(chan Snapshot, 1)
	go func() {
		snap, _ := rs.Search(context.Background(), Selection{Query: "new", Branch: "EE", Semester: "6"})
		searched <- snap
	}()
	<-api.searchStarted

	// Release both; whichever lands first, the stale page must not.
	api.searchGate <- struct{}{}
	api.searchGate <- struct{}{}

	snaps := []Snapshot{}
	var loadErr error
	for i := 0; i < 2; i++ {
		select {
		case s := <-searched:
			snaps = append(snaps, s)
		case loadErr = <-done:
		}
	}
	require.Len(t, snaps, 1)
	assert.ErrorIs(t, loadErr, ErrStale)

	final := rs.Snapshot()
	assert.Len(t, final.Results, 5)
	for _, r := range final.Results {
		assert.NotContains(t, r.ID, "stale")
	}
}

func TestConcurrentLoadMoreIsCollapsed(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 5), Total: 10, HasMore: true}
	api.pages[2] = &models.SearchPage{Data: resources("b", 5), Total: 10, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchStarted = make(chan struct{}, 1)
	api.searchGate = make(chan struct{})
	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := rs.LoadMore(context.Background())
		done <- snap
	}()
	<-api.searchStarted

	snap, err := rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Results, 5)

	api.searchGate <- struct{}{}
	final := <-done
	assert.Len(t, final.Results, 10)
	assert.Equal(t, 2, api.callCount("search:"))
}

func TestResetClearsEverything(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 5), Total: 10, HasMore: true}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)
	rs.Reset()

	assert.Equal(t, Snapshot{Results: []models.Resource{}, Page: 1}, rs.Snapshot())
}

func TestLoadMoreIgnoredWhileSearchPending(t *testing.T) {
	api := newFakeBackend()
	api.pages[1] = &models.SearchPage{Data: resources("a", 5), Total: 10, HasMore: true}
	api.pages[2] = &models.SearchPage{Data: resources("b", 5), Total: 10, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)

	api.searchStarted = make(chan struct{}, 1)
	api.searchGate = make(chan struct{})
	next := Selection{Query: "new", Branch: "EE", Semester: "6"}
	searched := make(chan error, 1)
	go func() {
		_, err := rs.Search(context.Background(), next)
		searched <- err
	}()
	<-api.searchStarted

	snap, err := rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 2, api.callCount("search:"))

	api.searchGate <- struct{}{}
	require.NoError(t, <-searched)

	snap = rs.Snapshot()
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, ids(resources("a", 5)), ids(snap.Results))
	for _, f := range api.searches {
		assert.NotEqual(t, 2, f.Page)
	}

	api.searchStarted, api.searchGate = nil, nil
	snap, err = rs.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Page)
	assert.Len(t, snap.Results, 10)
	last := api.searches[len(api.searches)-1]
	assert.Equal(t, "new", last.Query)
	assert.Equal(t, 2, last.Page)
}

func TestInitialFetchOvertakenBySearch(t *testing.T) {
	api := newFakeBackend()
	api.listing[models.ResourceNotes] = resources("l", 8)
	api.pages[1] = &models.SearchPage{Data: resources("s", 3), Total: 3, HasMore: false}
	rs := newResultSet(api, &noticeRecorder{}, models.ResourceNotes)

	started, release := api.holdListing()
	fetched := make(chan error, 1)
	go func() {
		_, err := rs.InitialFetch(context.Background())
		fetched <- err
	}()
	<-started

	_, err := rs.Search(context.Background(), validSelection)
	require.NoError(t, err)
	release()

	assert.ErrorIs(t, <-fetched, ErrStale)
	snap := rs.Snapshot()
	assert.Equal(t, ids(resources("s", 3)), ids(snap.Results))
	assert.Equal(t, 3, snap.Total)
	assert.True(t, snap.InitialLoaded)
	assert.True(t, snap.Searched)

	api.passListing()
	_, err = rs.InitialFetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("list:"))
}
