package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

func authenticatedBackend() *fakeBackend {
	api := newFakeBackend()
	api.session = models.SessionStatus{IsAuthenticated: true, User: &models.SessionUser{ID: "u1"}}
	return api
}

func TestResolveSession(t *testing.T) {
	api := newFakeBackend()
	s, err := ResolveSession(context.Background(), api)
	require.NoError(t, err)
	_, ok := s.UserID()
	assert.False(t, ok)

	api = authenticatedBackend()
	s, err = ResolveSession(context.Background(), api)
	require.NoError(t, err)
	id, ok := s.UserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	api.sessionErr = errors.New("dial tcp")
	s, err = ResolveSession(context.Background(), api)
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), s)
}

func TestLoadForSessionAnonymousMakesNoBookmarkCall(t *testing.T) {
	api := newFakeBackend()
	b := NewBookmarks(api, Anonymous(), nil, nil)

	require.NoError(t, b.LoadForSession(context.Background()))
	assert.Empty(t, b.IDs())
	assert.Equal(t, 1, api.callCount("session"))
	assert.Zero(t, api.callCount("bookmarks:"))
}

func TestLoadForSessionSkipsUnlinkedBookmarks(t *testing.T) {
	api := authenticatedBackend()
	api.bookmarks = []models.Bookmark{
		{ID: "b1", ResourceID: "r1", Resource: &models.Resource{ID: "r1"}},
		{ID: "b2", ResourceID: "r2"},
		{ID: "b3", ResourceID: "r3", Resource: &models.Resource{}},
		{ID: "b4", ResourceID: "r4", Resource: &models.Resource{ID: "r4"}},
	}
	b := NewBookmarks(api, Anonymous(), nil, nil)

	require.NoError(t, b.LoadForSession(context.Background()))
	assert.Equal(t, []string{"r1", "r4"}, b.IDs())
	assert.Equal(t, 1, api.callCount("bookmarks:u1"))
}

func TestToggleRequiresUser(t *testing.T) {
	api := newFakeBackend()
	notices := &noticeRecorder{}
	b := NewBookmarks(api, Anonymous(), notices, nil)

	on, err := b.Toggle(context.Background(), "r1")
	assert.False(t, on)
	assert.True(t, errors.Is(err, appErrors.ErrAuthRequired))
	assert.Zero(t, api.totalCalls())
	assert.Equal(t, "Please log in to bookmark.", notices.last().Message)
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	api := newFakeBackend()
	notices := &noticeRecorder{}
	b := NewBookmarks(api, Authenticated("u1"), notices, nil)

	on, err := b.Toggle(context.Background(), "r1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, b.IsBookmarked("r1"))
	assert.Equal(t, Notice{Level: LevelSuccess, Message: "Bookmarked"}, notices.last())

	on, err = b.Toggle(context.Background(), "r1")
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, b.IsBookmarked("r1"))
	assert.Equal(t, "Bookmark removed", notices.last().Message)

	assert.Equal(t, 1, api.callCount("add:r1"))
	assert.Equal(t, 1, api.callCount("remove:r1"))
}

func TestToggleRejectedIsReverted(t *testing.T) {
	cases := []struct {
		name        string
		bookmarked  bool
		ack         models.Ack
		wantMessage string
	}{
		{"add with server message", false, models.Ack{Success: false, Message: "Resource already bookmarked"}, "Resource already bookmarked"},
		{"add without message", false, models.Ack{Success: false}, "Failed to bookmark"},
		{"remove without message", true, models.Ack{Success: false}, "Failed to remove bookmark"},
		{"remove with server message", true, models.Ack{Success: false, Message: "Bookmark not found"}, "Bookmark not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := authenticatedBackend()
			if tc.bookmarked {
				api.bookmarks = []models.Bookmark{{ResourceID: "r1", Resource: &models.Resource{ID: "r1"}}}
			}
			api.ack = tc.ack
			notices := &noticeRecorder{}
			b := NewBookmarks(api, Anonymous(), notices, nil)
			require.NoError(t, b.LoadForSession(context.Background()))

			on, err := b.Toggle(context.Background(), "r1")
			assert.True(t, errors.Is(err, appErrors.ErrServerRejection))
			assert.Equal(t, tc.bookmarked, on)
			assert.Equal(t, tc.bookmarked, b.IsBookmarked("r1"))
			assert.Equal(t, tc.wantMessage, notices.last().Message)
			assert.Equal(t, "SERVER_REJECTION", notices.last().Code)
		})
	}
}

func TestToggleNetworkFailureIsReverted(t *testing.T) {
	api := newFakeBackend()
	api.ackErr = appErrors.Clone(appErrors.ErrNetwork, "POST /bookmark failed")
	notices := &noticeRecorder{}
	b := NewBookmarks(api, Authenticated("u1"), notices, nil)

	on, err := b.Toggle(context.Background(), "r9")
	assert.False(t, on)
	assert.True(t, errors.Is(err, appErrors.ErrToggleFailed))
	assert.False(t, b.IsBookmarked("r9"))
	assert.Equal(t, "Something went wrong!", notices.last().Message)
}

func TestToggleIsTentativeWhileInFlight(t *testing.T) {
	api := newFakeBackend()
	api.toggleStarted = make(chan struct{}, 1)
	api.toggleGate = make(chan struct{})
	b := NewBookmarks(api, Authenticated("u1"), nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := b.Toggle(context.Background(), "r1")
		done <- err
	}()
	<-api.toggleStarted

	assert.True(t, b.IsBookmarked("r1"))
	_, err := b.Toggle(context.Background(), "r1")
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	api.toggleGate <- struct{}{}
	require.NoError(t, <-done)
	assert.True(t, b.IsBookmarked("r1"))
	assert.Equal(t, 1, api.callCount("add:"))
}

func TestToggleRevertAfterTentativeFlip(t *testing.T) {
	api := newFakeBackend()
	api.ack = models.Ack{Success: false}
	api.toggleStarted = make(chan struct{}, 1)
	api.toggleGate = make(chan struct{})
	b := NewBookmarks(api, Authenticated("u1"), nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := b.Toggle(context.Background(), "r1")
		done <- err
	}()
	<-api.toggleStarted
	assert.True(t, b.IsBookmarked("r1"))

	api.toggleGate <- struct{}{}
	assert.Error(t, <-done)
	assert.False(t, b.IsBookmarked("r1"))
}
