package panel

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

// BookmarkAPI is the part of the resource API the bookmark set needs.
type BookmarkAPI interface {
	Session(ctx context.Context) (models.SessionStatus, error)
	ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error)
	AddBookmark(ctx context.Context, userID, resourceID string) (models.Ack, error)
	RemoveBookmark(ctx context.Context, userID, resourceID string) (models.Ack, error)
}

// Session identifies the user bookmarks belong to. The zero value is
// anonymous.
type Session struct {
	userID string
}

// Anonymous is the session of a visitor who is not logged in.
func Anonymous() Session { return Session{} }

// Authenticated is the session of a logged-in user.
func Authenticated(userID string) Session { return Session{userID: userID} }

// UserID returns the user id and whether the session is authenticated.
func (s Session) UserID() (string, bool) { return s.userID, s.userID != "" }

// ResolveSession asks the server who the caller is. On failure it returns
// Anonymous together with the error.
func ResolveSession(ctx context.Context, api BookmarkAPI) (Session, error) {
	status, err := api.Session(ctx)
	if err != nil {
		return Anonymous(), err
	}
	if !status.IsAuthenticated || status.User == nil || status.User.ID == "" {
		return Anonymous(), nil
	}
	return Authenticated(status.User.ID), nil
}

// Bookmarks is the in-memory set of resource ids the session user has
// bookmarked. It is loaded once and then kept current by Toggle; it is never
// re-derived from the server.
type Bookmarks struct {
	api      BookmarkAPI
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	session Session
	ids     map[string]struct{}
	pending map[string]struct{}
}

// NewBookmarks creates an empty bookmark set for session.
func NewBookmarks(api BookmarkAPI, session Session, notifier Notifier, logger *zap.Logger) *Bookmarks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bookmarks{
		api:      api,
		notifier: orNop(notifier),
		logger:   logger,
		session:  session,
		ids:      map[string]struct{}{},
		pending:  map[string]struct{}{},
	}
}

// Session returns the session the set belongs to.
func (b *Bookmarks) Session() Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// LoadForSession resolves the session and loads its bookmarks. Failures are
// logged and returned but not published; the set stays empty.
func (b *Bookmarks) LoadForSession(ctx context.Context) error {
	session, err := ResolveSession(ctx, b.api)
	if err != nil {
		b.logger.Warn("session lookup failed", zap.Error(err))
		return err
	}
	b.mu.Lock()
	b.session = session
	b.mu.Unlock()
	return b.Load(ctx)
}

// Load replaces the set with the session user's bookmarks. Anonymous
// sessions load nothing and make no call. Bookmarks whose resource is no
// longer linked are skipped.
func (b *Bookmarks) Load(ctx context.Context) error {
	userID, ok := b.Session().UserID()
	if !ok {
		return nil
	}

	list, err := b.api.ListBookmarks(ctx, userID)
	if err != nil {
		b.logger.Warn("bookmark fetch failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	ids := make(map[string]struct{}, len(list))
	for _, bm := range list {
		if bm.Resource == nil || bm.Resource.ID == "" {
			continue
		}
		ids[bm.Resource.ID] = struct{}{}
	}

	b.mu.Lock()
	b.ids = ids
	b.mu.Unlock()
	return nil
}

// IsBookmarked reports whether resourceID is in the set.
func (b *Bookmarks) IsBookmarked(resourceID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.ids[resourceID]
	return ok
}

// IDs returns the bookmarked resource ids in sorted order.
func (b *Bookmarks) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.ids))
	for id := range b.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle flips the bookmark state of resourceID and returns the resulting
// state. The flip is applied at once and reverted if the server rejects it
// or cannot be reached. A second Toggle of the same id while one is in
// flight is refused.
func (b *Bookmarks) Toggle(ctx context.Context, resourceID string) (bool, error) {
	b.mu.Lock()
	userID, ok := b.session.UserID()
	if !ok {
		b.mu.Unlock()
		return false, b.fail(appErrors.ErrAuthRequired, "", nil)
	}
	_, was := b.ids[resourceID]
	if _, busy := b.pending[resourceID]; busy {
		b.mu.Unlock()
		return was, appErrors.Clone(appErrors.ErrConflict, "bookmark change already in progress")
	}
	b.pending[resourceID] = struct{}{}
	b.set(resourceID, !was)
	b.mu.Unlock()

	var (
		ack      models.Ack
		err      error
		fallback string
		success  string
	)
	if was {
		ack, err = b.api.RemoveBookmark(ctx, userID, resourceID)
		fallback, success = "Failed to remove bookmark", "Bookmark removed"
	} else {
		ack, err = b.api.AddBookmark(ctx, userID, resourceID)
		fallback, success = "Failed to bookmark", "Bookmarked"
	}

	b.mu.Lock()
	delete(b.pending, resourceID)
	if err != nil || !ack.Success {
		b.set(resourceID, was)
	}
	b.mu.Unlock()

	switch {
	case err != nil:
		b.logger.Warn("bookmark toggle failed", zap.String("resource_id", resourceID), zap.Error(err))
		return was, b.fail(appErrors.ErrToggleFailed, "", err)
	case !ack.Success:
		msg := ack.Message
		if msg == "" {
			msg = fallback
		}
		return was, b.fail(appErrors.ErrServerRejection, msg, nil)
	}

	b.notifier.Notify(Notice{Level: LevelSuccess, Message: success})
	return !was, nil
}

func (b *Bookmarks) set(resourceID string, on bool) {
	if on {
		b.ids[resourceID] = struct{}{}
		return
	}
	delete(b.ids, resourceID)
}

func (b *Bookmarks) fail(condition *appErrors.Error, message string, cause error) error {
	e := appErrors.Clone(condition, message)
	if cause != nil {
		e = appErrors.Wrap(cause, e.Code, e.Status, e.Message)
	}
	b.notifier.Notify(Notice{Level: LevelError, Code: e.Code, Message: e.Message})
	return e
}
