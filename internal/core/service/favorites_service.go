package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/api/metrics"
	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

// FavoritesService is the single owner of the favorite set. Toggles are
// applied optimistically and reverted when the backend rejects them; rapid
// toggles on the same post are serialized per post id so none is lost.
type FavoritesService struct {
	gateway  ports.Gateway
	sessions *SessionService
	logger   zerolog.Logger

	mu  sync.RWMutex
	ids map[int]struct{}

	// perPost serializes in-flight toggles for one post id.
	perPostMu sync.Mutex
	perPost   map[int]*sync.Mutex
}

func NewFavoritesService(gateway ports.Gateway, sessions *SessionService, logger zerolog.Logger) *FavoritesService {
	return &FavoritesService{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
		ids:      make(map[int]struct{}),
		perPost:  make(map[int]*sync.Mutex),
	}
}

// IsFavorite reports membership. Always false when unauthenticated.
func (f *FavoritesService) IsFavorite(postID int) bool {
	if !f.sessions.Current().IsAuthenticated {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[postID]
	return ok
}

// IDs returns the favorite post ids in ascending order.
func (f *FavoritesService) IDs() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]int, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Load bulk-fetches the favorite ids and replaces the set wholesale.
func (f *FavoritesService) Load(ctx context.Context) error {
	if !f.sessions.Current().IsAuthenticated {
		return domain.ErrUnauthenticated
	}
	ids, err := f.gateway.ListFavouriteIDs(ctx)
	if err != nil {
		return err
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	f.mu.Lock()
	f.ids = set
	f.mu.Unlock()
	return nil
}

// Toggle flips membership for one post and returns the resulting state. The
// flip is applied locally first, then confirmed with the backend; a failed
// call reverts the flip and returns the error.
func (f *FavoritesService) Toggle(ctx context.Context, postID int) (bool, error) {
	if !f.sessions.Current().IsAuthenticated {
		return false, domain.ErrUnauthenticated
	}

	lock := f.postLock(postID)
	lock.Lock()
	defer lock.Unlock()

	adding := f.flip(postID)

	var err error
	if adding {
		err = f.gateway.AddFavourite(ctx, postID)
	} else {
		err = f.gateway.RemoveFavourite(ctx, postID)
	}
	if err != nil {
		f.flip(postID)
		metrics.FavouriteRollbacksTotal.Inc()
		f.logger.Warn().Err(err).Int("post_id", postID).Msg("favorite toggle failed, reverted")
		return !adding, err
	}
	return adding, nil
}

// Reset empties the set. Registered as a logout hook.
func (f *FavoritesService) Reset() {
	f.mu.Lock()
	f.ids = make(map[int]struct{})
	f.mu.Unlock()
}

// flip toggles membership and reports whether the post is now a favorite.
func (f *FavoritesService) flip(postID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ids[postID]; ok {
		delete(f.ids, postID)
		return false
	}
	f.ids[postID] = struct{}{}
	return true
}

func (f *FavoritesService) postLock(postID int) *sync.Mutex {
	f.perPostMu.Lock()
	defer f.perPostMu.Unlock()
	lock, ok := f.perPost[postID]
	if !ok {
		lock = &sync.Mutex{}
		f.perPost[postID] = lock
	}
	return lock
}
