package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/objectid"
	"github.com/lllypuk/userhub/internal/domain/post"
)

// PostAggregator computes post reports over an in-memory post list joined
// with a UserRepository
type PostAggregator struct {
	mu    sync.RWMutex
	posts []post.Post
	users *UserRepository
}

// NewPostAggregator creates a PostAggregator joined against users
func NewPostAggregator(users *UserRepository) *PostAggregator {
	return &PostAggregator{users: users}
}

// AddPost appends a post. Posts are owned by another system; this is the
// only way to seed them in mock mode.
func (a *PostAggregator) AddPost(p post.Post) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = objectid.New()
	}
	a.posts = append(a.posts, p)
}

// CountJoinedUsersByTitle mirrors the $lookup of users.user against posts._id.
// User records have no post reference, so every join is empty.
func (a *PostAggregator) CountJoinedUsersByTitle(ctx context.Context) ([]post.TitleCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	rows := make([]post.TitleCount, 0, len(a.posts))
	for _, p := range a.posts {
		rows = append(rows, post.TitleCount{Title: p.Title, Count: 0})
	}
	return rows, nil
}

// TopUsersByPostCount groups posts by owner and returns at most limit users,
// highest count first, ties broken by user ID. Owners missing from the user
// store are dropped.
func (a *PostAggregator) TopUsersByPostCount(ctx context.Context, limit int) ([]post.UserCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	counts := make(map[objectid.ID]int)
	for _, p := range a.posts {
		counts[p.UserID]++
	}
	a.mu.RUnlock()

	owners := make([]objectid.ID, 0, len(counts))
	for id := range counts {
		owners = append(owners, id)
	}
	sort.Slice(owners, func(i, j int) bool {
		if counts[owners[i]] != counts[owners[j]] {
			return counts[owners[i]] > counts[owners[j]]
		}
		return owners[i] < owners[j]
	})
	if limit >= 0 && len(owners) > limit {
		owners = owners[:limit]
	}

	rows := make([]post.UserCount, 0, len(owners))
	for _, id := range owners {
		u, err := a.users.FindByID(ctx, id.String())
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, post.UserCount{UserID: id, Username: u.Username(), Count: counts[id]})
	}
	return rows, nil
}
