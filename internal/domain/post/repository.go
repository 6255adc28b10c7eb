package post

import "context"

// Aggregator runs report queries over the posts collection
type Aggregator interface {
	// CountJoinedUsersByTitle joins every post against users whose post
	// reference equals the post ID and returns the size of each join.
	CountJoinedUsersByTitle(ctx context.Context) ([]TitleCount, error)

	// TopUsersByPostCount returns at most limit users ordered by the number
	// of posts they own, highest first.
	TopUsersByPostCount(ctx context.Context, limit int) ([]UserCount, error)
}
