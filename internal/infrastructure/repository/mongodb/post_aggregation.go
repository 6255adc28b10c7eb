package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/lllypuk/userhub/internal/domain/objectid"
	"github.com/lllypuk/userhub/internal/domain/post"
)

// MongoPostAggregator implements post.Aggregator over the posts collection
type MongoPostAggregator struct {
	posts     *mongo.Collection
	usersName string
	logger    *slog.Logger
}

// PostAggregatorOption configures MongoPostAggregator.
type PostAggregatorOption func(*MongoPostAggregator)

// WithPostAggregatorLogger sets the logger for the aggregator.
func WithPostAggregatorLogger(logger *slog.Logger) PostAggregatorOption {
	return func(a *MongoPostAggregator) {
		a.logger = logger
	}
}

// NewMongoPostAggregator creates an aggregator over posts, joining against
// the users collection named usersCollection in the same database
func NewMongoPostAggregator(
	posts *mongo.Collection,
	usersCollection string,
	opts ...PostAggregatorOption,
) *MongoPostAggregator {
	a := &MongoPostAggregator{
		posts:     posts,
		usersName: usersCollection,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// JoinedUsersByTitlePipeline joins users whose "user" field equals the post
// _id and projects the size of that join next to the post title.
func JoinedUsersByTitlePipeline(usersCollection string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "user"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "title", Value: 1},
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$user"}}},
		}}},
	}
}

// TopUsersByPostCountPipeline groups posts by owner, keeps the limit busiest
// owners (ties by owner id) and joins their usernames. Owners without a user
// record are dropped by the $unwind.
func TopUsersByPostCountPipeline(usersCollection string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "user_id", Value: "$_id"},
			{Key: "username", Value: "$owner.username"},
			{Key: "count", Value: 1},
		}}},
	}
}

// CountJoinedUsersByTitle returns one row per post
func (a *MongoPostAggregator) CountJoinedUsersByTitle(ctx context.Context) ([]post.TitleCount, error) {
	cursor, err := a.posts.Aggregate(ctx, JoinedUsersByTitlePipeline(a.usersName))
	if err != nil {
		logError(ctx, a.logger, "failed to aggregate posts by title", err)
		return nil, HandleMongoError(err, "posts")
	}

	rows, err := decodeAll(ctx, cursor, func(doc *titleCountDocument) (post.TitleCount, error) {
		return post.TitleCount{Title: doc.Title, Count: doc.Count}, nil
	}, "posts")
	if err != nil {
		logError(ctx, a.logger, "failed to read post title counts", err)
		return nil, err
	}
	return rows, nil
}

// TopUsersByPostCount returns at most limit users ordered by post count
func (a *MongoPostAggregator) TopUsersByPostCount(ctx context.Context, limit int) ([]post.UserCount, error) {
	if limit <= 0 {
		return []post.UserCount{}, nil
	}

	cursor, err := a.posts.Aggregate(ctx, TopUsersByPostCountPipeline(a.usersName, limit))
	if err != nil {
		logError(ctx, a.logger, "failed to aggregate posts by user", err, slog.Int("limit", limit))
		return nil, HandleMongoError(err, "posts")
	}

	rows, err := decodeAll(ctx, cursor, func(doc *userCountDocument) (post.UserCount, error) {
		return post.UserCount{
			UserID:   objectid.FromObjectID(doc.UserID),
			Username: doc.Username,
			Count:    doc.Count,
		}, nil
	}, "posts")
	if err != nil {
		logError(ctx, a.logger, "failed to read user post counts", err)
		return nil, err
	}
	return rows, nil
}

type titleCountDocument struct {
	Title string `bson:"title"`
	Count int    `bson:"count"`
}

type userCountDocument struct {
	UserID   bson.ObjectID `bson:"user_id"`
	Username string        `bson:"username"`
	Count    int           `bson:"count"`
}
