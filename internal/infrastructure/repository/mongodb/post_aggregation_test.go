package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/lllypuk/userhub/internal/domain/objectid"
	"github.com/lllypuk/userhub/internal/domain/post"
	"github.com/lllypuk/userhub/internal/infrastructure/repository/mongodb"
	"github.com/lllypuk/userhub/tests/testutil"
)

func stageNames(t *testing.T, pipeline []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		require.Len(t, stage, 1)
		names = append(names, stage[0].Key)
	}
	return names
}

func TestJoinedUsersByTitlePipeline(t *testing.T) {
	pipeline := mongodb.JoinedUsersByTitlePipeline("users")

	assert.Equal(t, []string{"$lookup", "$project"}, stageNames(t, pipeline))
	assert.Equal(t, bson.D{
		{Key: "from", Value: "users"},
		{Key: "localField", Value: "_id"},
		{Key: "foreignField", Value: "user"},
		{Key: "as", Value: "user"},
	}, pipeline[0][0].Value)
}

func TestTopUsersByPostCountPipeline(t *testing.T) {
	pipeline := mongodb.TopUsersByPostCountPipeline("people", 7)

	assert.Equal(t,
		[]string{"$group", "$sort", "$limit", "$lookup", "$unwind", "$project"},
		stageNames(t, pipeline),
	)
	assert.Equal(t, int64(7), pipeline[2][0].Value)

	lookup, ok := pipeline[3][0].Value.(bson.D)
	require.True(t, ok)
	assert.Contains(t, lookup, bson.E{Key: "from", Value: "people"})
}

func setupTestPostAggregator(t *testing.T) (*mongodb.MongoPostAggregator, *mongodb.MongoUserRepository, func(...post.Post)) {
	t.Helper()

	db := testutil.SetupTestMongoDB(t)
	users := mongodb.NewMongoUserRepository(db.Collection("users"))
	postsColl := db.Collection("posts")
	agg := mongodb.NewMongoPostAggregator(postsColl, "users")

	insertPosts := func(posts ...post.Post) {
		docs := make([]any, 0, len(posts))
		for _, p := range posts {
			owner, err := p.UserID.ObjectID()
			require.NoError(t, err)
			docs = append(docs, bson.M{"_id": bson.NewObjectID(), "title": p.Title, "user": owner})
		}
		_, err := postsColl.InsertMany(context.Background(), docs)
		require.NoError(t, err)
	}

	return agg, users, insertPosts
}

func TestMongoPostAggregator_CountJoinedUsersByTitle(t *testing.T) {
	agg, users, insertPosts := setupTestPostAggregator(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice")
	require.NoError(t, users.Insert(ctx, alice))
	insertPosts(
		post.Post{Title: "first", UserID: alice.ID()},
		post.Post{Title: "second", UserID: alice.ID()},
	)

	rows, err := agg.CountJoinedUsersByTitle(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []post.TitleCount{
		{Title: "first", Count: 0},
		{Title: "second", Count: 0},
	}, rows)
}

func TestMongoPostAggregator_CountJoinedUsersByTitle_Empty(t *testing.T) {
	agg, _, _ := setupTestPostAggregator(t)

	rows, err := agg.CountJoinedUsersByTitle(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestMongoPostAggregator_TopUsersByPostCount(t *testing.T) {
	agg, users, insertPosts := setupTestPostAggregator(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	require.NoError(t, users.Insert(ctx, alice))
	require.NoError(t, users.Insert(ctx, bob))

	insertPosts(
		post.Post{Title: "a1", UserID: alice.ID()},
		post.Post{Title: "a2", UserID: alice.ID()},
		post.Post{Title: "a3", UserID: alice.ID()},
		post.Post{Title: "b1", UserID: bob.ID()},
		post.Post{Title: "orphan", UserID: objectid.New()},
	)

	rows, err := agg.TopUsersByPostCount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, post.UserCount{UserID: alice.ID(), Username: "alice", Count: 3}, rows[0])

	rows, err = agg.TopUsersByPostCount(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[1].Username)
	assert.Equal(t, 1, rows[1].Count)
}
