// Package mongodb provides MongoDB infrastructure components including index management.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Default collection names.
const (
	CollectionUsers = "users"
	CollectionPosts = "posts"
)

// Index names.
const (
	IndexUsersUsernameUnique = "idx_users_username_unique"
	IndexPostsUser           = "idx_posts_user"
)

// Collections names the collections indexes are created on
type Collections struct {
	Users string
	Posts string
}

// DefaultCollections returns the default collection names
func DefaultCollections() Collections {
	return Collections{Users: CollectionUsers, Posts: CollectionPosts}
}

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Collection string
	Name       string
	Keys       bson.D
	Unique     bool
}

// CreateAllIndexes creates all necessary indexes for the application.
// Calling it multiple times is safe.
func CreateAllIndexes(ctx context.Context, db *mongo.Database, colls Collections) error {
	for _, idx := range GetAllIndexDefinitions(colls) {
		opts := options.Index().SetName(idx.Name)
		if idx.Unique {
			opts.SetUnique(true)
		}

		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: opts,
		}

		if _, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s on collection %s: %w",
				idx.Name, idx.Collection, err)
		}
	}

	return nil
}

// GetAllIndexDefinitions returns all index definitions for all collections.
func GetAllIndexDefinitions(colls Collections) []IndexDefinition {
	var indexes []IndexDefinition

	indexes = append(indexes, GetUserIndexes(colls.Users)...)
	indexes = append(indexes, GetPostIndexes(colls.Posts)...)

	return indexes
}

// GetUserIndexes returns index definitions for the users collection.
func GetUserIndexes(collection string) []IndexDefinition {
	return []IndexDefinition{
		{
			// duplicate key here is the authoritative "username taken"
			Collection: collection,
			Name:       IndexUsersUsernameUnique,
			Keys:       bson.D{{Key: "username", Value: 1}},
			Unique:     true,
		},
	}
}

// GetPostIndexes returns index definitions for the posts collection.
func GetPostIndexes(collection string) []IndexDefinition {
	return []IndexDefinition{
		{
			// $group by owner in the top-K ranking
			Collection: collection,
			Name:       IndexPostsUser,
			Keys:       bson.D{{Key: "user", Value: 1}},
		},
	}
}
