package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// decodeAll drains cursor, converting each document with decoder.
// T - document type for decoding
// R - result type (domain object)
//
// The returned slice is never nil. A document that fails to decode aborts
// the whole read.
func decodeAll[T any, R any](
	ctx context.Context,
	cursor *mongo.Cursor,
	decoder func(*T) (R, error),
	collectionName string,
) ([]R, error) {
	defer cursor.Close(ctx)

	results := make([]R, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collectionName, err)
		}

		item, err := decoder(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s document: %w", collectionName, err)
		}

		results = append(results, item)
	}

	if err := cursor.Err(); err != nil {
		return nil, HandleMongoError(err, collectionName)
	}

	return results, nil
}
