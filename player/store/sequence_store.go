// player/store/sequence_store.go
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceStore hands out monotonically increasing ids from a counters collection.
type SequenceStore struct {
	collection *mongo.Collection
	name       string
}

// NewSequenceStore creates a sequence stored as the counters document with _id name.
func NewSequenceStore(collection *mongo.Collection, name string) *SequenceStore {
	return &SequenceStore{
		collection: collection,
		name:       name,
	}
}

type counter struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"seq"`
}

// Next atomically increments the sequence, creating it on first use, and returns the new value.
func (ss *SequenceStore) Next(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": ss.name}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	if err := ss.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", ss.name, err)
	}
	return c.Value, nil
}
