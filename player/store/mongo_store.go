// player/store/mongo_store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ftotnem/player-roster/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlayerStore represents the MongoDB data store for players.
// Numeric ids come from a counters collection, one document per sequence.
type MongoPlayerStore struct {
	collection *mongo.Collection
	sequence   *SequenceStore
}

// NewMongoPlayerStore creates a new MongoPlayerStore. The collections come from shared/mongodb.
func NewMongoPlayerStore(players, counters *mongo.Collection) *MongoPlayerStore {
	return &MongoPlayerStore{
		collection: players,
		sequence:   NewSequenceStore(counters, players.Name()),
	}
}

var _ PlayerStore = (*MongoPlayerStore)(nil)

// FindAll retrieves every player document ordered by id.
func (ms *MongoPlayerStore) FindAll(ctx context.Context) ([]models.Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := ms.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find players: %w", err)
	}
	defer cursor.Close(ctx)

	players := []models.Player{}
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}
	return players, nil
}

// FindByID retrieves a player by id.
func (ms *MongoPlayerStore) FindByID(ctx context.Context, id int64) (*models.Player, error) {
	var player models.Player
	err := ms.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return &player, nil
}

// Save replaces the player document, inserting it when missing.
func (ms *MongoPlayerStore) Save(ctx context.Context, p *models.Player) (*models.Player, error) {
	if p.ID == 0 {
		id, err := ms.sequence.Next(ctx)
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return nil, fmt.Errorf("failed to save player %d: %w", p.ID, err)
	}
	saved := *p
	return &saved, nil
}

// Delete removes the player document.
func (ms *MongoPlayerStore) Delete(ctx context.Context, id int64) error {
	res, err := ms.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Close is a no-op; the owning shared/mongodb client disconnects.
func (ms *MongoPlayerStore) Close() error { return nil }
