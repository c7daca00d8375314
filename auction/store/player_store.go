// auction/store/player_store.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const playerEntity = "Player"

// playerDocument is the stored shape of a player.
type playerDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Revision      int64              `bson:"rev"`
	models.Player `bson:",inline"`
}

// strip drops the storage-only fields.
func (d *playerDocument) strip() *models.Player {
	p := d.Player
	return &p
}

// PlayerStore represents the MongoDB data store for players.
type PlayerStore struct {
	collection *mongo.Collection
}

// NewPlayerStore creates a new PlayerStore instance.
func NewPlayerStore(collection *mongo.Collection) *PlayerStore {
	return &PlayerStore{
		collection: collection,
	}
}

// EnsureIndexes creates the unique index on player name.
func (ps *PlayerStore) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueName(ctx, ps.collection)
}

// CreatePlayer inserts a new player. A name collision yields an AlreadyExists error.
func (ps *PlayerStore) CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	doc := playerDocument{Player: *player}
	if _, err := ps.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, api.NewAlreadyExists(playerEntity, player.Name)
		}
		return nil, fmt.Errorf("failed to create player %s: %w", player.Name, err)
	}
	return doc.strip(), nil
}

// GetPlayer retrieves a player by exact name.
func (ps *PlayerStore) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	var doc playerDocument
	err := ps.collection.FindOne(ctx, bson.M{nameField: name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(playerEntity, name)
		}
		return nil, fmt.Errorf("failed to get player %s: %w", name, err)
	}
	return doc.strip(), nil
}

// ListPlayers returns players sorted by name. No match is an empty slice, not an error.
func (ps *PlayerStore) ListPlayers(ctx context.Context, opts ListOptions) ([]models.Player, error) {
	cursor, err := ps.collection.Find(ctx, opts.filter(), opts.findOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to find players: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []playerDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode players: %w", err)
	}

	players := make([]models.Player, 0, len(docs))
	for i := range docs {
		players = append(players, *docs[i].strip())
	}
	return players, nil
}

// UpdatePlayer applies the patch and returns the player as stored afterwards.
func (ps *PlayerStore) UpdatePlayer(ctx context.Context, name string, patch *models.PlayerPatch) (*models.Player, error) {
	set := bson.M{}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	var doc playerDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := ps.collection.FindOneAndUpdate(ctx, bson.M{nameField: name}, updateDocument(set), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(playerEntity, name)
		}
		return nil, fmt.Errorf("failed to update player %s: %w", name, err)
	}
	return doc.strip(), nil
}

// DeletePlayer removes a player and returns what was removed.
func (ps *PlayerStore) DeletePlayer(ctx context.Context, name string) (*models.Player, error) {
	var doc playerDocument
	err := ps.collection.FindOneAndDelete(ctx, bson.M{nameField: name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(playerEntity, name)
		}
		return nil, fmt.Errorf("failed to delete player %s: %w", name, err)
	}
	return doc.strip(), nil
}
