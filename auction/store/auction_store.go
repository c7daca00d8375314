// auction/store/auction_store.go
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

const auctionEntity = "Auction"

type auctionDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Revision       int64              `bson:"rev"`
	models.Auction `bson:",inline"`
}

func (d *auctionDocument) strip() *models.Auction {
	a := d.Auction
	if a.Players == nil {
		a.Players = []models.Bid{}
	}
	return &a
}

// AuctionStore represents the MongoDB data store for auctions.
type AuctionStore struct {
	collection *mongo.Collection
}

// NewAuctionStore creates a new AuctionStore instance.
func NewAuctionStore(collection *mongo.Collection) *AuctionStore {
	return &AuctionStore{
		collection: collection,
	}
}

// EnsureIndexes creates the unique index on auction name.
func (as *AuctionStore) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueName(ctx, as.collection)
}

// CreateAuction inserts a new auction. A name collision yields an AlreadyExists error.
// Bid entries are stored as given; referenced players are not looked up.
func (as *AuctionStore) CreateAuction(ctx context.Context, auction *models.Auction) (*models.Auction, error) {
	doc := auctionDocument{Auction: *auction}
	if doc.Players == nil {
		doc.Players = []models.Bid{}
	}
	if _, err := as.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, api.NewAlreadyExists(auctionEntity, auction.Name)
		}
		return nil, fmt.Errorf("failed to create auction %s: %w", auction.Name, err)
	}
	return doc.strip(), nil
}

// GetAuction retrieves an auction by exact name.
func (as *AuctionStore) GetAuction(ctx context.Context, name string) (*models.Auction, error) {
	var doc auctionDocument
	err := as.collection.FindOne(ctx, bson.M{nameField: name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(auctionEntity, name)
		}
		return nil, fmt.Errorf("failed to get auction %s: %w", name, err)
	}
	return doc.strip(), nil
}

// ListAuctions returns auctions sorted by name.
func (as *AuctionStore) ListAuctions(ctx context.Context, opts ListOptions) ([]models.Auction, error) {
	cursor, err := as.collection.Find(ctx, opts.filter(), opts.findOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to find auctions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auctionDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode auctions: %w", err)
	}

	auctions := make([]models.Auction, 0, len(docs))
	for i := range docs {
		auctions = append(auctions, *docs[i].strip())
	}
	return auctions, nil
}

// UpdateAuction applies the patch and returns the auction as stored afterwards.
func (as *AuctionStore) UpdateAuction(ctx context.Context, name string, patch *models.AuctionPatch) (*models.Auction, error) {
	set := bson.M{}
	if patch.Players != nil {
		players := *patch.Players
		if players == nil {
			players = []models.Bid{}
		}
		set["players"] = players
	}
	if patch.MinimumBid != nil {
		set["minimumBid"] = *patch.MinimumBid
	}
	if patch.NumberOfBlindBids != nil {
		set["numberOfBlindBids"] = *patch.NumberOfBlindBids
	}

	var doc auctionDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := as.collection.FindOneAndUpdate(ctx, bson.M{nameField: name}, updateDocument(set), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(auctionEntity, name)
		}
		return nil, fmt.Errorf("failed to update auction %s: %w", name, err)
	}
	return doc.strip(), nil
}

// DeleteAuction removes an auction and returns what was removed.
func (as *AuctionStore) DeleteAuction(ctx context.Context, name string) (*models.Auction, error) {
	var doc auctionDocument
	err := as.collection.FindOneAndDelete(ctx, bson.M{nameField: name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, api.NewNotFound(auctionEntity, name)
		}
		return nil, fmt.Errorf("failed to delete auction %s: %w", name, err)
	}
	return doc.strip(), nil
}
