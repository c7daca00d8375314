// auction/store/store.go
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// revisionField is the storage-only revision marker; like _id it never leaves the store.
	revisionField = "rev"
	nameField     = "name"
)

// ListOptions selects, projects and pages a List call.
// An empty Filter matches everything; empty Fields returns whole documents.
type ListOptions struct {
	Filter bson.M
	Fields []string
	Skip   int64
	Limit  int64
}

func (lo ListOptions) filter() bson.M {
	if lo.Filter == nil {
		return bson.M{}
	}
	return lo.Filter
}

// findOptions sorts by name ascending and applies projection and paging.
func (lo ListOptions) findOptions() *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: nameField, Value: 1}})
	if lo.Skip > 0 {
		opts.SetSkip(lo.Skip)
	}
	if lo.Limit > 0 {
		opts.SetLimit(lo.Limit)
	}
	if len(lo.Fields) > 0 {
		projection := bson.D{}
		for _, f := range lo.Fields {
			projection = append(projection, bson.E{Key: f, Value: 1})
		}
		opts.SetProjection(projection)
	}
	return opts
}

// ensureUniqueName creates the unique index on name. It is the only duplicate guard:
// inserts never pre-check, so concurrent creates are settled by the database.
func ensureUniqueName(ctx context.Context, collection *mongo.Collection) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: nameField, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create unique name index on %s: %w", collection.Name(), err)
	}
	return nil
}

// updateDocument assembles a $set of the given fields plus a revision bump.
func updateDocument(set bson.M) bson.M {
	update := bson.M{"$inc": bson.M{revisionField: 1}}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}
