package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-backrooms/domain"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LayoutRepo stores generated layouts, one document per layout with its rooms embedded.
type LayoutRepo struct {
	collection *mongo.Collection
}

var _ i.LayoutRepo = &LayoutRepo{}

// NewLayoutRepo creates a LayoutRepo on the named collection and indexes it for
// per owner listings.
func NewLayoutRepo(client *mongo.Client, dbName, collectionName string) (*LayoutRepo, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating owner index: %w", err)
	}

	return &LayoutRepo{collection: collection}, nil
}

// Save inserts the layout, replacing any layout with the same ID.
func (r *LayoutRepo) Save(ctx context.Context, layout *dmn.Layout) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": layout.ID}, layout, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// ByID returns dmn.ErrLayoutNotFound when no layout has the ID.
func (r *LayoutRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Layout, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var layout dmn.Layout
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&layout); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrLayoutNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &layout, nil
}

// ByOwner returns the owner's most recent layouts, newest first. Room lists are left
// out of the listing.
func (r *LayoutRepo) ByOwner(ctx context.Context, ownerID uuid.UUID, limit int64) ([]*dmn.Layout, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"rooms": 0, "passages": 0, "preview": 0})

	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}

	layouts := make([]*dmn.Layout, 0)
	if err := cursor.All(ctx, &layouts); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return layouts, nil
}
