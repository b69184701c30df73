package cart

import (
	"context"
	"time"

	"github.com/fjod/wavewonders/internal/domain"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps one document per cart with the entries in an array.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("carts")}
}

// CreateIndexes makes cart_id unique so concurrent upserts cannot fork a cart.
func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cart_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create cart index")
	}
	return nil
}

func (m *MongoStore) Items(ctx context.Context, cartID string) ([]domain.Product, error) {
	var c domain.Cart
	err := m.collection.FindOne(ctx, bson.M{"cart_id": cartID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}
	if c.Items == nil {
		return []domain.Product{}, nil
	}
	return c.Items, nil
}

func (m *MongoStore) Append(ctx context.Context, cartID string, p domain.Product) error {
	now := time.Now()
	update := bson.M{
		"$push":        bson.M{"items": p},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, bson.M{"cart_id": cartID}, update, opts); err != nil {
		return errors.Wrap(err, "failed to append cart item")
	}
	return nil
}

func (m *MongoStore) Clear(ctx context.Context, cartID string) error {
	update := bson.M{
		"$set": bson.M{
			"items":      []domain.Product{},
			"updated_at": time.Now(),
		},
	}
	if _, err := m.collection.UpdateOne(ctx, bson.M{"cart_id": cartID}, update); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}
	return nil
}
