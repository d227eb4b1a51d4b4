package repository

import (
	"context"
	"errors"
	"time"

	"github.com/emmanuel7l7/chicken-farm/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error)
	List(ctx context.Context, activeOnly bool, page, perPage int) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id string) error
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func notDeleted() bson.M {
	return bson.M{"deleted_at": bson.M{"$exists": false}}
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	filter := notDeleted()
	filter["_id"] = id

	var product models.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs returns the found products keyed by id. Missing ids are simply
// absent from the map; the caller decides whether that is an error.
func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	filter := notDeleted()
	filter["_id"] = bson.M{"$in": ids}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make(map[string]*models.Product, len(ids))
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		p := product
		products[p.ID] = &p
	}
	return products, cursor.Err()
}

func (r *MongoProductRepository) List(ctx context.Context, activeOnly bool, page, perPage int) ([]models.Product, int64, error) {
	filter := notDeleted()
	if activeOnly {
		filter["is_active"] = true
	}

	findOptions := options.Find().
		SetLimit(int64(perPage)).
		SetSkip(int64((page - 1) * perPage)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	filter := notDeleted()
	filter["_id"] = product.ID

	result, err := r.collection.ReplaceOne(ctx, filter, product)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) SoftDelete(ctx context.Context, id string) error {
	filter := notDeleted()
	filter["_id"] = id

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"deleted_at": time.Now(), "is_active": false},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
