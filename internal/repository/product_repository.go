package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRepository defines read-only access to the product catalog.
type ProductRepository interface {
	ListGroupedByDomain(ctx context.Context) ([][]domain.Product, error)
}

type productRepository struct {
	col *mongo.Collection
}

// NewProductRepository returns a Mongo-backed implementation.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{col: db.Collection("products")}
}

// ListGroupedByDomain returns the catalog as one product list per domain,
// domains in lexical order.
func (r *productRepository) ListGroupedByDomain(ctx context.Context) ([][]domain.Product, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$domain",
			"products": bson.M{"$push": "$$ROOT"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Products []domain.Product `bson:"products"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	groups := make([][]domain.Product, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, row.Products)
	}
	return groups, nil
}
