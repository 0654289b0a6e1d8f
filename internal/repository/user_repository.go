package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/shop-service/internal/domain"
)

// UserRepository defines persistence access for user documents. Cart and
// address writes are version-guarded: they only apply when the document still
// carries the version the caller read, so an interleaved mutation surfaces as
// ErrVersionConflict instead of a silent lost update.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ReplaceCart(ctx context.Context, userID string, cart domain.Cart, version int64) error
	ReplaceAddresses(ctx context.Context, userID string, addresses []domain.Address, version int64) error
}

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ReplaceCart(ctx context.Context, userID string, cart domain.Cart, version int64) error {
	return r.replaceField(ctx, userID, "cart", cart, version)
}

func (r *userRepository) ReplaceAddresses(ctx context.Context, userID string, addresses []domain.Address, version int64) error {
	return r.replaceField(ctx, userID, "addresses", addresses, version)
}

func (r *userRepository) replaceField(ctx context.Context, userID, field string, value any, version int64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "version": version},
		bson.M{
			"$set": bson.M{field: value},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}
