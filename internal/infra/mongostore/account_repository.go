package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.D) (*entity.Account, error) {
	var a entity.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) ListSalesPeople(ctx context.Context) ([]entity.SalesPerson, error) {
	cursor, err := r.coll.Aggregate(ctx, salesPeoplePipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate salespeople: %w", err)
	}

	people := []entity.SalesPerson{}
	if err := cursor.All(ctx, &people); err != nil {
		return nil, fmt.Errorf("decode salespeople: %w", err)
	}
	return people, nil
}

// salesPeoplePipeline joins each regular account with its leads and keeps only the count.
func salesPeoplePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "role", Value: string(entity.RoleUser)}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: leadsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "user_id"},
			{Key: "as", Value: "leads"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "customer_count", Value: bson.D{{Key: "$size", Value: "$leads"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
}
