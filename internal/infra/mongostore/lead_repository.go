package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LeadRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		coll: db.Collection(leadsCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return decodeLead(r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}))
}

func (r *LeadRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return decodeLead(r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}, opts))
}

func (r *LeadRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}

	leads := []*entity.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) UpdateInterest(ctx context.Context, id string, interested bool) (*entity.Lead, error) {
	update := setFields(bson.D{{Key: "interested", Value: interested}}, r.now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeLead(r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts))
}

func (r *LeadRepository) UpdateNotificationStatus(ctx context.Context, id string, status entity.NotificationStatus) error {
	update := setFields(bson.D{{Key: "notification_status", Value: string(status)}}, r.now())
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return fmt.Errorf("update notification status: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) CountStalePending(ctx context.Context, olderThan time.Time) (int, error) {
	n, err := r.coll.CountDocuments(ctx, stalePendingFilter(olderThan))
	if err != nil {
		return 0, fmt.Errorf("count stale leads: %w", err)
	}
	return int(n), nil
}

func stalePendingFilter(olderThan time.Time) bson.D {
	return bson.D{
		{Key: "notification_status", Value: string(entity.NotificationPending)},
		{Key: "updated_at", Value: bson.D{{Key: "$lt", Value: olderThan}}},
	}
}

// setFields builds a $set that also bumps updated_at.
func setFields(fields bson.D, now time.Time) bson.D {
	return bson.D{{Key: "$set", Value: append(fields, bson.E{Key: "updated_at", Value: now})}}
}

func decodeLead(res *mongo.SingleResult) (*entity.Lead, error) {
	var l entity.Lead
	if err := res.Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return &l, nil
}
