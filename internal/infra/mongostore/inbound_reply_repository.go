package mongostore

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type InboundReplyRepository struct {
	coll *mongo.Collection
}

func NewInboundReplyRepository(db *mongo.Database) *InboundReplyRepository {
	return &InboundReplyRepository{coll: db.Collection(inboundRepliesCollection)}
}

func (r *InboundReplyRepository) Create(ctx context.Context, reply *entity.InboundReply) error {
	if _, err := r.coll.InsertOne(ctx, reply); err != nil {
		return fmt.Errorf("insert inbound reply: %w", err)
	}
	return nil
}

func (r *InboundReplyRepository) List(ctx context.Context, limit int) ([]*entity.InboundReply, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inbound replies: %w", err)
	}

	replies := []*entity.InboundReply{}
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, fmt.Errorf("decode inbound replies: %w", err)
	}
	return replies, nil
}
