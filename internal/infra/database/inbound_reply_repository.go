package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type InboundReplyRepository struct {
	DB *sql.DB
}

func NewInboundReplyRepository(db *sql.DB) *InboundReplyRepository {
	return &InboundReplyRepository{DB: db}
}

func (r *InboundReplyRepository) Create(ctx context.Context, reply *entity.InboundReply) error {
	query := `
		INSERT INTO inbound_replies (id, sender, subject, body, lead_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		reply.ID,
		reply.Sender,
		reply.Subject,
		reply.Body,
		nullString(reply.LeadID),
		reply.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inbound reply: %w", err)
	}
	return nil
}

// List returns the newest replies first.
func (r *InboundReplyRepository) List(ctx context.Context, limit int) ([]*entity.InboundReply, error) {
	query := `
		SELECT id, sender, subject, body, lead_id, created_at
		FROM inbound_replies
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list inbound replies: %w", err)
	}
	defer rows.Close()

	replies := []*entity.InboundReply{}
	for rows.Next() {
		var reply entity.InboundReply
		var leadID sql.NullString
		if err := rows.Scan(&reply.ID, &reply.Sender, &reply.Subject, &reply.Body, &leadID, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inbound reply: %w", err)
		}
		reply.LeadID = leadID.String
		replies = append(replies, &reply)
	}
	return replies, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
