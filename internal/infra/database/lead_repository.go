package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

const leadColumns = `id, user_id, name, age, business_type, location, email, interested, notification_status, created_at, updated_at`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var status string
	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.Name,
		&l.Age,
		&l.BusinessType,
		&l.Location,
		&l.Email,
		&l.Interested,
		&status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.NotificationStatus = entity.NotificationStatus(status)
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.UserID,
		l.Name,
		l.Age,
		l.BusinessType,
		l.Location,
		l.Email,
		l.Interested,
		string(l.NotificationStatus),
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrLeadNotFound
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("select lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1 ORDER BY created_at DESC LIMIT 1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("select lead by email: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []*entity.Lead{}, nil
	}

	query := `SELECT ` + leadColumns + ` FROM leads WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) UpdateInterest(ctx context.Context, id string, interested bool) (*entity.Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrLeadNotFound
	}

	query := `UPDATE leads SET interested = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + leadColumns
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, interested))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update interest: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) UpdateNotificationStatus(ctx context.Context, id string, status entity.NotificationStatus) error {
	query := `UPDATE leads SET notification_status = $2, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, "update notification status", query, id, string(status))
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete lead", `DELETE FROM leads WHERE id = $1`, id)
}

// CountStalePending counts leads still PENDING since before olderThan.
func (r *LeadRepository) CountStalePending(ctx context.Context, olderThan time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM leads WHERE notification_status = $1 AND updated_at < $2`

	var n int
	if err := r.DB.QueryRowContext(ctx, query, string(entity.NotificationPending), olderThan).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stale leads: %w", err)
	}
	return n, nil
}

func (r *LeadRepository) execOne(ctx context.Context, op, query string, id string, args ...any) error {
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrLeadNotFound
	}

	res, err := r.DB.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
