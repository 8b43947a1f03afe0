package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Email,
		a.PasswordHash,
		string(a.Role),
		a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM accounts WHERE email = $1`
	return r.findOne(ctx, query, email)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrAccountNotFound
	}
	query := `SELECT id, name, email, password_hash, role, created_at FROM accounts WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var a entity.Account
	var role string
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&role,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	a.Role = entity.Role(role)
	return &a, nil
}

// ListSalesPeople returns regular accounts with their lead counts, by name.
func (r *AccountRepository) ListSalesPeople(ctx context.Context) ([]entity.SalesPerson, error) {
	query := `
		SELECT a.id, a.name, a.email, COUNT(l.id)
		FROM accounts a
		LEFT JOIN leads l ON l.user_id = a.id
		WHERE a.role = 'user'
		GROUP BY a.id, a.name, a.email
		ORDER BY a.name
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list salespeople: %w", err)
	}
	defer rows.Close()

	people := []entity.SalesPerson{}
	for rows.Next() {
		var p entity.SalesPerson
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.CustomerCount); err != nil {
			return nil, fmt.Errorf("scan salesperson: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
