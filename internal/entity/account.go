package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a salesperson (or the admin) able to log in.
type Account struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func NewAccount(name, email, passwordHash string, role Role) *Account {
	if role == "" {
		role = RoleUser
	}
	return &Account{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SalesPerson is an account row of the admin report.
type SalesPerson struct {
	ID            string `json:"id" bson:"_id"`
	Name          string `json:"name" bson:"name"`
	Email         string `json:"email" bson:"email"`
	CustomerCount int    `json:"customerCount" bson:"customer_count"`
}

// Identity is what a verified bearer token says about the caller.
type Identity struct {
	AccountID string
	Email     string
	Role      Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess reports whether the caller may read or change a lead owned by ownerID.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || (i.AccountID != "" && i.AccountID == ownerID)
}

type AccountRepositoryInterface interface {
	Create(ctx context.Context, a *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	ListSalesPeople(ctx context.Context) ([]SalesPerson, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
