package usecase

import "github.com/xavierca1/ligue-leads/internal/entity"

type RegisterAccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterAccountOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    entity.Role `json:"role"`
}

type SubmitLeadInput struct {
	UserID       string `json:"-"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	BusinessType string `json:"businessType"`
	Location     string `json:"location"`
	Email        string `json:"email"`
}

type SubmitLeadOutput struct {
	Message    string `json:"message"`
	CustomerID string `json:"customerId"`
}

type InboundReplyInput struct {
	Sender     string
	Subject    string
	Body       string
	CustomerID string
	MessageID  string
}

type InboundReplyOutput struct {
	ID        string
	LeadID    string
	Duplicate bool
}
