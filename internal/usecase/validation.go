package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

const minPasswordLength = 6

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// isValidEmail accepts bare addresses only; display-name forms are rejected.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return emailPattern.MatchString(email)
}

func ValidateRegisterInput(input RegisterAccountInput) []ValidationError {
	var errors []ValidationError

	if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "Enter a valid email address"})
	}

	if len(input.Password) < minPasswordLength {
		errors = append(errors, ValidationError{"password", "Password must be at least 6 characters long"})
	}

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "Name is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "Name must not exceed 200 characters"})
	}

	return errors
}

func ValidateLoginInput(input LoginInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "Email is required"})
	}
	if input.Password == "" {
		errors = append(errors, ValidationError{"password", "Password is required"})
	}

	return errors
}

func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "Name is required"})
	}

	if input.Age <= 0 {
		errors = append(errors, ValidationError{"age", "Age must be a positive number"})
	} else if input.Age > 150 {
		errors = append(errors, ValidationError{"age", "Age is out of range"})
	}

	if strings.TrimSpace(input.BusinessType) == "" {
		errors = append(errors, ValidationError{"businessType", "Business type is required"})
	}

	if strings.TrimSpace(input.Location) == "" {
		errors = append(errors, ValidationError{"location", "Location is required"})
	}

	if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "Enter a valid email address"})
	}

	return errors
}

func ValidateInboundReplyInput(input InboundReplyInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Sender) == "" {
		errors = append(errors, ValidationError{"from", "Sender is required"})
	} else if _, err := mail.ParseAddress(input.Sender); err != nil {
		errors = append(errors, ValidationError{"from", "Sender is not a valid address"})
	}

	if strings.TrimSpace(input.Subject) == "" && strings.TrimSpace(input.Body) == "" {
		errors = append(errors, ValidationError{"text", "Subject or body is required"})
	}

	return errors
}
