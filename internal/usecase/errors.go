package usecase

import "errors"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeLeadNotFound       = "LEAD_NOT_FOUND"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeDatabase           = "DATABASE_ERROR"
)

// DomainError is a failure the caller caused and can fix.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// TechnicalError wraps an infrastructure failure. Message is safe to show
// to clients; Err is for logs only.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func AsTechnicalError(err error) (*TechnicalError, bool) {
	var te *TechnicalError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

func newValidationError(fields []ValidationError) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: fields[0].Message,
		Fields:  fields,
	}
}

func databaseError(message string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeDatabase, Message: message, Err: err}
}

var (
	errLeadNotFound = &DomainError{Code: CodeLeadNotFound, Message: "Customer not found"}
	errForbidden    = &DomainError{Code: CodeForbidden, Message: "Access denied"}
)
