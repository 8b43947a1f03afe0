package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"go.uber.org/zap"
)

type RegisterAccountUseCase struct {
	Accounts entity.AccountRepositoryInterface
	Hasher   PasswordHasher
	Logger   *zap.Logger
}

func NewRegisterAccountUseCase(accounts entity.AccountRepositoryInterface, hasher PasswordHasher, logger *zap.Logger) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		Accounts: accounts,
		Hasher:   hasher,
		Logger:   logger,
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, input RegisterAccountInput) (*RegisterAccountOutput, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	account, err := uc.create(ctx, input.Name, input.Email, input.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("account registered", zap.String("account_id", account.ID))
	return &RegisterAccountOutput{ID: account.ID, Message: "User registered successfully"}, nil
}

// EnsureAdmin creates the admin account unless one already exists under email.
func (uc *RegisterAccountUseCase) EnsureAdmin(ctx context.Context, name, email, password string) error {
	existing, err := uc.Accounts.FindByEmail(ctx, entity.NormalizeEmail(email))
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			uc.Logger.Warn("admin email belongs to a regular account", zap.String("email", existing.Email))
		}
		return nil
	case !errors.Is(err, entity.ErrAccountNotFound):
		return databaseError("failed to look up admin account", err)
	}

	if name == "" {
		name = "Admin"
	}
	account, err := uc.create(ctx, name, email, password, entity.RoleAdmin)
	if err != nil {
		if de, ok := AsDomainError(err); ok && de.Code == CodeEmailTaken {
			return nil
		}
		return err
	}

	uc.Logger.Info("admin account seeded", zap.String("account_id", account.ID))
	return nil
}

// EmailAvailable reports whether no account is registered under email.
func (uc *RegisterAccountUseCase) EmailAvailable(ctx context.Context, email string) (bool, error) {
	if !isValidEmail(email) {
		return false, newValidationError([]ValidationError{{"email", "Enter a valid email address"}})
	}

	_, err := uc.Accounts.FindByEmail(ctx, entity.NormalizeEmail(email))
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, entity.ErrAccountNotFound):
		return true, nil
	default:
		return false, databaseError("failed to check email", err)
	}
}

func (uc *RegisterAccountUseCase) create(ctx context.Context, name, email, password string, role entity.Role) (*entity.Account, error) {
	hash, err := uc.Hasher.Hash(password)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to register user", Err: err}
	}

	account := entity.NewAccount(name, email, hash, role)
	if err := uc.Accounts.Create(ctx, account); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailTaken, Message: "Email already registered"}
		}
		return nil, databaseError("failed to register user", err)
	}
	return account, nil
}

type AuthenticateUseCase struct {
	Accounts entity.AccountRepositoryInterface
	Hasher   PasswordHasher
	Tokens   TokenIssuer
}

func NewAuthenticateUseCase(accounts entity.AccountRepositoryInterface, hasher PasswordHasher, tokens TokenIssuer) *AuthenticateUseCase {
	return &AuthenticateUseCase{
		Accounts: accounts,
		Hasher:   hasher,
		Tokens:   tokens,
	}
}

func (uc *AuthenticateUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	if errs := ValidateLoginInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	account, err := uc.Accounts.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, entity.ErrAccountNotFound) {
			return nil, &DomainError{Code: CodeAccountNotFound, Message: "User not found!"}
		}
		return nil, databaseError("failed to log in", err)
	}

	if !uc.Hasher.Matches(account.PasswordHash, input.Password) {
		return nil, &DomainError{Code: CodeInvalidCredentials, Message: "Invalid password!"}
	}

	token, err := uc.Tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to log in", Err: err}
	}

	return &LoginOutput{
		Message: "Login successful",
		Token:   token,
		Role:    account.Role,
	}, nil
}
