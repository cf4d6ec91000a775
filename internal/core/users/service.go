package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"Scribe/internal/auth"
)

// minPasswordLength mirrors the registration rule for new accounts
const minPasswordLength = 8

type registerInput struct {
	Email    string `validate:"required,email,max=254"`
	Username string `validate:"required,max=150"`
	Password string `validate:"required,min=8"`
}

type userService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, tokens TokenIssuer, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a new, active, non-staff account
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validateRegisterRequest(ctx, req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		IsActive:     true,
	}

	// Repository still reports unique violations if a concurrent registration wins the race
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login verifies credentials and issues an access token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("login rejected", "user_id", user.ID, "reason", "password_mismatch")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("login rejected", "user_id", user.ID, "reason", "inactive")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns every registered user
func (s *userService) ListUsers(ctx context.Context) ([]*User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) validateRegisterRequest(ctx context.Context, req RegisterRequest) error {
	in := registerInput{Email: req.Email, Username: req.Username, Password: req.Password}
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return fmt.Errorf("failed to validate registration: %w", err)
	}

	if req.Password != req.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}

	emailTaken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return err
	}
	if emailTaken {
		return ErrEmailTaken
	}

	usernameTaken, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return err
	}
	if usernameTaken {
		return ErrUsernameTaken
	}

	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "This field is required."}
	case "email":
		return &ValidationError{Field: field, Message: "Enter a valid email address."}
	case "min":
		return &ValidationError{Field: field, Message: fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength)}
	case "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())}
	default:
		return &ValidationError{Field: field, Message: "Invalid value."}
	}
}
