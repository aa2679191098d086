package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seojunkim/fitforge/internal/auth"
	"github.com/seojunkim/fitforge/internal/domain"
	"github.com/seojunkim/fitforge/internal/repository"
	apperrors "github.com/seojunkim/fitforge/pkg/errors"
)

// EventPublisher publishes user domain events. Satisfied by *event.Producer;
// publishing is best-effort and never fails the user-facing operation.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishUserLoggedIn(ctx context.Context, userID, email string) error
}

// minPasswordLength is the minimum password length required at registration.
const minPasswordLength = 8

// AuthService implements the registration, login and identity operations.
// Each operation is a single stateless interaction with the store; there is
// no cross-request state beyond the injected dependencies.
type AuthService struct {
	users      repository.UserRepository // nil when the store is not configured
	jwtManager *auth.JWTManager
	producer   EventPublisher
	logger     *slog.Logger
}

// NewAuthService creates a new auth service. users may be nil when the
// database was unreachable at startup; every operation then reports a
// service-unavailable condition instead of panicking.
func NewAuthService(
	users repository.UserRepository,
	jwtManager *auth.JWTManager,
	producer EventPublisher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Email    string
	Password string
	Nickname string
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Email    string
	Password string
}

// ready reports the configuration guards shared by every operation: a
// reachable store and a configured signing secret. Both are deployment
// failures, not user errors.
func (s *AuthService) ready() error {
	if s.users == nil {
		return apperrors.ServiceUnavailable("database is not available")
	}
	if !s.jwtManager.HasSecret() {
		return apperrors.ServiceUnavailable("signing secret is not configured")
	}
	return nil
}

// Register creates a new user account, hashes the password, and returns the
// created user with a signed token over {id, email}.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	if input.Email == "" || input.Password == "" {
		return nil, "", apperrors.InvalidInput("email and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	// Pre-check for a duplicate email. The UNIQUE constraint in the store is
	// the authoritative enforcement point; this check only produces a nicer
	// error for the common case. Two concurrent registrations can both pass
	// it, and the second then fails on the constraint below.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", apperrors.AlreadyExists("user", "email", input.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing email: %w", err)
	}

	hashedPassword, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Nickname:     input.Nickname,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Register tokens carry no role claim; the role is only known to the
	// store and is embedded at login.
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, "")
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// Login authenticates a user with email and password and returns the user
// with a signed token over {id, email, role}. An unknown email and a wrong
// password produce the identical error so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	if input.Email == "" || input.Password == "" {
		return nil, "", apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("invalid email or password")
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.CheckPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", apperrors.Unauthorized("invalid email or password")
	}

	// The last-login stamp is a side effect of a login that has already
	// succeeded; a failed update is logged, never surfaced to the caller.
	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to update last login",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	if err := s.producer.PublishUserLoggedIn(ctx, user.ID, user.Email); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.logged_in event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// GetProfile re-fetches a user by the id decoded from a verified token. The
// store is the source of truth; a token whose subject no longer resolves is
// a not-found, distinct from an authentication failure.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if s.users == nil {
		return nil, apperrors.ServiceUnavailable("database is not available")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}

	return user, nil
}

// ListUsers returns all registered users ordered by creation time.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.users == nil {
		return nil, apperrors.ServiceUnavailable("database is not available")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
