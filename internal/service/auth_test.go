package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/seojunkim/fitforge/internal/auth"
	"github.com/seojunkim/fitforge/internal/domain"
	apperrors "github.com/seojunkim/fitforge/pkg/errors"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Stub Event Publisher ---

// stubEventPublisher records publishes in-process so tests never touch a
// broker connection.
type stubEventPublisher struct {
	registered int
	loggedIn   int
	err        error
}

func (s *stubEventPublisher) PublishUserRegistered(_ context.Context, _ *domain.User) error {
	s.registered++
	return s.err
}

func (s *stubEventPublisher) PublishUserLoggedIn(_ context.Context, _, _ string) error {
	s.loggedIn++
	return s.err
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", time.Hour)
}

func newTestService(userRepo *mockUserRepository) *AuthService {
	return NewAuthService(userRepo, newTestJWTManager(), &stubEventPublisher{}, newTestLogger())
}

// hashForTest creates a bcrypt hash with cost 4 for fast tests.
func hashForTest(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 4)
	if err != nil {
		panic(err)
	}
	return string(h)
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "dongho@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	input := RegisterInput{
		Email:    "dongho@example.com",
		Password: "SecurePass123",
		Nickname: "dongho",
	}

	user, token, err := svc.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "dongho@example.com", user.Email)
	assert.Equal(t, "dongho", user.Nickname)
	assert.NotEmpty(t, token)

	// The stored hash must verify against the original password and never
	// equal it.
	assert.NotEqual(t, input.Password, user.PasswordHash)
	ok, err := auth.CheckPassword(input.Password, user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// A registration token carries identity but no role.
	claims, err := newTestJWTManager().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Empty(t, claims.Role)

	userRepo.AssertExpectations(t)
}

func TestRegister_PublishFailureTolerated(t *testing.T) {
	userRepo := new(mockUserRepository)
	publisher := &stubEventPublisher{err: errors.New("broker unreachable")}
	svc := NewAuthService(userRepo, newTestJWTManager(), publisher, newTestLogger())
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "dongho@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	_, token, err := svc.Register(ctx, RegisterInput{
		Email:    "dongho@example.com",
		Password: "SecurePass123",
	})

	// Event publishing is best-effort; a broker failure never fails the
	// registration itself.
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, publisher.registered)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	existing := &domain.User{ID: "u1", Email: "taken@example.com"}
	userRepo.On("GetByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, _, err := svc.Register(ctx, RegisterInput{
		Email:    "taken@example.com",
		Password: "SecurePass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	// The pre-check passes but the insert hits the unique constraint. The
	// conflict from the store must surface unchanged.
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "race@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "race@example.com"))

	_, _, err := svc.Register(ctx, RegisterInput{
		Email:    "race@example.com",
		Password: "SecurePass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestRegister_MissingFields(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	for _, input := range []RegisterInput{
		{Email: "", Password: "SecurePass123"},
		{Email: "a@example.com", Password: ""},
		{Email: "", Password: ""},
	} {
		_, _, err := svc.Register(ctx, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "email and password are required", appErr.Message)
	}

	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "short",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_NoStore(t *testing.T) {
	svc := NewAuthService(nil, newTestJWTManager(), &stubEventPublisher{}, newTestLogger())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "SecurePass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestRegister_NoSigningSecret(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewAuthService(userRepo, auth.NewJWTManager("", time.Hour), &stubEventPublisher{}, newTestLogger())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "SecurePass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	// The guard fires before any store access, so no half-created accounts.
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	stored := &domain.User{
		ID:           "u1",
		Email:        "dongho@example.com",
		PasswordHash: hashForTest("SecurePass123"),
		Role:         domain.RoleAdmin,
	}
	userRepo.On("GetByEmail", ctx, "dongho@example.com").Return(stored, nil)
	userRepo.On("UpdateLastLogin", ctx, "u1").Return(nil)

	user, token, err := svc.Login(ctx, LoginInput{
		Email:    "dongho@example.com",
		Password: "SecurePass123",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)

	// A login token carries the stored role.
	claims, err := newTestJWTManager().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	userRepo.AssertExpectations(t)
}

func TestLogin_CredentialErrorsAreIndistinguishable(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "real@example.com",
		PasswordHash: hashForTest("correct-password"),
	}, nil)

	_, _, unknownErr := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever1"})
	_, _, wrongErr := svc.Login(ctx, LoginInput{Email: "real@example.com", Password: "not-the-password"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	var unknownApp, wrongApp *apperrors.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)

	// Same status, same message: the response must not reveal whether the
	// account exists.
	assert.Equal(t, unknownApp.Status, wrongApp.Status)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.ErrorIs(t, unknownErr, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, wrongErr, apperrors.ErrUnauthorized)
}

func TestLogin_WrongPasswordSkipsLastLogin(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "real@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "real@example.com",
		PasswordHash: hashForTest("correct-password"),
	}, nil)

	_, _, err := svc.Login(ctx, LoginInput{Email: "real@example.com", Password: "wrong"})

	require.Error(t, err)
	userRepo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
}

func TestLogin_LastLoginFailureDoesNotFailLogin(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "dongho@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "dongho@example.com",
		PasswordHash: hashForTest("SecurePass123"),
	}, nil)
	userRepo.On("UpdateLastLogin", ctx, "u1").Return(errors.New("connection reset"))

	user, token, err := svc.Login(ctx, LoginInput{
		Email:    "dongho@example.com",
		Password: "SecurePass123",
	})

	require.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(new(mockUserRepository))

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "", Password: ""})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLogin_NoStore(t *testing.T) {
	svc := NewAuthService(nil, newTestJWTManager(), &stubEventPublisher{}, newTestLogger())

	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "a@example.com",
		Password: "SecurePass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

// --- GetProfile Tests ---

func TestGetProfile_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	stored := &domain.User{ID: "u1", Email: "dongho@example.com", Nickname: "dongho"}
	userRepo.On("GetByID", ctx, "u1").Return(stored, nil)

	user, err := svc.GetProfile(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "dongho@example.com", user.Email)
}

func TestGetProfile_DeletedUser(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("GetByID", ctx, "gone").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetProfile(ctx, "gone")

	require.Error(t, err)
	// A valid token for a removed account is a not-found, not an auth failure.
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGetProfile_NoStore(t *testing.T) {
	svc := NewAuthService(nil, newTestJWTManager(), &stubEventPublisher{}, newTestLogger())

	_, err := svc.GetProfile(context.Background(), "u1")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

// --- ListUsers Tests ---

func TestListUsers_Success(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := newTestService(userRepo)
	ctx := context.Background()

	userRepo.On("List", ctx).Return([]domain.User{
		{ID: "u1", Email: "a@example.com"},
		{ID: "u2", Email: "b@example.com"},
	}, nil)

	users, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListUsers_NoStore(t *testing.T) {
	svc := NewAuthService(nil, newTestJWTManager(), &stubEventPublisher{}, newTestLogger())

	_, err := svc.ListUsers(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}
