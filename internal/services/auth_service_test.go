package services_test

import (
	"testing"
	"time"

	"counterapp/internal/config"
	"counterapp/internal/models"
	"counterapp/internal/repositories"
	"counterapp/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test_jwt_secret",
		JWTIssuer:   "counterapp",
		JWTAudience: "counterapp-clients",
	}
}

// signTestToken builds a token with arbitrary claims for negative tests.
func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testConfig(), nil)

	// Successful registration: the stored hash must not equal the
	// plaintext and must verify against it.
	var created *models.User
	mockRepo.On("GetByUsername", "testuser").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := authService.Register("testuser", "password123", "test@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.Register("testuser", "password123", "other@example.com")
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Email already registered (username check passes first)
	mockRepo.On("GetByUsername", "otheruser").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.Register("otheruser", "password123", "test@example.com")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	cfg := testConfig()
	authService := services.NewAuthService(mockRepo, cfg, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:           123,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	// Successful login
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	token, loggedIn, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	mockRepo.AssertExpectations(t)

	// Check the issued claims
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(user.ID), claims["id"])
	assert.Equal(t, user.Username, claims["username"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, cfg.JWTIssuer, claims["iss"])
	assert.Equal(t, cfg.JWTAudience, claims["aud"])
	assert.NotEmpty(t, claims["jti"])
	// Expires 60 minutes after issuance
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), claims["exp"].(float64), 5)

	// Wrong password and unknown username collapse into the same error
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, _, errWrongPass := authService.Login("testuser", "wrongpassword")
	assert.ErrorIs(t, errWrongPass, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, repositories.ErrUserNotFound).Once()
	_, _, errNoUser := authService.Login("nonexistentuser", "password123")
	assert.ErrorIs(t, errNoUser, services.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	mockRepo.AssertExpectations(t)

	// Inactive account is indistinguishable from bad credentials
	inactive := *user
	inactive.IsActive = false
	mockRepo.On("GetByUsername", "testuser").Return(&inactive, nil).Once()
	_, _, err = authService.Login("testuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	cfg := testConfig()
	authService := services.NewAuthService(mockRepo, cfg, nil)

	user := &models.User{
		ID:       123,
		Username: "testuser",
		Email:    "test@example.com",
		IsActive: true,
	}

	// A token issued now validates and resolves the user
	tokenString, err := authService.IssueToken(user)
	assert.NoError(t, err)
	mockRepo.On("GetByID", uint(123)).Return(user, nil).Once()
	validated, err := authService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)
	assert.Equal(t, user.Username, validated.Username)
	mockRepo.AssertExpectations(t)

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired token
	expired := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":  float64(user.ID),
		"iss": cfg.JWTIssuer,
		"aud": cfg.JWTAudience,
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong issuer
	wrongIssuer := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":  float64(user.ID),
		"iss": "someone-else",
		"aud": cfg.JWTAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(wrongIssuer)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong audience
	wrongAudience := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
		"id":  float64(user.ID),
		"iss": cfg.JWTIssuer,
		"aud": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(wrongAudience)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong secret
	wrongSecret := signTestToken(t, "another_secret", jwt.MapClaims{
		"id":  float64(user.ID),
		"iss": cfg.JWTIssuer,
		"aud": cfg.JWTAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = authService.ValidateToken(wrongSecret)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// A correctly signed, unexpired token for a deactivated user fails
	deactivated := *user
	deactivated.IsActive = false
	tokenString, err = authService.IssueToken(&deactivated)
	assert.NoError(t, err)
	mockRepo.On("GetByID", uint(123)).Return(&deactivated, nil).Once()
	_, err = authService.ValidateToken(tokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockRepo.AssertExpectations(t)

	// Token whose subject no longer exists fails
	tokenString, err = authService.IssueToken(user)
	assert.NoError(t, err)
	mockRepo.On("GetByID", uint(123)).Return(nil, repositories.ErrUserNotFound).Once()
	_, err = authService.ValidateToken(tokenString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}
