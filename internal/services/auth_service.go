package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"counterapp/internal/config"
	"counterapp/internal/models"
	"counterapp/internal/repositories"
	"counterapp/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors for the auth failure taxonomy. Handlers map these to
// HTTP status codes with errors.Is instead of matching error text.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	mqClient   *rabbitmq.Client // optional, nil disables event publishing
	jwtSecret  []byte
	jwtIssuer  string
	jwtAudien  string
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. mqClient may be nil, in
// which case auth events are not published.
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config, mqClient *rabbitmq.Client) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mqClient:   mqClient,
		jwtSecret:  []byte(cfg.JWTSecret),
		jwtIssuer:  cfg.JWTIssuer,
		jwtAudien:  cfg.JWTAudience,
		tokenDurat: time.Hour, // Token valid for 1 hour
	}
}

// Register creates a new active user with a bcrypt-hashed password.
// The username check runs before the email check, so a request that
// collides on both reports the username conflict.
func (s *AuthService) Register(username, password, email string) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publishEvent("user.registered", user)

	return user, nil
}

// Login authenticates a user and returns a signed token plus the user
// record. An unknown username, an inactive account, and a wrong
// password all collapse into ErrInvalidCredentials so the response
// never reveals which check failed.
func (s *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.publishEvent("user.login", user)

	return token, user, nil
}

// IssueToken generates a signed JWT carrying the user's identity claims.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iss":      s.jwtIssuer,
		"aud":      s.jwtAudien,
		"exp":      now.Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      now.Unix(),                   // Issued at time
		"jti":      uuid.New().String(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken verifies a token's signature, issuer, audience and
// expiry, then re-fetches the referenced user. Every failure mode,
// including a deactivated user, collapses into ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.jwtIssuer, true) || !claims.VerifyAudience(s.jwtAudien, true) {
		return nil, ErrInvalidToken
	}

	// Numeric claims decode as float64.
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(uint(id))
	if err != nil || !user.IsActive {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// publishEvent sends an auth lifecycle event to RabbitMQ on a best
// effort basis. Publishing failures are logged, never propagated.
func (s *AuthService) publishEvent(event string, user *models.User) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	}
	if err := s.mqClient.PublishAuthEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for user %d: %v", event, user.ID, err)
	}
}
