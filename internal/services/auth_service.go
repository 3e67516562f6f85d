package services

import (
	"context"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// TokenResponse is the issued access token and its expiry.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService handles staff login and token issuance
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*TokenResponse, *models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := common.ValidateRequiredString(username, "username"); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, common.NewValidationError("password must be at least 6 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.SecureErrorMessage("look up user", err)
	}
	if existing != nil {
		return nil, common.NewValidationError("username %s is already taken", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.SecureErrorMessage("hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, common.SecureErrorMessage("create user", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenResponse, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, common.SecureErrorMessage("look up user", err)
	}
	if user == nil {
		return nil, nil, common.NewValidationError("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.NewValidationError("invalid username or password")
	}

	expiresAt := time.Now().Add(tokenLifetime)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, nil, common.SecureErrorMessage("sign token", err)
	}

	return &TokenResponse{AccessToken: signed, ExpiresAt: expiresAt}, user, nil
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch user", err)
	}
	if user == nil {
		return nil, common.NotFoundf("user %s", userID)
	}
	return user, nil
}
