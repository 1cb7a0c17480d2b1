package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"confidence-pool-go/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserRepository interface for user data operations
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo    UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// JWTClaims represents the claims in our JWT token
type JWTClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo UserRepository, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a new user account
func (a *AuthService) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, errors.New("invalid email address")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters long")
	}

	if _, err := a.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	}

	user, err := models.NewUser(name, email, password, false)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := a.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{
		User:  user.ToSafeUser(),
		Token: token,
	}, nil
}

// Login authenticates a user and returns a JWT token
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if !user.CheckPassword(password) {
		return nil, errors.New("invalid email or password")
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{
		User:  user.ToSafeUser(),
		Token: token,
	}, nil
}

// GenerateToken creates a new JWT token for the user
func (a *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := JWTClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "confidence-pool",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// GetUserFromToken validates token and returns the user
func (a *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}
