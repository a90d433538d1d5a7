package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"outvibe-backend/internal/models"
	"outvibe-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	codeLength = 6
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	jwtExpDays = 365
)

// AccountService handles device-account business logic
type AccountService struct {
	accountRepo *repository.AccountRepository
	jwtSecret   string
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo *repository.AccountRepository, jwtSecret string) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
	}
}

// GenerateUniqueCode generates a unique 6-character pairing code
func (s *AccountService) GenerateUniqueCode(ctx context.Context) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateCode()
		exists, err := s.accountRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxAttempts)
}

// generateCode generates a random 6-character code
func generateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}

// GenerateJWT generates a JWT token for an account
func (s *AccountService) GenerateJWT(accountID string) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the account ID
func (s *AccountService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	accountID, ok := claims["account_id"].(string)
	if !ok {
		return "", fmt.Errorf("account_id not found in token")
	}

	return accountID, nil
}

// CreateAccount creates a new anonymous device account
func (s *AccountService) CreateAccount(ctx context.Context) (*models.Account, error) {
	code, err := s.GenerateUniqueCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	accountID := uuid.New().String()

	token, err := s.GenerateJWT(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	account := &models.Account{
		ID:        accountID,
		Code:      code,
		Token:     token,
		CreatedAt: time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetByCode retrieves an account by pairing code
func (s *AccountService) GetByCode(ctx context.Context, code string) (*models.Account, error) {
	return s.accountRepo.GetByCode(ctx, code)
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// RegisterPushToken stores the APNs device token for an account
func (s *AccountService) RegisterPushToken(ctx context.Context, accountID string, pushToken *string) error {
	return s.accountRepo.UpdatePushToken(ctx, accountID, pushToken)
}
