package repository

import (
	"context"
	"fmt"

	"outvibe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository handles database operations for device accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, code, token, push_token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, account.ID, account.Code, account.Token, account.PushToken, account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, code, token, push_token, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Code, &account.Token, &account.PushToken, &account.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("account not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByCode retrieves an account by pairing code
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*models.Account, error) {
	query := `
		SELECT id, code, token, push_token, created_at
		FROM accounts
		WHERE code = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, code).Scan(
		&account.ID, &account.Code, &account.Token, &account.PushToken, &account.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("account not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get account by code: %w", err)
	}
	return &account, nil
}

// CodeExists checks if a pairing code already exists
func (r *AccountRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE code = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}
	return exists, nil
}

// UpdatePushToken updates the push token for an account
func (r *AccountRepository) UpdatePushToken(ctx context.Context, accountID string, pushToken *string) error {
	query := `UPDATE accounts SET push_token = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, pushToken, accountID)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}
