package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// BlacklistAccessToken добавляет access token в чёрный список.
// Список append-only, записи не удаляются.
func (r *tokenRepository) BlacklistAccessToken(ctx context.Context, token string) error {
	query := `
		INSERT INTO blacklisted_tokens (token_id, token, blacklisted_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), token)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении токена в чёрный список: %w", err)
	}

	return nil
}

func (r *tokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`

	err := r.db.GetContext(ctx, &exists, query, token)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке чёрного списка: %w", err)
	}

	return exists, nil
}
