package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository_BlacklistAccessToken(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewTokenRepository(sqlxDB)

	query := `
		INSERT INTO blacklisted_tokens (token_id, token, blacklisted_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
	`

	mock.ExpectExec(query).
		WithArgs(sqlmock.AnyArg(), "access-token").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.BlacklistAccessToken(context.Background(), "access-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_IsBlacklisted(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewTokenRepository(sqlxDB)

	ctx := context.Background()

	t.Run("Токен в чёрном списке", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`).
			WithArgs("revoked").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		blacklisted, err := repo.IsBlacklisted(ctx, "revoked")

		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("Токен не в чёрном списке", func(t *testing.T) {
		mock.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`).
			WithArgs("live").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		blacklisted, err := repo.IsBlacklisted(ctx, "live")

		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}
