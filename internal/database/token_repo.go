package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

var ErrTokenNotFound = errors.New("no token stored for user")

// TokenRepo persists per-user OAuth tokens as JSON blobs. It satisfies
// auth.TokenStore.
type TokenRepo struct {
	db *DB
}

func NewTokenRepo(db *DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) SaveToken(ctx context.Context, userID string, token *oauth2.Token) error {
	blob, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	query := `
		INSERT INTO user_tokens (user_id, token, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id)
		DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`
	if r.db.dbType == "postgres" {
		query = `
		INSERT INTO user_tokens (user_id, token, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at`
	}

	if _, err := r.db.conn.ExecContext(ctx, query, userID, string(blob), time.Now()); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	query := `SELECT token FROM user_tokens WHERE user_id = ?`
	if r.db.dbType == "postgres" {
		query = `SELECT token FROM user_tokens WHERE user_id = $1`
	}

	var blob string
	err := r.db.conn.QueryRowContext(ctx, query, userID).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(blob), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}
