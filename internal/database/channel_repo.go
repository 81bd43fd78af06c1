package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bennhinn/youtube-learning-app/internal/models"
)

type ChannelRepo struct {
	db *DB
}

func NewChannelRepo(db *DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// Add marks a channel as trusted for the user. Re-adding updates the title.
func (r *ChannelRepo) Add(ctx context.Context, channel *models.TrustedChannel) error {
	channel.AddedAt = time.Now()

	query := `
		INSERT INTO trusted_channels (user_id, channel_id, channel_title, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, channel_id)
		DO UPDATE SET channel_title = excluded.channel_title`
	if r.db.dbType == "postgres" {
		query = `
		INSERT INTO trusted_channels (user_id, channel_id, channel_title, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, channel_id)
		DO UPDATE SET channel_title = EXCLUDED.channel_title`
	}

	_, err := r.db.conn.ExecContext(ctx, query,
		channel.UserID, channel.ChannelID, channel.ChannelTitle, channel.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to add trusted channel: %w", err)
	}
	return nil
}

func (r *ChannelRepo) Remove(ctx context.Context, userID, channelID string) error {
	query := `DELETE FROM trusted_channels WHERE user_id = ? AND channel_id = ?`
	if r.db.dbType == "postgres" {
		query = `DELETE FROM trusted_channels WHERE user_id = $1 AND channel_id = $2`
	}

	if _, err := r.db.conn.ExecContext(ctx, query, userID, channelID); err != nil {
		return fmt.Errorf("failed to remove trusted channel: %w", err)
	}
	return nil
}

func (r *ChannelRepo) List(ctx context.Context, userID string) ([]models.TrustedChannel, error) {
	query := `SELECT user_id, channel_id, channel_title, added_at FROM trusted_channels WHERE user_id = ? ORDER BY added_at`
	if r.db.dbType == "postgres" {
		query = `SELECT user_id, channel_id, channel_title, added_at FROM trusted_channels WHERE user_id = $1 ORDER BY added_at`
	}

	rows, err := r.db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trusted channels: %w", err)
	}
	defer rows.Close()

	var channels []models.TrustedChannel
	for rows.Next() {
		var channel models.TrustedChannel
		if err := rows.Scan(&channel.UserID, &channel.ChannelID, &channel.ChannelTitle, &channel.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trusted channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trusted channels: %w", err)
	}
	return channels, nil
}

// IDSet returns the trusted channels as a lookup set for scoring.
func (r *ChannelRepo) IDSet(ctx context.Context, userID string) (map[string]bool, error) {
	channels, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(channels))
	for _, channel := range channels {
		set[channel.ChannelID] = true
	}
	return set, nil
}
