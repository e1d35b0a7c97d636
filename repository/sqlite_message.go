package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db *sql.DB) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, body, category, is_public, ai_reply_requested,
		                      allow_video_reading, location_id, reaction_count)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, 0)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		message.Body,
		message.Category,
		message.Flags.Public,
		message.Flags.AIReplyRequested,
		message.Flags.AllowVideoReading,
		message.LocationID,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	message.ReactionCount = 0
	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := `
		SELECT id, body, category, is_public, ai_reply_requested,
		       allow_video_reading, ai_reply, location_id, reaction_count, created_at
		FROM messages
		WHERE id = ?`

	msg := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.Body, &msg.Category,
		&msg.Flags.Public, &msg.Flags.AIReplyRequested, &msg.Flags.AllowVideoReading,
		&msg.AIReply, &msg.LocationID, &msg.ReactionCount, &msg.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	return msg, nil
}

// ListPublic, en yeni `limit` public mesajı döner (created_at DESC).
// idx_messages_public_created index'i bu sorguyu tam karşılar.
func (r *sqliteMessageRepo) ListPublic(ctx context.Context, limit int) ([]models.Message, error) {
	query := `
		SELECT id, body, category, is_public, ai_reply_requested,
		       allow_video_reading, ai_reply, location_id, reaction_count, created_at
		FROM messages
		WHERE is_public = 1
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.Body, &msg.Category,
			&msg.Flags.Public, &msg.Flags.AIReplyRequested, &msg.Flags.AllowVideoReading,
			&msg.AIReply, &msg.LocationID, &msg.ReactionCount, &msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// AttachAIReply, ai_reply alanını patch'ler. Idempotent — önceki değerin
// üzerine yazar. Mesaj yoksa ErrNotFound.
func (r *sqliteMessageRepo) AttachAIReply(ctx context.Context, id string, reply string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE messages SET ai_reply = ? WHERE id = ?`, reply, id)
	if err != nil {
		return fmt.Errorf("failed to attach ai reply: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
