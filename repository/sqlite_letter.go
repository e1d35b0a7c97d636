package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// sqliteLetterRepo, LetterRepository interface'inin SQLite implementasyonu.
type sqliteLetterRepo struct {
	db *sql.DB
}

// NewSQLiteLetterRepo, constructor — interface döner.
func NewSQLiteLetterRepo(db *sql.DB) LetterRepository {
	return &sqliteLetterRepo{db: db}
}

func (r *sqliteLetterRepo) Create(ctx context.Context, letter *models.FutureLetter) error {
	query := `
		INSERT INTO future_letters (id, body, recipient, email, anon_token,
		                            delivery_date, status, attempts)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, 'pending', 0)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		letter.Body,
		letter.Recipient,
		letter.Email,
		letter.AnonToken,
		letter.DeliveryDate,
	).Scan(&letter.ID, &letter.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create future letter: %w", err)
	}

	letter.Status = models.LetterStatusPending
	return nil
}

func (r *sqliteLetterRepo) GetByID(ctx context.Context, id string) (*models.FutureLetter, error) {
	query := `
		SELECT id, body, recipient, email, anon_token, delivery_date,
		       status, attempts, last_error, created_at
		FROM future_letters
		WHERE id = ?`

	letter := &models.FutureLetter{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&letter.ID, &letter.Body, &letter.Recipient, &letter.Email,
		&letter.AnonToken, &letter.DeliveryDate, &letter.Status,
		&letter.Attempts, &letter.LastError, &letter.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get letter by id: %w", err)
	}

	return letter, nil
}

// ListDue, teslim zamanı gelmiş pending mektupları eski tarihten yeniye döner.
// Limit dispatcher'ın tick başına iş yükünü sınırlar — çok birikmiş mektup
// olsa bile her tick bounded çalışır, kalanı sonraki tick alır.
func (r *sqliteLetterRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]models.FutureLetter, error) {
	query := `
		SELECT id, body, recipient, email, anon_token, delivery_date,
		       status, attempts, last_error, created_at
		FROM future_letters
		WHERE status = 'pending' AND delivery_date <= ?
		ORDER BY delivery_date ASC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due letters: %w", err)
	}
	defer rows.Close()

	var letters []models.FutureLetter
	for rows.Next() {
		var letter models.FutureLetter
		if err := rows.Scan(
			&letter.ID, &letter.Body, &letter.Recipient, &letter.Email,
			&letter.AnonToken, &letter.DeliveryDate, &letter.Status,
			&letter.Attempts, &letter.LastError, &letter.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan letter row: %w", err)
		}
		letters = append(letters, letter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating letter rows: %w", err)
	}

	return letters, nil
}

func (r *sqliteLetterRepo) MarkDelivered(ctx context.Context, id string) error {
	return r.setStatus(ctx, id,
		`UPDATE future_letters SET status = 'delivered', last_error = NULL WHERE id = ?`, id)
}

func (r *sqliteLetterRepo) MarkFailed(ctx context.Context, id string, lastError string) error {
	return r.setStatus(ctx, id,
		`UPDATE future_letters SET status = 'failed', last_error = ? WHERE id = ?`, lastError, id)
}

// RecordAttempt, başarısız denemeyi kaydeder — status pending kalır,
// attempts artar. Max deneme kontrolü dispatcher'dadır, repository politika bilmez.
func (r *sqliteLetterRepo) RecordAttempt(ctx context.Context, id string, lastError string) error {
	return r.setStatus(ctx, id,
		`UPDATE future_letters SET attempts = attempts + 1, last_error = ? WHERE id = ?`, lastError, id)
}

func (r *sqliteLetterRepo) setStatus(ctx context.Context, id string, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update letter %s: %w", id, err)
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
