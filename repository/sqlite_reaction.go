package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Danchouvzv/nevsluh/database"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
//
// Diğer repository'lerden farklı olarak *sql.DB tutar (TxQuerier değil) —
// Add kendi transaction'ını başlatmak zorundadır.
type sqliteReactionRepo struct {
	db *sql.DB
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(db *sql.DB) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

// Add, tepki kaydını ve sayaç artışını tek transaction'da yapar.
//
// Adımlar (hepsi aynı transaction'da):
//  1. Mesajın sayacını oku — mesaj yoksa ErrNotFound, ROLLBACK.
//  2. INSERT OR IGNORE ile tepkiyi ekle.
//     rowsAffected == 0 → UNIQUE(message_id, anon_token) engelledi →
//     zaten tepki verilmiş → added=false, sayaç değişmez.
//  3. Eklendiyse reaction_count'u +1 artır.
//
// UNIQUE constraint dedup'u DB seviyesinde korur: iki eşzamanlı istek aynı
// çifti eklemeye çalışsa bile yalnızca biri kazanır. Sayaç artışı aynı
// commit'te olduğundan, araya giren bir crash sayacı tepki kayıtlarından
// ayrı düşüremez — iki ayrı yazma olsaydı bu boşluk kalırdı.
func (r *sqliteReactionRepo) Add(ctx context.Context, messageID, anonToken string) (bool, int, error) {
	var added bool
	var count int

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT reaction_count FROM messages WHERE id = ?`, messageID,
		).Scan(&count)
		if errors.Is(err, sql.ErrNoRows) {
			return pkg.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read reaction count: %w", err)
		}

		insertQuery := `
			INSERT OR IGNORE INTO reactions (id, message_id, anon_token)
			VALUES (lower(hex(randomblob(8))), ?, ?)`

		result, err := tx.ExecContext(ctx, insertQuery, messageID, anonToken)
		if err != nil {
			return fmt.Errorf("add reaction insert: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("add reaction rows affected: %w", err)
		}
		if affected == 0 {
			// Zaten tepki var — no-op, mevcut sayaç döner.
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE messages SET reaction_count = reaction_count + 1 WHERE id = ?`,
			messageID); err != nil {
			return fmt.Errorf("increment reaction count: %w", err)
		}

		added = true
		count++
		return nil
	})

	if err != nil {
		return false, 0, err
	}

	return added, count, nil
}
