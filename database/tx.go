// Package database — Transaction yönetimi.
//
// WithTx, birden fazla DB operasyonunun atomik (all-or-nothing) çalışmasını sağlar.
// Tepki akışı bunun tek kritik kullanıcısıdır: reaction INSERT'i ile
// reaction_count artışı AYNI commit'te yapılmalıdır. İki ayrı yazma olsaydı,
// aralarında bir crash sayacı kalıcı olarak 1 eksik bırakırdı.
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxQuerier, hem *sql.DB hem *sql.Tx tarafından karşılanan interface.
//
// Repository'ler bu interface'i kabul ederse, normal operasyonlarda *sql.DB,
// transaction içinde *sql.Tx geçilebilir. database/sql bu interface'i
// tanımlamaz — biz tanımlıyoruz, duck typing sayesinde ikisi de karşılar.
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx, verilen fonksiyonu bir SQL transaction içinde çalıştırır.
//
// Davranış:
//  1. BEGIN
//  2. fn(tx) çağır
//  3. fn nil dönerse → COMMIT
//  4. fn error dönerse → ROLLBACK
//  5. fn panic atarsa → ROLLBACK + re-panic
//
// Panic recovery olmadan, fn içindeki beklenmeyen bir panic transaction'ı
// açık bırakır — SQLite tek yazarlı olduğundan tüm yazma işlemleri kilitlenir.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return
}
