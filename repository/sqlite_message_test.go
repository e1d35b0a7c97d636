package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Danchouvzv/nevsluh/database"
	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// newTestDB, in-memory SQLite açar — migration'lar otomatik uygulanır.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.Conn
}

// insertPublicMessage, sıralama testleri için created_at'i kontrollü yazar.
func insertPublicMessage(t *testing.T, db *sql.DB, id string, createdAt time.Time) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO messages (id, body, category, is_public, reaction_count, created_at)
		VALUES (?, 'body', 'story', 1, 0, ?)`, id, createdAt)
	if err != nil {
		t.Fatalf("insert message %s: %v", id, err)
	}
}

func TestMessageCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)
	ctx := context.Background()

	msg := &models.Message{
		Body:     "я боюсь темноты",
		Category: models.CategoryConfession,
		Flags: models.MessageFlags{
			Public:           true,
			AIReplyRequested: true,
		},
	}

	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("Create did not populate ID")
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("Create did not populate CreatedAt")
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Body != msg.Body {
		t.Errorf("Body = %q, want %q", got.Body, msg.Body)
	}
	if got.Category != models.CategoryConfession {
		t.Errorf("Category = %q, want confession", got.Category)
	}
	if !got.Flags.Public || !got.Flags.AIReplyRequested || got.Flags.AllowVideoReading {
		t.Errorf("Flags = %+v, want {true true false}", got.Flags)
	}
	if got.AIReply != nil {
		t.Errorf("AIReply = %v, want nil on fresh message", *got.AIReply)
	}
	if got.ReactionCount != 0 {
		t.Errorf("ReactionCount = %d, want 0", got.ReactionCount)
	}
}

func TestMessageGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)

	_, err := repo.GetByID(context.Background(), "deadbeef00000000")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("GetByID unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestListPublicExcludesPrivate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)
	ctx := context.Background()

	public := &models.Message{Body: "public", Category: models.CategoryHope,
		Flags: models.MessageFlags{Public: true}}
	private := &models.Message{Body: "private", Category: models.CategoryPain}

	if err := repo.Create(ctx, public); err != nil {
		t.Fatalf("Create public: %v", err)
	}
	if err := repo.Create(ctx, private); err != nil {
		t.Fatalf("Create private: %v", err)
	}

	got, err := repo.ListPublic(ctx, 10)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListPublic returned %d messages, want 1", len(got))
	}
	if got[0].ID != public.ID {
		t.Errorf("ListPublic returned %s, want public message %s", got[0].ID, public.ID)
	}
}

func TestListPublicNewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	insertPublicMessage(t, db, "msg-old", base)
	insertPublicMessage(t, db, "msg-mid", base.Add(time.Hour))
	insertPublicMessage(t, db, "msg-new", base.Add(2*time.Hour))

	got, err := repo.ListPublic(ctx, 2)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPublic returned %d messages, want 2", len(got))
	}
	if got[0].ID != "msg-new" || got[1].ID != "msg-mid" {
		t.Errorf("ListPublic order = [%s %s], want [msg-new msg-mid]", got[0].ID, got[1].ID)
	}
}

func TestListPublicEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)

	got, err := repo.ListPublic(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ListPublic on empty table returned %d messages", len(got))
	}
}

func TestAttachAIReply(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)
	ctx := context.Background()

	msg := &models.Message{Body: "body", Category: models.CategoryDream,
		Flags: models.MessageFlags{AIReplyRequested: true}}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.AttachAIReply(ctx, msg.ID, "first reply"); err != nil {
		t.Fatalf("AttachAIReply: %v", err)
	}
	// İkinci çağrı üzerine yazar — hata değil.
	if err := repo.AttachAIReply(ctx, msg.ID, "second reply"); err != nil {
		t.Fatalf("AttachAIReply (overwrite): %v", err)
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AIReply == nil || *got.AIReply != "second reply" {
		t.Errorf("AIReply = %v, want %q", got.AIReply, "second reply")
	}
}

func TestAttachAIReplyNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db)

	err := repo.AttachAIReply(context.Background(), "deadbeef00000000", "reply")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("AttachAIReply unknown id: err = %v, want ErrNotFound", err)
	}
}
