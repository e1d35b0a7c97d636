package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
)

// Tarihler hep UTC — delivery_date karşılaştırmaları driver'ın yazdığı
// metin formatı üzerinden yapılır, karışık timezone karşılaştırmayı bozar.
func letterFixture(deliveryDate time.Time) *models.FutureLetter {
	return &models.FutureLetter{
		Body:         "dear future me",
		Recipient:    "Future Me",
		Email:        "someone@example.com",
		AnonToken:    "token-a",
		DeliveryDate: deliveryDate,
	}
}

func TestLetterCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	due := time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)
	letter := letterFixture(due)
	if err := repo.Create(ctx, letter); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if letter.ID == "" {
		t.Fatal("Create did not populate ID")
	}
	if letter.Status != models.LetterStatusPending {
		t.Errorf("Status after Create = %q, want pending", letter.Status)
	}

	got, err := repo.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.LetterStatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", got.Attempts)
	}
	if got.LastError != nil {
		t.Errorf("LastError = %v, want nil", *got.LastError)
	}
	if !got.DeliveryDate.Equal(due) {
		t.Errorf("DeliveryDate = %v, want %v", got.DeliveryDate, due)
	}
	if got.Email != "someone@example.com" {
		t.Errorf("Email = %q, want someone@example.com", got.Email)
	}
}

func TestLetterGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)

	_, err := repo.GetByID(context.Background(), "deadbeef00000000")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("GetByID unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestListDueReturnsOnlyDuePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	due := letterFixture(now.Add(-time.Hour))
	notYet := letterFixture(now.Add(time.Hour))
	if err := repo.Create(ctx, due); err != nil {
		t.Fatalf("Create due: %v", err)
	}
	if err := repo.Create(ctx, notYet); err != nil {
		t.Fatalf("Create notYet: %v", err)
	}

	got, err := repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(got) != 1 || got[0].ID != due.ID {
		t.Fatalf("ListDue returned %d letters, want only the past-due one", len(got))
	}

	// Teslim edilen mektup bir daha listelenmez.
	if err := repo.MarkDelivered(ctx, due.ID); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	got, err = repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue after deliver: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ListDue after MarkDelivered returned %d letters, want 0", len(got))
	}
}

func TestListDueOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	oldest := letterFixture(now.Add(-3 * time.Hour))
	middle := letterFixture(now.Add(-2 * time.Hour))
	newest := letterFixture(now.Add(-time.Hour))
	for _, l := range []*models.FutureLetter{newest, oldest, middle} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListDue(ctx, now, 2)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListDue returned %d letters, want 2", len(got))
	}
	// En eski teslim tarihi önce — biriken kuyrukta sıra adaleti.
	if got[0].ID != oldest.ID || got[1].ID != middle.ID {
		t.Errorf("ListDue order = [%s %s], want oldest then middle", got[0].ID, got[1].ID)
	}
}

func TestRecordAttemptKeepsPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	letter := letterFixture(now.Add(-time.Hour))
	if err := repo.Create(ctx, letter); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.RecordAttempt(ctx, letter.ID, "smtp timeout"); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}

	got, err := repo.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.LetterStatusPending {
		t.Errorf("Status = %q, want pending after RecordAttempt", got.Status)
	}
	if got.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", got.Attempts)
	}
	if got.LastError == nil || *got.LastError != "smtp timeout" {
		t.Errorf("LastError = %v, want \"smtp timeout\"", got.LastError)
	}

	// Pending kaldığı için sonraki tick tekrar görür.
	due, err := repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("ListDue after RecordAttempt returned %d, want 1", len(due))
	}
}

func TestMarkFailedClosesLetter(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	letter := letterFixture(now.Add(-time.Hour))
	if err := repo.Create(ctx, letter); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.MarkFailed(ctx, letter.ID, "mailbox does not exist"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	got, err := repo.GetByID(ctx, letter.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.LetterStatusFailed {
		t.Errorf("Status = %q, want failed", got.Status)
	}

	due, err := repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("ListDue after MarkFailed returned %d, want 0", len(due))
	}
}

func TestLetterStatusUpdatesUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteLetterRepo(db)
	ctx := context.Background()

	if err := repo.MarkDelivered(ctx, "deadbeef00000000"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("MarkDelivered unknown id: err = %v, want ErrNotFound", err)
	}
	if err := repo.MarkFailed(ctx, "deadbeef00000000", "x"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("MarkFailed unknown id: err = %v, want ErrNotFound", err)
	}
	if err := repo.RecordAttempt(ctx, "deadbeef00000000", "x"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("RecordAttempt unknown id: err = %v, want ErrNotFound", err)
	}
}
