package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/Danchouvzv/nevsluh/database"
	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/cache"
	"github.com/Danchouvzv/nevsluh/ws"
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

func newTestFeedCache(t *testing.T) *cache.TTLCache[string, []models.Message] {
	t.Helper()
	c := cache.New[string, []models.Message](10*time.Second, time.Minute)
	t.Cleanup(c.Close)
	return c
}

// fakeHub, yayınlanan event'leri kaydeden EventPublisher.
type fakeHub struct {
	mu     sync.Mutex
	events []ws.Event
}

func (h *fakeHub) Broadcast(event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *fakeHub) eventsByOp(op ws.Op) []ws.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []ws.Event
	for _, e := range h.events {
		if e.Op == op {
			out = append(out, e)
		}
	}
	return out
}

// fakeReplyGen, sabit yanıt dönen ReplyGenerator.
type fakeReplyGen struct {
	reply string
}

func (g *fakeReplyGen) GenerateReply(ctx context.Context, body string, category models.Category) string {
	return g.reply
}

// fakeLetterRepo, dispatcher testleri için in-memory LetterRepository.
// Durum geçişlerini gerçek repository gibi uygular ama I/O yapmaz.
type fakeLetterRepo struct {
	mu      sync.Mutex
	letters map[string]*models.FutureLetter
	created []string
}

func newFakeLetterRepo() *fakeLetterRepo {
	return &fakeLetterRepo{letters: make(map[string]*models.FutureLetter)}
}

func (r *fakeLetterRepo) put(letter *models.FutureLetter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters[letter.ID] = letter
}

func (r *fakeLetterRepo) get(id string) models.FutureLetter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.letters[id]
}

func (r *fakeLetterRepo) Create(ctx context.Context, letter *models.FutureLetter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter.ID = "letter-" + string(rune('a'+len(r.created)))
	letter.CreatedAt = time.Now().UTC()
	clone := *letter
	r.letters[letter.ID] = &clone
	r.created = append(r.created, letter.ID)
	return nil
}

func (r *fakeLetterRepo) GetByID(ctx context.Context, id string) (*models.FutureLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	clone := *letter
	return &clone, nil
}

func (r *fakeLetterRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]models.FutureLetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []models.FutureLetter
	for _, letter := range r.letters {
		if letter.Status == models.LetterStatusPending && !letter.DeliveryDate.After(now) {
			due = append(due, *letter)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *fakeLetterRepo) MarkDelivered(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[id]
	if !ok {
		return pkg.ErrNotFound
	}
	letter.Status = models.LetterStatusDelivered
	letter.LastError = nil
	return nil
}

func (r *fakeLetterRepo) MarkFailed(ctx context.Context, id string, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[id]
	if !ok {
		return pkg.ErrNotFound
	}
	letter.Status = models.LetterStatusFailed
	letter.LastError = &lastError
	return nil
}

func (r *fakeLetterRepo) RecordAttempt(ctx context.Context, id string, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	letter, ok := r.letters[id]
	if !ok {
		return pkg.ErrNotFound
	}
	letter.Attempts++
	letter.LastError = &lastError
	return nil
}

// fakeSender, gönderilen mektupları kaydeden EmailSender.
// failFor'daki mektup ID'leri için hata döner.
type fakeSender struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]error)}
}

func (s *fakeSender) SendFutureLetter(ctx context.Context, letter *models.FutureLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[letter.ID]; ok {
		return err
	}
	s.sent = append(s.sent, letter.ID)
	return nil
}

func (s *fakeSender) sentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}
