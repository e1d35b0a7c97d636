package repository

import (
	"context"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
)

// LetterRepository, gelecek mektubu veritabanı işlemleri için interface.
//
// ListDue, teslim zamanı gelmiş pending mektupları döner (dispatcher kullanır).
// MarkDelivered / MarkFailed durumu kalıcı olarak kapatır.
// RecordAttempt, başarısız bir gönderim denemesini kaydeder ama mektubu
// pending bırakır — bir sonraki tick tekrar dener.
type LetterRepository interface {
	Create(ctx context.Context, letter *models.FutureLetter) error
	GetByID(ctx context.Context, id string) (*models.FutureLetter, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]models.FutureLetter, error)
	MarkDelivered(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, lastError string) error
	RecordAttempt(ctx context.Context, id string, lastError string) error
}
