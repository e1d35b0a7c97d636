package repository

import (
	"context"

	"github.com/Danchouvzv/nevsluh/models"
)

// MessageRepository, mesaj veritabanı işlemleri için interface.
//
// ListPublic sabit bir pencere döner: en yeni `limit` public mesaj,
// created_at DESC. Rastgele örnekleme DEĞİLDİR — service katmanı bu
// pencereyi shuffle eder. Eski mesajlar pencereye hiç girmez; bu bilinçli
// bir ürün kararıdır (küçük feed, taze içerik), genel bir sampling
// algoritması değil.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	ListPublic(ctx context.Context, limit int) ([]models.Message, error)
	AttachAIReply(ctx context.Context, id string, reply string) error
}
