package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/ai"
	"github.com/Danchouvzv/nevsluh/pkg/cache"
	"github.com/Danchouvzv/nevsluh/repository"
	"github.com/Danchouvzv/nevsluh/ws"
)

// publicWindowSize, feed örnekleminin çekildiği pencere: en yeni 50 public mesaj.
//
// Bu BİLİNÇLİ olarak taraflı bir örnekleme — eski mesajlar pencereye hiç
// girmez. Küçük bir feed ürünü için kabul edilebilir; genel bir random-sample
// algoritması değildir ve öyleymiş gibi kullanılmamalıdır.
const publicWindowSize = 50

// feedCacheKey, TTL cache'te public pencerenin tek key'i.
const feedCacheKey = "public_window"

// aiReplyTimeout, asenkron AI yanıt üretiminin toplam süresi.
// Gemini client'ın kendi 30sn timeout'u vardır; bu üst sınır DB patch'ini
// de kapsar.
const aiReplyTimeout = 45 * time.Second

// MessageService, mesaj iş mantığı interface'i.
type MessageService interface {
	Create(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error)
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetPublicSample(ctx context.Context, count int) ([]models.Message, error)
	AttachAIReply(ctx context.Context, id string, reply string) error
}

type messageService struct {
	messageRepo  repository.MessageRepository
	locationRepo repository.LocationRepository
	replyGen     ai.ReplyGenerator
	hub          ws.EventPublisher
	feedCache    *cache.TTLCache[string, []models.Message]
}

// NewMessageService, constructor.
// feedCache: public pencereyi birkaç saniye tutar — feed sayfası her
// yenilendiğinde DB'ye gitmemek için.
func NewMessageService(
	messageRepo repository.MessageRepository,
	locationRepo repository.LocationRepository,
	replyGen ai.ReplyGenerator,
	hub ws.EventPublisher,
	feedCache *cache.TTLCache[string, []models.Message],
) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		locationRepo: locationRepo,
		replyGen:     replyGen,
		hub:          hub,
		feedCache:    feedCache,
	}
}

// Create, yeni bir anonim mesaj oluşturur.
//
// Akış:
//  1. Validation (boş body, geçersiz kategori → ErrBadRequest, yazma olmaz)
//  2. location_id verilmişse var olduğu doğrulanır
//  3. Insert (reaction_count=0, server timestamp)
//  4. Public ise feed cache invalidate + MESSAGE_CREATE broadcast
//  5. ai_reply_requested ise yanıt ÜRETİMİ ASENKRON başlar — response'u bekletmez
func (s *messageService) Create(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if req.LocationID != nil && *req.LocationID != "" {
		if _, err := s.locationRepo.GetByID(ctx, *req.LocationID); err != nil {
			return nil, fmt.Errorf("%w: unknown location", pkg.ErrBadRequest)
		}
	} else {
		req.LocationID = nil
	}

	message := &models.Message{
		Body:       req.Body,
		Category:   req.Category,
		Flags:      req.Flags,
		LocationID: req.LocationID,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if message.Flags.Public {
		// Yeni public mesaj pencereyi değiştirdi — cache'i düşür.
		s.feedCache.Delete(feedCacheKey)
		s.hub.Broadcast(ws.Event{Op: ws.OpMessageCreate, Data: message})
	}

	if message.Flags.AIReplyRequested {
		// Request context'i response ile birlikte iptal olur —
		// arka plan işi kendi context'ini taşır.
		go s.generateAndAttachReply(message.ID, message.Body, message.Category)
	}

	return message, nil
}

// generateAndAttachReply, AI yanıtını üretir ve mesaja patch'ler.
//
// ReplyGenerator hata dönmez (her başarısızlıkta fallback metni verir),
// bu yüzden buradaki tek hata kaynağı DB patch'idir. Patch hatası mesaj
// oluşturmayı etkilemez — sadece loglanır, mesaj yanıtsız kalır.
func (s *messageService) generateAndAttachReply(id, body string, category models.Category) {
	ctx, cancel := context.WithTimeout(context.Background(), aiReplyTimeout)
	defer cancel()

	reply := s.replyGen.GenerateReply(ctx, body, category)

	if err := s.AttachAIReply(ctx, id, reply); err != nil {
		log.Printf("[message] failed to attach ai reply to %s: %v", id, err)
	}
}

func (s *messageService) GetByID(ctx context.Context, id string) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// GetPublicSample, feed için rastgele public mesaj örneklemi döner.
//
// Pencere (en yeni 50 public mesaj) TTL cache'ten gelir; cache miss'te
// DB'den çekilip cache'lenir. Shuffle HER istekte taze yapılır — iki
// kullanıcı aynı pencereden farklı sıralar görür. Dönen dilim kopyadır,
// cache'teki pencere mutate edilmez.
func (s *messageService) GetPublicSample(ctx context.Context, count int) ([]models.Message, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", pkg.ErrBadRequest)
	}
	if count > publicWindowSize {
		count = publicWindowSize
	}

	window, ok := s.feedCache.Get(feedCacheKey)
	if !ok {
		var err error
		window, err = s.messageRepo.ListPublic(ctx, publicWindowSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load public window: %w", err)
		}
		s.feedCache.Set(feedCacheKey, window)
	}

	// Kopya üzerinde shuffle — cache'teki slice'a dokunma.
	sample := make([]models.Message, len(window))
	copy(sample, window)
	rand.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})

	if len(sample) > count {
		sample = sample[:count]
	}

	// nil slice JSON'a "null" serialize edilir — boş feed'de boş dizi dön.
	if sample == nil {
		sample = []models.Message{}
	}

	return sample, nil
}

// AttachAIReply, ai_reply alanını idempotent patch'ler ve güncellemeyi yayınlar.
func (s *messageService) AttachAIReply(ctx context.Context, id string, reply string) error {
	if err := s.messageRepo.AttachAIReply(ctx, id, reply); err != nil {
		return err
	}

	// Güncel halini okuyup broadcast et — public değilse yayınlama.
	message, err := s.messageRepo.GetByID(ctx, id)
	if err == nil && message.Flags.Public {
		s.feedCache.Delete(feedCacheKey)
		s.hub.Broadcast(ws.Event{Op: ws.OpMessageUpdate, Data: message})
	}

	return nil
}
