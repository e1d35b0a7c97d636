package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/repository"
)

// LetterService, gelecek mektubu iş mantığı interface'i.
type LetterService interface {
	Schedule(ctx context.Context, anonToken string, req *models.ScheduleLetterRequest) (*models.FutureLetter, error)
}

type letterService struct {
	letterRepo repository.LetterRepository

	// now: zaman kaynağı — testlerde sabitlenebilir.
	now func() time.Time
}

// NewLetterService, constructor.
func NewLetterService(letterRepo repository.LetterRepository) LetterService {
	return &letterService{
		letterRepo: letterRepo,
		now:        time.Now,
	}
}

// Schedule, ileri tarihli bir mektup planlar.
//
// Teslim tarihi client'tan alınmaz — client sabit offsetlerden birini seçer
// (3m/6m/1y/2y/5y), tarih server saatiyle hesaplanır. Böylece geçmiş tarihli
// veya keyfi mektup planlanamaz.
//
// Tüm validation yazmadan ÖNCE yapılır: geçersiz istek (boş body, bozuk
// email) ErrBadRequest ile döner ve DB'ye hiçbir kayıt düşmez.
//
// Mektup pending durumunda doğar; teslimi LetterDispatcher yapar.
func (s *letterService) Schedule(ctx context.Context, anonToken string, req *models.ScheduleLetterRequest) (*models.FutureLetter, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	now := s.now()
	letter := &models.FutureLetter{
		Body:         req.Body,
		Recipient:    req.Recipient,
		Email:        req.Email,
		AnonToken:    anonToken,
		DeliveryDate: req.DeliveryOffset.DeliveryDate(now),
		Status:       models.LetterStatusPending,
	}

	if err := s.letterRepo.Create(ctx, letter); err != nil {
		return nil, fmt.Errorf("failed to schedule letter: %w", err)
	}

	return letter, nil
}
