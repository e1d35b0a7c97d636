package services

import (
	"context"
	"fmt"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/token"
	"github.com/Danchouvzv/nevsluh/repository"
	"github.com/Danchouvzv/nevsluh/ws"
)

// ReactionService, tepki iş mantığı interface'i.
type ReactionService interface {
	React(ctx context.Context, messageID, anonToken string) (*models.ReactionResult, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	hub          ws.EventPublisher
}

// NewReactionService, constructor.
func NewReactionService(reactionRepo repository.ReactionRepository, hub ws.EventPublisher) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		hub:          hub,
	}
}

// React, bir mesaja anonim tepki ekler.
//
// Aynı (mesaj, token) çifti için ikinci çağrı no-op'tur: Added=false döner,
// sayaç değişmez — bu bir hata DEĞİLDİR, client "zaten tepki verdin"
// durumunu normal response olarak işler.
//
// Atomiklik repository'dedir: tepki kaydı ve sayaç artışı tek transaction.
func (s *reactionService) React(ctx context.Context, messageID, anonToken string) (*models.ReactionResult, error) {
	if messageID == "" {
		return nil, fmt.Errorf("%w: message id is required", pkg.ErrBadRequest)
	}
	if !token.Valid(anonToken) {
		return nil, fmt.Errorf("%w: invalid anonymous token", pkg.ErrBadRequest)
	}

	added, count, err := s.reactionRepo.Add(ctx, messageID, anonToken)
	if err != nil {
		return nil, err
	}

	if added {
		// Sadece sayı yayınlanır — token broadcast'e asla girmez.
		s.hub.Broadcast(ws.Event{
			Op: ws.OpReactionAdd,
			Data: ws.ReactionData{
				MessageID:     messageID,
				ReactionCount: count,
			},
		})
	}

	return &models.ReactionResult{
		Added:         added,
		ReactionCount: count,
	}, nil
}
