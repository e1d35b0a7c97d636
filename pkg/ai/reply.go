package ai

import (
	"context"
	"log"
	"strings"

	"github.com/Danchouvzv/nevsluh/models"
)

// systemPrompt, Gemini'ye gönderilen sabit talimat.
// {category} placeholder'ı mesajın kategorisi ile değiştirilir.
const systemPrompt = `
You are an empathetic AI assistant for the "nevsluh" platform.
Your role is to provide short, supportive, and thoughtful responses to anonymous messages.

Guidelines:
- Keep responses under 300 characters
- Be warm and empathetic, but not overly emotional
- Don't give advice or try to solve problems
- Acknowledge feelings without judgment
- Never use clichés or generic platitudes
- Speak as if you're responding to a friend in need
- Don't reference yourself as an AI

The message category is: {category}
`

// TextGenerator, ham metin üretim bağımlılığı.
// GeminiClient bunu implement eder; testlerde fake generator geçilir.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ReplyGenerator, mesajlara empati yanıtı üreten servis interface'i.
//
// GenerateReply error DÖNMEZ — bu bilinçli bir sözleşmedir.
// Uzak servis yoksa, key yoksa, network koparsa: statik fallback metni döner.
// Çağıran kod (mesaj oluşturma akışı) bu bağımlılık yüzünden asla başarısız olmaz.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, body string, category models.Category) string
}

// replyService, ReplyGenerator implementasyonu.
// generator nil olabilir — o durumda her çağrı doğrudan fallback'tir
// (API key yapılandırılmamış deployment).
type replyService struct {
	generator TextGenerator
}

// NewReplyService, constructor — interface döner.
// generator nil geçilebilir: fallback-only mod.
func NewReplyService(generator TextGenerator) ReplyGenerator {
	return &replyService{generator: generator}
}

// GenerateReply, önce Gemini'yi dener (tek deneme), her başarısızlıkta
// kategorinin statik yanıtlarından birini döner. Hata sadece loglanır —
// caller'a asla sızmaz (AIServiceError içeride emilir).
func (s *replyService) GenerateReply(ctx context.Context, body string, category models.Category) string {
	if s.generator == nil {
		return FallbackReply(category)
	}

	prompt := strings.Replace(systemPrompt, "{category}", string(category), 1) +
		"\n\nUser message: " + body

	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[ai] gemini call failed, using fallback: %v", err)
		return FallbackReply(category)
	}

	return text
}
