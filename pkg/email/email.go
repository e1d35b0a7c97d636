// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır — farklı bir sağlayıcıya geçmek için
// yeni bir implementasyon yazıp main.go'daki wire-up'ı değiştirmek yeterli.
//
// Dışarıya iki şey sunulur:
// 1. EmailSender interface — LetterDispatcher buna bağımlıdır
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendFutureLetter, zamanı gelmiş mektubu alıcısına gönderir.
	// Gönderim hatası caller'a döner — retry kararı dispatcher'ındır.
	SendFutureLetter(ctx context.Context, letter *models.FutureLetter) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: letters@nevsluh.app)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

// SendFutureLetter, mektubu HTML email olarak gönderir.
//
// Mektup gövdesi kullanıcı girdisidir — html.EscapeString ile kaçırılır,
// satır sonları <br> olur. Email'e mektubun ne zaman yazıldığı da eklenir:
// alıcı için asıl anlam "geçmişten gelen mesaj" bağlamıdır.
func (s *resendSender) SendFutureLetter(ctx context.Context, letter *models.FutureLetter) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("nevsluh <%s>", s.fromEmail),
		To:      []string{letter.Email},
		Subject: fmt.Sprintf("A letter from the past — for %s", letter.Recipient),
		Html:    letterHTML(letter),
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send future letter email: %w", err)
	}

	return nil
}

// letterHTML, mektup email gövdesini üretir.
func letterHTML(letter *models.FutureLetter) string {
	bodyHTML := strings.ReplaceAll(html.EscapeString(letter.Body), "\n", "<br>")
	writtenOn := letter.CreatedAt.Format("January 2, 2006")

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#1a1a2e;font-family:Georgia,serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#1a1a2e;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="520" cellpadding="0" cellspacing="0" style="background-color:#16213e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:22px;margin:0 0 8px 0;">nevsluh</h1>
              <p style="color:#94a3b8;font-size:14px;margin:0 0 24px 0;">
                A letter written on %s has arrived for %s.
              </p>
              <div style="color:#e2e8f0;font-size:16px;line-height:1.8;padding:24px;background-color:#1a1a2e;border-radius:6px;">
                %s
              </div>
              <p style="color:#475569;font-size:12px;margin:24px 0 0 0;">
                This letter was scheduled anonymously on nevsluh and delivered at the date its author chose.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, writtenOn, html.EscapeString(letter.Recipient), bodyHTML)
}
