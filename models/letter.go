package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// LetterStatus, bir gelecek mektubunun teslimat durumudur.
//
// Yaşam döngüsü: pending → delivered (başarılı gönderim)
//                pending → failed    (max deneme aşıldı)
// Geçişleri sadece LetterDispatcher yapar.
type LetterStatus string

const (
	LetterStatusPending   LetterStatus = "pending"
	LetterStatusDelivered LetterStatus = "delivered"
	LetterStatusFailed    LetterStatus = "failed"
)

// DeliveryOffset, mektup teslim tarihinin sabit seçeneklerinden biridir.
// Kullanıcı serbest tarih seçemez — form sabit offsetler sunar.
type DeliveryOffset string

const (
	Offset3Months DeliveryOffset = "3m"
	Offset6Months DeliveryOffset = "6m"
	Offset1Year   DeliveryOffset = "1y"
	Offset2Years  DeliveryOffset = "2y"
	Offset5Years  DeliveryOffset = "5y"
)

// emailRegex, sözdizimsel olarak makul bir email kontrolü.
// RFC 5322'nin tamamını doğrulamaya çalışmaz — boşluksuz local@domain.tld yeterli.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FutureLetter, ileri bir tarihte email ile teslim edilecek özel mektup.
// DB'deki "future_letters" tablosunun Go karşılığı.
//
// Attempts ve LastError dispatcher'ın retry muhasebesidir —
// API response'larında client'a dönmez.
type FutureLetter struct {
	ID           string       `json:"id"`
	Body         string       `json:"body"`
	Recipient    string       `json:"recipient"` // Serbest etiket ("Future Me") — kimlik değil
	Email        string       `json:"email"`
	AnonToken    string       `json:"-"`
	DeliveryDate time.Time    `json:"delivery_date"`
	Status       LetterStatus `json:"status"`
	Attempts     int          `json:"-"`
	LastError    *string      `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ScheduleLetterRequest, yeni mektup planlama isteği.
type ScheduleLetterRequest struct {
	Body           string         `json:"body"`
	Recipient      string         `json:"recipient"`
	Email          string         `json:"email"`
	DeliveryOffset DeliveryOffset `json:"delivery_offset"`
}

// Validate, ScheduleLetterRequest'in geçerli olup olmadığını kontrol eder.
// Tüm kontroller yazma işleminden ÖNCE yapılır — geçersiz istek DB'ye hiç dokunmaz.
func (r *ScheduleLetterRequest) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	r.Recipient = strings.TrimSpace(r.Recipient)
	r.Email = strings.TrimSpace(r.Email)

	if r.Body == "" {
		return fmt.Errorf("letter body is required")
	}
	if utf8.RuneCountInString(r.Body) > 5000 {
		return fmt.Errorf("letter body must be at most 5000 characters")
	}
	if r.Recipient == "" {
		return fmt.Errorf("recipient is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if !r.DeliveryOffset.IsValid() {
		return fmt.Errorf("unknown delivery offset: %q", r.DeliveryOffset)
	}
	return nil
}

// IsValid, offset'in sabit seçeneklerden biri olup olmadığını kontrol eder.
func (o DeliveryOffset) IsValid() bool {
	switch o {
	case Offset3Months, Offset6Months, Offset1Year, Offset2Years, Offset5Years:
		return true
	}
	return false
}

// DeliveryDate, offset'i verilen andan itibaren takvim aritmetiği ile hesaplar.
// AddDate ay sonu taşmalarını (31 Oca + 1 ay) Go semantiği ile çözer.
func (o DeliveryOffset) DeliveryDate(from time.Time) time.Time {
	switch o {
	case Offset3Months:
		return from.AddDate(0, 3, 0)
	case Offset6Months:
		return from.AddDate(0, 6, 0)
	case Offset1Year:
		return from.AddDate(1, 0, 0)
	case Offset2Years:
		return from.AddDate(2, 0, 0)
	case Offset5Years:
		return from.AddDate(5, 0, 0)
	}
	return from
}
