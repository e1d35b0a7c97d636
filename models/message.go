package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Category, bir mesajın duygusal kategorisidir.
// Sabit bir enum — kullanıcı serbest metin kategori gönderemez.
type Category string

const (
	CategoryDream      Category = "dream"
	CategoryPain       Category = "pain"
	CategoryHope       Category = "hope"
	CategoryQuestion   Category = "question"
	CategoryConfession Category = "confession"
	CategoryStory      Category = "story"
)

// Categories, tüm geçerli kategorilerin listesi.
// Validation ve AI fallback tablosu bu listeyi referans alır.
var Categories = []Category{
	CategoryDream,
	CategoryPain,
	CategoryHope,
	CategoryQuestion,
	CategoryConfession,
	CategoryStory,
}

// IsValid, kategorinin tanımlı enum'da olup olmadığını kontrol eder.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDream, CategoryPain, CategoryHope,
		CategoryQuestion, CategoryConfession, CategoryStory:
		return true
	}
	return false
}

// MessageFlags, mesaj oluşturulurken set edilen görünürlük/moderasyon
// anahtarları. Oluşturma sonrası değişmezler (immutable).
type MessageFlags struct {
	Public            bool `json:"public"`              // Feed'de görünür mü?
	AIReplyRequested  bool `json:"ai_reply_requested"`  // AI yanıtı üretilsin mi?
	AllowVideoReading bool `json:"allow_video_reading"` // Sesli/görüntülü okumaya izin
}

// Message, anonim bir mesajı temsil eder.
// DB'deki "messages" tablosunun Go karşılığı.
//
// Yazar bilgisi YOKTUR — mesajlar tasarım gereği anonimdir.
// Sadece reaction'lar anon token ile ilişkilendirilir (dedup için).
type Message struct {
	ID            string       `json:"id"`
	Body          string       `json:"body"`
	Category      Category     `json:"category"`
	Flags         MessageFlags `json:"flags"`
	AIReply       *string      `json:"ai_reply,omitempty"`    // AI yanıtı gelene kadar nil
	LocationID    *string      `json:"location_id,omitempty"` // Zayıf referans — opsiyonel
	ReactionCount int          `json:"reaction_count"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreateMessageRequest, yeni mesaj gönderme isteği.
type CreateMessageRequest struct {
	Body       string       `json:"body"`
	Category   Category     `json:"category"`
	Flags      MessageFlags `json:"flags"`
	LocationID *string      `json:"location_id,omitempty"`
}

// Validate, CreateMessageRequest'in geçerli olup olmadığını kontrol eder.
// Body 1-1000 karakter arası olmalı, kategori tanımlı enum'dan olmalı.
// Karakter sayımı rune bazlıdır — çok baytlı (Kiril, emoji) metinler
// byte uzunluğuna göre haksız yere reddedilmez.
func (r *CreateMessageRequest) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	bodyLen := utf8.RuneCountInString(r.Body)
	if bodyLen < 1 {
		return fmt.Errorf("message body is required")
	}
	if bodyLen > 1000 {
		return fmt.Errorf("message body must be at most 1000 characters")
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("unknown category: %s", r.Category)
	}
	return nil
}
