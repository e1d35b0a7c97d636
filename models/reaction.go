package models

import "time"

// Reaction, anonim bir kullanıcının bir mesaja verdiği tek tepkiyi temsil eder.
// DB'deki "reactions" tablosunun Go karşılığı.
//
// UNIQUE(message_id, anon_token) constraint'i sayesinde aynı token
// aynı mesaja sadece bir kez tepki verebilir. İkinci deneme no-op'tur.
type Reaction struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	AnonToken string    `json:"anon_token"`
	ReactedAt time.Time `json:"reacted_at"`
}

// ReactionResult, tepki işleminin API response'u.
// Added=false "already reacted" anlamına gelir — hata değildir.
type ReactionResult struct {
	Added         bool `json:"added"`
	ReactionCount int  `json:"reaction_count"`
}
