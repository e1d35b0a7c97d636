package repository

import "context"

// ReactionRepository, anonim tepki veritabanı işlemleri için interface.
//
// Add: (message_id, anon_token) çifti için tepki ekler ve mesajın sayacını
// artırır — İKİSİ TEK TRANSACTION'DA. Çift zaten varsa no-op:
// added=false döner, sayaç değişmez ("already reacted" hata değildir).
//
// Dönen count, işlem sonrası güncel reaction_count değeridir —
// client ve WS broadcast ayrıca sorgu yapmadan yeni sayıyı alır.
type ReactionRepository interface {
	Add(ctx context.Context, messageID, anonToken string) (added bool, count int, err error)
}
