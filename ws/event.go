package ws

// Op, WebSocket event'inin tipini belirten string sabiti.
type Op string

// Outbound event tipleri — server'dan client'a.
// Feed read-only'dir: client'tan inbound event beklenmez (ping/pong hariç).
const (
	// OpMessageCreate, yeni bir PUBLIC mesaj eklendiğinde yayınlanır.
	// Private mesajlar hiçbir zaman broadcast edilmez.
	OpMessageCreate Op = "MESSAGE_CREATE"

	// OpMessageUpdate, bir mesaja AI yanıtı eklendiğinde yayınlanır.
	OpMessageUpdate Op = "MESSAGE_UPDATE"

	// OpReactionAdd, bir mesajın tepki sayısı arttığında yayınlanır.
	OpReactionAdd Op = "REACTION_ADD"
)

// Event, client'lara gönderilen WebSocket mesajı.
type Event struct {
	Op   Op  `json:"op"`
	Data any `json:"data"`
}

// ReactionData, OpReactionAdd event'inin payload'u.
// Token bilgisi broadcast EDİLMEZ — kim tepki verdi anonim kalır.
type ReactionData struct {
	MessageID     string `json:"message_id"`
	ReactionCount int    `json:"reaction_count"`
}

// EventPublisher, service katmanının event broadcast etmek için kullandığı
// interface.
//
// Dependency Inversion: service'ler Hub'ın concrete struct'ına değil bu
// interface'e bağımlıdır — testlerde fake publisher geçilir, Hub hiç kurulmaz.
type EventPublisher interface {
	Broadcast(event Event)
}
