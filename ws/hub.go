// Package ws — canlı feed için WebSocket katmanı.
//
// Okuma sayfası açık olan client'lar /ws'e bağlanır; Hub yeni public
// mesajları, AI yanıtı güncellemelerini ve tepki sayılarını anlık yayınlar.
// Bağlantılar anonimdir — ne auth ne anon token gerekir, çünkü yayınlanan
// her şey zaten public feed içeriğidir.
package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
//
// Run() ayrı bir goroutine'de event loop çalıştırır: register/unregister
// channel'larını dinler ve clients set'ini günceller. Broadcast ise
// doğrudan çağrılır (mutex ile korunur) — service katmanı event loop'a
// mesaj kuyruklamak zorunda kalmaz.
type Hub struct {
	// clients: bağlı client set'i. Go'da set yoktur — map[*Client]bool kullanılır.
	clients map[*Client]bool

	// mu: clients map'ini koruyan read-write mutex.
	mu sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// closed: Shutdown sonrası yeni kayıt kabul edilmez.
	closed bool
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client.send)
		return
	}

	h.clients[client] = true
	log.Printf("[ws] client connected (%d online)", len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("[ws] client disconnected (%d online)", len(h.clients))
	}
}

// Broadcast, event'i tüm bağlı client'lara gönderir.
//
// JSON marshal bir kez yapılır, her client'a aynı byte slice gönderilir.
// Client'ın send buffer'ı doluysa (yavaş bağlantı) event DÜŞÜRÜLÜR —
// feed event'leri kaybı tolere eder, yavaş bir client tüm yayını bloklamamalı.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal event %s: %v", event.Op, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Buffer dolu — bu client için event atlandı.
		}
	}
}

// Shutdown, tüm client bağlantılarını kapatır ve yeni kayıtları durdurur.
// main.go graceful shutdown sırasında HTTP server'dan ÖNCE çağırır.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	log.Println("[ws] hub shut down, all clients closed")
}
