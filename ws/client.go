package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait: bir yazma işleminin tamamlanması için tanınan süre.
	writeWait = 10 * time.Second

	// pongWait: client'tan pong beklenen maksimum süre.
	// Bu süre içinde pong gelmezse bağlantı ölü kabul edilir.
	pongWait = 60 * time.Second

	// pingPeriod: ping gönderim aralığı — pongWait'ten kısa olmalı.
	pingPeriod = (pongWait * 9) / 10

	// sendBufferSize: client başına outbound event buffer'ı.
	// Dolarsa yeni event'ler o client için düşürülür (bkz. Hub.Broadcast).
	sendBufferSize = 32
)

// Client, tek bir WebSocket bağlantısını temsil eder.
//
// Gorilla websocket'te bir connection üzerinde aynı anda tek writer ve tek
// reader olabilir. Bu yüzden her client iki goroutine çalıştırır:
// writePump (send channel → socket) ve readPump (socket → discard).
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// newClient, bağlantıyı saran yeni bir Client oluşturur.
func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// readPump, client'tan gelen frame'leri okur.
//
// Feed read-only'dir — inbound mesajlar yok sayılır. Yine de okumak
// zorundayız: pong frame'leri ve close frame'i ancak aktif Read ile işlenir.
// Read hata verdiğinde (bağlantı koptu) client hub'dan çıkarılır.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512) // Feed client'ı veri göndermez — küçük limit yeterli
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump, send channel'dan gelen event'leri socket'e yazar ve
// periyodik ping gönderir.
//
// send channel'ı kapanırsa (hub client'ı çıkardı veya shutdown)
// close frame gönderilip bağlantı kapatılır.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
