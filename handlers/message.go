package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Danchouvzv/nevsluh/middleware"
	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/ratelimit"
	"github.com/Danchouvzv/nevsluh/services"
)

// MessageHandler, mesaj endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
	limiter        *ratelimit.TokenRateLimiter
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService, limiter *ratelimit.TokenRateLimiter) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		limiter:        limiter,
	}
}

// Create godoc
// POST /api/messages
// Yeni anonim mesaj oluşturur. X-Anon-Token zorunlu (rate limiting için).
//
// JSON body: { "body": "...", "category": "hope",
//              "flags": {"public": true, "ai_reply_requested": true, "allow_video_reading": false},
//              "location_id": "..." (opsiyonel) }
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	anonToken, ok := middleware.FromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "anon token not found in context")
		return
	}

	// Spam koruması — token bazlı pencere+cooldown.
	if !h.limiter.Allow(anonToken) {
		retryAfter := h.limiter.RetryAfterSeconds(anonToken)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many messages, slow down")
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// Get godoc
// GET /api/messages/{id}
// Tek bir mesajı döner.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	message, err := h.messageService.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// Feed godoc
// GET /api/feed?count=5
// Rastgele public mesaj örneklemi döner.
//
// count: istenen mesaj sayısı (default 5, üst sınır pencere boyutu olan 50 —
// daha büyük istekler sessizce 50'ye kırpılır).
func (h *MessageHandler) Feed(w http.ResponseWriter, r *http.Request) {
	count := 5
	if c := r.URL.Query().Get("count"); c != "" {
		if parsed, err := strconv.Atoi(c); err == nil && parsed > 0 {
			count = parsed
		}
	}

	messages, err := h.messageService.GetPublicSample(r.Context(), count)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, messages)
}
