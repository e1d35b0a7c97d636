package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Danchouvzv/nevsluh/middleware"
	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/services"
)

// LetterHandler, gelecek mektubu endpoint'ini yöneten struct.
type LetterHandler struct {
	letterService services.LetterService
}

// NewLetterHandler, constructor.
func NewLetterHandler(letterService services.LetterService) *LetterHandler {
	return &LetterHandler{letterService: letterService}
}

// Schedule godoc
// POST /api/letters
// İleri tarihli bir mektup planlar. X-Anon-Token zorunlu.
//
// JSON body: { "body": "...", "recipient": "Future Me",
//              "email": "me@example.com", "delivery_offset": "1y" }
// delivery_offset ∈ {3m, 6m, 1y, 2y, 5y} — tarih server saatiyle hesaplanır.
func (h *LetterHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	anonToken, ok := middleware.FromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "anon token not found in context")
		return
	}

	var req models.ScheduleLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	letter, err := h.letterService.Schedule(r.Context(), anonToken, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, letter)
}
