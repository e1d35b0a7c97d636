package handlers

import (
	"net/http"

	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/token"
)

// TokenHandler, anonim token üretim endpoint'ini yöneten struct.
//
// Server token'ı KAYDETMEZ — sadece üretir. Client token'ı localStorage'da
// saklar ve sonraki tüm yazma isteklerinde X-Anon-Token ile gönderir.
// Client kendi token'ını üretmeyi de seçebilir; bu endpoint güçlü
// rastgelelik isteyen client'lar için bir kolaylıktır.
type TokenHandler struct{}

// NewTokenHandler, constructor.
func NewTokenHandler() *TokenHandler {
	return &TokenHandler{}
}

// Issue godoc
// POST /api/token
// Yeni bir anonim token döner: { "token": "..." }
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]string{
		"token": token.New(),
	})
}
