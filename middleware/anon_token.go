// Package middleware, HTTP handler'ları saran cross-cutting katmanları içerir.
package middleware

import (
	"context"
	"net/http"

	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/pkg/token"
)

// contextKey, context value çakışmalarını önleyen özel tip.
// String key kullansaydık başka bir paket aynı string ile değeri ezebilirdi.
type contextKey string

// TokenContextKey, request context'indeki anon token'ın anahtarı.
const TokenContextKey contextKey = "anon_token"

// AnonToken, X-Anon-Token header'ını okuyup context'e koyan middleware.
//
// Token bir credential DEĞİLDİR — server tarafında doğrulanacak bir kayıt
// yoktur. Sadece şekil kontrolü yapılır: tepki dedup'u ve mektup korelasyonu
// için kullanılabilir bir string mi?
//
// Require: token'ı ZORUNLU kılar (tepki, mektup planlama gibi yazma uçları).
// Token eksik veya bozuksa 400 döner — 401 değil, çünkü ortada reddedilen
// bir kimlik yok, eksik bir istek alanı var.
type AnonToken struct{}

// NewAnonTokenMiddleware, constructor.
func NewAnonTokenMiddleware() *AnonToken {
	return &AnonToken{}
}

// Require, handler'ı token zorunluluğu ile sarar.
func (m *AnonToken) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("X-Anon-Token")
		if !token.Valid(t) {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "missing or malformed X-Anon-Token header")
			return
		}

		ctx := context.WithValue(r.Context(), TokenContextKey, t)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext, context'teki anon token'ı döner.
// Require'dan geçmemiş bir handler çağırırsa ("", false) döner.
func FromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenContextKey).(string)
	return t, ok
}
