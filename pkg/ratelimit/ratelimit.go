// Package ratelimit — anonim token bazlı mesaj spam koruması.
//
// Tasarım:
// - Her anon token için window içinde mesaj sayısı takip edilir.
// - Window içinde maxMessages aşılırsa cooldown başlar: cooldown süresi
//   boyunca o token'ın tüm mesajları reddedilir.
// - Cooldown bitince pencere sıfırlanır.
// - Background goroutine süresi dolmuş bucket'ları temizler (memory leak engeli).
//
// Neden in-memory?
// SQLite'a her request'te yazmak gereksiz I/O + contention yaratır;
// tek instance deploy için in-memory yeterli.
//
// Not: Anonim bir sistemde token'ı silip yeniden üretmek limiti atlatır —
// bu kabul edilmiş bir sınırdır. Amaç kazara/kaba spam'i kesmek, kararlı
// saldırganı durdurmak değil.
package ratelimit

import (
	"sync"
	"time"
)

// bucket, bir token için mesaj sayacı ve cooldown bilgisi tutar.
type bucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// TokenRateLimiter, anon token bazlı mesaj rate limiting.
//
// Kullanım:
//
//	limiter := ratelimit.NewTokenRateLimiter(5, 30*time.Second, 2*time.Minute)
//	if !limiter.Allow(token) { return 429 }
type TokenRateLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxMessages int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewTokenRateLimiter, yeni rate limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
//
// maxMessages: pencere başına izin verilen mesaj sayısı.
// window: sayaç pencere süresi.
// cooldown: limit aşıldığında uygulanan bekleme süresi.
func NewTokenRateLimiter(maxMessages int, window, cooldown time.Duration) *TokenRateLimiter {
	rl := &TokenRateLimiter{
		buckets:     make(map[string]*bucket),
		maxMessages: maxMessages,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen token'ın mesaj göndermesine izin verilip verilmediğini kontrol eder.
// false dönerse caller 429 dönmeli.
func (rl *TokenRateLimiter) Allow(token string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[token]
	if !exists {
		rl.buckets[token] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown'daysa reddet.
	if now.Before(b.cooldownUntil) {
		return false
	}

	// Window süresi dolmuş mu?
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	b.count++
	if b.count > rl.maxMessages {
		// Limit aşıldı — cooldown başlat.
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}

	return true
}

// RetryAfterSeconds, cooldown'daki token için kalan bekleme süresini
// saniye cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (rl *TokenRateLimiter) RetryAfterSeconds(token string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[token]
	if !exists {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama
}

// Close, temizleme goroutine'ini durdurur.
func (rl *TokenRateLimiter) Close() {
	close(rl.stopCleanup)
}

// cleanupLoop, arka planda süresi dolmuş bucket'ları temizler.
func (rl *TokenRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *TokenRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for token, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window && now.After(b.cooldownUntil) {
			delete(rl.buckets, token)
		}
	}
}
