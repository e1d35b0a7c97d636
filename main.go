// Package main, nevsluh backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1.  Config'i yükle
//   2.  Database'i başlat (embedded migration'lar dahil)
//   3.  Repository'leri oluştur (DB bağlantısı ile)
//   4.  WebSocket Hub'ı başlat (canlı feed)
//   5.  AI yanıt üreticisini kur (key yoksa fallback-only)
//   6.  Service'leri oluştur (repository'ler + hub ile)
//   7.  Mektup dispatcher'ını başlat (Resend key varsa)
//   8.  Handler'ları ve middleware'ı oluştur
//   9.  HTTP router'ı kur, route'ları bağla
//  10.  CORS yapılandır
//  11.  HTTP Server'ı başlat
//  12.  Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Danchouvzv/nevsluh/config"
	"github.com/Danchouvzv/nevsluh/database"
	"github.com/Danchouvzv/nevsluh/handlers"
	"github.com/Danchouvzv/nevsluh/middleware"
	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg/ai"
	"github.com/Danchouvzv/nevsluh/pkg/cache"
	"github.com/Danchouvzv/nevsluh/pkg/email"
	"github.com/Danchouvzv/nevsluh/pkg/ratelimit"
	"github.com/Danchouvzv/nevsluh/repository"
	"github.com/Danchouvzv/nevsluh/services"
	"github.com/Danchouvzv/nevsluh/ws"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] nevsluh server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	messageRepo := repository.NewSQLiteMessageRepo(db.Conn)
	reactionRepo := repository.NewSQLiteReactionRepo(db.Conn)
	letterRepo := repository.NewSQLiteLetterRepo(db.Conn)
	locationRepo := repository.NewSQLiteLocationRepo(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// Hub canlı feed'in merkezi: yeni public mesajlar, AI yanıtları ve tepki
	// sayıları buradan yayınlanır. Service'ler hub'a doğrudan değil
	// EventPublisher interface'i üzerinden bağlanır.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. AI Yanıt Üretici ───
	//
	// GEMINI_API_KEY yoksa generator nil geçilir — ReplyService her çağrıda
	// statik fallback metni döner. AI, mesaj akışını hiçbir koşulda bloklamaz.
	var generator ai.TextGenerator
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("[main] failed to create gemini client: %v", err)
		}
		generator = gemini
		log.Printf("[main] gemini enabled (model=%s)", cfg.Gemini.Model)
	} else {
		log.Println("[main] GEMINI_API_KEY not set — AI replies will use static fallbacks")
	}
	replyGen := ai.NewReplyService(generator)

	// ─── 6. Service Layer ───
	feedCache := cache.New[string, []models.Message](cfg.Feed.CacheTTL, time.Minute)
	defer feedCache.Close()

	messageService := services.NewMessageService(messageRepo, locationRepo, replyGen, hub, feedCache)
	reactionService := services.NewReactionService(reactionRepo, hub)
	letterService := services.NewLetterService(letterRepo)
	locationService := services.NewLocationService(locationRepo)

	// ─── 7. Mektup Dispatcher ───
	//
	// Resend key yoksa dispatcher hiç başlatılmaz: mektuplar pending'de
	// birikir, key eklenince ilk tick'te teslim edilirler.
	var dispatcher *services.LetterDispatcher
	if cfg.Email.ResendAPIKey != "" {
		sender := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)
		dispatcher = services.NewLetterDispatcher(
			letterRepo,
			sender,
			cfg.Delivery.Interval,
			cfg.Delivery.BatchSize,
			cfg.Delivery.MaxAttempts,
		)
		go dispatcher.Run()
	} else {
		log.Println("[main] RESEND_API_KEY not set — letter delivery disabled, letters stay pending")
	}

	// ─── 8. Handler + Middleware Layer ───
	messageLimiter := ratelimit.NewTokenRateLimiter(
		cfg.RateLimit.MaxMessages, cfg.RateLimit.Window, cfg.RateLimit.Cooldown)
	defer messageLimiter.Close()

	messageHandler := handlers.NewMessageHandler(messageService, messageLimiter)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	letterHandler := handlers.NewLetterHandler(letterService)
	locationHandler := handlers.NewLocationHandler(locationService)
	tokenHandler := handlers.NewTokenHandler()
	wsHandler := ws.NewHandler(hub)

	anonToken := middleware.NewAnonTokenMiddleware()

	// ─── 9. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"nevsluh"}`)
	})

	// Token — anonim kimlik üretimi (kayıt tutulmaz)
	mux.HandleFunc("POST /api/token", tokenHandler.Issue)

	// Messages — yazma token ister (rate limiting için), okuma herkese açık
	mux.Handle("POST /api/messages", anonToken.Require(http.HandlerFunc(messageHandler.Create)))
	mux.HandleFunc("GET /api/messages/{id}", messageHandler.Get)
	mux.HandleFunc("GET /api/feed", messageHandler.Feed)

	// Reactions — token zorunlu (dedup anahtarı)
	mux.Handle("POST /api/messages/{id}/reactions",
		anonToken.Require(http.HandlerFunc(reactionHandler.React)))

	// Letters — token zorunlu
	mux.Handle("POST /api/letters", anonToken.Require(http.HandlerFunc(letterHandler.Schedule)))

	// Locations
	mux.HandleFunc("POST /api/locations", locationHandler.Create)
	mux.HandleFunc("GET /api/locations/{id}", locationHandler.Get)

	// WebSocket — canlı feed, auth yok (içerik zaten public)
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// ─── 10. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Next.js dev server
			"https://nevsluh.app",
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Anon-Token"},
		AllowCredentials: false, // Cookie yok — anonim sistem
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 11. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 12. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Sıra önemli: önce dispatcher durur (yarım teslimat bırakma),
	// sonra WS bağlantıları kapanır, en son HTTP server mevcut
	// request'lerin bitmesini bekler (5sn timeout).
	if dispatcher != nil {
		dispatcher.Shutdown()
	}
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
