// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her biri tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Email     EmailConfig
	Delivery  DeliveryConfig
	Feed      FeedConfig
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/nevsluh.db)
}

// GeminiConfig, AI yanıt üretici ayarları.
// APIKey boş olabilir — o durumda tüm yanıtlar statik fallback'ten gelir.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// EmailConfig, mektup teslimatı için Resend ayarları.
// APIKey boşsa dispatcher başlatılmaz — mektuplar pending'de bekler.
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string // Resend'de doğrulanmış domain altında olmalı
}

// DeliveryConfig, mektup dispatcher ayarları.
type DeliveryConfig struct {
	Interval    time.Duration // Tarama sıklığı (= retry aralığı)
	BatchSize   int           // Tick başına maksimum mektup
	MaxAttempts int           // failed'a düşmeden önceki toplam deneme
}

// FeedConfig, public feed penceresi cache ayarı.
type FeedConfig struct {
	CacheTTL time.Duration
}

// RateLimitConfig, mesaj oluşturma spam koruması.
type RateLimitConfig struct {
	MaxMessages int
	Window      time.Duration
	Cooldown    time.Duration
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı) —
// dosya yoksa sessizce devam eder, production gerçek env kullanır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	deliveryInterval, err := strconv.Atoi(getEnv("DELIVERY_INTERVAL_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_INTERVAL_SECONDS: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnv("DELIVERY_BATCH_SIZE", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_BATCH_SIZE: %w", err)
	}

	maxAttempts, err := strconv.Atoi(getEnv("DELIVERY_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_MAX_ATTEMPTS: %w", err)
	}

	feedTTL, err := strconv.Atoi(getEnv("FEED_CACHE_TTL_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_CACHE_TTL_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/nevsluh.db"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-pro"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("EMAIL_FROM", "letters@nevsluh.app"),
		},
		Delivery: DeliveryConfig{
			Interval:    time.Duration(deliveryInterval) * time.Second,
			BatchSize:   batchSize,
			MaxAttempts: maxAttempts,
		},
		Feed: FeedConfig{
			CacheTTL: time.Duration(feedTTL) * time.Second,
		},
		RateLimit: RateLimitConfig{
			MaxMessages: 5,
			Window:      time.Minute,
			Cooldown:    2 * time.Minute,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
