package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	QRCodeSize     int
	MerchantName   string
	MerchantCity   string
	PaymentWindow  time.Duration
	AllowedOrigins []string

	// Seed values for the in-memory settings store, used when DatabaseURL is empty.
	PixKey         string
	TxidDefault    string
	WhatsappNumber string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		QRCodeSize:     getEnvInt("QR_CODE_SIZE", 256),
		MerchantName:   getEnv("PIX_MERCHANT_NAME", "COMPRA"),
		MerchantCity:   getEnv("PIX_MERCHANT_CITY", "JOAO PESSOA"),
		PaymentWindow:  getEnvDuration("PAYMENT_WINDOW", 30*time.Minute),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		PixKey:         getEnv("PIX_KEY", ""),
		TxidDefault:    getEnv("PIX_TXID_DEFAULT", "ABC"),
		WhatsappNumber: getEnv("WHATSAPP_NUMBER", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
