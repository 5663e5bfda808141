package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpdelivery "github.com/vitrine/checkout-gateway/internal/delivery/http"
	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/pix"
	"github.com/vitrine/checkout-gateway/internal/domain/settings"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/config"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/memory"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/postgres"
	"github.com/vitrine/checkout-gateway/internal/infrastructure/qrgenerator"
	"github.com/vitrine/checkout-gateway/internal/usecase/checkout"
	"github.com/vitrine/checkout-gateway/internal/usecase/generateqr"
	"github.com/vitrine/checkout-gateway/internal/usecase/pixsettings"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	repo, closeRepo, err := settingsRepo(ctx, cfg, logger)
	if err != nil {
		logger.Error("settings store init failed", "error", err)
		cancel()
		return
	}
	defer closeRepo()

	cards := card.NewValidator(nil)
	qrGen := qrgenerator.NewGenerator(cfg.QRCodeSize)

	settingsUC := pixsettings.NewUseCase(repo)
	generateQRUC := generateqr.NewUseCase(repo, pix.NewBuilder(cfg.MerchantName, cfg.MerchantCity), qrGen, cfg.PaymentWindow)
	checkoutUC := checkout.NewUseCase(cards, generateQRUC)

	handler := httpdelivery.NewHandler(settingsUC, generateQRUC, checkoutUC, cards, logger)
	router := httpdelivery.NewRouter(handler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

// settingsRepo opens Postgres when DATABASE_URL is set. Otherwise settings
// live in memory, seeded from PIX_KEY, PIX_TXID_DEFAULT and WHATSAPP_NUMBER.
func settingsRepo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (settings.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		seed, err := settings.New(cfg.PixKey, cfg.TxidDefault, cfg.WhatsappNumber)
		if err != nil {
			return nil, nil, err
		}
		if !seed.HasPixKey() {
			logger.Warn("PIX_KEY is empty, pix charges are disabled until a key is saved")
		}
		logger.Info("using in-memory settings store")
		return memory.NewSettingsRepo(seed), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := postgres.NewSettingsRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("database connected")
	return repo, pool.Close, nil
}
