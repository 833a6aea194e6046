package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mathanmathan27/aarvel-store/internal/app"
	"github.com/mathanmathan27/aarvel-store/internal/app/handlers"
	"github.com/mathanmathan27/aarvel-store/internal/auth/authmiddleware"
	"github.com/mathanmathan27/aarvel-store/internal/config"
	"github.com/mathanmathan27/aarvel-store/internal/lib/logger"
	"github.com/mathanmathan27/aarvel-store/internal/lib/logger/handlers/reqlog"
	"github.com/mathanmathan27/aarvel-store/internal/service"
	"github.com/mathanmathan27/aarvel-store/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// server-only secrets; the migrator shares the config but not these
	if cfg.Payment.ExpectedTxnID == "" {
		log.Error("EXPECTED_TXN_ID is not set")
		panic(errors.New("EXPECTED_TXN_ID environment variable is required"))
	}
	if cfg.Operator.PasswordHash == "" {
		log.Error("OPERATOR_PASSWORD_HASH is not set")
		panic(errors.New("OPERATOR_PASSWORD_HASH environment variable is required"))
	}

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(reqlog.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// storage collaborators, all injected rather than held in globals
	ledger := storage.NewLedgerRepository(application.DB)
	statusLog := storage.NewFileStatusLog(cfg.StatusLog.Path)
	screenshots := storage.NewDiskScreenshotStore(cfg.Uploads.Dir)

	orderService := service.NewOrderService(log, ledger, cfg.Product.Name)
	paymentService := service.NewPaymentService(log, ledger, statusLog, screenshots)
	verifier := service.NewFixedTokenVerifier(cfg.Payment.ExpectedTxnID)
	authService := service.NewAuthService(log, cfg.Operator.Username, cfg.Operator.PasswordHash,
		time.Duration(cfg.Operator.TokenTTL)*time.Minute)

	// customer-facing endpoints, all anonymous
	router.Get("/", handlers.ProductHandler(log, cfg.Product.Name))
	router.Get("/checkout", handlers.CheckoutHandler(log, cfg.Product.Name))
	router.Post("/submit_order", handlers.SubmitOrderHandler(log, orderService))
	router.Post("/upi_callback", handlers.UPICallbackHandler(log, paymentService))
	router.Get("/payment_result", handlers.PaymentResultHandler(log, paymentService))
	router.Post("/confirm_paid", handlers.ConfirmPaidHandler(log, paymentService))
	router.Post("/manual_paid", handlers.ManualPaidHandler(log, paymentService))
	router.Post("/verify_payment", handlers.VerifyPaymentHandler(log, verifier))

	// operator endpoints
	router.Post("/operator/login", handlers.OperatorLoginHandler(log, authService))
	router.Group(func(r chi.Router) {
		r.Use(authmiddleware.New())
		r.Get("/operator/orders", handlers.OperatorOrdersHandler(log, orderService))
		r.Get("/operator/orders/{orderID}", handlers.OperatorOrderHandler(log, orderService))
		r.Post("/operator/orders/{orderID}/cancel", handlers.OperatorCancelHandler(log, paymentService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
