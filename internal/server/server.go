package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/handler"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/ledger"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/middleware"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/polar"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/webhook"
)

type Config struct {
	Polar            polar.Config
	WebhookSecret    string
	WebhookTolerance time.Duration
	Products         map[string]string
}

type Server struct {
	ledger      *ledger.Ledger
	resolver    *plan.Resolver
	webhookH    *handler.WebhookHandler
	checkoutH   *handler.CheckoutHandler
	purchasesH  *handler.PurchasesHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Server {
	resolver := plan.NewResolver(cfg.Products)
	led := ledger.New(resolver, logger.With("component", "ledger"))

	// A missing or broken secret leaves the verifier nil; the webhook
	// handler then fails closed until the configuration is fixed.
	var verifier *webhook.Verifier
	if v, err := webhook.NewVerifier(cfg.WebhookSecret, cfg.WebhookTolerance); err != nil {
		logger.Error("webhook verifier unavailable", "error", err)
	} else {
		verifier = v
	}

	router := webhook.NewRouter(led, resolver, logger.With("component", "router"))
	replays := webhook.NewReplayLog(cfg.WebhookTolerance)

	polarClient := polar.NewClient(cfg.Polar)

	return &Server{
		ledger:      led,
		resolver:    resolver,
		webhookH:    handler.NewWebhookHandler(verifier, router, replays, logger.With("component", "webhook")),
		checkoutH:   handler.NewCheckoutHandler(polarClient, led, resolver, logger.With("component", "checkout")),
		purchasesH:  handler.NewPurchasesHandler(led),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthCheck)

	// Polar webhook (public, signature-authenticated)
	mux.HandleFunc("POST /webhook/polar", s.webhookH.HandlePolarWebhook)

	// Checkout creation, rate-limited per client IP
	rateLimitMw := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	mux.Handle("POST /api/checkout", rateLimitMw(http.HandlerFunc(s.checkoutH.CreateCheckout)))

	mux.HandleFunc("GET /api/purchases", s.purchasesH.ListPurchasedPlans)

	return middleware.RequestLogger(s.logger)(mux)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
