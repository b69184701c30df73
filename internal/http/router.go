// Package http is the JSON boundary of the shop.
package http

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	// StaticDir is served at / when it exists. Empty disables static files.
	StaticDir string
}

type Handlers struct {
	Recommendations *RecommendationHandler
	Cart            *CartHandler
	Checkout        *CheckoutHandler
	// MailState reports the mail circuit on /health. Nil omits it.
	MailState func() string
}

func NewRouter(h Handlers, cfg RouterConfig, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok"}
		if h.MailState != nil {
			body["mail"] = h.MailState()
		}
		respondJSON(w, r, http.StatusOK, body)
	})

	r.Post("/recommendations", h.Recommendations.Recommend)
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.Cart.GetCart)
		r.Post("/", h.Cart.AddItem)
	})
	r.Post("/checkout", h.Checkout.Checkout)

	if cfg.StaticDir != "" {
		if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
		} else {
			log.WithField("dir", cfg.StaticDir).Warn("static directory not found, frontend disabled")
		}
	}

	return otelhttp.NewHandler(r, "shop")
}
