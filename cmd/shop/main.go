package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/wavewonders/internal/cart"
	"github.com/fjod/wavewonders/internal/catalog"
	"github.com/fjod/wavewonders/internal/checkout"
	"github.com/fjod/wavewonders/internal/config"
	"github.com/fjod/wavewonders/internal/domain"
	h "github.com/fjod/wavewonders/internal/http"
	"github.com/fjod/wavewonders/internal/logger"
	"github.com/fjod/wavewonders/internal/notify"
	"github.com/fjod/wavewonders/internal/recommend"
	"github.com/fjod/wavewonders/internal/telemetry"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const serviceName = "wavewonders-shop"

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("shop stopped with error")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if missing := cfg.MissingMailSettings(); len(missing) > 0 {
		log.WithField("missing", missing).Warn("mail settings incomplete, checkout will fail until they are set")
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.SetupTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer shutdownTracer(context.Background())

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.WithError(err).Warn("close failed")
			}
		}
	}()

	products, err := buildCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	store, closeStore, err := buildCartStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	mailer, mailState, err := buildNotifier(cfg)
	if err != nil {
		return err
	}

	var publisher checkout.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := checkout.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		closers = append(closers, kp.Close)
		publisher = kp
		log.WithField("brokers", cfg.KafkaBrokers).WithField("topic", cfg.KafkaTopic).Info("order events enabled")
	}

	renderer, err := checkout.NewRenderer()
	if err != nil {
		return err
	}

	carts := cart.NewService(store, products, domain.DefaultCartID)
	processor := checkout.NewProcessor(carts, mailer, renderer, publisher, checkout.Config{
		From:        cfg.Mail.User,
		To:          cfg.Mail.Recipient,
		MailTimeout: cfg.Mail.Timeout,
	})

	router := h.NewRouter(h.Handlers{
		Recommendations: h.NewRecommendationHandler(recommend.NewService(products)),
		Cart:            h.NewCartHandler(carts),
		Checkout:        h.NewCheckoutHandler(processor),
		MailState:       mailState,
	}, h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		StaticDir:      cfg.StaticDir,
	}, log)

	// WriteTimeout covers a full checkout, including the mail send.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + cfg.Mail.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("shop starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return errors.Wrap(err, "server error")
	case <-quit:
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	log.Info("server exited")
	return nil
}

// buildCatalog returns the catalog. The sqlite backend is migrated and then
// snapshotted, since products never change at runtime.
func buildCatalog(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*catalog.Static, error) {
	if cfg.CatalogBackend != config.BackendSQLite {
		return catalog.NewStatic(catalog.SeedProducts())
	}

	repo, err := catalog.NewSQLRepository(cfg.CatalogDBPath)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		return nil, err
	}
	c, err := catalog.Load(ctx, repo)
	if err != nil {
		return nil, err
	}
	log.WithField("db", cfg.CatalogDBPath).Info("catalog loaded from sqlite")
	return c, nil
}

func buildCartStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (cart.Store, func() error, error) {
	switch cfg.CartBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, errors.Wrap(err, "redis connection failed")
		}
		log.WithField("addr", cfg.RedisAddr).Info("cart stored in redis")
		return cart.NewRedisStore(client), client.Close, nil

	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		db, err := cart.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() error { return db.Client().Disconnect(context.Background()) }
		store := cart.NewMongoStore(db)
		if err := store.CreateIndexes(connectCtx); err != nil {
			_ = disconnect()
			return nil, nil, err
		}
		log.WithField("db", cfg.MongoDBName).Info("cart stored in mongodb")
		return store, disconnect, nil

	default:
		return cart.NewMemoryStore(), func() error { return nil }, nil
	}
}

// buildNotifier returns the mail sender and, for SMTP, its breaker state.
func buildNotifier(cfg config.Config) (notify.Notifier, func() string, error) {
	if cfg.Mail.Backend == config.BackendLog {
		return notify.LogNotifier{}, nil, nil
	}
	smtp, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Password,
	})
	if err != nil {
		return nil, nil, err
	}
	breaker := notify.NewBreakerNotifier(smtp, notify.DefaultBreakerSettings())
	return breaker, breaker.State, nil
}
