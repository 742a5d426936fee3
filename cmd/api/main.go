package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/sampinong/pos-backend/internal/config"
	"github.com/sampinong/pos-backend/internal/modules/auth"
	"github.com/sampinong/pos-backend/internal/modules/catalog"
	"github.com/sampinong/pos-backend/internal/modules/checkout"
	"github.com/sampinong/pos-backend/internal/modules/customer"
	"github.com/sampinong/pos-backend/internal/modules/order"
	"github.com/sampinong/pos-backend/internal/pkg/metrics"
	"github.com/sampinong/pos-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── Storage ─────────────────────────────────────────────
	var snaps storage.Snapshots
	switch cfg.StorageDriver {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		snaps, err = storage.NewPostgresSnapshots(db)
		if err != nil {
			log.Fatal(err)
		}
	case "memory":
		snaps = storage.NewMemorySnapshots()
	default:
		fileSnaps, err := storage.NewFileSnapshots(cfg.DataDir)
		if err != nil {
			log.Fatal(err)
		}
		snaps = fileSnaps
	}

	store := storage.NewStore(snaps)
	if err := store.Load(ctx); err != nil {
		log.Fatal(err)
	}
	if err := store.Seed(ctx); err != nil {
		log.Fatal(err)
	}

	// ── Services ────────────────────────────────────────────
	catalogService := catalog.NewService(store)
	customerService := customer.NewService(store, store)
	orderService := order.NewService(store, store, store)
	checkoutService := checkout.NewService(catalogService, customerService, orderService, store)
	authService := auth.NewService(store, cfg.JWTSecret, cfg.SessionTTL)

	m := metrics.New("pos")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(m.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	auth.NewHandler(authService).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authService))
		catalog.NewHandler(catalogService).RegisterRoutes(r)
		customer.NewHandler(customerService, m.ObserveDebtPayment).RegisterRoutes(r)
		order.NewHandler(orderService).RegisterRoutes(r)
		checkout.NewHandler(checkoutService, m.ObserveSale).RegisterRoutes(r)
	})

	// ── Nightly backup ──────────────────────────────────────
	c := cron.New()
	if _, err := c.AddFunc(cfg.BackupSchedule, func() {
		if err := store.Backup(context.Background()); err != nil {
			log.Printf("backup failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("invalid backup schedule %q: %v", cfg.BackupSchedule, err)
	}
	c.Start()

	log.Printf("POS backend listening on :%s (storage: %s)", cfg.Port, cfg.StorageDriver)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
