// Package app builds the repositories and collaborators shared by the API
// server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-queue/internal/db"
	"github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	infraRepo "github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/payments"
	"github.com/BruksfildServices01/barber-queue/internal/photos"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// Stores groups every repository contract.
type Stores struct {
	Queue        queue.Repository
	Appointments appointment.Repository
	Profiles     crm.Repository
	Services     catalog.Repository
	Products     inventory.Repository
	Finance      finance.Repository
	Barbers      barber.Repository
	AuditSink    audit.Sink
	AuditLogs    audit.Reader
}

func MemoryStores() Stores {
	s := memstore.New()
	return Stores{
		Queue:        s,
		Appointments: s,
		Profiles:     s,
		Services:     s,
		Products:     s,
		Finance:      s,
		Barbers:      s,
		AuditSink:    s,
		AuditLogs:    s,
	}
}

func GormStores(db *gorm.DB) Stores {
	cat := infraRepo.NewCatalogGormRepository(db)
	logger := audit.New(db)
	return Stores{
		Queue:        infraRepo.NewQueueGormRepository(db),
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Profiles:     infraRepo.NewCRMGormRepository(db),
		Services:     cat,
		Products:     cat,
		Finance:      infraRepo.NewFinanceGormRepository(db),
		Barbers:      infraRepo.NewBarberGormRepository(db),
		AuditSink:    logger,
		AuditLogs:    logger,
	}
}

// OpenStores picks the backend from cfg. Postgres is migrated on open.
func OpenStores(cfg *config.Config) (Stores, func(), error) {
	if cfg.UseMemoryStore() {
		slog.Warn("using in-memory store; data is lost on restart")
		return MemoryStores(), func() {}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return Stores{}, nil, err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return Stores{}, nil, err
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return GormStores(db), closeFn, nil
}

// ===============================
// App
// ===============================

type App struct {
	Config *config.Config
	Stores Stores

	Audit     *audit.Dispatcher
	Hub       *live.Hub
	Publisher live.Publisher
	// Relay is nil without REDIS_URL
	Relay *live.RedisRelay

	// nil when the integration is not configured
	Photos ucQueue.PhotoUploader
	Pix    payments.PixCharger

	closers []func()
}

func New(cfg *config.Config, stores Stores) (*App, error) {
	a := &App{Config: cfg, Stores: stores}

	a.Audit = audit.NewDispatcher(stores.AuditSink)
	a.closers = append(a.closers, a.Audit.Close)

	// ---- 1️⃣ live feed + "you're next" alerts ----
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TwilioEnabled() {
		notifier = notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	}
	snapshot := ucQueue.NewListWaiting(stores.Queue, stores.Barbers)
	a.Hub = live.NewHub(snapshot.Snapshot, notify.NewHeadWatcher(notifier))

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		a.Relay = live.NewRedisRelay(client, a.Hub, "")
		a.Publisher = a.Relay
		a.closers = append(a.closers, func() { _ = client.Close() })
	} else {
		a.Publisher = live.NewLocalPublisher(a.Hub)
	}

	// ---- 2️⃣ photos ----
	if cfg.PhotosEnabled() {
		store := photos.NewS3Store(photos.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		a.Photos = photos.NewUploader(photos.NewProcessor(), store)
	}

	// ---- 3️⃣ pix ----
	if cfg.PaymentsEnabled() {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			return nil, fmt.Errorf("mercadopago: %w", err)
		}
		a.Pix = mp
	}

	return a, nil
}

// Close flushes the audit queue and releases clients, last opened first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
