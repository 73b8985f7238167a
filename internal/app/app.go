// Package app assembles the ledger's repositories and services from
// configuration. Both the HTTP server and the operator CLI start here.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"khata/internal/config"
	"khata/internal/email/noop"
	"khata/internal/email/ses"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/port"
	"khata/internal/repository/postgres"
	redisrepo "khata/internal/repository/redis"
	"khata/internal/service"
	s3storage "khata/internal/storage/s3"
)

// App holds the wired dependency graph.
type App struct {
	Config    *config.Config
	DB        *sqlx.DB
	Redis     *goredis.Client
	Calendar  ledger.BusinessCalendar
	Sequences port.SequenceStore

	Tenants service.TenantService
	Ledger  service.LedgerService
	Reports service.ReportService
	Exports service.ExportService

	log zerolog.Logger
}

// New connects to the configured stores and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.WithComponent("app")

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	a := &App{
		Config:   cfg,
		DB:       db,
		Calendar: ledger.NewBusinessCalendar(cfg.Ledger.UTCOffsetMinutes),
		log:      log,
	}

	switch cfg.Sequence.Backend {
	case config.SequenceBackendRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = client
		a.Sequences = redisrepo.NewSequenceStore(client)
	default:
		a.Sequences = postgres.NewSequenceRepo(db)
	}
	log.Info().Str("backend", cfg.Sequence.Backend).Msg("sequence store ready")

	tenantRepo := postgres.NewTenantRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	purchaseRepo := postgres.NewPurchaseRepo(db)
	productRepo := postgres.NewProductRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)

	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initializing S3 client: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("export archiving enabled")
	}

	var email port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		email, err = ses.NewSESSender(ctx, cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initializing SES sender: %w", err)
		}
	default:
		email = noop.NewNoopSender()
	}

	allocator := ledger.NewAllocator(a.Sequences, cfg.Sequence.MaxRetries)
	a.Tenants = service.NewTenantService(tenantRepo, cfg.Ledger.DefaultCompanyName)
	a.Ledger = service.NewLedgerService(allocator, invoiceRepo, purchaseRepo, productRepo, customerRepo, service.LedgerOptions{
		DefaultSeries:   cfg.Ledger.DefaultSeries,
		Calendar:        a.Calendar,
		DefaultPageSize: cfg.Ledger.DefaultPageSize,
		MaxPageSize:     cfg.Ledger.MaxPageSize,
	})
	a.Reports = service.NewReportService(invoiceRepo, purchaseRepo, productRepo, customerRepo, a.Calendar)
	a.Exports = service.NewExportService(invoiceRepo, a.Reports, storage, email, service.ExportOptions{
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.Export.KeyPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
		Calendar:      a.Calendar,
	})
	return a, nil
}

// Close releases the store connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("closing redis client")
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.log.Warn().Err(err).Msg("closing database")
		}
	}
}
