package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/yhas1984/contabilidad-personal-docker/internal/adapters/database/pgsql"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/core/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/document"
	"github.com/yhas1984/contabilidad-personal-docker/internal/handlers"
	"github.com/yhas1984/contabilidad-personal-docker/internal/mailer"
	"github.com/yhas1984/contabilidad-personal-docker/internal/middleware"
	"github.com/yhas1984/contabilidad-personal-docker/internal/sheets"
	"github.com/yhas1984/contabilidad-personal-docker/pkg/config"
	"github.com/yhas1984/contabilidad-personal-docker/pkg/database"
)

// @title Contabilidad Personal API
// @version 1.0
// @description Bookkeeping and document generation API for a currency exchange business.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := buildServices(cfg, dbPool, logger)

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the repositories, external adapters and services.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool, logger *slog.Logger) *services.Container {
	clientRepo := pgsql.NewPgxClientRepository(dbPool)
	txnRepo := pgsql.NewPgxTransactionRepository(dbPool)
	companyRepo := pgsql.NewPgxCompanyRepository(dbPool)

	// Optional transaction mirror to Google Sheets
	var exporter portssvc.TransactionExporter
	sheetExporter, err := sheets.NewExporter(context.Background(), sheets.Config{
		CredentialsFile: cfg.SheetsCredentialsFile,
		SpreadsheetID:   cfg.SheetsSpreadsheetID,
		SheetName:       cfg.SheetsName,
	})
	if err != nil {
		logger.Warn("Sheet mirroring disabled", slog.String("error", err.Error()))
	} else if sheetExporter != nil {
		exporter = sheetExporter
	}

	// Optional SMTP mailer for receipt delivery
	var receiptMailer portssvc.ReceiptMailer
	if m := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}); m != nil {
		receiptMailer = m
	}

	engine := document.NewEngine()
	capability := staticCapability(cfg.RichRendering)
	generator := document.NewGenerator(engine, capability, logger)

	return &services.Container{
		Client:      services.NewClientService(clientRepo),
		Transaction: services.NewTransactionService(txnRepo, clientRepo, exporter),
		Company:     services.NewCompanyService(companyRepo),
		Document:    services.NewDocumentService(generator, txnRepo, companyRepo, receiptMailer, cfg.DownloadDir),
	}
}

// staticCapability reports the configured rich-rendering support.
type staticCapability bool

func (c staticCapability) SupportsRichRendering() bool { return bool(c) }

// runMigrations applies all pending database migrations.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
