package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/auth"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/usecase"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/activity"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/quote"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/infrastructure/metrics"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/infrastructure/notify"
	infrapdf "github.com/pinkbeambot/pinkbeam-sub001/internal/infrastructure/pdf"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/pinkbeambot/pinkbeam-sub001/internal/interfaces/http"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/config"
	"github.com/pinkbeambot/pinkbeam-sub001/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Métricas y notificaciones del pipeline de cotizaciones
	m := metrics.New(cfg.Metrics.Namespace)
	notifier := notify.Multi{notify.NewLogNotifier(log), m}

	policy := quote.ScoringPolicy{
		HotThreshold:  cfg.Lead.HotThreshold,
		WarmThreshold: cfg.Lead.WarmThreshold,
	}
	if err := policy.Validate(); err != nil {
		log.Fatal().Err(err).Msg("política de lead score")
	}
	lifecycle := quote.NewLifecycle(policy, activity.NewRecorder())

	quoteUC := quotes.NewQuoteUseCase(txRunner, quoteRepo, activityRepo, companyRepo, lifecycle, notifier, log)
	clientUC := billing.NewClientUseCase(clientRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, paymentRepo, clientRepo, billing.InvoiceConfig{
		NumberPrefix: cfg.Invoice.NumberPrefix,
		DueDays:      cfg.Invoice.DueDays,
		DefaultTerms: cfg.Invoice.DefaultTerms,
	}, log)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, paymentRepo, companyRepo, clientRepo, infrapdf.NewMarotoPDFGenerator())

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http"), m))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pinkbeam API",
		}))
	}

	deps := httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		UserUC:        userUC,
		ModuleService: moduleSvc,
		AuthUC:        authUC,
		QuoteUC:       quoteUC,
		ClientUC:      clientUC,
		InvoiceUC:     invoiceUC,
		PDFUC:         pdfUC,
		JWTSecret:     cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = m.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
