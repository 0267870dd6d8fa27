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

	"github.com/tu-usuario/recepta-api/internal/application/audit"
	"github.com/tu-usuario/recepta-api/internal/application/auth"
	"github.com/tu-usuario/recepta-api/internal/application/contact"
	"github.com/tu-usuario/recepta-api/internal/application/knowledge"
	"github.com/tu-usuario/recepta-api/internal/application/launch"
	"github.com/tu-usuario/recepta-api/internal/application/phone"
	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/infrastructure/ingest"
	"github.com/tu-usuario/recepta-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/recepta-api/internal/infrastructure/report"
	"github.com/tu-usuario/recepta-api/internal/infrastructure/twilio"
	"github.com/tu-usuario/recepta-api/internal/infrastructure/webhook"
	httpRouter "github.com/tu-usuario/recepta-api/internal/interfaces/http"
	"github.com/tu-usuario/recepta-api/pkg/config"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)

	setupUC := setup.NewUseCase(sessionRepo, log)
	auditUC := audit.NewUseCase(auditRepo, log)
	authUC := auth.NewUseCase(userRepo, workspaceRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Proveedor de numeración: real si hay credenciales, simulado si no.
	// La elección ocurre una sola vez aquí; los use cases solo ven el puerto.
	var provider ports.PhoneProvider
	if cfg.Twilio.AccountSID != "" {
		provider = twilio.NewLiveProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.BaseURL)
		log.Info().Msg("proveedor de numeración: Twilio")
	} else {
		provider = twilio.NewMockProvider()
		log.Info().Msg("proveedor de numeración: simulado (sin credenciales)")
	}

	phoneUC := phone.NewUseCase(provider, setupUC, log)
	knowledgeUC := knowledge.NewUseCase(ingest.NewClient(cfg.Ingest.BaseURL, cfg.Ingest.APIKey), setupUC, log)
	launchUC := launch.NewUseCase(webhook.NewLaunchClient(cfg.Launch.URL), setupUC, workspaceRepo, log)
	contactUC := contact.NewUseCase(webhook.NewContactClient(cfg.Contact.WebhookURL), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024, // subidas de documentos de hasta 10 MB + overhead multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recepta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SetupUC:     setupUC,
		AuditUC:     auditUC,
		PhoneUC:     phoneUC,
		KnowledgeUC: knowledgeUC,
		LaunchUC:    launchUC,
		ContactUC:   contactUC,
		PDF:         report.NewPDFGenerator(),
		XLSX:        report.NewXLSXGenerator(),
		JWTSecret:   cfg.JWT.Secret,
	})

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
