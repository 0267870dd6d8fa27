package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/audit"
	"github.com/tu-usuario/recepta-api/internal/application/auth"
	"github.com/tu-usuario/recepta-api/internal/application/contact"
	"github.com/tu-usuario/recepta-api/internal/application/knowledge"
	"github.com/tu-usuario/recepta-api/internal/application/launch"
	"github.com/tu-usuario/recepta-api/internal/application/phone"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	SetupUC     *setup.UseCase
	AuditUC     *audit.UseCase
	PhoneUC     *phone.UseCase
	KnowledgeUC *knowledge.UseCase
	LaunchUC    *launch.UseCase
	ContactUC   *contact.UseCase
	PDF         ReportGenerator
	XLSX        ReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Contacto (público: formulario de la web de marketing)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Send)

	// Auditor de ingresos: la validación por paso es pública (el cuestionario
	// corre antes de crear cuenta); el cálculo y los reportes requieren token.
	auditHandler := NewAuditHandler(deps.AuditUC, deps.PDF, deps.XLSX)
	api.Post("/audit/validate", auditHandler.ValidateStep)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	auditGroup := protected.Group("/audit")
	auditGroup.Post("/calculate", auditHandler.Calculate)
	auditGroup.Get("/reports/latest", auditHandler.Latest)
	auditGroup.Get("/reports/:id", auditHandler.GetByID)
	auditGroup.Get("/reports/:id/pdf", auditHandler.ExportPDF)
	auditGroup.Get("/reports/:id/xlsx", auditHandler.ExportXLSX)

	// Sesión del asistente (protegido)
	setupGroup := protected.Group("/setup")
	setupHandler := NewSetupHandler(deps.SetupUC)
	setupGroup.Get("/", setupHandler.Get)
	setupGroup.Put("/step", setupHandler.UpdateStep)
	setupGroup.Post("/steps/:step/complete", setupHandler.CompleteStep)
	setupGroup.Post("/complete", setupHandler.Complete)
	setupGroup.Post("/reset", setupHandler.Reset)
	setupGroup.Patch("/account", setupHandler.PatchAccount)
	setupGroup.Patch("/business-profile", setupHandler.PatchBusinessProfile)
	setupGroup.Patch("/calendar", setupHandler.PatchCalendar)
	setupGroup.Patch("/phone", setupHandler.PatchPhone)
	setupGroup.Patch("/knowledge-base", setupHandler.PatchKnowledgeBase)
	setupGroup.Patch("/call-flow", setupHandler.PatchCallFlow)
	setupGroup.Patch("/review", setupHandler.PatchReview)

	// Numeración telefónica (protegido)
	phoneGroup := protected.Group("/phone")
	phoneHandler := NewPhoneHandler(deps.PhoneUC)
	phoneGroup.Get("/numbers/search", phoneHandler.Search)
	phoneGroup.Post("/numbers/purchase", phoneHandler.Purchase)

	// Base de conocimiento (protegido)
	knowledgeGroup := protected.Group("/knowledge")
	knowledgeHandler := NewKnowledgeHandler(deps.KnowledgeUC)
	knowledgeGroup.Post("/scrape-faqs", knowledgeHandler.ScrapeFAQs)
	knowledgeGroup.Post("/files", knowledgeHandler.UploadFile)

	// Lanzamiento (protegido)
	launchHandler := NewLaunchHandler(deps.LaunchUC)
	protected.Post("/launch", launchHandler.Launch)
}
