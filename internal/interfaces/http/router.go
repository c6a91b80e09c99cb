package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/auth"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/billing"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/quotes"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/application/usecase"
	"github.com/pinkbeambot/pinkbeam-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	ModuleService  *usecase.ModuleService
	AuthUC         *auth.AuthUseCase
	QuoteUC        *quotes.QuoteUseCase
	ClientUC       *billing.ClientUseCase
	InvoiceUC      *billing.InvoiceUseCase
	PDFUC          *billing.PDFUseCase
	MetricsHandler http.Handler // nil = sin /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	staff := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta pública (onboarding de la agencia)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Formulario público de cotización; el tenant viene en la ruta
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	api.Post("/public/:companyId/quotes", RequireModuleForParam(entity.ModuleQuotes, "companyId", deps.ModuleService), quoteHandler.Submit)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/companies", RequireRole(entity.RoleAdmin), companyHandler.List)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)
	protected.Get("/users", RequireRole(entity.RoleAdmin), userHandler.List)

	// Quotes (módulo quotes, solo equipo de la agencia)
	q := protected.Group("/quotes", RequireModule(entity.ModuleQuotes, deps.ModuleService), staff)
	q.Get("/", quoteHandler.List)
	q.Get("/:id", quoteHandler.Get)
	q.Get("/:id/activity", quoteHandler.Activity)
	q.Patch("/:id/status", quoteHandler.ChangeStatus)
	q.Patch("/:id/notes", quoteHandler.UpdateNotes)
	q.Patch("/:id/estimate", quoteHandler.UpdateEstimate)

	// Clients (módulo billing)
	clients := protected.Group("/clients", RequireModule(entity.ModuleBilling, deps.ModuleService), staff)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)

	// Invoices (módulo billing)
	inv := protected.Group("/invoices", RequireModule(entity.ModuleBilling, deps.ModuleService), staff)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	inv.Post("/", invoiceHandler.Create)
	inv.Get("/", invoiceHandler.List)
	inv.Get("/:id", invoiceHandler.GetByID)
	inv.Patch("/:id", invoiceHandler.UpdateDetails)
	inv.Post("/:id/items", invoiceHandler.AddLineItem)
	inv.Patch("/:id/items/:itemId", invoiceHandler.UpdateLineItem)
	inv.Delete("/:id/items/:itemId", invoiceHandler.RemoveLineItem)
	inv.Post("/:id/import-time", invoiceHandler.ImportTimeEntries)
	inv.Post("/:id/send", invoiceHandler.Send)
	inv.Post("/:id/cancel", invoiceHandler.Cancel)
	inv.Post("/:id/payments/sync", invoiceHandler.SyncPayments)
	inv.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
