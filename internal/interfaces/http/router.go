package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manilapatagonia/cotizador-api/internal/application/auth"
	"github.com/manilapatagonia/cotizador-api/internal/application/quoting"
	"github.com/manilapatagonia/cotizador-api/internal/application/usecase"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CostTableUC *usecase.CostTableUseCase
	QuoteUC     *quoting.QuoteUseCase
	QuotePDFUC  *quoting.PDFUseCase
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Administración de usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Catálogo de productos (protegido; escribir requiere admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Tablas de costos de referencia (protegido; escribir requiere admin)
	costTables := protected.Group("/cost-tables")
	costTableHandler := NewCostTableHandler(deps.CostTableUC)
	costTables.Get("/", costTableHandler.List)
	costTables.Get("/:id", costTableHandler.GetByID)
	costTables.Post("/", RequireRole(entity.RoleAdmin), costTableHandler.Create)
	costTables.Put("/:id", RequireRole(entity.RoleAdmin), costTableHandler.Update)
	costTables.Delete("/:id", RequireRole(entity.RoleAdmin), costTableHandler.Delete)

	// Cotizaciones (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.QuotePDFUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Post("/compute", quoteHandler.Compute)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Save)
	quotes.Post("/:id/confirm", quoteHandler.Confirm)
	quotes.Post("/:id/copy", quoteHandler.Copy)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Delete("/:id", quoteHandler.Delete)
}
