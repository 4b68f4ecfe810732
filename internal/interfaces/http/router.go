package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/empaque-pro/internal/application/auth"
	"github.com/tu-usuario/empaque-pro/internal/application/usecase"
	"github.com/tu-usuario/empaque-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC            *usecase.ProductUseCase
	ComponentUC          *usecase.ComponentUseCase
	PackagingUC          *usecase.PackagingUseCase
	ReportUC             *usecase.ReportUseCase
	AuthUC               *auth.AuthUseCase
	JWTSecret            string
	ComponentDeleteDelay int // ms entre borrados al vaciar un paquete
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

	// Products (protegido; borrar requiere rol admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/components", productHandler.GetWithComponents)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Components (protegido)
	components := protected.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC, deps.ComponentDeleteDelay)
	components.Post("/", componentHandler.Create)
	components.Get("/parent/:parentId", componentHandler.ListByParent)
	components.Delete("/parent/:parentId", componentHandler.DeleteAllForParent)
	components.Get("/child/:childId", componentHandler.ListByChild)
	components.Put("/:id", componentHandler.UpdateQuantity)
	components.Delete("/:id", componentHandler.Delete)

	// Packaging (protegido)
	packaging := protected.Group("/packaging")
	packagingHandler := NewPackagingHandler(deps.PackagingUC)
	packaging.Post("/requirements", packagingHandler.Requirements)
	packaging.Post("/validate", packagingHandler.Validate)
	packaging.Post("/deduct", packagingHandler.Deduct)
	packaging.Post("/restore", packagingHandler.Restore)
	packaging.Post("/records", packagingHandler.CreateRecord)
	packaging.Get("/records", packagingHandler.ListRecords)
	packaging.Get("/records/:id", packagingHandler.GetRecord)
	packaging.Delete("/records/:id", packagingHandler.DeleteRecord)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/packaging", reportHandler.Range)
	reports.Get("/packaging/pdf", reportHandler.ExportPDF)
}
