package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billartiochichi/billar-api/internal/application/analytics"
	"github.com/billartiochichi/billar-api/internal/application/auth"
	"github.com/billartiochichi/billar-api/internal/application/caja"
	"github.com/billartiochichi/billar-api/internal/application/inventory"
	"github.com/billartiochichi/billar-api/internal/application/turno"
	"github.com/billartiochichi/billar-api/internal/application/usecase"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TableUC     *usecase.TableUseCase
	SessionUC   *turno.UseCase
	ProductUC   *usecase.ProductUseCase
	StockLedger *inventory.StockLedgerUseCase
	CategoryUC  *usecase.CategoryUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	UserUC      *usecase.UserUseCase
	CashUC      *caja.UseCase
	ReportUC    *analytics.ReportUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEmpleado)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Get("/me", authHandler.Me)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id", userHandler.Update)

	// Mesas
	tables := protected.Group("/mesas")
	tableHandler := NewTableHandler(deps.TableUC, log)
	tables.Get("/", tableHandler.List)
	tables.Get("/:id", tableHandler.GetByID)
	tables.Post("/", adminOnly, tableHandler.Create)
	tables.Put("/:id", adminOnly, tableHandler.Update)
	tables.Delete("/:id", adminOnly, tableHandler.Delete)

	// Turnos
	sessions := protected.Group("/turnos")
	sessionHandler := NewSessionHandler(deps.SessionUC, log)
	sessions.Get("/activos", sessionHandler.Active)
	sessions.Post("/iniciar", sessionHandler.Start)
	sessions.Patch("/transferir/:mesa_origen_id", sessionHandler.Transfer)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Get("/:id/preview", sessionHandler.Preview)
	sessions.Post("/:id/agregar-producto", sessionHandler.AddProduct)
	sessions.Patch("/:id/pausar", sessionHandler.Pause)
	sessions.Patch("/:id/reanudar", sessionHandler.Resume)
	sessions.Patch("/:id/cerrar", sessionHandler.Close)

	// Consumos
	consumptions := protected.Group("/consumos")
	consumptions.Post("/", sessionHandler.CreateConsumption)
	consumptions.Get("/turno/:turno_id", sessionHandler.ListConsumptions)
	consumptions.Delete("/:id", sessionHandler.RemoveConsumption)

	// Productos e inventario
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC, log)
	inventoryHandler := NewInventoryHandler(deps.StockLedger, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movimientos", inventoryHandler.Movements)
	products.Patch("/:id/stock", inventoryHandler.AdjustStock)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categorías
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Gastos (solo admin)
	expenses := protected.Group("/gastos", adminOnly)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, log)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)

	// Arqueo
	cash := protected.Group("/arqueo")
	cashHandler := NewCashHandler(deps.CashUC, log)
	cash.Post("/cerrar", cashHandler.Close)
	cash.Get("/", cashHandler.List)
	cash.Get("/:id", cashHandler.Get)
	cash.Get("/:id/pdf", cashHandler.Receipt)

	// Reportes
	reports := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC, log)
	reports.Get("/", reportHandler.Sessions)
	reports.Get("/excel", reportHandler.Export)
}
