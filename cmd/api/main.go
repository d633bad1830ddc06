package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/billartiochichi/billar-api/docs"
	"github.com/billartiochichi/billar-api/internal/application/analytics"
	"github.com/billartiochichi/billar-api/internal/application/auth"
	"github.com/billartiochichi/billar-api/internal/application/caja"
	"github.com/billartiochichi/billar-api/internal/application/inventory"
	"github.com/billartiochichi/billar-api/internal/application/turno"
	"github.com/billartiochichi/billar-api/internal/application/usecase"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	infraexcel "github.com/billartiochichi/billar-api/internal/infrastructure/excel"
	"github.com/billartiochichi/billar-api/internal/infrastructure/memory"
	infrapdf "github.com/billartiochichi/billar-api/internal/infrastructure/pdf"
	"github.com/billartiochichi/billar-api/internal/infrastructure/postgres"
	httpRouter "github.com/billartiochichi/billar-api/internal/interfaces/http"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/config"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

// repos agrupa los adaptadores de persistencia del driver elegido.
type repos struct {
	txRunner     repository.TxRunner
	tables       repository.TableRepository
	sessions     repository.SessionRepository
	consumptions repository.ConsumptionRepository
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	closings     repository.CashClosingRepository
	categories   repository.CategoryRepository
	users        repository.UserRepository
	expenses     repository.ExpenseRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	clk, err := clock.NewZone(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-no-usar-en-produccion"
		log.Warn().Msg("JWT_SECRET vacío, usando secreto de desarrollo")
	}

	ctx := context.Background()
	var r repos
	switch cfg.Store.Driver {
	case config.StoreMemory:
		st := memory.NewStore()
		r = repos{
			txRunner: st, tables: st.Tables(), sessions: st.Sessions(), consumptions: st.Consumptions(),
			products: st.Products(), movements: st.Movements(), closings: st.CashClosings(),
			categories: st.Categories(), users: st.Users(), expenses: st.Expenses(),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Store.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			for _, name := range applied {
				log.Info().Str("migration", name).Msg("migración aplicada")
			}
		}
		r = repos{
			txRunner:     postgres.NewTxRunner(pool),
			tables:       postgres.NewTableRepository(pool),
			sessions:     postgres.NewSessionRepository(pool),
			consumptions: postgres.NewConsumptionRepository(pool),
			products:     postgres.NewProductRepository(pool),
			movements:    postgres.NewStockMovementRepository(pool),
			closings:     postgres.NewCashClosingRepository(pool),
			categories:   postgres.NewCategoryRepository(pool),
			users:        postgres.NewUserRepository(pool),
			expenses:     postgres.NewExpenseRepository(pool),
		}
	}

	userUC := usecase.NewUserUseCase(r.users, clk)
	if cfg.Admin.Password != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
		}
	}

	ledger := inventory.NewStockLedgerUseCase(r.txRunner, r.movements, clk)
	sessionUC := turno.NewUseCase(r.txRunner, r.sessions, r.consumptions, ledger, clk, log)
	cashUC := caja.NewUseCase(r.txRunner, r.closings, r.users, infrapdf.NewReceiptGenerator(cfg.App.Name), clk, log)
	reportUC := analytics.NewReportUseCase(r.sessions, r.tables, r.users, r.consumptions, infraexcel.NewReportExporter())
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "time": clk.Now()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TableUC:     usecase.NewTableUseCase(r.tables, r.sessions, clk),
		SessionUC:   sessionUC,
		ProductUC:   usecase.NewProductUseCase(r.products, r.categories, clk),
		StockLedger: ledger,
		CategoryUC:  usecase.NewCategoryUseCase(r.categories, clk),
		ExpenseUC:   usecase.NewExpenseUseCase(r.expenses, clk),
		UserUC:      userUC,
		CashUC:      cashUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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
