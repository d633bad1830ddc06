// seeduser crea el usuario administrador inicial en PostgreSQL.
//
// Uso: go run ./cmd/seeduser [-username admin] [-password ...]
// Sin flags toma ADMIN_USERNAME y ADMIN_PASSWORD del entorno (.env).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/billartiochichi/billar-api/internal/application/usecase"
	"github.com/billartiochichi/billar-api/internal/infrastructure/postgres"
	"github.com/billartiochichi/billar-api/pkg/clock"
	"github.com/billartiochichi/billar-api/pkg/config"
	"github.com/billartiochichi/billar-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	username := flag.String("username", cfg.Admin.Username, "username del administrador")
	password := flag.String("password", cfg.Admin.Password, "password del administrador")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: "seeduser"})
	if *password == "" {
		log.Fatal().Msg("password requerido (-password o ADMIN_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	clk, err := clock.NewZone(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), clk)
	created, err := users.EnsureAdmin(ctx, *username, *password)
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("crear administrador")
	}
	if !created {
		log.Info().Str("username", *username).Msg("el usuario ya existe, sin cambios")
		return
	}
	log.Info().Str("username", *username).Msg("administrador creado")
}
