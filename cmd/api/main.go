package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/Toner-api/internal/application/analytics"
	"github.com/jhoicas/Toner-api/internal/application/auth"
	"github.com/jhoicas/Toner-api/internal/application/dto"
	"github.com/jhoicas/Toner-api/internal/application/inventory"
	"github.com/jhoicas/Toner-api/internal/application/requests"
	"github.com/jhoicas/Toner-api/internal/application/usecase"
	"github.com/jhoicas/Toner-api/internal/domain"
	"github.com/jhoicas/Toner-api/internal/domain/entity"
	"github.com/jhoicas/Toner-api/internal/domain/repository"
	"github.com/jhoicas/Toner-api/internal/infrastructure/cache"
	"github.com/jhoicas/Toner-api/internal/infrastructure/memory"
	"github.com/jhoicas/Toner-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Toner-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Toner-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Toner-api/internal/interfaces/http"
	"github.com/jhoicas/Toner-api/internal/scheduler"
	"github.com/jhoicas/Toner-api/pkg/config"
	"github.com/jhoicas/Toner-api/pkg/logger"
)

// storage agrupa los repositorios del backend elegido con STORAGE_DRIVER.
type storage struct {
	txRunner inventory.TxRunner
	stock    repository.StockRepository
	txs      repository.TransactionRepository
	requests repository.RequestRepository
	units    repository.UnitRepository
	items    repository.SupplyItemRepository
	sectors  repository.SectorRepository
	users    repository.UserRepository
	health   map[string]func(ctx context.Context) error
	close    func()
}

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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New()

	// Caché de pendientes: opcional, sin REDIS_ADDR el contador se lee siempre de la BD.
	var pendingCache requests.PendingCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		rc := cache.NewPendingCache(client, cfg.Redis.PendingTTL())
		store.health["redis"] = rc.Ping
		pendingCache = rc
	}

	ledger := inventory.NewStockLedger(store.txRunner, store.stock, store.txs, m).
		WithTransactionsLimit(cfg.Ledger.TransactionsLimit)
	transfers := inventory.NewTransferCoordinator(store.txRunner, ledger)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.stock, store.txs)
	workflow := requests.NewWorkflow(store.txRunner, ledger, store.requests, pendingCache, m)

	unitUC := usecase.NewUnitUseCase(store.units, store.items, store.stock)
	itemUC := usecase.NewSupplyItemUseCase(store.items, store.units, store.stock)
	sectorUC := usecase.NewSectorUseCase(store.sectors)
	userUC := usecase.NewUserUseCase(store.users, store.units)
	dashboardUC := appanalytics.NewDashboardUseCase(store.stock, store.txs, store.units, store.items, workflow)
	reportUC := appanalytics.NewReportUseCase(store.stock, store.units, store.items, infrapdf.NewMarotoStockReport())
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if err := bootstrapAdmin(ctx, userUC, cfg.Bootstrap); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	sched := scheduler.New(cfg.Scheduler.LowStockCron, ledger, m, log.Zerolog())
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(m.Middleware())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Ledger:         ledger,
		Transfers:      transfers,
		Replenishment:  replenishmentUC,
		Workflow:       workflow,
		UnitUC:         unitUC,
		ItemUC:         itemUC,
		SectorUC:       sectorUC,
		UserUC:         userUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		MetricsHandler: m.Handler(),
		HealthChecks:   store.health,
		AppName:        cfg.App.Name,
		JWTSecret:      cfg.JWT.Secret,
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

	sched.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			txRunner: s,
			stock:    s.Stock(),
			txs:      s.Transactions(),
			requests: s.Requests(),
			units:    s.Units(),
			items:    s.Items(),
			sectors:  s.Sectors(),
			users:    s.Users(),
			health:   map[string]func(ctx context.Context) error{},
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.NewMigrator(pool, log.Zerolog()).Run(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		txRunner: postgres.NewTxRunner(pool),
		stock:    postgres.NewStockRepository(pool),
		txs:      postgres.NewTransactionRepository(pool),
		requests: postgres.NewRequestRepository(pool),
		units:    postgres.NewUnitRepository(pool),
		items:    postgres.NewSupplyItemRepository(pool),
		sectors:  postgres.NewSectorRepository(pool),
		users:    postgres.NewUserRepository(pool),
		health:   map[string]func(ctx context.Context) error{"postgres": pool.Ping},
		close:    pool.Close,
	}, nil
}

// bootstrapAdmin crea el administrador inicial si está configurado y aún no existe.
func bootstrapAdmin(ctx context.Context, users *usecase.UserUseCase, cfg config.BootstrapConfig) error {
	if cfg.AdminUsername == "" {
		return nil
	}
	_, err := users.Create(ctx, dto.CreateUserRequest{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		return nil
	}
	return err
}
