package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"petstore-pos/config"
	"petstore-pos/internal/backup"
	"petstore-pos/internal/cli"

	catRepoPkg "petstore-pos/internal/catalog/repository"
	catUCPkg "petstore-pos/internal/catalog/usecase"
	ordRepoPkg "petstore-pos/internal/ledger/repository"
	ordUCPkg "petstore-pos/internal/ledger/usecase"

	"petstore-pos/internal/store"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load() // .env is optional
	cfg := config.LoadEnv()

	// 2. Initialize logger
	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 3. Open the datastore. Failure here is fatal to the session.
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("could not open datastore",
			zap.String("path", cfg.Storage.Path), zap.Error(err))
	}
	defer st.Close()
	logger.Debug("datastore open", zap.String("path", cfg.Storage.Path))

	// 4. Repositories
	productRepo := catRepoPkg.NewProductRepository(st)
	categoryRepo := catRepoPkg.NewCategoryRepository(st)
	orderRepo := ordRepoPkg.NewOrderRepository(st)

	// 5. Usecases
	catalogUC := catUCPkg.NewCatalogUseCase(productRepo, categoryRepo, logger)
	ledgerUC := ordUCPkg.NewOrderUseCase(orderRepo, productRepo, logger)
	backupC := backup.NewCoordinator(st, ledgerUC, logger)

	// 6. Run the command surface
	app := &cli.App{
		Logger:  logger,
		Catalog: catalogUC,
		Ledger:  ledgerUC,
		Backup:  backupC,
	}
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		// Failures are surfaced as messages, never a panic; constraint
		// violations carry actionable text from the usecases.
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.App.Env == "dev" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Logger.Encoding
	zc.DisableCaller = cfg.Logger.DisableCaller
	zc.DisableStacktrace = cfg.Logger.DisableStacktrace

	return zc.Build()
}
