package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"recipe-nutrition/internal/config"
	"recipe-nutrition/internal/logger"
	"recipe-nutrition/internal/nutrition"
	"recipe-nutrition/internal/planner"
	"recipe-nutrition/internal/recipes"
	"recipe-nutrition/internal/server"
	"recipe-nutrition/internal/shell"
	"recipe-nutrition/internal/storage"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	mode       = flag.String("mode", "shell", "Run mode: shell or tools")
	recipesDir = flag.String("recipes-dir", "", "Recipe directory (overrides config)")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *version {
		fmt.Printf("%s version %s\n", cfg.App.Name, cfg.App.Version)
		os.Exit(0)
	}

	if *recipesDir != "" {
		cfg.Recipes.Dir = *recipesDir
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("Exiting with error", zap.Error(err))
		zlog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	if *mode != "shell" && *mode != "tools" {
		return fmt.Errorf("unknown mode %q (want shell or tools)", *mode)
	}

	calc := nutrition.NewCalculator(nutrition.DefaultTable(), zlog)
	parser := recipes.NewParser(calc, zlog)
	library := recipes.NewLibrary(cfg.Recipes.Dir, cfg.Recipes.Extension, parser, zlog)

	if *mode == "shell" {
		fmt.Println("\nLoading Recipe Nutrition Calculator with built-in recipes...")
	}
	seeded, err := library.Init()
	if err != nil {
		return fmt.Errorf("failed to prepare recipe directory: %w", err)
	}
	zlog.Debug("Recipe directory ready", zap.String("dir", library.Dir()), zap.Bool("seeded", seeded))

	store, err := storage.NewSQLiteStorage(storage.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer store.Close()

	svc := planner.NewService(library, store, zlog)

	switch *mode {
	case "shell":
		return shell.New(svc, os.Stdin, os.Stdout, zlog).Run()
	case "tools":
		return serveTools(cfg, svc, zlog)
	default:
		return fmt.Errorf("unknown mode %q (want shell or tools)", *mode)
	}
}

func serveTools(cfg *config.Config, svc *planner.Service, zlog *zap.Logger) error {
	srv, err := server.NewRecipeToolServer(svc, &server.Config{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
	}, zlog)
	if err != nil {
		return fmt.Errorf("failed to create tool server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("Serving tool calls on stdio", zap.Strings("tools", srv.ToolNames()))
		errCh <- srv.Serve(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case <-sigCh:
		zlog.Info("Received shutdown signal")
		cancel()
		// wait for any in-flight request before the store is closed
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}
