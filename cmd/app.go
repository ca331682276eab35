package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Rana718/jsonsql/internal/config"
	"github.com/Rana718/jsonsql/internal/logger"
	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/internal/service"
	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/Rana718/jsonsql/internal/store"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
)

// app bundles what every command needs once the config is loaded.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.Cache
	service *service.Service
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	opts := store.Options{
		Provider:     cfg.Store.Provider,
		DefaultsPath: cfg.Store.DefaultsPath,
	}
	if opts.StoragePath, err = cfg.StoragePath(); err != nil {
		return nil, err
	}
	if cfg.UsesDatabase() {
		if opts.DatabaseURL, err = cfg.GetDatabaseURL(); err != nil {
			return nil, err
		}
	}

	st, err := store.New(ctx, opts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping store: %w", err)
	}

	gen := sqlgen.NewGenerator(cfg.Generation.Dialect, log)
	svc := service.New(st, gen, service.Options{ReportConformance: cfg.Generation.ReportConformance}, log)

	return &app{cfg: cfg, log: log, store: st, service: svc}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// lookupMapping prefers an explicit mapping file over the store. A file
// mapping is used as-is and never saved.
func (a *app) lookupMapping(ctx context.Context, table, file string) (types.TableMapping, error) {
	if file == "" {
		if table == "" {
			return types.TableMapping{}, fmt.Errorf("--table or --mapping is required")
		}
		return a.service.GetMapping(ctx, table)
	}
	return mapping.LoadFile(file)
}

// readData reads the JSON payload from a file, or stdin when path is "-" or empty.
func readData(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read JSON data: %w", err)
	}
	return string(data), nil
}
