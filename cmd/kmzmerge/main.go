// Command kmzmerge conflates small-alley home-passes into a regular FTTH KMZ.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/archive/kmz"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/publish/s3"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/report"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/cli"
	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
	"github.com/custodia-labs/kmzmerge/internal/core/services"
	"github.com/custodia-labs/kmzmerge/internal/kml"
	"github.com/custodia-labs/kmzmerge/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load(".env")
	logger.LoadEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cleanup, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli.SetVersion(version)
	err = cli.Execute(ctx)
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the adapters and services and hands them to the CLI.
func wire(ctx context.Context) (func(), error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	// Invalid stored values only stop merges; "settings set" must still work.
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Settings in %s are invalid, using defaults for startup: %v", settingsService.Path(), err)
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	cleanup := func() {}
	var runStore driven.RunStore = memory.NewRunStore()
	if settings.History.Enabled {
		store, err := sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		runStore = store.RunStore()
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing history: %v", err)
			}
		}
	}

	var publisher driven.Publisher
	if settings.Publish.Bucket != "" {
		p, err := s3.New(ctx, s3.ConfigFromSettings(settings.Publish))
		if err != nil {
			logger.Warn("publishing disabled: %v", err)
		} else {
			publisher = p
		}
	}

	archive := kmz.New()
	mergeService := services.NewMergeService(
		archive, archive, kml.NewCodec(), settingsService,
		runStore, report.Writers(), publisher,
	)

	cli.SetServices(cli.Services{
		Merge:    mergeService,
		History:  services.NewRunHistoryService(runStore),
		Settings: settingsService,
	})
	return cleanup, nil
}
