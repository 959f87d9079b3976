package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"dog_walking/internal/config"
	"dog_walking/internal/metrics"
	"dog_walking/internal/repository/postgres"
	"dog_walking/internal/service/journal"
	"dog_walking/internal/service/sheet"
	"dog_walking/internal/service/status"
	"dog_walking/internal/service/tg"
	"dog_walking/internal/service/walking"
	"dog_walking/pkg/tgbotapisfm"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBotCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot, the walk journal and the status server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				tgCfg     config.TelegramConfig
				sheetCfg  config.GoogleSheetConfig
				statusCfg config.StatusConfig
				seedCfg   config.SeedConfig
			)
			rt, err := bootstrap(&tgCfg, &sheetCfg, &statusCfg, &seedCfg)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := postgres.Migrate(rt.db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				if err := seedAdmin(ctx, rt, seedCfg); err != nil {
					return err
				}
			}
			return runBot(ctx, rt, tgCfg, sheetCfg, statusCfg)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "migrate the schema and seed the admin before starting")
	return cmd
}

func runBot(ctx context.Context, rt *runtime, tgCfg config.TelegramConfig, sheetCfg config.GoogleSheetConfig, statusCfg config.StatusConfig) error {
	logger := rt.logger
	m := metrics.New()

	clientRepo := postgres.NewClientRepository(rt.db)
	dogRepo := postgres.NewDogRepository(rt.db)
	walkRepo := postgres.NewWalkRepository(rt.db)
	userRepo := postgres.NewUserRepository(rt.db)

	clients, err := walking.NewClientService(clientRepo, dogRepo)
	if err != nil {
		return err
	}
	dogs, err := walking.NewDogService(clientRepo, dogRepo, walkRepo)
	if err != nil {
		return err
	}
	walks, err := walking.NewWalkService(dogRepo, walkRepo)
	if err != nil {
		return err
	}
	auth, err := walking.NewAuthService(userRepo)
	if err != nil {
		return err
	}

	var forceUpdate chan struct{}
	if sheetCfg.Enabled() {
		sheetService, err := sheet.NewSheetService(ctx,
			sheetCfg.CredentialsBase64,
			sheetCfg.SheetID,
			sheetCfg.WalkListID,
			sheetCfg.PauseMs,
			sheet.CreateColumnMapFromOrder(sheetCfg.ColumnOrder),
		)
		if err != nil {
			return fmt.Errorf("create sheet service: %w", err)
		}
		forceUpdate = make(chan struct{}, 1)
		worker := journal.NewWorker(sheetService, walkRepo, logger.Named("journal"), forceUpdate,
			journal.WithInterval(sheetCfg.SyncInterval),
			journal.WithMetrics(m),
		)
		worker.Start(ctx)
		defer worker.Stop()
	} else {
		logger.Info("walk journal disabled, SHEET_ID is empty")
	}

	sqlDB, err := rt.db.DB()
	if err != nil {
		return err
	}
	statusServer := status.NewServer(statusCfg.Addr, sqlDB, m.Registry, logger.Named("status"))
	statusServer.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := statusServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("status server shutdown", zap.Error(err))
		}
	}()

	tgHandler, err := tg.NewTGHandler(tg.Services{
		Auth:    auth,
		Clients: clients,
		Dogs:    dogs,
		Walks:   walks,
	}, tg.NewSessions(tgCfg.SessionTTL), m, forceUpdate, logger.Named("tg"))
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(tgCfg.Timezone)
	if err != nil {
		return fmt.Errorf("load TIMEZONE %q: %w", tgCfg.Timezone, err)
	}
	tgHandler.SetLocation(loc)

	bot, err := tgbotapisfm.NewBot(tgbotapisfm.Config{
		Token:           tgCfg.BotToken,
		Expiration:      tgCfg.StateTTL,
		CleanupInterval: time.Hour,
		States:          tgHandler.StatesMap(),
		DefaultState:    tg.DefaultState,
	}, tgCfg.IgnoreList, logger.Named("bot"))
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	if err := bot.SetUpdateHandler(tgHandler.LogUpdate); err != nil {
		return err
	}

	errChan := bot.Start(0, 30)
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("bot stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		bot.Stop()
		return nil
	}
}
