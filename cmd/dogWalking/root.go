package main

import (
	"context"
	"fmt"

	"dog_walking/internal/config"
	"dog_walking/internal/repository/postgres"
	"dog_walking/internal/service/walking"
	"dog_walking/pkg/config_loader"
	pgconn "dog_walking/pkg/db/postgres"
	"dog_walking/pkg/masker"
	"dog_walking/pkg/zaplogger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dog-walking",
		Short:         "Registry of clients, dogs and walks with a Telegram front end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "path to an optional .env file")

	root.AddCommand(newBotCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newUserCmd())
	return root
}

// runtime - то, что нужно каждой команде: логгер и открытая БД.
type runtime struct {
	logger *zap.Logger
	db     *gorm.DB
}

// bootstrap загружает конфиги (DBConfig загружается всегда), логирует их с маскировкой
// и подключается к БД.
func bootstrap(configs ...any) (*runtime, error) {
	var (
		dbCfg  config.DBConfig
		logCfg config.LogConfig
	)
	bootLogger, err := zaplogger.New("info")
	if err != nil {
		return nil, err
	}
	if err := config_loader.LoadEnv(envFile, bootLogger, &logCfg); err != nil {
		return nil, fmt.Errorf("load log config: %w", err)
	}

	logger, err := zaplogger.New(logCfg.Level)
	if err != nil {
		return nil, err
	}

	all := append([]any{&dbCfg}, configs...)
	if err := config_loader.LoadEnv(envFile, logger, all...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := masker.LogConfigs(logger, all...); err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}

	db, err := pgconn.NewGormConnection(dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &runtime{logger: logger, db: db}, nil
}

func (r *runtime) close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = r.logger.Sync()
}

// seedAdmin создает администратора из конфига, если его еще нет.
func seedAdmin(ctx context.Context, r *runtime, seed config.SeedConfig) error {
	if seed.AdminPassword == "" {
		r.logger.Info("ADMIN_PASSWORD is empty, admin seed skipped")
		return nil
	}
	auth, err := walking.NewAuthService(postgres.NewUserRepository(r.db))
	if err != nil {
		return err
	}
	created, err := auth.EnsureUser(ctx, seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		r.logger.Info("admin user created", zap.String("username", seed.AdminUsername))
	}
	return nil
}
