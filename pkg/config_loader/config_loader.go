package config_loader

import (
	"os"

	"dog_walking/pkg/config"

	"go.uber.org/zap"
)

// LoadEnv загружает .env файл в окружение, если он есть,
// затем заполняет каждый cfg из окружения. Отсутствие файла только логируется.
func LoadEnv(path string, logger *zap.Logger, cfgs ...any) error {
	if _, err := os.Stat(path); err != nil {
		logger.Info("no .env file found, using environment variables", zap.String("path", path))
	}
	if err := config.LoadConfigFiles(&config.ConfigFile{Path: path, Optional: true}); err != nil {
		return err
	}
	return config.LoadConfigs(cfgs...)
}
