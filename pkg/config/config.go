// Package config заполняет структуры с тегами envconfig из окружения,
// при необходимости сначала загружая .env файлы.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigFile связывает env файл и заполняемую им структуру.
type ConfigFile struct {
	// Путь к .env файлу; пустой - только окружение.
	Path string
	// Отсутствующие необязательные файлы пропускаются.
	Optional bool
	// Указатель на структуру с тегами envconfig. nil - только загрузка файла.
	Config any
}

// LoadConfigFiles загружает каждый файл в окружение и заполняет его структуру.
// Переменные, уже заданные в окружении, важнее файла.
func LoadConfigFiles(configFiles ...*ConfigFile) error {
	for _, cf := range configFiles {
		if cf.Path != "" {
			if err := godotenv.Load(cf.Path); err != nil {
				if !(cf.Optional && errors.Is(err, fs.ErrNotExist)) {
					return fmt.Errorf("load %s: %w", cf.Path, err)
				}
			}
		}

		if cf.Config == nil {
			continue
		}
		if err := envconfig.Process("", cf.Config); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfigs заполняет структуры только из окружения.
func LoadConfigs(configs ...any) error {
	for _, cfg := range configs {
		if err := envconfig.Process("", cfg); err != nil {
			return err
		}
	}
	return nil
}
