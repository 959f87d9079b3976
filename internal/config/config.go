package config

import "time"

// Группы загружаются по отдельности, чтобы команда требовала только
// нужные ей переменные.
type TelegramConfig struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true" masked:"true"`
	// Telegram id пользователей, которым бот не отвечает
	IgnoreList []int64       `envconfig:"IGNORE_LIST"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	StateTTL   time.Duration `envconfig:"STATE_TTL" default:"24h"`
	// Часовой пояс IANA для дат прогулок в боте
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
}

type DBConfig struct {
	User   string `envconfig:"DBUSER" required:"true" masked:"true"`
	Pass   string `envconfig:"DBPASS" required:"true" masked:"true"`
	Host   string `envconfig:"DBHOST" required:"true"`
	DBName string `envconfig:"DBNAME" required:"true"`

	Port    string `envconfig:"DBPORT" default:"5432"`
	SSLMode string `envconfig:"DBSSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

// GoogleSheetConfig включает журнал прогулок, если задан SHEET_ID.
type GoogleSheetConfig struct {
	SheetID           string        `envconfig:"SHEET_ID" masked:"true"`
	WalkListID        string        `envconfig:"WALK_LIST_ID" masked:"true"`
	CredentialsBase64 string        `envconfig:"CREDENTIALS_BASE64" masked:"true"`
	PauseMs           int           `envconfig:"SHEET_PAUSE_MS" default:"1000"`
	ColumnOrder       string        `envconfig:"SHEET_COLUMNS"`
	SyncInterval      time.Duration `envconfig:"SHEET_SYNC_INTERVAL" default:"10m"`
}

func (c GoogleSheetConfig) Enabled() bool {
	return c.SheetID != ""
}

type StatusConfig struct {
	Addr string `envconfig:"STATUS_ADDR" default:":8081"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SeedConfig - учетная запись, создаваемая при первом запуске.
type SeedConfig struct {
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" masked:"true"`
}
