// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Sheet    SheetConfig    `mapstructure:"sheet"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Sessions SessionConfig  `mapstructure:"sessions"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// SheetConfig points at the published-to-web criteria spreadsheet.
type SheetConfig struct {
	URL        string `mapstructure:"url"`
	TTLSeconds int    `mapstructure:"ttl_seconds"` // cache time-to-live
	Timeout    int    `mapstructure:"timeout"`     // milliseconds
}

// CacheConfig controls the optional Redis layer holding the last good
// criteria snapshot. The tool works without it; it only loses the ability to
// serve stale data across restarts or fetch failures.
type CacheConfig struct {
	Enabled   bool        `mapstructure:"enabled"`
	KeyPrefix string      `mapstructure:"key_prefix"`
	Redis     RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ScoringConfig holds the scoring engine knobs.
type ScoringConfig struct {
	DefaultScore int `mapstructure:"default_score"` // seed for unseen criteria, 0..5
	TopGaps      int `mapstructure:"top_gaps"`      // gap list truncation
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	IdleTTLMinutes int `mapstructure:"idle_ttl_minutes"`
}

// RegistryConfig locates the typology registry document. Empty path means
// the built-in four typologies.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
