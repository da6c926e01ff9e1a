package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Geo    GeoConfig    `mapstructure:"geo"`
	Search SearchConfig `mapstructure:"search"`
}

// AppConfig holds server basics.
type AppConfig struct {
	HTTPAddr string `mapstructure:"http_addr"` // listen address, e.g. ":8080"
	LogLevel string `mapstructure:"log_level"` // debug / info / warn / error
}

// DBConfig holds the catalog database settings.
type DBConfig struct {
	Path string `mapstructure:"path"` // sqlite file path
}

// RedisConfig holds the optional geo-cache backend. An empty Addr disables
// caching entirely; the resolver still works without it.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

// GeoConfig holds IP-to-country resolution settings.
type GeoConfig struct {
	Endpoint string        `mapstructure:"endpoint"`  // upstream base URL
	Timeout  time.Duration `mapstructure:"timeout"`   // per-lookup budget
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // redis entry lifetime
}

// SearchConfig tunes the candidate window pulled from the store when
// tag-ranking happens in memory. The window is a completeness/performance
// trade-off: matching gifts beyond factor*limit (floored at min) can be
// missed.
type SearchConfig struct {
	WindowFactor int `mapstructure:"window_factor"`
	WindowMin    int `mapstructure:"window_min"`
}

// Load reads configs/config.yaml if present and applies GIFTRANK_* environment
// overrides on top of the built-in defaults.
func Load(configPath ...string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.http_addr", ":8080")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("db.path", "giftrank.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("geo.endpoint", "http://ip-api.com")
	v.SetDefault("geo.timeout", 2*time.Second)
	v.SetDefault("geo.cache_ttl", 24*time.Hour)
	v.SetDefault("search.window_factor", 3)
	v.SetDefault("search.window_min", 50)

	v.SetEnvPrefix("GIFTRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults plus env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
