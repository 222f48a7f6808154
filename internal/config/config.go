package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	MySQLDSN      string `mapstructure:"MYSQL_DSN"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	MediaDir      string `mapstructure:"MEDIA_DIR"`
	// PageCacheTTL bounds the staleness of cached listing pages. Zero
	// disables the cache.
	PageCacheTTL time.Duration `mapstructure:"PAGE_CACHE_TTL"`

	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("MYSQL_DSN", "inkwell:inkwell@tcp(127.0.0.1:3306)/inkwell?charset=utf8mb4&parseTime=True")
	viper.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_SECRET", "dev-secret-change-me")
	viper.SetDefault("MEDIA_DIR", "media")
	viper.SetDefault("PAGE_CACHE_TTL", "20s")
	viper.SetDefault("KAFKA_TOPIC", "inkwell.social")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
