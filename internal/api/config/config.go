package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// setDefaults 配置文件里没写的字段也要有合理的缺省行为
func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("storage.driver", "mongo")
	viper.SetDefault("storage.op_timeout", 3)
	viper.SetDefault("storage.collections.entries", "entries")
	viper.SetDefault("storage.collections.comments", "comments")
	viper.SetDefault("moderation.entry_threshold", 3)
	viper.SetDefault("moderation.comment_threshold", 2)
	viper.SetDefault("moderation.retention_days", 7)
	viper.SetDefault("admin.token_ttl", 60)
}
