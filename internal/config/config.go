package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort      int    `mapstructure:"APP_PORT"`
	AnswerAPIURL string `mapstructure:"ANSWER_API_URL"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	// SerializeSends holds a per-conversation lock across outbound calls so
	// overlapping sends to one thread settle in order. Off by default to
	// preserve the original unserialized behavior.
	SerializeSends bool `mapstructure:"SERIALIZE_SENDS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("ANSWER_API_URL", "http://127.0.0.1:8001")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("SERIALIZE_SENDS", false)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
