package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"linguactl/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("api.baseUrl", "LINGUA_API_BASE_URL")
	viper.BindEnv("api.timeout", "LINGUA_API_TIMEOUT")
	viper.BindEnv("logger.level", "LINGUA_LOG_LEVEL")
	viper.BindEnv("session.filePath", "LINGUA_SESSION_FILE")
	viper.BindEnv("snapshot.interval", "LINGUA_SNAPSHOT_INTERVAL")
	viper.BindEnv("cache.enabled", "LINGUA_CACHE_ENABLED")
	viper.BindEnv("cache.size", "LINGUA_CACHE_SIZE")
	viper.BindEnv("metrics.addr", "LINGUA_METRICS_ADDR")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "LinguaCtl"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
