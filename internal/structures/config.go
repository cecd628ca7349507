package structures

import "time"

type ApiConfig struct {
	BaseUrl string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
	BotName string        `yaml:"botName" validate:"required"`
}

type SessionConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type SnapshotConfig struct {
	Enabled  bool          `yaml:"enabled"`
	FilePath string        `yaml:"filePath"`
	Interval time.Duration `yaml:"interval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type Config struct {
	AppName  string
	Debug    bool
	Path     string
	Api      ApiConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logger   LoggerConfig   `yaml:"logger"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
