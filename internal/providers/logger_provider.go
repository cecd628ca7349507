package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"linguactl/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeApi
	TypeSync
	TypeFlow
)

func (t TypeEnum) String() string {
	switch t {
	case TypeApi:
		return "api"
	case TypeSync:
		return "sync"
	case TypeFlow:
		return "flow"
	default:
		return "app"
	}
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	app  zerolog.Logger
	api  zerolog.Logger
	sync zerolog.Logger
	flow zerolog.Logger
	file *os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	if _, err = os.Stat(conf.Logger.Dir); err != nil {
		return nil, fmt.Errorf("log dir unavailable: %w", err)
	}

	file, err := os.OpenFile(
		filepath.Join(conf.Logger.Dir, "linguactl.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		os.FileMode(conf.Logger.Mode),
	)
	if err != nil {
		return nil, err
	}

	base := zerolog.New(file).Level(level).With().Timestamp().Logger()
	if conf.Debug {
		base = base.Level(zerolog.DebugLevel)
	}

	return &LogProvider{
		app:  base.With().Str("channel", TypeApp.String()).Logger(),
		api:  base.With().Str("channel", TypeApi.String()).Logger(),
		sync: base.With().Str("channel", TypeSync.String()).Logger(),
		flow: base.With().Str("channel", TypeFlow.String()).Logger(),
		file: file,
	}, nil
}

func (l *LogProvider) pick(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeApi:
		return &l.api
	case TypeSync:
		return &l.sync
	case TypeFlow:
		return &l.flow
	default:
		return &l.app
	}
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Debug().Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Info().Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Warn().Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Error().Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.pick(t).Fatal().Msgf(format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}
