package providers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"treport/internal/structures"
)

type TypeEnum uint8

const (
	TypeApp TypeEnum = iota
	TypeFetch
	TypeCache
	TypeReport
)

func (t TypeEnum) String() string {
	switch t {
	case TypeFetch:
		return "fetch"
	case TypeCache:
		return "cache"
	case TypeReport:
		return "report"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	log  zerolog.Logger
	file *os.File
}

const logFileName = "treport.log"

// NewLogProvider builds the zerolog-backed logger writing to both stderr
// (console format) and a log file under the configured directory. The
// --verbose flag forces debug level regardless of config.
func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	file, err := os.OpenFile(
		filepath.Join(conf.Logger.Dir, logFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		os.FileMode(conf.Logger.Mode),
	)
	if err != nil {
		return nil, err
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	log := zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(level).
		With().Timestamp().Logger()

	return &LogProvider{log: log, file: file}, nil
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.log.Error().Str("type", t.String()).Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.log.Warn().Str("type", t.String()).Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.log.Info().Str("type", t.String()).Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.log.Debug().Str("type", t.String()).Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.log.Fatal().Str("type", t.String()).Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	_ = lp.file.Close()
}
