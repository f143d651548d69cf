package logger

import (
	"hotel/config"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 5
	defaultMaxAgeDays = 28
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// NewFileWriter returns a size rotated JSON log writer, or nil when no log file is configured.
func NewFileWriter(config *config.Config) io.WriteCloser {
	fileConfig := config.Server.LogFile
	if fileConfig.Path == "" {
		return nil
	}

	rotator := &lumberjack.Logger{
		Filename:   fileConfig.Path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   fileConfig.Compress,
	}

	if fileConfig.MaxSizeMB > 0 {
		rotator.MaxSize = fileConfig.MaxSizeMB
	}

	if fileConfig.MaxBackups > 0 {
		rotator.MaxBackups = fileConfig.MaxBackups
	}

	if fileConfig.MaxAgeDays > 0 {
		rotator.MaxAge = fileConfig.MaxAgeDays
	}

	return rotator
}

// SetLogFile tees the global logger into the rotating log file when one is configured.
func SetLogFile(config *config.Config) {
	writer := NewFileWriter(config)
	if writer == nil {
		return
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(zerolog.MultiLevelWriter(console, writer))
	log.Info().Str("path", config.Server.LogFile.Path).Msg("Log file rotation enabled.")
}
