package logs

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hnefatafl/config"
)

var file *lumberjack.Logger

// Init replaces the global zerolog logger: human readable output on stderr and,
// with a log file configured, JSON lines in a rotated file.
func Init(appName string, cfg config.LogConfig) error {
	return initWith(appName, cfg, os.Stderr)
}

func initWith(appName string, cfg config.LogConfig, console io.Writer) error {
	lvl, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		return err
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly}}
	if cfg.File != "" {
		Close()
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		writers = append(writers, file)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("app", appName).
		Logger()
	return nil
}

// Close releases the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
