package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the daemon-wide logger. Configure replaces it once flags/env are parsed.
var Logger zerolog.Logger

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

func init() {
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Configure sets up the global logger. Pretty console output in dev, JSON lines otherwise.
func Configure(level LogLevel, isDev bool) {
	zerolog.SetGlobalLevel(parseLevel(level))

	var writer io.Writer = os.Stderr
	if isDev {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
			FormatMessage: func(i interface{}) string {
				return fmt.Sprintf("| %s", i)
			},
			FormatLevel: func(i interface{}) string {
				if ll, ok := i.(string); ok {
					switch ll {
					case "debug":
						return "DBG"
					case "info":
						return "INF"
					case "warn":
						return "WRN"
					case "error":
						return "ERR"
					case "fatal":
						return "FTL"
					default:
						return strings.ToUpper(ll)
					}
				}
				return ""
			},
			FormatTimestamp: func(i interface{}) string {
				if ts, ok := i.(string); ok {
					if t, err := time.Parse(time.RFC3339, ts); err == nil {
						return fmt.Sprintf("%s |", t.Format("15:04:05"))
					}
				}
				return fmt.Sprintf("%s |", i)
			},
		}
	}

	Logger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = Logger
}

func parseLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LevelFromEnv determines the daemon's log level from PROJ_LOG, defaulting to info
// (debug if isDev is set and PROJ_LOG isn't explicitly "info" or quieter).
func LevelFromEnv(isDev bool) LogLevel {
	env := strings.ToLower(os.Getenv("PROJ_LOG"))
	switch env {
	case "debug", "info", "warn", "error":
		return LogLevel(env)
	}
	if isDev {
		return LevelDebug
	}
	return LevelInfo
}

func Debug(msg string) { Logger.Debug().Msg(msg) }

func Debugf(format string, args ...interface{}) { Logger.Debug().Msgf(format, args...) }

func Info(msg string) { Logger.Info().Msg(msg) }

func Infof(format string, args ...interface{}) { Logger.Info().Msgf(format, args...) }

func Warn(msg string) { Logger.Warn().Msg(msg) }

func Warnf(format string, args ...interface{}) { Logger.Warn().Msgf(format, args...) }

func Error(msg string) { Logger.Error().Msg(msg) }

func Errorf(format string, args ...interface{}) { Logger.Error().Msgf(format, args...) }

// WithField creates a child logger carrying one extra structured field.
func WithField(key string, value interface{}) zerolog.Logger {
	return Logger.With().Interface(key, value).Logger()
}
