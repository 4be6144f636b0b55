package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the user-facing verbosity accepted by the --log flag.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelError    Level = "ERROR"
	LevelWarning  Level = "WARNING"
	LevelInfo     Level = "INFO"
	LevelDebug    Level = "DEBUG"
)

// Levels lists the accepted values, most severe first.
var Levels = []Level{LevelCritical, LevelError, LevelWarning, LevelInfo, LevelDebug}

// ParseLevel validates s against Levels. Matching is case-sensitive.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid log level %q (choose from %s)", s, levelChoices())
}

func levelChoices() string {
	names := make([]string, len(Levels))
	for i, l := range Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// String implements pflag.Value.
func (l *Level) String() string {
	return string(*l)
}

// Set implements pflag.Value.
func (l *Level) Set(s string) error {
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}

// ZapLevel returns the minimum zap severity for l.
// CRITICAL has no zap counterpart and maps to DPanic, the first level above error.
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case LevelCritical:
		return zapcore.DPanicLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarning:
		return zapcore.WarnLevel
	case LevelDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// ServerLevel translates l into the vocabulary of the web server library
// and the dashboard client (fatal, error, warn, info, debug).
func (l Level) ServerLevel() string {
	switch l {
	case LevelCritical:
		return "fatal"
	case LevelError:
		return "error"
	case LevelWarning:
		return "warn"
	case LevelDebug:
		return "debug"
	default:
		return "info"
	}
}
