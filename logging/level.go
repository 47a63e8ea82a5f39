package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Level is the severity of an entry. Its values line up with zapcore levels.
type Level int8

// Levels from least to most severe.
const (
	DEBUG = Level(zapcore.DebugLevel)
	INFO  = Level(zapcore.InfoLevel)
	WARN  = Level(zapcore.WarnLevel)
	ERROR = Level(zapcore.ErrorLevel)
)

// AsZap converts the level to a zapcore.Level.
func (level Level) AsZap() zapcore.Level {
	return zapcore.Level(level)
}

func (level Level) String() string {
	return level.AsZap().CapitalString()
}

// LevelFromString parses debug, info, warn (or warning) and error in any case.
func LevelFromString(s string) (Level, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "warning" {
		return WARN, nil
	}
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(lower)); err != nil || zl < zapcore.DebugLevel || zl > zapcore.ErrorLevel {
		return INFO, errors.Errorf("unknown log level %q", s)
	}
	return Level(zl), nil
}

// MarshalText lets levels appear as names in json and yaml.
func (level Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(level.String())), nil
}

// UnmarshalText parses a level name.
func (level *Level) UnmarshalText(text []byte) error {
	parsed, err := LevelFromString(string(text))
	if err != nil {
		return err
	}
	*level = parsed
	return nil
}
