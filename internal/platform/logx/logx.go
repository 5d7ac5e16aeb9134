// Package logx is the project's leveled key/value logger, backed by zerolog.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable consulted by New.
const EnvLevel = "WAYBACKGA_LOG_LEVEL"

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type zeroLogger struct {
	zl  zerolog.Logger
	lvl *atomic.Int32 // shared by every logger derived through With
}

// New builds a console logger on stderr at the level named by WAYBACKGA_LOG_LEVEL.
func New() Logger {
	return NewWithWriter(os.Stderr, parseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a stderr logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewSilent creates a logger that only outputs errors, used while the UI owns the terminal.
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWithWriter creates an uncoloured console logger writing to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	l := &zeroLogger{
		zl:  zerolog.New(cw).Level(zerolog.TraceLevel).With().Timestamp().Logger(),
		lvl: new(atomic.Int32),
	}
	l.lvl.Store(int32(lvl))
	return l
}

func (s *zeroLogger) With(kv ...any) Logger {
	return &zeroLogger{
		zl:  s.zl.With().Fields(normalizeKV(kv)).Logger(),
		lvl: s.lvl,
	}
}

func (s *zeroLogger) SetLevel(lvl Level) {
	s.lvl.Store(int32(lvl))
}

func (s *zeroLogger) enabled(l Level) bool {
	return int32(l) >= s.lvl.Load()
}

func (s *zeroLogger) Debug(msg string, kv ...any) {
	if s.enabled(LevelDebug) {
		s.zl.Debug().Fields(normalizeKV(kv)).Msg(msg)
	}
}

func (s *zeroLogger) Info(msg string, kv ...any) {
	if s.enabled(LevelInfo) {
		s.zl.Info().Fields(normalizeKV(kv)).Msg(msg)
	}
}

func (s *zeroLogger) Warn(msg string, kv ...any) {
	if s.enabled(LevelWarn) {
		s.zl.Warn().Fields(normalizeKV(kv)).Msg(msg)
	}
}

func (s *zeroLogger) Err(err error, kv ...any) {
	if err == nil || !s.enabled(LevelError) {
		return
	}
	s.zl.Error().Err(err).Fields(normalizeKV(kv)).Send()
}

// normalizeKV turns a loose key/value list into the map zerolog expects.
// A dangling key gets the value "(missing)"; non-string keys are formatted.
func normalizeKV(kv []any) map[string]any {
	out := make(map[string]any, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		if i+1 < len(kv) {
			out[key] = kv[i+1]
		} else {
			out[key] = "(missing)"
		}
	}
	return out
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
