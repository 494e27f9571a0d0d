package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level is a logging severity, ordered DEBUG < INFO < WARN < ERROR, mirroring
// the leveled logger this CLI's diagnostics model is built on.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a --log-level flag value to a Level, defaulting to INFO
// for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func levelColor(l Level) *color.Color {
	switch l {
	case LevelDebug:
		return color.New(color.FgHiBlack)
	case LevelInfo:
		return color.New(color.FgBlue)
	case LevelWarn:
		return color.New(color.FgYellow)
	case LevelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// Logger is a leveled, optionally colored logger: every message below the
// configured Min level is dropped, and the level tag is colored unless
// NoColor is set.
type Logger struct {
	w       io.Writer
	Min     Level
	NoColor bool
}

// NewLogger builds a Logger writing to w (typically os.Stderr) at min level.
func NewLogger(w io.Writer, min Level, noColor bool) *Logger {
	return &Logger{w: w, Min: min, NoColor: noColor}
}

// Default builds a Logger writing to stderr at INFO level with color
// following terminal auto-detection.
func Default() *Logger {
	return NewLogger(os.Stderr, LevelInfo, false)
}

func (l *Logger) log(lvl Level, format string, args ...any) {
	if lvl < l.Min {
		return
	}
	c := levelColor(lvl)
	if l.NoColor {
		c.DisableColor()
	}
	tag := c.Sprintf("[%s]", lvl)
	fmt.Fprintf(l.w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
