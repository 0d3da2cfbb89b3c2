package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "CMP"
	TypeDB        LogType = "DB"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
)

// Config selects the handler used by New.
type Config struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
	NoColor   bool       `toml:"no_color"`
}

// New returns a JSON handler for the "json" format and a CustomHandler
// otherwise.
func New(cfg Config) slog.Handler {
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	}
	h := NewHandler(os.Stdout, cfg.Level)
	h.color = !cfg.NoColor
	return h
}

// CustomHandler prints one coloured line per record:
// [Tensura] [15:04:05] [LEVEL] [TYPE] message [name by user] [Status: s] (took 12ms) k=v
type CustomHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
	group string
	now   func() time.Time
}

func NewHandler(w io.Writer, level slog.Leveler) *CustomHandler {
	return &CustomHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		color: true,
		now:   time.Now,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *CustomHandler) qualify(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

// fields are the attributes the line layout pulls out of a record.
type fields struct {
	logType  LogType
	name     string
	userName string
	status   string
	err      string
	location string
	took     time.Duration
	extra    []string
}

func (f *fields) add(a slog.Attr) {
	switch a.Key {
	case "type":
		switch a.Value.String() {
		case "cmd":
			f.logType = TypeCommand
		case "component":
			f.logType = TypeComponent
		case "db":
			f.logType = TypeDB
		case "error":
			f.logType = TypeError
		}
	case "name":
		f.name = a.Value.String()
	case "user_name":
		f.userName = a.Value.String()
	case "status":
		f.status = a.Value.String()
	case "error":
		f.err = fmt.Sprintf("%v", a.Value.Any())
	case "error_location":
		f.location = a.Value.String()
	case "took":
		if a.Value.Kind() == slog.KindDuration {
			f.took = a.Value.Duration()
		}
	default:
		f.extra = append(f.extra, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(r.Message) {
		return nil
	}

	f := fields{logType: TypeSystem}
	for _, a := range h.attrs {
		f.add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		f.add(h.qualify(a))
		return true
	})

	levelColor, levelText := colorGreen, "INFO"
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level < slog.LevelInfo:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	message := r.Message
	if r.Level >= slog.LevelError {
		if f.location == "" {
			f.location = sourceLocation(r.PC)
		}
		if f.location != "" {
			message = fmt.Sprintf("%s (%s)", message, f.location)
		}
		if f.err != "" {
			message = fmt.Sprintf("%s: %s", message, f.err)
		}
	} else if f.err != "" {
		f.extra = append(f.extra, "error="+f.err)
	}
	if f.name != "" && f.userName != "" {
		message = fmt.Sprintf("%s [%s by %s]", message, f.name, f.userName)
	} else if f.name != "" {
		message = fmt.Sprintf("%s [%s]", message, f.name)
	}
	if f.status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, f.status)
	}
	if f.took > 0 {
		message = fmt.Sprintf("%s (took %dms)", message, f.took.Milliseconds())
	}
	if len(f.extra) > 0 {
		message += " " + strings.Join(f.extra, " ")
	}

	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	var line string
	if h.color {
		line = fmt.Sprintf("%s[Tensura] [%s] [%s%s%s] [%s] %s%s\n",
			colorWhite, ts.Format("15:04:05"), levelColor, levelText, colorWhite, f.logType, message, colorReset)
	} else {
		line = fmt.Sprintf("[Tensura] [%s] [%s] [%s] %s\n", ts.Format("15:04:05"), levelText, f.logType, message)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// gateway chatter from disgo that would drown everything else at debug level
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"opening gateway connection",
	"locking gateway rate limiter",
	"unlocking gateway rate limiter",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

func shouldSkipLog(msg string) bool {
	msg = strings.ToLower(msg)
	for _, skip := range skippedMessages {
		if strings.Contains(msg, skip) {
			return true
		}
	}
	return false
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
}
