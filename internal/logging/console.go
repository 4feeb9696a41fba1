package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// consoleRunIDLen is how much of the run identifier console lines show.
const consoleRunIDLen = 8

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgBlue),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// consoleHandler writes one human-readable line per record:
//
//	15:04:05 INFO organizer: organizing pass completed moved=3 run=1b2c3d4e
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	attrs     []slog.Attr
	prefix    string
	addSource bool
	colorize  bool
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource, colorize bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, addSource: addSource, colorize: colorize}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var component string
	var fields []slog.Attr
	collect := func(prefix string, attr slog.Attr) {
		for _, flat := range flatten(prefix, attr) {
			if flat.Key == FieldComponent && component == "" {
				component = flat.Value.String()
				continue
			}
			fields = append(fields, flat)
		}
	}
	for _, attr := range h.attrs {
		collect("", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		collect(h.prefix, attr)
		return true
	})

	var buf bytes.Buffer
	buf.WriteString(ts.Local().Format(time.TimeOnly))
	buf.WriteByte(' ')
	buf.WriteString(h.label(record.Level))
	buf.WriteByte(' ')
	if component != "" {
		buf.WriteString(component)
		buf.WriteString(": ")
	}
	buf.WriteString(strings.TrimSpace(record.Message))

	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}

	for _, field := range fields {
		key, value := field.Key, consoleValue(field.Value)
		if key == FieldRunID {
			key = "run"
			if len(value) > consoleRunIDLen {
				value = value[:consoleRunIDLen]
			}
		}
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(value)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		if h.prefix != "" {
			attr.Key = h.prefix + attr.Key
		}
		clone.attrs = append(clone.attrs, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *consoleHandler) label(level slog.Level) string {
	var base slog.Level
	switch {
	case level >= slog.LevelError:
		base = slog.LevelError
	case level >= slog.LevelWarn:
		base = slog.LevelWarn
	case level >= slog.LevelInfo:
		base = slog.LevelInfo
	default:
		base = slog.LevelDebug
	}
	text := base.String()
	if !h.colorize {
		return text
	}
	c := *levelColors[base]
	c.EnableColor()
	return c.Sprint(text)
}

// flatten expands group attributes into dotted keys.
func flatten(prefix string, attr slog.Attr) []slog.Attr {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return nil
	}
	if attr.Value.Kind() != slog.KindGroup {
		attr.Key = prefix + attr.Key
		return []slog.Attr{attr}
	}
	next := prefix
	if attr.Key != "" {
		next = prefix + attr.Key + "."
	}
	var out []slog.Attr
	for _, member := range attr.Value.Group() {
		out = append(out, flatten(next, member)...)
	}
	return out
}

func consoleValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().Local().Format(time.DateTime)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
