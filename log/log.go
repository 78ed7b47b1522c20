// Package log configures application-level logging for the activedeps CLI.
//
// Library packages log through github.com/apex/log directly. This package
// only decides where those entries go and how they look.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/fatih/color"
)

var colors = map[log.Level]*color.Color{
	log.DebugLevel: color.New(color.FgWhite),
	log.InfoLevel:  color.New(color.FgBlue),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed, color.Bold),
}

// Handler writes human-readable entries at or above Level to Writer.
type Handler struct {
	mu     sync.Mutex
	Writer io.Writer
	Level  log.Level
}

// HandleLog implements log.Handler.
func (h *Handler) HandleLog(entry *log.Entry) error {
	if entry.Level < h.Level {
		return nil
	}

	level := strings.ToUpper(entry.Level.String())
	if c, ok := colors[entry.Level]; ok {
		level = c.Sprint(level)
	}

	names := make([]string, 0, len(entry.Fields))
	for name := range entry.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.Writer, "%s %s", level, entry.Message)
	for _, name := range names {
		fmt.Fprintf(h.Writer, " %s=%v", name, entry.Fields[name])
	}
	fmt.Fprintln(h.Writer)
	return nil
}

// Init routes all logging to STDERR. If debug is true, debug entries are
// included; otherwise only warnings and errors are shown.
func Init(debug bool) {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetHandler(&Handler{Writer: os.Stderr, Level: level})
	log.SetLevel(level)
}
