// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// F1CTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("F1CTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(NewHandler(os.Stderr))
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.SetLevel(log.ErrorLevel)
		log.Errorf("invalid F1CTL_LOG level %q, using ERROR", level)
		return
	}
	log.SetLevel(lvl)
}

// CustomHandler writes one line per entry: timestamp, level initial, message
// and any fields. Output goes to stderr so it never mixes with rendered
// schedules on stdout.
type CustomHandler struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewHandler returns a CustomHandler writing to w.
func NewHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{out: w, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s %.1s %s%s\n", timestamp, level, e.Message, fields.String())
	return err
}
