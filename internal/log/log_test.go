// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestHandleLog(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)
	h.now = func() time.Time { return time.Date(2023, 3, 5, 15, 0, 0, 0, time.UTC) }

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.Debugf("cache hit: %s", "2023.json")
	logger.WithError(errors.New("boom")).WithField("key", "circuits.json").Warn("write failed")

	assert.Equal(t,
		"2023-03-05 15:00:00 D cache hit: 2023.json\n"+
			"2023-03-05 15:00:00 W write failed error=boom key=circuits.json\n",
		buf.String())
}

func TestInitLogger(t *testing.T) {
	t.Setenv("F1CTL_LOG", "debug")
	InitLogger()
	l, ok := log.Log.(*log.Logger)
	if assert.True(t, ok) {
		assert.Equal(t, log.DebugLevel, l.Level)
	}

	t.Setenv("F1CTL_LOG", "")
	InitLogger()
	l, _ = log.Log.(*log.Logger)
	assert.Equal(t, log.ErrorLevel, l.Level)
}
