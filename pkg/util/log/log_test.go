// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"bytes"
	"testing"

	"github.com/cihub/seelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger() {
	logger = nil
	logsBuffer = []func(){}
	bufferLogsBeforeInit = true
}

func TestBufferedLinesAreReplayed(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()

	Infof("before setup %d", 1)

	var b bytes.Buffer
	require.NoError(t, SetupLoggerToWriter(&b, "TRIGGER", "debug", false))
	Flush()

	assert.Contains(t, b.String(), "before setup 1")
	assert.Contains(t, b.String(), "| TRIGGER | INFO |")
}

func TestLevelFiltering(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()

	var b bytes.Buffer
	require.NoError(t, SetupLoggerToWriter(&b, "TRIGGER", "warning", false))

	Debug("hidden line")
	err := Warnf("visible %s", "line")
	Flush()

	require.Error(t, err)
	assert.NotContains(t, b.String(), "hidden line")
	assert.Contains(t, b.String(), "visible line")

	lvl, err := GetLogLevel()
	require.NoError(t, err)
	assert.Equal(t, seelog.WarnLvl, lvl)
}

func TestLinesAreScrubbed(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()

	var b bytes.Buffer
	require.NoError(t, SetupLoggerToWriter(&b, "TRIGGER", "info", false))

	Info("connecting to", "postgres://user:secret@db:5432")
	Flush()

	assert.NotContains(t, b.String(), "secret")
	assert.Contains(t, b.String(), "user:********@db")
}

func TestChangeLogLevel(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()

	assert.Error(t, ChangeLogLevel("debug"))

	var b bytes.Buffer
	require.NoError(t, SetupLoggerToWriter(&b, "TRIGGER", "info", false))
	assert.Error(t, ChangeLogLevel("verbose"))
	require.NoError(t, ChangeLogLevel("error"))

	lvl, err := GetLogLevel()
	require.NoError(t, err)
	assert.Equal(t, seelog.ErrorLvl, lvl)
}

func TestErrorReturnsScrubbedError(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()
	bufferLogsBeforeInit = false

	err := Errorf("bad password: %s", "hunter2")
	assert.EqualError(t, err, "bad password: ********")
}

func TestJSONFormat(t *testing.T) {
	t.Cleanup(resetLogger)
	resetLogger()

	var b bytes.Buffer
	require.NoError(t, SetupLoggerToWriter(&b, "TRIGGER", "info", true))

	Infof("quoted %q", "value")
	Flush()

	assert.Contains(t, b.String(), `"agent":"trigger"`)
	assert.Contains(t, b.String(), `"level":"INFO"`)
	assert.Contains(t, b.String(), `"msg":"quoted \"value\""`)
}
