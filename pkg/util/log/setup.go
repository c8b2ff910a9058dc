// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/cihub/seelog"
)

// LoggerName is the name printed in every log line
type LoggerName string

const logDateFormat = "2006-01-02 15:04:05 MST"

// buildCommonFormat returns the log common format seelog string
func buildCommonFormat(loggerName LoggerName) string {
	return fmt.Sprintf("%%Date(%s) | %s | %%LEVEL | %%Msg%%n", logDateFormat, loggerName)
}

// buildJSONFormat returns the log JSON format seelog string
func buildJSONFormat(loggerName LoggerName) string {
	_ = seelog.RegisterCustomFormatter("QuoteMsg", createQuoteMsgFormatter)
	return fmt.Sprintf(`{"agent":"%s","time":"%%Date(%s)","level":"%%LEVEL","msg":%%QuoteMsg}%%n`, strings.ToLower(string(loggerName)), logDateFormat)
}

func createQuoteMsgFormatter(_ string) seelog.FormatterFunc {
	return func(message string, _ seelog.LogLevel, _ seelog.LogContextInterface) interface{} {
		return fmt.Sprintf("%q", message)
	}
}

// SetupLogger builds a console seelog logger with the given level and format
// and installs it as the package logger.
func SetupLogger(loggerName LoggerName, level string, jsonFormat bool) error {
	format := buildCommonFormat(loggerName)
	if jsonFormat {
		format = buildJSONFormat(loggerName)
	}
	config := fmt.Sprintf(`<seelog minlevel="%s">
	<outputs formatid="common">
		<console/>
	</outputs>
	<formats>
		<format id="common" format="%s"/>
	</formats>
</seelog>`, seelogLevel(level), escapeXMLAttr(format))

	l, err := seelog.LoggerFromConfigAsString(config)
	if err != nil {
		return fmt.Errorf("unable to build the seelog logger: %w", err)
	}
	SetupDatadogLogger(l, seelogLevel(level))
	return nil
}

// SetupLoggerToWriter installs a logger writing to w, used by tests and by
// callers owning their output stream.
func SetupLoggerToWriter(w io.Writer, loggerName LoggerName, level string, jsonFormat bool) error {
	lvl, ok := seelog.LogLevelFromString(seelogLevel(level))
	if !ok {
		lvl = seelog.InfoLvl
	}
	format := buildCommonFormat(loggerName)
	if jsonFormat {
		format = buildJSONFormat(loggerName)
	}
	l, err := seelog.LoggerFromWriterWithMinLevelAndFormat(w, lvl, format)
	if err != nil {
		return err
	}
	SetupDatadogLogger(l, seelogLevel(level))
	return nil
}

func seelogLevel(level string) string {
	level = strings.ToLower(level)
	if level == "warning" {
		return "warn"
	}
	if _, ok := seelog.LogLevelFromString(level); !ok {
		return "info"
	}
	return level
}

func escapeXMLAttr(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;").Replace(s)
}
