// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package version defines the version of the trigger engine
package version

import (
	"fmt"
	"runtime"
)

// Version contains the version of the trigger engine.
// It is populated at build time using -ldflags "-X".
var Version string

// Commit is populated with the short commit hash from which the binary was built
var Commit string

var versionDefault = "0.1.0"

func init() {
	if Version == "" {
		Version = versionDefault
	}
}

// String returns the human readable version line.
func String() string {
	commit := Commit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("Serverless Trigger %s - Commit: %s - Go version: %s", Version, commit, runtime.Version())
}
