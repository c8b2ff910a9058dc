// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package main

import (
	"os"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		_ = log.Error(err)
		log.Flush()
		os.Exit(-1)
	}
	log.Flush()
}
