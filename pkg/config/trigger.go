// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var validLogLevels = map[string]struct{}{
	"trace":    {},
	"debug":    {},
	"info":     {},
	"warn":     {},
	"warning":  {},
	"error":    {},
	"critical": {},
	"off":      {},
}

// TriggerConfig is the validated view of the settings the trigger engine uses.
type TriggerConfig struct {
	MetadataOnly   bool
	MaxPayloadSize int
	LogLevel       string
	LogFormatJSON  bool
}

// Load reads and validates the trigger settings from config. Every invalid
// setting is reported in the returned error.
func Load(config Config) (TriggerConfig, error) {
	tc := TriggerConfig{
		MetadataOnly:   config.GetBool(MetadataOnlyKey),
		MaxPayloadSize: config.GetInt(MaxPayloadSizeKey),
		LogLevel:       strings.ToLower(strings.TrimSpace(config.GetString(LogLevelKey))),
		LogFormatJSON:  config.GetBool(LogFormatJSONKey),
	}
	if err := tc.Validate(); err != nil {
		return TriggerConfig{}, err
	}
	return tc, nil
}

// Validate returns every problem found in tc combined in a single error.
func (tc TriggerConfig) Validate() error {
	var err error
	if tc.MaxPayloadSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive, got %d", MaxPayloadSizeKey, tc.MaxPayloadSize))
	}
	if _, ok := validLogLevels[tc.LogLevel]; !ok {
		err = multierr.Append(err, fmt.Errorf("%s %q is not a valid log level", LogLevelKey, tc.LogLevel))
	}
	return err
}
