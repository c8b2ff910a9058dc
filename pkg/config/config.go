// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package config holds the trigger engine settings. Values come from
// defaults, an optional YAML file and DD_ prefixed environment variables,
// in increasing order of precedence.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// Configuration keys
const (
	MetadataOnlyKey   = "metadata_only"
	MaxPayloadSizeKey = "max_payload_size"
	LogLevelKey       = "log_level"
	LogFormatJSONKey  = "log_format_json"
	ConfigFileKey     = "config_file"
)

// Config is the concurrency safe settings store the engine reads from.
type Config interface {
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int

	Set(key string, value interface{})
	SetDefault(key string, value interface{})
	BindEnv(key string, envvars ...string)
	BindEnvAndSetDefault(key string, val interface{}, envvars ...string)

	SetConfigFile(in string)
	SetConfigType(in string)
	ConfigFileUsed() string
	ReadInConfig() error
	ReadConfig(in io.Reader) error

	MarkReady()
}

// Datadog is the global configuration object
var Datadog Config

func init() {
	Datadog = NewConfig("serverless-trigger", "DD", strings.NewReplacer(".", "_"))
	InitConfig(Datadog)
}

// InitConfig registers every key with its default and environment binding.
func InitConfig(config Config) {
	config.BindEnvAndSetDefault(MetadataOnlyKey, false)
	config.BindEnvAndSetDefault(MaxPayloadSizeKey, 1024)
	config.BindEnvAndSetDefault(LogLevelKey, "info")
	config.BindEnvAndSetDefault(LogFormatJSONKey, false)
	config.BindEnvAndSetDefault(ConfigFileKey, defaultConfigPath)
	config.MarkReady()
}

// LoadFile reads the YAML file at path into config. A missing file at the
// default location is not an error.
func LoadFile(config Config, path string) error {
	if path == "" {
		path = config.GetString(ConfigFileKey)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && path == defaultConfigPath {
			log.Debugf("No configuration file at %s, using defaults and environment", path)
			return nil
		}
		return errors.Wrapf(err, "unable to load configuration file %s", path)
	}
	config.SetConfigFile(path)
	if err := config.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "unable to parse configuration file %s", path)
	}
	log.Infof("Loaded configuration from %s", config.ConfigFileUsed())
	return nil
}
