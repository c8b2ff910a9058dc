// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/DataDog/viper"
	"go.uber.org/atomic"

	"github.com/DataDog/datadog-serverless-trigger/pkg/util/log"
)

// safeConfig implements Config by guarding a viper instance with a lock.
type safeConfig struct {
	*viper.Viper
	sync.RWMutex

	// ready is set once every default has been registered
	ready *atomic.Bool
}

// NewConfig returns a new viper backed Config reading environment variables
// named envPrefix_KEY, with envKeyReplacer applied to the key.
func NewConfig(name string, envPrefix string, envKeyReplacer *strings.Replacer) Config {
	config := safeConfig{
		Viper: viper.New(),
		ready: atomic.NewBool(false),
	}

	config.Viper.SetTypeByDefaultValue(true)
	config.Viper.SetConfigName(name)
	config.Viper.SetEnvPrefix(envPrefix)
	if envKeyReplacer != nil {
		config.Viper.SetEnvKeyReplacer(envKeyReplacer)
	}

	return &config
}

// BindEnv wraps Viper for concurrent access
func (c *safeConfig) BindEnv(key string, envvars ...string) {
	c.Lock()
	defer c.Unlock()
	if c.ready.Load() {
		log.Warnf("binding %q after the configuration was marked ready", key)
	}
	_ = c.Viper.BindEnv(append([]string{key}, envvars...)...)
}

// SetDefault wraps Viper for concurrent access
func (c *safeConfig) SetDefault(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetDefault(key, value)
}

// BindEnvAndSetDefault sets the default value of key and binds it to its
// environment variables.
func (c *safeConfig) BindEnvAndSetDefault(key string, val interface{}, envvars ...string) {
	c.SetDefault(key, val)
	c.BindEnv(key, envvars...)
}

// Set wraps Viper for concurrent access
func (c *safeConfig) Set(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.Set(key, value)
}

// GetString wraps Viper for concurrent access
func (c *safeConfig) GetString(key string) string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetString(key)
}

// GetBool wraps Viper for concurrent access
func (c *safeConfig) GetBool(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetBool(key)
}

// GetInt wraps Viper for concurrent access
func (c *safeConfig) GetInt(key string) int {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetInt(key)
}

// SetConfigFile wraps Viper for concurrent access
func (c *safeConfig) SetConfigFile(in string) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetConfigFile(in)
}

// SetConfigType wraps Viper for concurrent access
func (c *safeConfig) SetConfigType(in string) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetConfigType(in)
}

// ConfigFileUsed wraps Viper for concurrent access
func (c *safeConfig) ConfigFileUsed() string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.ConfigFileUsed()
}

// ReadInConfig wraps Viper for concurrent access
func (c *safeConfig) ReadInConfig() error {
	c.Lock()
	defer c.Unlock()
	return c.Viper.ReadInConfig()
}

// ReadConfig wraps Viper for concurrent access
func (c *safeConfig) ReadConfig(in io.Reader) error {
	c.Lock()
	defer c.Unlock()
	b, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return c.Viper.ReadConfig(bytes.NewReader(b))
}

// MarkReady flags the configuration as fully registered.
func (c *safeConfig) MarkReady() {
	c.ready.Store(true)
}
