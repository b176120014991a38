// Package config loads ThreadFactory profiles from TOML files, so deployments
// can tune thread attributes (detached default, stack-size and priority
// hints, live-thread limit) without recompiling.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Swind/go-concurrency-kit/core"
)

// FactoryConfig is the resolved factory profile.
type FactoryConfig struct {
	Detached   bool
	StackSize  int
	Priority   core.ThreadPriority
	MaxThreads int64
}

// DefaultFactoryConfig mirrors core.NewThreadFactory's defaults: joinable,
// normal priority, no stack hint, no live-thread limit.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		Detached:   false,
		StackSize:  0,
		Priority:   core.ThreadPriorityNormal,
		MaxThreads: 0,
	}
}

// config.toml key mapping to factory settings.
type fileConfig struct {
	Factory factoryFileConfig `toml:"factory"`
}

type factoryFileConfig struct {
	Detached   bool   `toml:"detached"`
	StackSize  int    `toml:"stack_size"`
	Priority   string `toml:"priority"`
	MaxThreads int64  `toml:"max_threads"`
}

// LoadFactoryConfig reads a TOML profile and overlays the defined keys onto
// the defaults. Keys absent from the file keep their default values.
func LoadFactoryConfig(path string) (FactoryConfig, error) {
	cfg := DefaultFactoryConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return FactoryConfig{}, fmt.Errorf("load factory config: %w", err)
	}

	if meta.IsDefined("factory", "detached") {
		cfg.Detached = raw.Factory.Detached
	}
	if meta.IsDefined("factory", "stack_size") {
		if raw.Factory.StackSize < 0 {
			return FactoryConfig{}, fmt.Errorf("load factory config: stack_size %d is negative", raw.Factory.StackSize)
		}
		cfg.StackSize = raw.Factory.StackSize
	}
	if meta.IsDefined("factory", "priority") {
		priority, err := parsePriority(raw.Factory.Priority)
		if err != nil {
			return FactoryConfig{}, fmt.Errorf("load factory config: %w", err)
		}
		cfg.Priority = priority
	}
	if meta.IsDefined("factory", "max_threads") {
		if raw.Factory.MaxThreads < 0 {
			return FactoryConfig{}, fmt.Errorf("load factory config: max_threads %d is negative", raw.Factory.MaxThreads)
		}
		cfg.MaxThreads = raw.Factory.MaxThreads
	}

	return cfg, nil
}

// NewFactory builds a ThreadFactory configured per the profile.
func (c FactoryConfig) NewFactory() *core.ThreadFactory {
	factory := core.NewThreadFactory()
	c.ApplyTo(factory)
	return factory
}

// ApplyTo pushes the profile onto an existing factory. Threads minted before
// the call keep their creation-time attributes.
func (c FactoryConfig) ApplyTo(factory *core.ThreadFactory) {
	factory.SetDetached(c.Detached)
	factory.SetStackSize(c.StackSize)
	factory.SetPriority(c.Priority)
	factory.SetMaxThreads(c.MaxThreads)
}

func parsePriority(v string) (core.ThreadPriority, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return core.ThreadPriorityLow, nil
	case "", "normal":
		return core.ThreadPriorityNormal, nil
	case "high":
		return core.ThreadPriorityHigh, nil
	default:
		return core.ThreadPriorityNormal, fmt.Errorf("unknown priority %q", v)
	}
}
