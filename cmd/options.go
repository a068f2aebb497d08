// Copyright © 2024 The ELPS authors

package cmd

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
)

// Option configures an exported command factory.
type Option func(*cmdConfig)

type cmdConfig struct {
	registry func() (*lang.Registry, error)
}

// WithRegistry makes commands use the registry returned by newRegistry in
// place of the standard library.  Commands which evaluate seal the registry,
// so newRegistry should return a fresh registry on each call.
func WithRegistry(newRegistry func() (*lang.Registry, error)) Option {
	return func(c *cmdConfig) { c.registry = newRegistry }
}

func newCmdConfig(opts ...Option) *cmdConfig {
	cfg := &cmdConfig{registry: langlib.NewRegistry}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}
