// Copyright © 2024 The ELPS authors

// Package langlib is used to conveniently load the standard operator library
// into a registry.
package langlib

import (
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib/libassert"
	"github.com/luthersystems/epilepsy/lang/langlib/libaux"
	"github.com/luthersystems/epilepsy/lang/langlib/libchoice"
	"github.com/luthersystems/epilepsy/lang/langlib/libeither"
	"github.com/luthersystems/epilepsy/lang/langlib/liblogic"
	"github.com/luthersystems/epilepsy/lang/langlib/libmaybe"
	"github.com/luthersystems/epilepsy/lang/langlib/librecord"
	"github.com/luthersystems/epilepsy/lang/langlib/libuint"
	"github.com/luthersystems/epilepsy/lang/langlib/libvariadics"
)

var loaders = []func(reg *lang.Registry) error{
	lang.RegisterControl,
	libaux.LoadPackage,
	liblogic.LoadPackage,
	libuint.LoadPackage,
	libvariadics.LoadPackage,
	libassert.LoadPackage,
	libchoice.LoadPackage,
	libmaybe.LoadPackage,
	libeither.LoadPackage,
	librecord.LoadPackage,
}

// LoadLibrary adds the control operators and the standard library to reg.
func LoadLibrary(reg *lang.Registry) error {
	for _, load := range loaders {
		err := load(reg)
		if err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns an unsealed registry holding the standard library.
// Embedders may register their own operators before creating an evaluator.
func NewRegistry() (*lang.Registry, error) {
	reg := lang.NewRegistry()
	err := LoadLibrary(reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
