// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.12
//

// Spectral grid convention and input validation shared by all components.
// Every spectral quantity is a []float64 of length NWL, index i holding the
// value at wavelength 400+i nm.

package gosail

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed selector strings and
	// wrong-length spectral arrays
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingParameter is returned when a required alternative-parameter
	// group is incomplete
	ErrMissingParameter = errors.New("missing parameter")
)

// Wavelengths returns the spectral grid [nm] (400, 401, ..., 2500)
func Wavelengths() []float64 {
	wl := make([]float64, NWL)
	for i := range wl {
		wl[i] = WL0 + float64(i)
	}
	return wl
}

// checkSpec verifies that a spectrum has the expected NWL samples
func checkSpec(name string, s []float64) error {
	if len(s) != NWL {
		return fmt.Errorf("%w: %s must have %d samples, got %d", ErrInvalidInput, name, NWL, len(s))
	}
	return nil
}

// LeafProvider maps leaf traits to the spectral grid and the per-wavelength
// leaf reflectance and transmittance. The PROSPECT family of models has this
// shape. The library itself consumes refl/trans slices directly; the provider
// type is the contract for surrounding application code.
type LeafProvider func() (wl, refl, trans []float64, err error)

// FlatLeaf returns a provider with constant reflectance and transmittance at
// every wavelength. Useful as a stand-in when no leaf model is wired up.
func FlatLeaf(refl, trans float64) LeafProvider {
	return func() ([]float64, []float64, []float64, error) {
		return Wavelengths(), constSpec(refl), constSpec(trans), nil
	}
}

// FlatSpec returns a spectrum with the same value at every wavelength
func FlatSpec(v float64) []float64 {
	return constSpec(v)
}
