// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.14
//

// Soil boundary condition for the canopy radiative transfer calculation.
// The soil model is a linear mixture of two reference spectra scaled by a
// brightness term:
//
//	rsoil0 = rsoil * (psoil*spectrum1 + (1-psoil)*spectrum2)
//
// By default spectrum1 is a dry soil and spectrum2 a wet soil, so psoil acts
// as a surface moisture parameter.

package gosail

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SoilOpt contains the parameters used to build the soil reflectance spectrum
// Either an explicit spectrum (Rsoil0) or the brightness/moisture pair
// (Rsoil, Psoil) must be given
type SoilOpt struct {
	Rsoil0    []float64 // Explicit soil reflectance spectrum (optional)
	Rsoil     *float64  // Soil brightness scalar (required if Rsoil0 is nil)
	Psoil     *float64  // Soil moisture scalar (required if Rsoil0 is nil)
	Spectrum1 []float64 // First reference spectrum. If nil, library dry soil
	Spectrum2 []float64 // Second reference spectrum. If nil, library wet soil
}

// NewSoilOpt creates a new SoilOpt with no parameters set
func NewSoilOpt() *SoilOpt {
	return &SoilOpt{}
}

// Resolve builds the soil reflectance spectrum from the options
// An explicit Rsoil0 is used as-is after a length check. Otherwise both
// Rsoil and Psoil must be present and the mixture formula is applied
func (opt *SoilOpt) Resolve() ([]float64, error) {
	if opt.Rsoil0 != nil {
		if err := checkSpec("rsoil0", opt.Rsoil0); err != nil {
			return nil, err
		}
		return copySpec(opt.Rsoil0), nil
	}
	if opt.Rsoil == nil || opt.Psoil == nil {
		return nil, fmt.Errorf("%w: if rsoil0 isn't defined, then rsoil and psoil must be defined", ErrMissingParameter)
	}
	s1 := opt.Spectrum1
	if s1 == nil {
		s1 = soilDry
	} else if err := checkSpec("soil_spectrum1", s1); err != nil {
		return nil, err
	}
	s2 := opt.Spectrum2
	if s2 == nil {
		s2 = soilWet
	} else if err := checkSpec("soil_spectrum2", s2); err != nil {
		return nil, err
	}
	rsoil0 := make([]float64, NWL)
	floats.ScaleTo(rsoil0, *opt.Psoil, s1)
	floats.AddScaled(rsoil0, 1.0-*opt.Psoil, s2)
	floats.Scale(*opt.Rsoil, rsoil0)
	return rsoil0, nil
}

// SoilSpectrumDry returns a copy of the library dry soil reference spectrum
func SoilSpectrumDry() []float64 {
	return copySpec(soilDry)
}

// SoilSpectrumWet returns a copy of the library wet soil reference spectrum
func SoilSpectrumWet() []float64 {
	return copySpec(soilWet)
}

// ------------------------------------
// Soil spectral library
// ------------------------------------

// The reference spectra are stored as anchor points and expanded onto the
// 1 nm grid at package init. The tables are read-only after that; the public
// accessors and Resolve only ever hand out copies.

var soilAnchorWl = []float64{
	400, 500, 600, 700, 800, 900, 1000, 1100, 1200, 1300, 1400,
	1500, 1600, 1700, 1800, 1900, 2000, 2100, 2200, 2300, 2400, 2500,
}

// Dry soil anchor reflectances. Broad rise through the visible and NIR with
// shallow water absorption features at 1400, 1900 and 2200 nm
var soilDryAnchor = []float64{
	0.045, 0.075, 0.125, 0.170, 0.210, 0.245, 0.275, 0.300, 0.315, 0.330, 0.320,
	0.345, 0.365, 0.375, 0.380, 0.335, 0.370, 0.385, 0.380, 0.360, 0.330, 0.300,
}

// Wet soil anchor reflectances. Darker overall, deeper water features
var soilWetAnchor = []float64{
	0.020, 0.035, 0.060, 0.085, 0.110, 0.130, 0.145, 0.160, 0.165, 0.170, 0.140,
	0.160, 0.175, 0.180, 0.175, 0.120, 0.150, 0.165, 0.155, 0.140, 0.120, 0.100,
}

var (
	soilDry []float64
	soilWet []float64
)

func init() {
	soilDry = interpGrid(soilAnchorWl, soilDryAnchor)
	soilWet = interpGrid(soilAnchorWl, soilWetAnchor)
}

// interpGrid linearly interpolates anchor points onto the 1 nm spectral grid
// Anchor wavelengths must be ascending and span [WL0, WL1]
func interpGrid(xs, ys []float64) []float64 {
	out := make([]float64, NWL)
	j := 0
	for i := range out {
		wl := WL0 + float64(i)
		for j < len(xs)-2 && wl > xs[j+1] {
			j++
		}
		t := (wl - xs[j]) / (xs[j+1] - xs[j])
		out[i] = ys[j] + t*(ys[j+1]-ys[j])
	}
	return out
}
