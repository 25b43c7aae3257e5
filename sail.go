// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.18
//

// Top level SAILh entry point: soil boundary condition, canopy solver and
// reflectance factor selection.

package gosail

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Reflectance factor keys accepted by SelectFactor and RunSail
const (
	SDR    = "SDR"    // Bidirectional reflectance factor
	BHR    = "BHR"    // Bihemispherical reflectance factor
	DHR    = "DHR"    // Directional-hemispherical reflectance factor
	HDR    = "HDR"    // Hemispherical-directional reflectance factor
	ALL    = "ALL"    // The four factors above
	ALLALL = "ALLALL" // Every term calculated by the solver
)

var factors = []string{SDR, BHR, DHR, HDR, ALL, ALLALL}

// SailOpt contains the optional parameters of a SAILh run
type SailOpt struct {
	TypeLidf int      // Leaf angle distribution type: 1(Verhoef), 2(Campbell)
	LidfB    float64  // b parameter of the Verhoef distribution. Ignored if TypeLidf is 2
	Factor   string   // Reflectance factor to return, see SelectFactor
	Soil     *SoilOpt // Soil boundary condition parameters
}

// NewSailOpt creates a new SailOpt with default values
func NewSailOpt() *SailOpt {
	return &SailOpt{
		TypeLidf: 2,            // Campbell ellipsoidal distribution
		LidfB:    0,            // Unused with TypeLidf 2
		Factor:   SDR,          // Bidirectional reflectance
		Soil:     NewSoilOpt(), // Soil parameters must still be filled in
	}
}

// SelectFactor extracts the requested reflectance factor from the solver
// output. The factor key is matched case-insensitively. Each returned row is
// a spectrum of NWL samples; the scalar geometric terms of the ALLALL tuple
// are broadcast to constant spectra so rows stay uniform.
//
//	SDR    -> [rsot]
//	BHR    -> [rddt]
//	DHR    -> [rsdt]
//	HDR    -> [rdot]
//	ALL    -> [rsot, rddt, rsdt, rdot]
//	ALLALL -> [tss, too, tsstoo, rdd, tdd, rsd, tsd, rdo, tdo, rso, rsos,
//	           rsod, rddt, rsdt, rdot, rsodt, rsost, rsot, gammasdf,
//	           gammasdb, gammaso]
func SelectFactor(c *ScatterCoef, factor string) ([][]float64, error) {
	switch strings.ToUpper(factor) {
	case SDR:
		return [][]float64{c.Rsot}, nil
	case BHR:
		return [][]float64{c.Rddt}, nil
	case DHR:
		return [][]float64{c.Rsdt}, nil
	case HDR:
		return [][]float64{c.Rdot}, nil
	case ALL:
		return [][]float64{c.Rsot, c.Rddt, c.Rsdt, c.Rdot}, nil
	case ALLALL:
		return [][]float64{
			constSpec(c.Tss), constSpec(c.Too), constSpec(c.Tsstoo),
			c.Rdd, c.Tdd, c.Rsd, c.Tsd, c.Rdo, c.Tdo,
			c.Rso, c.Rsos, c.Rsod,
			c.Rddt, c.Rsdt, c.Rdot, c.Rsodt, c.Rsost, c.Rsot,
			c.GammaSdf, c.GammaSdb, c.GammaSo,
		}, nil
	default:
		return nil, fmt.Errorf("%w: factor must be one of SDR, BHR, DHR, HDR, ALL or ALLALL", ErrInvalidInput)
	}
}

// validFactor reports whether the key names a known reflectance factor
func validFactor(factor string) bool {
	return slices.Contains(factors, strings.ToUpper(factor))
}

// RunSail runs the SAILh radiative transfer model
//
// Parameters:
//   - refl, trans: leaf reflectance and transmittance spectra (NWL samples)
//   - lai: leaf area index
//   - lidfa: leaf angle distribution parameter. With the default TypeLidf of
//     2 it is the average leaf inclination angle [deg]
//   - hspot: hotspot size parameter
//   - tts, tto, psi: sun zenith, view zenith and relative azimuth angles [deg]
//   - opt: optional parameters. If nil, defaults are used, but the soil
//     parameters are then missing and Resolve fails
//
// Returns the spectra selected by opt.Factor, see SelectFactor.
func RunSail(refl, trans []float64, lai, lidfa, hspot, tts, tto, psi float64,
	opt *SailOpt) ([][]float64, error) {

	if opt == nil {
		opt = NewSailOpt()
	}
	if !validFactor(opt.Factor) {
		return nil, fmt.Errorf("%w: factor must be one of SDR, BHR, DHR, HDR, ALL or ALLALL", ErrInvalidInput)
	}

	rsoil0, err := opt.Soil.Resolve()
	if err != nil {
		return nil, fmt.Errorf("soil Resolve() failed, err=%w", err)
	}

	c, err := FourSail(refl, trans, lidfa, opt.LidfB, opt.TypeLidf,
		lai, hspot, tts, tto, psi, rsoil0)
	if err != nil {
		return nil, fmt.Errorf("FourSail() failed, err=%w", err)
	}

	return SelectFactor(c, opt.Factor)
}
