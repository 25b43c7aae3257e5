// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.20
//

// Thermal emission companion of the SAILh model. The canopy structural
// coefficients are computed with emissivity-derived reflectance and an opaque
// leaf (zero transmittance), then Planck emission is partitioned between
// sunlit/shaded leaves, sunlit/shaded soil and the sky.

package gosail

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ThermalOpt contains the optional parameters of a thermal SAILh run.
// For each of the leaf (Refl/Emv) and soil (Rsoil/Ems) pairs at least one
// member must be set; the other is derived as e = 1 - r.
type ThermalOpt struct {
	Rsoil    []float64 // Soil reflectance spectrum (optional if Ems is set)
	Refl     []float64 // Leaf reflectance spectrum (optional if Emv is set)
	Emv      []float64 // Leaf emissivity spectrum (optional if Refl is set)
	Ems      []float64 // Soil emissivity spectrum (optional if Rsoil is set)
	TypeLidf int       // Leaf angle distribution type: 1(Verhoef), 2(Campbell)
	LidfB    float64   // b parameter of the Verhoef distribution
}

// NewThermalOpt creates a new ThermalOpt with default values
func NewThermalOpt() *ThermalOpt {
	return &ThermalOpt{
		TypeLidf: 2, // Campbell ellipsoidal distribution
		LidfB:    0, // Unused with TypeLidf 2
	}
}

// RunThermalSail partitions thermal emission through the canopy and returns
// the scene-leaving radiance, the brightness temperature and the directional
// emissivity
//
// Parameters:
//   - lam: wavelength of the thermal band [um]
//   - tveg, tsoil: kinetic temperatures of shaded vegetation and soil [K]
//   - tvegSunlit, tsoilSunlit: kinetic temperatures of the sunlit fractions [K]
//   - tAtm: downwelling sky brightness temperature [K]
//   - lai, lidfa, hspot, tts, tto, psi: canopy structure and geometry as in
//     RunSail
//   - opt: emissivity/reflectance spectra and distribution options
//
// Returns spectra of NWL samples (the thermal band is spectrally flat in the
// inputs only when the supplied emissivities are; the per-wavelength
// bookkeeping is kept so spectral emissivities pass through unchanged).
func RunThermalSail(lam, tveg, tsoil, tvegSunlit, tsoilSunlit, tAtm,
	lai, lidfa, hspot, tts, tto, psi float64,
	opt *ThermalOpt) (lw, tbright, dirEm []float64, err error) {

	if opt == nil {
		opt = NewThermalOpt()
	}

	// Thermal emission of each component from Planck's law
	top := 1.0e-6 * C1 * math.Pow(lam*1e-6, -5.0)
	hc := top / (math.Exp(C2/(lam*tveg)) - 1.0)         // Shaded leaves
	hh := top / (math.Exp(C2/(lam*tvegSunlit)) - 1.0)   // Sunlit leaves
	hd := top / (math.Exp(C2/(lam*tsoil)) - 1.0)        // Shaded soil
	hs := top / (math.Exp(C2/(lam*tsoilSunlit)) - 1.0)  // Sunlit soil
	hsky := top / (math.Exp(C2/(lam*tAtm)) - 1.0)       // Sky emission
	PrintD(2, "thermal: hc=%e hh=%e hd=%e hs=%e hsky=%e\n", hc, hh, hd, hs, hsky)

	refl, emv, err := reconcile("leaf", opt.Refl, opt.Emv)
	if err != nil {
		return nil, nil, nil, err
	}
	rsoil, ems, err := reconcile("soil", opt.Rsoil, opt.Ems)
	if err != nil {
		return nil, nil, nil, err
	}

	// Opaque leaf approximation for the thermal band
	c, err := FourSail(refl, constSpec(0), lidfa, opt.LidfB, opt.TypeLidf,
		lai, hspot, tts, tto, psi, rsoil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("FourSail() failed, err=%w", err)
	}

	lw = make([]float64, NWL)
	tbright = make([]float64, NWL)
	dirEm = make([]float64, NWL)
	for i := 0; i < NWL; i++ {
		gammad := 1.0 - c.Rdd[i] - c.Tdd[i]
		gammao := 1.0 - c.Rdo[i] - c.Tdo[i] - c.Too

		// Canopy-over-soil composition specialized to the opaque leaf case
		dn := 1.0 - rsoil[i]*c.Rdd[i]
		tso := c.Tsstoo + c.Tss*(c.Tdo[i]+rsoil[i]*c.Rdd[i]*c.Too)/dn
		ttot := (c.Too + c.Tdo[i]) / dn
		gammaot := gammao + ttot*rsoil[i]*gammad
		gammasot := c.GammaSo[i] + ttot*rsoil[i]*c.GammaSdf[i]

		// Effective emissivities of the vegetation and soil layers
		aeev := gammaot
		aees := ttot * ems[i]

		// The double division by pi is unit bookkeeping between the
		// hemispheric fluxes and the directional radiance, keep it as is
		lw[i] = ((c.Rdot[i]*hsky)/PI +
			(aeev*hc +
				gammasot*emv[i]*(hh-hc) +
				aees*hd +
				tso*ems[i]*(hs-hd))) / PI

		// Brightness temperature from the inverse Planck function
		tbright[i] = C2 / (lam * math.Log(top/(lw[i]*PI)+1.0))
		dirEm[i] = 1.0 - c.Rdot[i]
	}
	return lw, tbright, dirEm, nil
}

// reconcile resolves a reflectance/emissivity pair. Whichever member is
// present defines the other through e = 1 - r; if both are absent the pair
// is unresolvable and the call fails with ErrMissingParameter
func reconcile(name string, refl, em []float64) ([]float64, []float64, error) {
	if refl == nil && em == nil {
		return nil, nil, fmt.Errorf("%w: either the %s reflectance or the %s emissivity must be given", ErrMissingParameter, name, name)
	}
	if refl != nil {
		if err := checkSpec(name+" reflectance", refl); err != nil {
			return nil, nil, err
		}
	}
	if em != nil {
		if err := checkSpec(name+" emissivity", em); err != nil {
			return nil, nil, err
		}
	}
	if em == nil {
		em = oneMinus(refl)
	}
	if refl == nil {
		refl = oneMinus(em)
	}
	return refl, em, nil
}

// oneMinus returns the spectrum 1 - s
func oneMinus(s []float64) []float64 {
	out := constSpec(1)
	floats.Sub(out, s)
	return out
}
