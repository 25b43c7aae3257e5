// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.18
//

// Implements the SAILh (4SAIL) canopy bidirectional reflectance model.
// The canopy is treated as a homogeneous turbid medium of optical depth lai;
// the two-stream diffuse equations are solved in closed form per wavelength
// and combined with the direct beam, the hotspot correction and the soil
// boundary condition.

package gosail

import (
	"math"
)

// ScatterCoef holds the full set of scattering and transmission coefficients
// computed by FourSail. Tss/Too/Tsstoo are purely geometric and therefore
// scalar; all other fields are spectra of NWL samples.
//
// Naming follows the SAIL convention: first letter r/t for reflectance or
// transmittance, then source and destination fluxes (s: solar beam, d:
// diffuse, o: flux in the observer direction). The trailing t marks the total
// canopy-plus-soil quantity.
type ScatterCoef struct {
	Tss    float64 // Direct transmittance in the sun direction
	Too    float64 // Direct transmittance in the view direction
	Tsstoo float64 // Bidirectional gap fraction (hotspot corrected)

	Rdd []float64 // Bihemispherical reflectance of the canopy layer
	Tdd []float64 // Bihemispherical transmittance of the canopy layer
	Rsd []float64 // Directional-hemispherical reflectance (solar in)
	Tsd []float64 // Directional-hemispherical transmittance (solar in)
	Rdo []float64 // Hemispherical-directional reflectance (view out)
	Tdo []float64 // Hemispherical-directional transmittance (view out)

	Rso  []float64 // Bidirectional reflectance of the canopy layer
	Rsos []float64 // Single scattering contribution to Rso
	Rsod []float64 // Multiple scattering contribution to Rso

	Rddt  []float64 // Bihemispherical reflectance, canopy plus soil
	Rsdt  []float64 // Directional-hemispherical reflectance, canopy plus soil
	Rdot  []float64 // Hemispherical-directional reflectance, canopy plus soil
	Rsodt []float64 // Diffuse part of the total bidirectional reflectance
	Rsost []float64 // Direct part of the total bidirectional reflectance
	Rsot  []float64 // Bidirectional reflectance, canopy plus soil

	GammaSdf []float64 // Scattering phase coefficient, solar to forward diffuse
	GammaSdb []float64 // Scattering phase coefficient, solar to backward diffuse
	GammaSo  []float64 // Scattering phase coefficient, solar to observer
}

// FourSail runs the SAILh canopy radiative transfer calculation
//
// Parameters:
//   - refl, trans: leaf reflectance and transmittance spectra (NWL samples)
//   - lidfa, lidfb: leaf angle distribution parameters. If typeLidf is 2,
//     lidfa is the average leaf inclination angle [deg] and lidfb is ignored
//   - typeLidf: 1 (Verhoef bimodal) or 2 (Campbell ellipsoidal)
//   - lai: leaf area index
//   - hspot: hotspot size parameter (leaf width over canopy height)
//   - tts, tto, psi: sun zenith, view zenith and relative azimuth angles [deg]
//   - rsoil0: soil reflectance spectrum (NWL samples)
//
// Scalar parameters are not range checked; out-of-range values give silently
// wrong results. Spectra of the wrong length fail with ErrInvalidInput.
func FourSail(refl, trans []float64, lidfa, lidfb float64, typeLidf int,
	lai, hspot, tts, tto, psi float64, rsoil0 []float64) (*ScatterCoef, error) {

	if err := checkSpec("refl", refl); err != nil {
		return nil, err
	}
	if err := checkSpec("trans", trans); err != nil {
		return nil, err
	}
	if err := checkSpec("rsoil0", rsoil0); err != nil {
		return nil, err
	}

	// Sun-view geometry: horizontal distance between the sun and view
	// directions at unit height, drives the hotspot width
	tants := math.Tan(ToRad(tts))
	tanto := math.Tan(ToRad(tto))
	cospsi := math.Cos(ToRad(psi))
	dso := math.Sqrt(SQ(tants) + SQ(tanto) - 2.0*tants*tanto*cospsi)

	// Leaf angle distribution
	var lidf []float64
	if typeLidf == 1 {
		lidf = LidfVerhoef(lidfa, lidfb)
	} else {
		lidf = LidfCampbell(lidfa)
	}

	// Angular averages over the distribution
	ks, ko, bf, sob, sof := weightedSumOverLidf(lidf, tts, tto, psi)
	PrintD(2, "foursail: ks=%f ko=%f bf=%f sob=%f sof=%f dso=%f\n", ks, ko, bf, sob, sof, dso)

	// Geometric factors to be applied to leaf rho and tau
	sdb := 0.5 * (ks + bf)
	sdf := 0.5 * (ks - bf)
	dob := 0.5 * (ko + bf)
	dof := 0.5 * (ko - bf)
	ddb := 0.5 * (1.0 + bf)
	ddf := 0.5 * (1.0 - bf)

	c := newScatterCoef()

	if lai <= 0.0 {
		// No canopy: the layer is fully transparent and the totals collapse
		// to the soil spectrum
		c.Tss = 1.0
		c.Too = 1.0
		c.Tsstoo = 1.0
		for i := 0; i < NWL; i++ {
			c.Tdd[i] = 1.0
			c.Rddt[i] = rsoil0[i]
			c.Rsdt[i] = rsoil0[i]
			c.Rdot[i] = rsoil0[i]
			c.Rsost[i] = rsoil0[i]
			c.Rsot[i] = rsoil0[i]
		}
		return c, nil
	}

	tss := math.Exp(-ks * lai)
	too := math.Exp(-ko * lai)
	z := jfunc2(ks, ko, lai)

	// Hotspot integral: bidirectional gap fraction and the weight of the
	// single scattering contribution
	tsstoo, sumint := hotspot(lai, hspot, ks, ko, dso, tss)

	c.Tss = tss
	c.Too = too
	c.Tsstoo = tsstoo

	for i := 0; i < NWL; i++ {
		rho := refl[i]
		tau := trans[i]

		sigb := ddb*rho + ddf*tau
		sigf := ddf*rho + ddb*tau
		if sigb == 0.0 {
			sigb = 1e-36
		}
		if sigf == 0.0 {
			sigf = 1e-36
		}
		att := 1.0 - sigf
		m := math.Sqrt(SQ(att) - SQ(sigb))
		sb := sdb*rho + sdf*tau
		sf := sdf*rho + sdb*tau
		vb := dob*rho + dof*tau
		vf := dof*rho + dob*tau
		w := sob*rho + sof*tau

		e1 := math.Exp(-m * lai)
		e2 := SQ(e1)
		rinf := (att - m) / sigb
		rinf2 := SQ(rinf)
		re := rinf * e1
		denom := 1.0 - rinf2*e2

		j1ks := jfunc1(ks, m, lai)
		j2ks := jfunc2(ks, m, lai)
		j1ko := jfunc1(ko, m, lai)
		j2ko := jfunc2(ko, m, lai)

		pss := (sf + sb*rinf) * j1ks
		qss := (sf*rinf + sb) * j2ks
		pv := (vf + vb*rinf) * j1ko
		qv := (vf*rinf + vb) * j2ko

		tdd := (1.0 - rinf2) * e1 / denom
		rdd := rinf * (1.0 - e2) / denom
		tsd := (pss - re*qss) / denom
		rsd := (qss - re*pss) / denom
		tdo := (pv - re*qv) / denom
		rdo := (qv - re*pv) / denom

		gammasdf := (1.0 + rinf) * (j1ks - re*j2ks) / denom
		gammasdb := (1.0 + rinf) * (-re*j1ks + j2ks) / denom

		g1 := (z - j1ks*too) / (ko + m)
		g2 := (z - j1ko*tss) / (ks + m)

		tv1 := (vf*rinf + vb) * g1
		tv2 := (vf + vb*rinf) * g2
		t1 := tv1 * (sf + sb*rinf)
		t2 := tv2 * (sf*rinf + sb)
		t3 := (rdo*qss + tdo*pss) * rinf

		// Multiple scattering contribution to the bidirectional reflectance
		rsod := (t1 + t2 - t3) / (1.0 - rinf2)

		t4 := tv1 * (1.0 + rinf)
		t5 := tv2 * (1.0 + rinf)
		t6 := (rdo*j2ks + tdo*j1ks) * (1.0 + rinf) * rinf
		gammasod := (t4 + t5 - t6) / (1.0 - rinf2)

		// Single scattering contribution
		rsos := w * lai * sumint
		gammasos := ko * lai * sumint

		rso := rsos + rsod
		gammaso := gammasos + gammasod

		// Interaction with the soil
		dn := 1.0 - rsoil0[i]*rdd
		if dn < 1e-36 {
			dn = 1e-36
		}
		rddt := rdd + tdd*rsoil0[i]*tdd/dn
		rsdt := rsd + (tsd+tss)*rsoil0[i]*tdd/dn
		rdot := rdo + tdd*rsoil0[i]*(tdo+too)/dn
		rsodt := ((tss+tsd)*tdo + (tsd+tss*rsoil0[i]*rdd)*too) * rsoil0[i] / dn
		rsost := rso + tsstoo*rsoil0[i]
		rsot := rsost + rsodt

		c.Rdd[i] = rdd
		c.Tdd[i] = tdd
		c.Rsd[i] = rsd
		c.Tsd[i] = tsd
		c.Rdo[i] = rdo
		c.Tdo[i] = tdo
		c.Rso[i] = rso
		c.Rsos[i] = rsos
		c.Rsod[i] = rsod
		c.Rddt[i] = rddt
		c.Rsdt[i] = rsdt
		c.Rdot[i] = rdot
		c.Rsodt[i] = rsodt
		c.Rsost[i] = rsost
		c.Rsot[i] = rsot
		c.GammaSdf[i] = gammasdf
		c.GammaSdb[i] = gammasdb
		c.GammaSo[i] = gammaso
	}

	return c, nil
}

func newScatterCoef() *ScatterCoef {
	return &ScatterCoef{
		Rdd:      make([]float64, NWL),
		Tdd:      make([]float64, NWL),
		Rsd:      make([]float64, NWL),
		Tsd:      make([]float64, NWL),
		Rdo:      make([]float64, NWL),
		Tdo:      make([]float64, NWL),
		Rso:      make([]float64, NWL),
		Rsos:     make([]float64, NWL),
		Rsod:     make([]float64, NWL),
		Rddt:     make([]float64, NWL),
		Rsdt:     make([]float64, NWL),
		Rdot:     make([]float64, NWL),
		Rsodt:    make([]float64, NWL),
		Rsost:    make([]float64, NWL),
		Rsot:     make([]float64, NWL),
		GammaSdf: make([]float64, NWL),
		GammaSdb: make([]float64, NWL),
		GammaSo:  make([]float64, NWL),
	}
}

// hotspot evaluates the bidirectional gap fraction tsstoo and the weight
// sumint of the single scattering term. Outside the exact hotspot the joint
// gap probability is integrated with a 20 step exponential midpoint scheme;
// in the exact retro-illumination direction (alf == 0) the analytic limit is
// used instead of the near 0/0 quadrature
func hotspot(lai, hspot, ks, ko, dso, tss float64) (tsstoo, sumint float64) {
	alf := 1e36
	if hspot > 0.0 {
		alf = (dso / hspot) * 2.0 / (ks + ko)
	}
	if alf == 0.0 {
		// The pure hotspot
		return tss, (1.0 - tss) / (ks * lai)
	}
	fhot := lai * math.Sqrt(ko*ks)
	x1 := 0.0
	y1 := 0.0
	f1 := 1.0
	fint := (1.0 - math.Exp(-alf)) * 0.05
	sumint = 0.0
	for istep := 1; istep <= 20; istep++ {
		var x2 float64
		if istep < 20 {
			x2 = -math.Log(1.0-float64(istep)*fint) / alf
		} else {
			x2 = 1.0
		}
		y2 := -(ko+ks)*lai*x2 + fhot*(1.0-math.Exp(-alf*x2))/alf
		f2 := math.Exp(y2)
		sumint += (f2 - f1) * (x2 - x1) / (y2 - y1)
		x1 = x2
		y1 = y2
		f1 = f2
	}
	tsstoo = f1
	if math.IsInf(sumint, 0) {
		sumint = 0.0
	}
	return tsstoo, sumint
}

// jfunc1 evaluates the J1 radiative transfer integral with a series fallback
// near the removable singularity at k == l
func jfunc1(k, l, t float64) float64 {
	del := (k - l) * t
	if math.Abs(del) > 1e-3 {
		return (math.Exp(-l*t) - math.Exp(-k*t)) / (k - l)
	}
	return 0.5 * t * (math.Exp(-k*t) + math.Exp(-l*t)) * (1.0 - SQ(del)/12.0)
}

// jfunc2 evaluates the J2 radiative transfer integral
func jfunc2(k, l, t float64) float64 {
	return (1.0 - math.Exp(-(k+l)*t)) / (k + l)
}
