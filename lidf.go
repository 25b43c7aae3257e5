// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.14
//

// Leaf inclination distribution functions (LIDF) and their angular averaging.
// The canopy is discretized into 18 leaf inclination classes of 5 deg; the
// distributions below assign a frequency to each class and the weighted sum
// turns the per-class scattering factors into canopy-level coefficients.

package gosail

import (
	"math"
)

// Number of leaf inclination classes
const nLidfClasses = 18

// LidfVerhoef calculates the leaf inclination distribution based on Verhoef's
// bimodal distribution
//   - a controls the average leaf slope
//   - b controls the distribution bimodality
//
// The distribution requires |a|+|b| < 1 to be physical; no check is performed
func LidfVerhoef(a, b float64) []float64 {
	step := 90.0 / float64(nLidfClasses)
	lidf := make([]float64, nLidfClasses)
	freq := 1.0
	for i := nLidfClasses - 1; i >= 0; i-- {
		angle := float64(i) * step
		tl1 := ToRad(angle)
		var f float64
		if a > 1.0 {
			f = 1.0 - math.Cos(tl1)
		} else {
			// Fixed point iteration for the cumulative distribution
			const eps = 1e-8
			x := 2.0 * tl1
			p := x
			delx := 1.0
			y := 0.0
			for delx >= eps {
				y = a*math.Sin(x) + 0.5*b*math.Sin(2.0*x)
				dx := 0.5 * (y - x + p)
				x += dx
				delx = math.Abs(dx)
			}
			f = (2.0*y + p) / PI
		}
		lidf[i] = freq - f
		freq = f
	}
	return lidf
}

// LidfCampbell calculates the leaf inclination distribution for an ellipsoidal
// distribution with the given mean leaf inclination angle alpha [deg]
func LidfCampbell(alpha float64) []float64 {
	excent := math.Exp(-1.6184e-5*alpha*alpha*alpha + 2.1145e-3*alpha*alpha - 1.2390e-1*alpha + 3.2491)
	step := 90.0 / float64(nLidfClasses)
	freq := make([]float64, nLidfClasses)
	for i := 0; i < nLidfClasses; i++ {
		tl1 := ToRad(float64(i) * step)
		tl2 := ToRad(float64(i+1) * step)
		x1 := excent / math.Sqrt(1.0+SQ(excent)*SQ(math.Tan(tl1)))
		x2 := excent / math.Sqrt(1.0+SQ(excent)*SQ(math.Tan(tl2)))
		if excent == 1.0 {
			freq[i] = math.Abs(math.Cos(tl1) - math.Cos(tl2))
			continue
		}
		alph := excent / math.Sqrt(math.Abs(1.0-SQ(excent)))
		alph2 := SQ(alph)
		x12 := SQ(x1)
		x22 := SQ(x2)
		if excent > 1.0 {
			alpx1 := math.Sqrt(alph2 + x12)
			alpx2 := math.Sqrt(alph2 + x22)
			dum := x1*alpx1 + alph2*math.Log(x1+alpx1)
			freq[i] = math.Abs(dum - (x2*alpx2 + alph2*math.Log(x2+alpx2)))
		} else {
			almx1 := math.Sqrt(alph2 - x12)
			almx2 := math.Sqrt(alph2 - x22)
			dum := x1*almx1 + alph2*math.Asin(x1/alph)
			freq[i] = math.Abs(dum - (x2*almx2 + alph2*math.Asin(x2/alph)))
		}
	}
	sum := 0.0
	for _, f := range freq {
		sum += f
	}
	for i := range freq {
		freq[i] /= sum
	}
	return freq
}

// volScatt computes the SAIL volume scattering functions for a single leaf
// inclination angle ttl [deg]: the interception factors chiS/chiO for the sun
// and view directions and the area scattering fractions fRho/fTau to be
// multiplied by leaf reflectance and transmittance
func volScatt(tts, tto, psi, ttl float64) (chiS, chiO, fRho, fTau float64) {
	cts := math.Cos(ToRad(tts))
	cto := math.Cos(ToRad(tto))
	sts := math.Sin(ToRad(tts))
	sto := math.Sin(ToRad(tto))
	cospsi := math.Cos(ToRad(psi))
	psir := ToRad(psi)
	cttl := math.Cos(ToRad(ttl))
	sttl := math.Sin(ToRad(ttl))
	cs := cttl * cts
	co := cttl * cto
	ss := sttl * sts
	so := sttl * sto

	// Transition angles between the lit and shaded leaf faces
	cosbts := 5.0
	if math.Abs(ss) > 1e-6 {
		cosbts = -cs / ss
	}
	cosbto := 5.0
	if math.Abs(so) > 1e-6 {
		cosbto = -co / so
	}

	var bts, ds float64
	if math.Abs(cosbts) < 1.0 {
		bts = math.Acos(cosbts)
		ds = ss
	} else {
		bts = PI
		ds = cs
	}
	chiS = 2.0 / PI * ((bts-PI*0.5)*cs + math.Sin(bts)*ss)

	var bto, do_ float64
	if math.Abs(cosbto) < 1.0 {
		bto = math.Acos(cosbto)
		do_ = so
	} else if tto < 90.0 {
		bto = PI
		do_ = co
	} else {
		bto = 0.0
		do_ = -co
	}
	chiO = 2.0 / PI * ((bto-PI*0.5)*co + math.Sin(bto)*so)

	// Sort the three azimuthal transition angles
	btran1 := math.Abs(bts - bto)
	btran2 := PI - math.Abs(bts+bto-PI)
	var bt1, bt2, bt3 float64
	if psir <= btran1 {
		bt1 = psir
		bt2 = btran1
		bt3 = btran2
	} else {
		bt1 = btran1
		if psir <= btran2 {
			bt2 = psir
			bt3 = btran2
		} else {
			bt2 = btran2
			bt3 = psir
		}
	}

	t1 := 2.0*cs*co + ss*so*cospsi
	t2 := 0.0
	if bt2 > 0.0 {
		t2 = math.Sin(bt2) * (2.0*ds*do_ + ss*so*math.Cos(bt1)*math.Cos(bt3))
	}
	denom := 2.0 * SQ(PI)
	fRho = ((PI-bt2)*t1 + t2) / denom
	fTau = (-bt2*t1 + t2) / denom
	if fRho < 0.0 {
		fRho = 0.0
	}
	if fTau < 0.0 {
		fTau = 0.0
	}
	return chiS, chiO, fRho, fTau
}

// weightedSumOverLidf averages the per-inclination scattering factors over the
// leaf inclination distribution, yielding the canopy extinction coefficients
// ks/ko, the upward/downward asymmetry factor bf and the bidirectional
// scattering fractions sob/sof
func weightedSumOverLidf(lidf []float64, tts, tto, psi float64) (ks, ko, bf, sob, sof float64) {
	cts := math.Cos(ToRad(tts))
	cto := math.Cos(ToRad(tto))
	ctscto := cts * cto
	step := 90.0 / float64(len(lidf))
	for i, w := range lidf {
		ttl := (float64(i) + 0.5) * step
		cttl := math.Cos(ToRad(ttl))
		chiS, chiO, fRho, fTau := volScatt(tts, tto, psi, ttl)
		ks += w * chiS / cts
		ko += w * chiO / cto
		bf += w * SQ(cttl)
		sob += w * fRho * PI / ctscto
		sof += w * fTau * PI / ctscto
	}
	return ks, ko, bf, sob, sof
}
