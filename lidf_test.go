// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.20
//

package gosail

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestLidfCampbellNormalized(t *testing.T) {
	for _, alpha := range []float64{5, 30, 45, 57, 75, 85} {
		lidf := LidfCampbell(alpha)
		if len(lidf) != nLidfClasses {
			t.Fatalf("alpha=%g: want %d classes, got %d", alpha, nLidfClasses, len(lidf))
		}
		for i, f := range lidf {
			if f < 0 || math.IsNaN(f) {
				t.Fatalf("alpha=%g: bad frequency %g in class %d", alpha, f, i)
			}
		}
		if sum := floats.Sum(lidf); !scalar.EqualWithinAbs(sum, 1.0, 1e-9) {
			t.Fatalf("alpha=%g: frequencies sum to %g, want 1", alpha, sum)
		}
	}
}

func TestLidfCampbellShape(t *testing.T) {
	// A small mean angle concentrates leaves in the low inclination classes,
	// a large mean angle in the high ones
	plano := LidfCampbell(10)
	erecto := LidfCampbell(80)
	if plano[0] <= plano[nLidfClasses-1] {
		t.Fatal("planophile distribution should favor low inclinations")
	}
	if erecto[nLidfClasses-1] <= erecto[0] {
		t.Fatal("erectophile distribution should favor high inclinations")
	}
}

func TestLidfVerhoefNormalized(t *testing.T) {
	cases := [][2]float64{
		{-0.35, -0.15}, // Spherical
		{1.0, 0.0},     // Planophile
		{-1.0, 0.0},    // Erectophile
		{0.0, -1.0},    // Plagiophile
	}
	for _, c := range cases {
		lidf := LidfVerhoef(c[0], c[1])
		sum := floats.Sum(lidf)
		if !scalar.EqualWithinAbs(sum, 1.0, 1e-6) {
			t.Fatalf("a=%g b=%g: frequencies sum to %g, want 1", c[0], c[1], sum)
		}
		for i, f := range lidf {
			if f < -1e-9 || math.IsNaN(f) {
				t.Fatalf("a=%g b=%g: bad frequency %g in class %d", c[0], c[1], f, i)
			}
		}
	}
}

func TestVolScattHorizontalLeaf(t *testing.T) {
	// For a horizontal leaf the interception factors reduce to the direction
	// cosines
	chiS, chiO, fRho, fTau := volScatt(30, 10, 0, 0)
	if !scalar.EqualWithinAbs(chiS, math.Cos(ToRad(30)), 1e-9) {
		t.Fatalf("chiS: got %g want cos(30deg)", chiS)
	}
	if !scalar.EqualWithinAbs(chiO, math.Cos(ToRad(10)), 1e-9) {
		t.Fatalf("chiO: got %g want cos(10deg)", chiO)
	}
	if fRho < 0 || fTau < 0 {
		t.Fatalf("phase fractions must be non-negative: frho=%g ftau=%g", fRho, fTau)
	}
}

func TestWeightedSumOverLidf(t *testing.T) {
	lidf := LidfCampbell(45)
	ks, ko, bf, sob, sof := weightedSumOverLidf(lidf, 30, 10, 0)
	for _, v := range []float64{ks, ko, sob, sof} {
		if v <= 0 || math.IsNaN(v) {
			t.Fatalf("non-positive canopy coefficient: ks=%g ko=%g sob=%g sof=%g", ks, ko, sob, sof)
		}
	}
	if bf <= 0 || bf >= 1 {
		t.Fatalf("bf must lie in (0,1): %g", bf)
	}
	// Identical sun and view geometry gives identical extinction
	ks2, ko2, _, _, _ := weightedSumOverLidf(lidf, 30, 30, 0)
	if !scalar.EqualWithinAbs(ks2, ko2, 1e-12) {
		t.Fatalf("ks and ko should match for identical directions: %g vs %g", ks2, ko2)
	}
}
