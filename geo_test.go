// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.20
//

package gosail

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestGeoConeFallbackContinuity(t *testing.T) {
	// The arccosine domain guard switches to beta=0 exactly at
	// tan(tts) = 1/(2 chw). The scene reflectance must be continuous there
	const chw = 1.0
	ttsStar := ToDeg(math.Atan(1.0 / (2.0 * chw)))
	rc := constSpec(0.25)
	tc := constSpec(0.15)
	rch := constSpec(0.3)
	rsoil0 := constSpec(0.2)

	// beta grows like sqrt(tts - tts*) just past the switch, so keep the
	// bracket tight and the tolerance looser than sqrt of the bracket width
	below, _ := GeoCone(chw, 0.5, ttsStar-1e-6, rc, tc, rch, rsoil0)
	above, _ := GeoCone(chw, 0.5, ttsStar+1e-6, rc, tc, rch, rsoil0)
	for i := 0; i < NWL; i += 300 {
		if !scalar.EqualWithinAbs(below[i], above[i], 1e-4) {
			t.Fatalf("rsc discontinuous at the beta switch, index %d: %g vs %g", i, below[i], above[i])
		}
	}
}

func TestGeoShapesAgreeAtZeroHeight(t *testing.T) {
	// As chw -> 0 neither shape casts a shadow and both corrections converge
	// to ccover*rc + (1-ccover)*rsoil0
	const chw = 1e-9
	const ccover = 0.4
	rc := constSpec(0.25)
	tc := constSpec(0.15)
	rch := constSpec(0.3)
	rsoil0 := constSpec(0.2)

	cone, _ := GeoCone(chw, ccover, 30, rc, tc, rch, rsoil0)
	cyli, _ := GeoCyli(chw, ccover, 30, rc, tc, rch, rsoil0)
	want := ccover*0.25 + (1.0-ccover)*0.2
	for i := 0; i < NWL; i += 300 {
		if !scalar.EqualWithinAbs(cone[i], want, 1e-6) {
			t.Fatalf("cone at %d: got %g want %g", i, cone[i], want)
		}
		if !scalar.EqualWithinAbs(cyli[i], want, 1e-6) {
			t.Fatalf("cylinder at %d: got %g want %g", i, cyli[i], want)
		}
		if !scalar.EqualWithinAbs(cone[i], cyli[i], 1e-6) {
			t.Fatalf("shapes disagree at %d: %g vs %g", i, cone[i], cyli[i])
		}
	}
}

func TestGeoGsfrStub(t *testing.T) {
	// The absorbed radiation fraction is not implemented and must be 0
	_, gsfr := GeoCone(1, 0.5, 30, constSpec(0.2), constSpec(0.1), constSpec(0.3), constSpec(0.2))
	if gsfr != 0 {
		t.Fatalf("cone gsfr stub must be 0, got %g", gsfr)
	}
	_, gsfr = GeoCyli(1, 0.5, 30, constSpec(0.2), constSpec(0.1), constSpec(0.3), constSpec(0.2))
	if gsfr != 0 {
		t.Fatalf("cylinder gsfr stub must be 0, got %g", gsfr)
	}
}

func TestRunGeoSail(t *testing.T) {
	refl := constSpec(0.3)
	trans := constSpec(0.25)
	opt := NewSailOpt()
	opt.Soil.Rsoil0 = constSpec(0.2)

	for _, shape := range []string{ShapeCone, ShapeCylinder, "Cone", "CYLINDER"} {
		rsc, gsfr, err := RunGeoSail(1.2, 0.6, shape, refl, trans, 3, 45, 0.01, 35, 0, 0, opt)
		if err != nil {
			t.Fatalf("shape %q: %v", shape, err)
		}
		if gsfr != 0 {
			t.Fatalf("shape %q: gsfr stub must be 0", shape)
		}
		for i := 0; i < NWL; i += 300 {
			if rsc[i] <= 0 || rsc[i] >= 1 || math.IsNaN(rsc[i]) {
				t.Fatalf("shape %q: rsc out of (0,1) at %d: %g", shape, i, rsc[i])
			}
		}
	}
}

func TestRunGeoSailBadShape(t *testing.T) {
	opt := NewSailOpt()
	opt.Soil.Rsoil0 = constSpec(0.2)
	_, _, err := RunGeoSail(1, 0.5, "sphere", constSpec(0.3), constSpec(0.25), 3, 45, 0.01, 30, 0, 0, opt)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for shape sphere, got %v", err)
	}
}
