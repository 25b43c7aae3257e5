// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.20
//

package gosail

import (
	"errors"
	"testing"
)

func testSailOpt(factor string) *SailOpt {
	opt := NewSailOpt()
	opt.Factor = factor
	opt.Soil.Rsoil0 = constSpec(0.2)
	return opt
}

func TestWavelengthsGrid(t *testing.T) {
	wl := Wavelengths()
	if len(wl) != NWL {
		t.Fatalf("grid length %d, want %d", len(wl), NWL)
	}
	if wl[0] != WL0 || wl[NWL-1] != WL1 {
		t.Fatalf("grid endpoints %g..%g, want %g..%g", wl[0], wl[NWL-1], WL0, WL1)
	}
}

func TestRunSailFactorConsistency(t *testing.T) {
	refl := constSpec(0.3)
	trans := constSpec(0.25)

	all21, err := RunSail(refl, trans, 3, 45, 0.01, 30, 10, 0, testSailOpt(ALLALL))
	if err != nil {
		t.Fatalf("ALLALL: %v", err)
	}
	if len(all21) != 21 {
		t.Fatalf("ALLALL must return 21 rows, got %d", len(all21))
	}
	for r, row := range all21 {
		if len(row) != NWL {
			t.Fatalf("ALLALL row %d has %d samples", r, len(row))
		}
	}

	sdr, err := RunSail(refl, trans, 3, 45, 0.01, 30, 10, 0, testSailOpt(SDR))
	if err != nil {
		t.Fatalf("SDR: %v", err)
	}
	if len(sdr) != 1 {
		t.Fatalf("SDR must return 1 row, got %d", len(sdr))
	}
	// rsot is row 17 of the 21-tuple
	for i := range sdr[0] {
		if sdr[0][i] != all21[17][i] {
			t.Fatalf("SDR differs from ALLALL rsot at %d: %g vs %g", i, sdr[0][i], all21[17][i])
		}
	}

	all4, err := RunSail(refl, trans, 3, 45, 0.01, 30, 10, 0, testSailOpt(ALL))
	if err != nil {
		t.Fatalf("ALL: %v", err)
	}
	// ALL is [rsot, rddt, rsdt, rdot], rows 17, 12, 13, 14 of the 21-tuple
	want := []int{17, 12, 13, 14}
	if len(all4) != 4 {
		t.Fatalf("ALL must return 4 rows, got %d", len(all4))
	}
	for r, w := range want {
		for i := range all4[r] {
			if all4[r][i] != all21[w][i] {
				t.Fatalf("ALL row %d differs from ALLALL row %d at %d", r, w, i)
			}
		}
	}
}

func TestRunSailFactorCaseInsensitive(t *testing.T) {
	refl := constSpec(0.3)
	trans := constSpec(0.25)
	lower, err := RunSail(refl, trans, 3, 45, 0.01, 30, 10, 0, testSailOpt("sdr"))
	if err != nil {
		t.Fatalf("lowercase factor: %v", err)
	}
	upper, err := RunSail(refl, trans, 3, 45, 0.01, 30, 10, 0, testSailOpt(SDR))
	if err != nil {
		t.Fatalf("uppercase factor: %v", err)
	}
	for i := range lower[0] {
		if lower[0][i] != upper[0][i] {
			t.Fatalf("factor case changed the result at %d", i)
		}
	}
}

func TestRunSailUnknownFactor(t *testing.T) {
	_, err := RunSail(constSpec(0.3), constSpec(0.25), 3, 45, 0.01, 30, 10, 0, testSailOpt("XYZ"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput for factor XYZ, got %v", err)
	}
}

func TestRunSailMissingSoil(t *testing.T) {
	opt := NewSailOpt() // no soil parameters at all
	_, err := RunSail(constSpec(0.3), constSpec(0.25), 3, 45, 0.01, 30, 10, 0, opt)
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("want ErrMissingParameter without soil parameters, got %v", err)
	}
}

func TestSelectFactorScalarBroadcast(t *testing.T) {
	c, err := FourSail(constSpec(0.3), constSpec(0.25), 45, 0, 2,
		3, 0.01, 30, 10, 0, constSpec(0.2))
	if err != nil {
		t.Fatalf("FourSail: %v", err)
	}
	rows, err := SelectFactor(c, ALLALL)
	if err != nil {
		t.Fatalf("SelectFactor: %v", err)
	}
	// Rows 0..2 are the scalar geometric terms broadcast over the grid
	for i := 0; i < NWL; i += 419 {
		if rows[0][i] != c.Tss || rows[1][i] != c.Too || rows[2][i] != c.Tsstoo {
			t.Fatalf("scalar broadcast wrong at %d", i)
		}
	}
}
