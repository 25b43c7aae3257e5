// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.19
//

// Jasinski-style geometric clumping corrections (after Huemmrich). The
// scene reflectance is recomposed from the illuminated and shadowed portions
// of the crowns and of the background, using the turbid medium solver outputs
// as the crown optical properties.

package gosail

import (
	"fmt"
	"math"
	"strings"
)

// Crown shape selectors accepted by RunGeoSail
const (
	ShapeCone     = "cone"
	ShapeCylinder = "cylinder"
)

// GeoCone applies the crown clumping correction for cone shaped crowns
//
// Parameters:
//   - chw: crown height-to-width ratio
//   - ccover: fraction of crown cover
//   - tts: sun zenith angle [deg]
//   - rc: directional reflectance of the illuminated crown (solver rdo)
//   - tc: transmittance through the crown (solver tdo)
//   - rch: hemispherical reflectance of the crown (solver rdd, kept for
//     signature parity with GeoCyli, not used numerically)
//   - rsoil0: background reflectance spectrum
//
// Returns the scene reflectance spectrum and the fraction of radiation
// absorbed by the canopy. The absorbed fraction is not implemented yet and is
// always 0.
func GeoCone(chw, ccover, tts float64, rc, tc, rch, rsoil0 []float64) ([]float64, float64) {
	caspa := math.Atan(1.0 / (2.0 * chw))
	// The arccosine is only defined when the sun is high enough for the
	// crown apex angle; otherwise there is no crown self-shadow
	beta := 0.0
	if chw > 1.0/(2.0*math.Tan(ToRad(tts))) {
		beta = math.Acos(math.Tan(caspa) / math.Tan(ToRad(tts)))
	}
	eta := (math.Tan(beta) - beta) / PI
	fcsh := beta / PI
	sfrac := 1.0 - ccover - math.Pow(1.0-ccover, eta+1.0)
	ilsoil := 1.0 - ccover - sfrac
	PrintD(2, "geocone: beta=%f eta=%f fcsh=%f sfrac=%f ilsoil=%f\n", beta, eta, fcsh, sfrac, ilsoil)

	// Sum of the component reflectances weighted by their scene fractions:
	// illuminated crown, shadowed crown, shadowed background, illuminated
	// background
	rsc := make([]float64, len(rc))
	for i := range rsc {
		rcsh := tc[i] * rc[i]
		rssh := tc[i] * rsoil0[i]
		rsc[i] = ccover*(1.0-fcsh)*rc[i] + ccover*fcsh*rcsh + sfrac*rssh + ilsoil*rsoil0[i]
	}
	// TODO: implement the absorbed radiation fraction
	return rsc, 0
}

// GeoCyli applies the crown clumping correction for cylinder shaped crowns.
// The shadowed crown contribution is neglected, it is assumed to be
// quantitatively negligible with respect to the other components.
// Parameters and returns as in GeoCone.
func GeoCyli(chw, ccover, tts float64, rc, tc, rch, rsoil0 []float64) ([]float64, float64) {
	// Ratio of shadow area to crown area for an individual crown
	eta := chw * math.Tan(ToRad(tts))
	sfrac := 1.0 - ccover - math.Pow(1.0-ccover, eta+1.0)
	ilsoil := 1.0 - ccover - sfrac
	PrintD(2, "geocyli: eta=%f sfrac=%f ilsoil=%f\n", eta, sfrac, ilsoil)

	rsc := make([]float64, len(rc))
	for i := range rsc {
		rssh := tc[i] * rsoil0[i]
		rsc[i] = ccover*rc[i] + sfrac*rssh + ilsoil*rsoil0[i]
	}
	// TODO: implement the absorbed radiation fraction
	return rsc, 0
}

// RunGeoSail runs the SAILh model followed by the selected geometric crown
// correction. cshp selects the crown shape ("cone" or "cylinder",
// case-insensitive); other values fail with ErrInvalidInput. The remaining
// parameters are as in RunSail; opt.Factor is ignored since the correction
// consumes fixed solver outputs (rdo, tdo, rdd).
//
// Returns the scene reflectance spectrum and the absorbed radiation fraction
// stub (always 0 for now).
func RunGeoSail(chw, ccover float64, cshp string, refl, trans []float64,
	lai, lidfa, hspot, tts, tto, psi float64, opt *SailOpt) ([]float64, float64, error) {

	if opt == nil {
		opt = NewSailOpt()
	}
	shape := strings.ToLower(cshp)
	if shape != ShapeCone && shape != ShapeCylinder {
		return nil, 0, fmt.Errorf("%w: the shape of the crown can be either cylinder or cone", ErrInvalidInput)
	}

	rsoil0, err := opt.Soil.Resolve()
	if err != nil {
		return nil, 0, fmt.Errorf("soil Resolve() failed, err=%w", err)
	}

	c, err := FourSail(refl, trans, lidfa, opt.LidfB, opt.TypeLidf,
		lai, hspot, tts, tto, psi, rsoil0)
	if err != nil {
		return nil, 0, fmt.Errorf("FourSail() failed, err=%w", err)
	}

	var rsc []float64
	var gsfr float64
	switch shape {
	case ShapeCone:
		rsc, gsfr = GeoCone(chw, ccover, tts, c.Rdo, c.Tdo, c.Rdd, rsoil0)
	case ShapeCylinder:
		rsc, gsfr = GeoCyli(chw, ccover, tts, c.Rdo, c.Tdo, c.Rdd, rsoil0)
	}
	return rsc, gsfr, nil
}
