// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.12
//

package gosail

const (
	PI  = 3.1415926535897932 // Pi
	NWL = 2101               // Number of spectral samples (400-2500 nm, 1 nm step)
	WL0 = 400.0              // First wavelength of the spectral grid [nm]
	WL1 = 2500.0             // Last wavelength of the spectral grid [nm]
	C1  = 3.741856e-16       // First radiation constant of Planck's law [W m^2]
	C2  = 14388.0            // Second radiation constant of Planck's law [um K]
)
