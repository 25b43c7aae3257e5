// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.8.21
//

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/mkhts/gosail"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Leaf optical properties
	wl, refl, trans, err := loadLeaf(args)
	if err != nil {
		return fmt.Errorf("failed to load leaf spectra: %w", err)
	}

	// Prepare output
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(out)

	switch args.mode {
	case "sail":
		return runSail(args, wl, refl, trans, out)
	case "geosail":
		return runGeoSail(args, wl, refl, trans, out)
	case "thermal":
		return runThermal(args, wl, out)
	default:
		return fmt.Errorf("unknown mode %q (want sail, geosail or thermal)", args.mode)
	}
}

// Run the plain SAILh model and print the selected factor spectra
func runSail(args cmdOpt, wl, refl, trans []float64, out io.Writer) error {
	opt := setSailOpt(&args)
	rows, err := m.RunSail(refl, trans, args.lai, args.lidfa, args.hspot,
		args.tts, args.tto, args.psi, opt)
	if err != nil {
		return fmt.Errorf("RunSail() failed, err=%w", err)
	}
	printHeader(out, args, len(rows))
	printRows(out, wl, rows)
	return nil
}

// Run the SAILh model with the geometric crown correction
func runGeoSail(args cmdOpt, wl, refl, trans []float64, out io.Writer) error {
	opt := setSailOpt(&args)
	rsc, _, err := m.RunGeoSail(args.chw, args.ccover, args.cshp, refl, trans,
		args.lai, args.lidfa, args.hspot, args.tts, args.tto, args.psi, opt)
	if err != nil {
		return fmt.Errorf("RunGeoSail() failed, err=%w", err)
	}
	printHeader(out, args, 1)
	printRows(out, wl, [][]float64{rsc})
	return nil
}

// Run the thermal emission model and print radiance, brightness temperature
// and directional emissivity
func runThermal(args cmdOpt, wl []float64, out io.Writer) error {
	opt := m.NewThermalOpt()
	opt.TypeLidf = args.typeLidf
	opt.LidfB = args.lidfb
	opt.Refl = m.FlatSpec(args.lrefl)
	opt.Rsoil = m.FlatSpec(args.rsoilRefl)
	lw, tb, de, err := m.RunThermalSail(args.lam, args.tveg, args.tsoil,
		args.tvegSun, args.tsoilSun, args.tatm,
		args.lai, args.lidfa, args.hspot, args.tts, args.tto, args.psi, opt)
	if err != nil {
		return fmt.Errorf("RunThermalSail() failed, err=%w", err)
	}
	printHeader(out, args, 3)
	printRows(out, wl, [][]float64{lw, tb, de})
	return nil
}

// Load the leaf reflectance/transmittance spectra, either from a CSV file
// (wavelength,refl,trans per row) or flat constants
func loadLeaf(args cmdOpt) (wl, refl, trans []float64, err error) {
	if len(args.leafFn) == 0 {
		wl, refl, trans, err = m.FlatLeaf(args.lrefl, args.ltrans)()
		return
	}
	f, err := os.Open(args.leafFn)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()
	return readLeafCSV(f)
}

// Read a leaf spectra CSV (wavelength,refl,trans). Lines starting with '#'
// are skipped
func readLeafCSV(r io.Reader) (wl, refl, trans []float64, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, nil, nil, fmt.Errorf("want 3 comma separated fields, got %q", line)
		}
		var v [3]float64
		for i, s := range fields {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("bad number in %q: %w", line, err)
			}
		}
		wl = append(wl, v[0])
		refl = append(refl, v[1])
		trans = append(trans, v[2])
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, err
	}
	return wl, refl, trans, nil
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Close output file
func closeOutput(out io.WriteCloser) {
	if out != nil {
		out.Close()
	}
}

// Print run header
func printHeader(out io.Writer, args cmdOpt, ncol int) {
	if args.noHeader {
		return
	}
	fmt.Fprintf(out, "%% program : %s\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(out, "%% mode    : %s\n", args.mode)
	fmt.Fprintf(out, "%% geometry: lai=%g lidfa=%g lidfb=%g typelidf=%d hspot=%g tts=%g tto=%g psi=%g\n",
		args.lai, args.lidfa, args.lidfb, args.typeLidf, args.hspot, args.tts, args.tto, args.psi)
	fmt.Fprintf(out, "%% columns : wavelength(nm) + %d value column(s)\n", ncol)
}

// Print wavelength/value rows
func printRows(out io.Writer, wl []float64, rows [][]float64) {
	for i := range wl {
		fmt.Fprintf(out, "%6.0f", wl[i])
		for _, row := range rows {
			fmt.Fprintf(out, " %12.6f", row[i])
		}
		fmt.Fprintln(out)
	}
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	mode      string
	outFn     string
	noHeader  bool
	leafFn    string
	lrefl     float64
	ltrans    float64
	lai       float64
	lidfa     float64
	lidfb     float64
	typeLidf  int
	hspot     float64
	tts       float64
	tto       float64
	psi       float64
	factor    string
	rsoil     float64
	psoil     float64
	chw       float64
	ccover    float64
	cshp      string
	lam       float64
	tveg      float64
	tsoil     float64
	tvegSun   float64
	tsoilSun  float64
	tatm      float64
	rsoilRefl float64
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -mode sail                          canopy reflectance spectra
	%s [Options] -mode geosail -cshp cone|cylinder   clumped scene reflectance
	%s [Options] -mode thermal                       thermal radiance and brightness temperature

[Options]
`, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	sOpt := m.NewSailOpt()
	flag.StringVar(&a.mode, "mode", "sail", "Calculation mode. sail, geosail or thermal")
	flag.StringVar(&a.outFn, "o", "", "Output file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noHeader, "nh", false, "Do not output the header section.")
	flag.StringVar(&a.leafFn, "leaf", "", "Leaf spectra CSV file (wavelength,refl,trans). If not specified, flat spectra from -lrefl/-ltrans are used.")
	flag.Float64Var(&a.lrefl, "lrefl", 0.3, "Flat leaf reflectance used when no leaf file is given. Also the thermal leaf reflectance.")
	flag.Float64Var(&a.ltrans, "ltrans", 0.25, "Flat leaf transmittance used when no leaf file is given.")
	flag.Float64Var(&a.lai, "lai", 3.0, "Leaf area index.")
	flag.Float64Var(&a.lidfa, "lidfa", 45.0, "Leaf angle distribution parameter a. Average leaf angle [deg] with -typelidf 2.")
	flag.Float64Var(&a.lidfb, "lidfb", sOpt.LidfB, "Leaf angle distribution parameter b. Ignored with -typelidf 2.")
	flag.IntVar(&a.typeLidf, "typelidf", sOpt.TypeLidf, "Leaf angle distribution type. 1(Verhoef bimodal), 2(Campbell ellipsoidal)")
	flag.Float64Var(&a.hspot, "hspot", 0.01, "Hotspot size parameter.")
	flag.Float64Var(&a.tts, "tts", 30.0, "Sun zenith angle [deg].")
	flag.Float64Var(&a.tto, "tto", 10.0, "View zenith angle [deg].")
	flag.Float64Var(&a.psi, "psi", 0.0, "Relative azimuth angle [deg].")
	flag.StringVar(&a.factor, "factor", sOpt.Factor, "Reflectance factor to output. SDR, BHR, DHR, HDR, ALL or ALLALL")
	flag.Float64Var(&a.rsoil, "rsoil", 1.0, "Soil brightness scalar.")
	flag.Float64Var(&a.psoil, "psoil", 0.5, "Soil moisture scalar. 1 selects the dry reference spectrum, 0 the wet one.")
	flag.Float64Var(&a.chw, "chw", 1.0, "Crown height-to-width ratio (geosail mode).")
	flag.Float64Var(&a.ccover, "ccover", 0.5, "Crown cover fraction (geosail mode).")
	flag.StringVar(&a.cshp, "cshp", "cone", "Crown shape (geosail mode). cone or cylinder")
	flag.Float64Var(&a.lam, "lam", 10.5, "Thermal band wavelength [um] (thermal mode).")
	flag.Float64Var(&a.tveg, "tveg", 293.0, "Shaded vegetation temperature [K] (thermal mode).")
	flag.Float64Var(&a.tsoil, "tsoil", 295.0, "Shaded soil temperature [K] (thermal mode).")
	flag.Float64Var(&a.tvegSun, "tvegsun", 298.0, "Sunlit vegetation temperature [K] (thermal mode).")
	flag.Float64Var(&a.tsoilSun, "tsoilsun", 305.0, "Sunlit soil temperature [K] (thermal mode).")
	flag.Float64Var(&a.tatm, "tatm", 263.0, "Sky brightness temperature [K] (thermal mode).")
	flag.Float64Var(&a.rsoilRefl, "srefl", 0.06, "Flat soil reflectance in the thermal band (thermal mode).")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display)")
	flag.Parse()
	m.DBG_ = dbg
	if flag.NArg() != 0 {
		return a, fmt.Errorf("unexpected positional arguments: %v", flag.Args())
	}
	return
}

func setSailOpt(args *cmdOpt) *m.SailOpt {
	opt := m.NewSailOpt()
	opt.TypeLidf = args.typeLidf
	opt.LidfB = args.lidfb
	opt.Factor = args.factor
	opt.Soil.Rsoil = &args.rsoil
	opt.Soil.Psoil = &args.psoil
	return opt
}
