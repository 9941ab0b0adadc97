/*
 * analysis.go, part of govib.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package nma

import (
	"fmt"
	"io"
	"math"

	chem "github.com/rmera/govib"
)

// ModeInfo contains the harmonic energetics of one mode. Energies are in hartree.
type ModeInfo struct {
	Index      int     //1-based
	Frequency  float64 //au
	Wavenumber float64 //cm-1
	ZPVE       float64
	Thermal    float64 //vibrational energy above the ZPVE at the given temperature
}

// ZPVE returns the harmonic zero-point vibrational energy for the frequencies w.
func ZPVE(w []float64) float64 {
	var s float64
	for _, v := range w {
		s += 0.5 * v
	}
	return s
}

// FTVE returns the harmonic vibrational energy at the inverse temperature beta
// (+Inf for 0 K) for the frequencies w.
func FTVE(w []float64, beta float64) float64 {
	var s float64
	for _, v := range w {
		s += 0.5 * v / math.Tanh(v*beta/2)
	}
	return s
}

// Analysis returns the energetics of each mode in M at the inverse temperature beta.
func Analysis(M *ModeSet, beta float64) []ModeInfo {
	ret := make([]ModeInfo, 0, M.Len())
	for i, w := range M.Frequencies {
		f := math.Tanh(beta * w / 2)
		ret = append(ret, ModeInfo{
			Index:      i + 1,
			Frequency:  w,
			Wavenumber: w / chem.AuPerCmInv,
			ZPVE:       0.5 * w,
			Thermal:    0.5 * (1/f - 1) * w,
		})
	}
	return ret
}

// WriteAnalysis writes a table with the result of Analysis to out,
// followed by the ZPVE and the vibrational energy at the given temperature.
func WriteAnalysis(out io.Writer, M *ModeSet, beta float64) error {
	if _, err := fmt.Fprintf(out, "=> Normal Mode Analysis <=\n\nT = %.1f K\n\n", chem.Temperature(beta)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "%-4s: %18s %18s %18s\n", "Mode", "Frequency(cm-1)", "ZPVE(au)", "Vib.Energy(au)"); err != nil {
		return err
	}
	for _, m := range Analysis(M, beta) {
		if _, err := fmt.Fprintf(out, "%-4d: %18.10f %18.10f %18.10f\n", m.Index, m.Wavenumber, m.ZPVE, m.Thermal); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "\nZPVE = %18.10f au\nFTVE = %18.10f au\n\n=> End Normal Mode Analysis <=\n", ZPVE(M.Frequencies), FTVE(M.Frequencies, beta))
	return err
}
