/*
 * report.go, part of govib.
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

package wigner

import (
	"fmt"
	"io"
	"math"

	chem "github.com/rmera/govib"
	"gonum.org/v1/gonum/stat"
)

// Stats contains the mean and the standard error of the mean of a set of values.
type Stats struct {
	Mean   float64
	StdErr float64
}

// EnergyStats returns the statistics of the cartesian kinetic and potential energies of the
// successful samples in E.
func EnergyStats(E *Ensemble) (KE, PE Stats) {
	ok := E.Successful()
	ke := make([]float64, len(ok))
	pe := make([]float64, len(ok))
	for i, r := range ok {
		ke[i] = r.CartesianKE
		pe[i] = r.CartesianPE
	}
	return stats(ke), stats(pe)
}

func stats(v []float64) Stats {
	if len(v) == 0 {
		return Stats{Mean: math.NaN(), StdErr: math.NaN()}
	}
	if len(v) == 1 {
		return Stats{Mean: v[0]}
	}
	mean, std := stat.MeanStdDev(v, nil)
	return Stats{Mean: mean, StdErr: std / math.Sqrt(float64(len(v)))}
}

// WriteReport writes a summary of the ensemble E, obtained with the sampler S, to out.
// It contains the energies of each sample and their averages, which, for a large enough
// ensemble, should approach half the vibrational energy for both KE and PE.
func WriteReport(out io.Writer, E *Ensemble, S *Sampler) error {
	pr := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(out, format, args...)
		return err
	}
	if err := pr("Wigner sampling run %s, seed %d\nT = %.1f K\n\n", E.RunID, E.Seed, chem.Temperature(S.Beta())); err != nil {
		return err
	}
	if err := pr("%6s: %24s %24s %24s %24s\n", "Sample", "KE(normal)", "PE(normal)", "KE(cartesian)", "PE(cartesian)"); err != nil {
		return err
	}
	for _, r := range E.Records {
		if r.Err != nil {
			if err := pr("%6d: failed: %s\n", r.Index, r.Err.Error()); err != nil {
				return err
			}
			continue
		}
		if err := pr("%6d: %24.16E %24.16E %24.16E %24.16E\n", r.Index, r.NormalKE, r.NormalPE, r.CartesianKE, r.CartesianPE); err != nil {
			return err
		}
	}
	ke, pe := EnergyStats(E)
	if err := pr("\n%10s: %24s %24s\n", "Energy", "KE", "PE"); err != nil {
		return err
	}
	if err := pr("%10s: %24.16E %24.16E\n", "ZPVE", 0.5*S.ZPVE(), 0.5*S.ZPVE()); err != nil {
		return err
	}
	if err := pr("%10s: %24.16E %24.16E\n", "FTVE", 0.5*S.FTVE(), 0.5*S.FTVE()); err != nil {
		return err
	}
	if err := pr("%10s: %24.16E %24.16E\n", "Normal", E.AvgKE, E.AvgPE); err != nil {
		return err
	}
	if err := pr("%10s: %24.16E %24.16E\n", "Cartesian", ke.Mean, pe.Mean); err != nil {
		return err
	}
	if err := pr("%10s: %24.16E %24.16E\n", "Std.Err.", ke.StdErr, pe.StdErr); err != nil {
		return err
	}
	return pr("\n%d of %d samples succeeded\n", E.Succeeded, E.Requested)
}
