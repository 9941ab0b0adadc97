/*
 * modes.go, part of govib.
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
	"math"

	chem "github.com/rmera/govib"
	"gonum.org/v1/gonum/mat"
)

// ModeSet contains the harmonic normal modes of a molecule.
type ModeSet struct {
	//Frequencies in atomic units, ascending. Imaginary frequencies are negative.
	Frequencies []float64
	//Eigenvalues of the projected, mass-weighted Hessian. Frequencies[i]^2 = |Eigenvalues[i]|
	Eigenvalues []float64
	//3N x (3N-6). Column i is the cartesian (not mass-weighted) displacement of mode i.
	Modes *mat.Dense
	//The vibrational basis, see VibrationalBasis.
	Basis *mat.Dense
	Frame *Eckart
}

// Len returns the number of modes in the set.
func (M *ModeSet) Len() int {
	return len(M.Frequencies)
}

// Mode returns a copy of the cartesian displacements for mode i, as a 3N slice.
func (M *ModeSet) Mode(i int) []float64 {
	return mat.Col(nil, i, M.Modes)
}

// NormalModes obtains the harmonic normal modes for the geometry G with Hessian hess
// (3N x 3N, atomic units) and masses masses (atomic units). Translations and rotations
// are projected out before the diagonalization, so 3N-6 modes are returned.
// A mode with a zero or NaN eigenvalue gives an error wrapping ErrDegenerateMode.
func NormalModes(G *chem.Geometry, hess mat.Matrix, masses []float64) (*ModeSet, error) {
	N := G.Len()
	n3 := 3 * N
	if r, c := hess.Dims(); r != n3 || c != n3 {
		return nil, chem.MalformedInputError("NormalModes", "Hessian is %dx%d for %d atoms", r, c, N)
	}
	E, err := EckartFrame(G, masses)
	if err != nil {
		return nil, chem.ErrDecorate(err, "NormalModes")
	}
	B, err := VibrationalBasis(E, masses)
	if err != nil {
		return nil, chem.ErrDecorate(err, "NormalModes")
	}
	sqrtm := make([]float64, n3)
	for i, m := range chem.Mass3(masses) {
		sqrtm[i] = math.Sqrt(m)
	}
	hmw := mat.NewDense(n3, n3, nil)
	hmw.Apply(func(i, j int, v float64) float64 {
		return v / (sqrtm[i] * sqrtm[j])
	}, hess)
	//H'' = B^T H' B
	var tmp, proj mat.Dense
	tmp.Mul(hmw, B)
	proj.Mul(B.T(), &tmp)
	nvib := n3 - 6
	sym := mat.NewSymDense(nvib, nil)
	for i := 0; i < nvib; i++ {
		for j := i; j < nvib; j++ {
			sym.SetSym(i, j, 0.5*(proj.At(i, j)+proj.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, chem.NumericalError("NormalModes", "diagonalization of the projected Hessian failed")
	}
	h := es.Values(nil)
	for i, v := range h {
		if v == 0 || math.IsNaN(v) {
			return nil, chem.NewError(ErrDegenerateMode, "NormalModes", "mode %d has eigenvalue %g", i, v)
		}
	}
	var U3 mat.Dense
	es.VectorsTo(&U3)
	Q := mat.NewDense(n3, nvib, nil)
	Q.Mul(B, &U3)
	Q.Apply(func(i, j int, v float64) float64 {
		return v / sqrtm[i]
	}, Q)
	w := make([]float64, nvib)
	for i, v := range h {
		if v < 0 {
			w[i] = -math.Sqrt(-v)
		} else {
			w[i] = math.Sqrt(v)
		}
	}
	return &ModeSet{Frequencies: w, Eigenvalues: h, Modes: Q, Basis: B, Frame: E}, nil
}
