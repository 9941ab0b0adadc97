/*
 * basis.go, part of govib.
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
	"math"

	chem "github.com/rmera/govib"
	"gonum.org/v1/gonum/mat"
)

// Errors of the nma package. Each wraps the general kind from the chem package.
var (
	ErrTooFewAtoms    = fmt.Errorf("%w: at least 3 atoms are needed", chem.ErrMalformedInput)
	ErrLinear         = fmt.Errorf("%w: linear geometries are not supported", chem.ErrMalformedInput)
	ErrDegenerateMode = fmt.Errorf("%w: degenerate vibrational mode", chem.ErrNumerical)
)

// LinearTolerance is the smallest ratio between the sixth and the first singular value
// of the translation-rotation matrix for which a geometry is not considered linear.
var LinearTolerance = 1e-8

// VibrationalBasis returns the 3N x (3N-6) orthonormal basis, in mass-weighted cartesian
// coordinates, of the space orthogonal to the rigid translations and rotations
// of the molecule in the Eckart frame E. Rows are mass-weighted cartesians, columns
// are basis vectors. Linear molecules and molecules with less than 3 atoms are rejected.
func VibrationalBasis(E *Eckart, masses []float64) (*mat.Dense, error) {
	N := E.Geometry.Len()
	if N < 3 {
		return nil, chem.NewError(ErrTooFewAtoms, "VibrationalBasis", "got %d", N)
	}
	if len(masses) != N {
		return nil, chem.MalformedInputError("VibrationalBasis", "%d masses for %d atoms", len(masses), N)
	}
	TR := trMatrix(E, masses)
	var svd mat.SVD
	if ok := svd.Factorize(TR, mat.SVDFull); !ok {
		return nil, chem.NumericalError("VibrationalBasis", "SVD factorization failed")
	}
	s := svd.Values(nil)
	if s[0] == 0 || s[5]/s[0] < LinearTolerance {
		return nil, chem.NewError(ErrLinear, "VibrationalBasis", "singular values %v", s)
	}
	var U mat.Dense
	svd.UTo(&U)
	n3 := 3 * N
	return mat.DenseCopyOf(U.Slice(0, n3, 6, n3)), nil
}

// The columns are the rigid translations along x, y and z, and
// the rotations around the 3 principal axes, all mass-weighted.
func trMatrix(E *Eckart, masses []float64) *mat.Dense {
	N := E.Geometry.Len()
	O := E.Axes
	TR := mat.NewDense(3*N, 6, nil)
	for A, mass := range masses {
		m12 := math.Sqrt(mass)
		G := E.Geometry.Coords.RawRowView(A)
		for j := 0; j < 3; j++ {
			TR.Set(3*A+j, j, m12)
			TR.Set(3*A+j, 3, m12*(G[1]*O.At(j, 2)-G[2]*O.At(j, 1)))
			TR.Set(3*A+j, 4, -m12*(G[0]*O.At(j, 2)-G[2]*O.At(j, 0)))
			TR.Set(3*A+j, 5, m12*(G[0]*O.At(j, 1)-G[1]*O.At(j, 0)))
		}
	}
	return TR
}
