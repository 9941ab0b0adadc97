/*
 * geometric.go, part of govib
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"math"

	v3 "github.com/rmera/govib/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CenterOfMass returns the center of mass the atoms represented by the coordinates in geometry
// and the masses in mass, and an error. If mass is nil, it calculates the geometric center
func CenterOfMass(geometry *v3.Matrix, mass []float64) (*v3.Matrix, error) {
	if geometry == nil {
		return nil, NewError(ErrMalformedInput, "CenterOfMass", "nil matrix to get the center of mass")
	}
	gr := geometry.NVecs()
	if mass == nil { //just obtain the geometric center
		mass = ones(gr)
	}
	if len(mass) != gr {
		return nil, NewError(ErrMalformedInput, "CenterOfMass", "%d masses for %d atoms", len(mass), gr)
	}
	total := floats.Sum(mass)
	if total <= 0 || math.IsNaN(total) {
		return nil, NewError(ErrMalformedInput, "CenterOfMass", "invalid total mass %g", total)
	}
	ref := v3.Zeros(gr)
	ref.ScaleByCol(geometry, mass)
	ref2 := ref.SumVecs()
	ref2.Dense.Scale(1.0/total, ref2.Dense)
	return ref2, nil
}

// MassCentrate returns a copy of in centered in its center of mass, and the center of mass.
func MassCentrate(in *v3.Matrix, mass []float64) (*v3.Matrix, *v3.Matrix, error) {
	com, err := CenterOfMass(in, mass)
	if err != nil {
		return nil, nil, ErrDecorate(err, "MassCentrate")
	}
	returned := v3.Zeros(in.NVecs())
	returned.SubVec(in, com)
	return returned, com, nil
}

// MomentTensor returns the mass-weighted second moment tensor sum_i m_i(r_i-com)(r_i-com)^T
// for the coordinates in A and the masses in massslice. It is not normalized.
// The principal axes are the same as those of the inertia tensor.
func MomentTensor(A *v3.Matrix, massslice []float64) (*mat.Dense, error) {
	ar := A.NVecs()
	if massslice == nil {
		massslice = ones(ar)
	}
	center, _, err := MassCentrate(A, massslice)
	if err != nil {
		return nil, ErrDecorate(err, "MomentTensor")
	}
	sqrmass := make([]float64, ar)
	for i, m := range massslice {
		sqrmass[i] = math.Sqrt(m)
	}
	center.ScaleByCol(center, sqrmass)
	moment := mat.NewDense(3, 3, nil)
	moment.Mul(center.T(), center)
	return moment, nil
}

func ones(n int) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = 1
	}
	return r
}
