/*
 * gocoords.go, part of govib.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//METHODS

// AddVec adds the row vector vec to each vector of A, putting the result on the receiver.
// Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] + v[k]
		}
	}
}

// SubVec subtracts the vector vec from each vector of the matrix A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] - v[k]
		}
	}
}

// ScaleByCol scales each vector i of A by the ith element of col, putting the result
// in the received. col must have as many elements as A has vectors.
func (F *Matrix) ScaleByCol(A *Matrix, col []float64) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ar != len(col) || ar != fr || ac != fc {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] * col[i]
		}
	}
}

// DivByCol divides each vector i of A by the ith element of col, putting the result
// in the received.
func (F *Matrix) DivByCol(A *Matrix, col []float64) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ar != len(col) || ar != fr || ac != fc {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] / col[i]
		}
	}
}

// SumVecs returns a 1x3 matrix with the sum of all the vectors of F.
func (F *Matrix) SumVecs() *Matrix {
	ret := Zeros(1)
	s := ret.RawRowView(0)
	for i := 0; i < F.NVecs(); i++ {
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			s[k] += f[k]
		}
	}
	return ret
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "[")
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf(" %10.5f %10.5f %10.5f", row[0], row[1], row[2]))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

// Equal returns true if A and B have the same dimensions and
// all their elements differ by no more than tol.
func Equal(A, B *Matrix, tol float64) bool {
	return mat.EqualApprox(A, B, tol)
}
