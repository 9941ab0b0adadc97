/*
 * gonum.go, part of govib.
 *
 * Copyright 2014 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//gonum.go contains what is needed for handling the gonum/mat types.

//All the *Vec functions operate on/produce row vectors, i.e. the
//cartesian coordinates of one point in space.

package v3

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space (an Nx3 row-major matrix).
// Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space. The name of some funcitions in
// the library reflect this.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// data is used as the backing slice, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, &Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// VecView returns a view of the ith vector of the matrix.
// Changes in the view are reflected in F and vice-versa
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

// Flat puts the coordinates of F in dst as a 3N slice (x1,y1,z1,x2...)
// and returns it. dst is allocated if nil.
func (F *Matrix) Flat(dst []float64) []float64 {
	n := F.NVecs()
	if dst == nil {
		dst = make([]float64, 3*n)
	}
	if len(dst) != 3*n {
		panic(ErrShape)
	}
	for i := 0; i < n; i++ {
		copy(dst[3*i:3*i+3], F.RawRowView(i))
	}
	return dst
}

//Errors

// Error is the error type for the v3 package. It implements the same
// decorating interface as chem.Error, without a circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message, preceded by the
// functions it went through, the outermost first.
func (err *Error) Error() string {
	if len(err.deco) == 0 {
		return err.message
	}
	return strings.Join(err.deco, ": ") + ": " + err.message
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append([]string{dec}, err.deco...)
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("govib/v3: A Matrix should have 3 columns")
	ErrEigen        = PanicMsg("govib/v3: Can't obtain eigenvectors/eigenvalues of given matrix")
	ErrShape        = PanicMsg("govib/v3: Dimension mismatch")
)

//Eigenvalues

type eigenpair struct {
	//evecs must have as many rows as evals has elements.
	evecs *mat.Dense
	evals sort.Float64Slice
}

func (E eigenpair) Less(i, j int) bool {
	return E.evals[i] < E.evals[j]
}
func (E eigenpair) Swap(i, j int) {
	E.evals.Swap(i, j)
	ci := mat.Col(nil, i, E.evecs)
	cj := mat.Col(nil, j, E.evecs)
	E.evecs.SetCol(i, cj)
	E.evecs.SetCol(j, ci)
}
func (E eigenpair) Len() int {
	return len(E.evals)
}

// EigenWrap obtains the eigenvectors and eigenvalues of the symmetric 3x3 matrix in.
// The eigenvectors are returned as the columns of a 3x3 matrix, sorted by ascending
// eigenvalue, and forming a right-handed set. epsilon is the tolerance for the orthogonality
// check of the eigenvectors; a negative value means the default.
func EigenWrap(in *mat.Dense, epsilon float64) (*mat.Dense, []float64, error) {
	if epsilon < 0 {
		epsilon = appzero
	}
	r, c := in.Dims()
	if r != 3 || c != 3 {
		return nil, nil, &Error{string(ErrShape), []string{"EigenWrap"}, true}
	}
	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, 0.5*(in.At(i, j)+in.At(j, i)))
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, &Error{string(ErrEigen), []string{"EigenWrap"}, true}
	}
	evals := es.Values(nil)
	evecs := mat.NewDense(3, 3, nil)
	es.VectorsTo(evecs)
	eig := eigenpair{evecs, evals}
	sort.Sort(eig)
	for i := 0; i < 3; i++ {
		vi := evecs.ColView(i)
		for j := i + 1; j < 3; j++ {
			vj := evecs.ColView(j)
			if d := math.Abs(mat.Dot(vi, vj)); d > epsilon {
				return evecs, evals, &Error{fmt.Sprintf("Eigenvectors %d and %d not orthogonal. Dot: %g", i, j, d), []string{"EigenWrap"}, true}
			}
		}
	}
	//Checking and fixing the handness of the matrix.
	if mat.Det(evecs) < 0 {
		last := evecs.ColView(2).(*mat.VecDense)
		last.ScaleVec(-1, last)
	}
	return evecs, evals, nil
}
