/*
 * springs.go, part of govib.
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

//Package testutil builds molecules held together by harmonic springs, whose
//Hessians are exact and invariant to translations and rotations, for the tests
//of the other packages.
package testutil

import (
	"math"
	"path/filepath"
	"testing"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/hessian"
	v3 "github.com/rmera/govib/v3"
	"gonum.org/v1/gonum/mat"
)

// Spring joins atoms A and B with force constant K (hartree/bohr^2).
type Spring struct {
	A, B int
	K    float64
}

// SpringHessian returns the Hessian of a set of springs at their rest length
// in the geometry G. Each spring adds K*u*u^T to the diagonal blocks of its
// atoms and subtracts it from the off-diagonal ones, u being the unit vector along the bond.
func SpringHessian(G *chem.Geometry, springs []Spring) *mat.Dense {
	n3 := 3 * G.Len()
	H := mat.NewDense(n3, n3, nil)
	for _, s := range springs {
		a := G.Coords.RawRowView(s.A)
		b := G.Coords.RawRowView(s.B)
		var u [3]float64
		norm := 0.0
		for k := 0; k < 3; k++ {
			u[k] = a[k] - b[k]
			norm += u[k] * u[k]
		}
		norm = math.Sqrt(norm)
		for k := range u {
			u[k] /= norm
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				v := s.K * u[i] * u[j]
				H.Set(3*s.A+i, 3*s.A+j, H.At(3*s.A+i, 3*s.A+j)+v)
				H.Set(3*s.B+i, 3*s.B+j, H.At(3*s.B+i, 3*s.B+j)+v)
				H.Set(3*s.A+i, 3*s.B+j, H.At(3*s.A+i, 3*s.B+j)-v)
				H.Set(3*s.B+i, 3*s.A+j, H.At(3*s.B+i, 3*s.A+j)-v)
			}
		}
	}
	return H
}

func geometry(symbols []string, coords []float64) *chem.Geometry {
	c, err := v3.NewMatrix(coords)
	if err != nil {
		panic(err.Error())
	}
	G, err := chem.NewGeometry(symbols, c)
	if err != nil {
		panic(err.Error())
	}
	return G
}

// Triangle returns an equilateral triangle of side side (bohr) in the xy plane, off the origin,
// with three identical atoms of symbol sym joined by springs of constant k.
// Its vibrational frequencies are sqrt(3k/m) and the doubly degenerate sqrt(3k/2m).
func Triangle(sym string, side, k float64) (*chem.Geometry, *mat.Dense) {
	h := side * math.Sqrt(3) / 2
	G := geometry([]string{sym, sym, sym}, []float64{
		1, 2, 3,
		1 + side, 2, 3,
		1 + side/2, 2 + h, 3,
	})
	return G, SpringHessian(G, []Spring{{0, 1, k}, {1, 2, k}, {0, 2, k}})
}

// Tetrahedron returns a regular tetrahedron of atoms sym with all 6 edges being springs
// of constant k. The squared frequencies are 4k/m, 2k/m (3 times) and k/m (2 times).
func Tetrahedron(sym string, edge, k float64) (*chem.Geometry, *mat.Dense) {
	s := edge / (2 * math.Sqrt2)
	G := geometry([]string{sym, sym, sym, sym}, []float64{
		s, s, s,
		s, -s, -s,
		-s, s, -s,
		-s, -s, s,
	})
	var springs []Spring
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			springs = append(springs, Spring{i, j, k})
		}
	}
	return G, SpringHessian(G, springs)
}

// Water returns a bent water-like molecule with real masses, two O-H springs
// and a weaker H-H one, in a general orientation.
func Water() (*chem.Geometry, *mat.Dense) {
	G := geometry([]string{"O", "H", "H"}, []float64{
		0.1, -0.2, 0.3,
		1.2, 1.3, 0.2,
		-1.5, 0.9, 0.6,
	})
	return G, SpringHessian(G, []Spring{{0, 1, 0.5}, {0, 2, 0.5}, {1, 2, 0.05}})
}

// Linear returns three collinear atoms joined by two springs.
func Linear() (*chem.Geometry, *mat.Dense) {
	G := geometry([]string{"O", "C", "O"}, []float64{
		-2.2, 0, 0,
		0, 0, 0,
		2.2, 0, 0,
	})
	return G, SpringHessian(G, []Spring{{0, 1, 1}, {1, 2, 1}})
}

// WriteHessian writes G and H as a Hessian file in a temporary directory and returns its name.
func WriteHessian(Te *testing.T, G *chem.Geometry, H *mat.Dense) string {
	Te.Helper()
	name := filepath.Join(Te.TempDir(), "Hessian.bin")
	err := hessian.WriteFile(name, &hessian.Data{Geometry: G, Hessian: H, NPoints: 2, Displacement: 0.005})
	if err != nil {
		Te.Fatal(err)
	}
	return name
}
