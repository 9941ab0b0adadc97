/*
 * nma_test.go, part of govib.
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
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/internal/testutil"
	v3 "github.com/rmera/govib/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func masses(Te *testing.T, G *chem.Geometry) []float64 {
	m, err := G.Masses(nil)
	require.NoError(Te, err)
	return m
}

func identity(Te *testing.T, A mat.Matrix, tol float64) {
	Te.Helper()
	r, c := A.Dims()
	require.Equal(Te, r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			exp := 0.0
			if i == j {
				exp = 1
			}
			assert.InDelta(Te, exp, A.At(i, j), tol, "element %d %d", i, j)
		}
	}
}

func TestEckart(Te *testing.T) {
	G, _ := testutil.Water()
	m := masses(Te, G)
	E, err := EckartFrame(G, m)
	require.NoError(Te, err)
	com, err := chem.CenterOfMass(E.Geometry.Coords, m)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 0, 0}, com.RawRowView(0), 1e-12)
	assert.True(Te, E.Moments[0] <= E.Moments[1] && E.Moments[1] <= E.Moments[2])
	var ata mat.Dense
	ata.Mul(E.Axes.T(), E.Axes)
	identity(Te, &ata, 1e-12)
	assert.InDelta(Te, 1, mat.Det(E.Axes), 1e-12)
	//in the principal frame the tensor is diagonal.
	T, err := chem.MomentTensor(E.Geometry.Coords, m)
	require.NoError(Te, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.InDelta(Te, 0, T.At(i, j), 1e-9)
			}
		}
	}
	//order is preserved, and so are the interatomic distances
	assert.Equal(Te, G.Symbols, E.Geometry.Symbols)
	d0 := dist(G.Coords, 1, 2)
	assert.InDelta(Te, d0, dist(E.Geometry.Coords, 1, 2), 1e-12)
	//a geometry already in its Eckart frame is unchanged, up to the sign of the axes.
	E2, err := EckartFrame(E.Geometry, m)
	require.NoError(Te, err)
	for i := 0; i < G.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(Te, math.Abs(E.Geometry.Coords.At(i, k)), math.Abs(E2.Geometry.Coords.At(i, k)), 1e-10)
		}
	}
	_, err = EckartFrame(G, m[:2])
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
}

func dist(c *v3.Matrix, i, j int) float64 {
	a, b := c.RawRowView(i), c.RawRowView(j)
	return math.Sqrt((a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2]))
}

func TestBasis(Te *testing.T) {
	for _, f := range []func() (*chem.Geometry, *mat.Dense){testutil.Water, func() (*chem.Geometry, *mat.Dense) { return testutil.Tetrahedron("C", 2.5, 0.4) }} {
		G, _ := f()
		m := masses(Te, G)
		E, err := EckartFrame(G, m)
		require.NoError(Te, err)
		B, err := VibrationalBasis(E, m)
		require.NoError(Te, err)
		r, c := B.Dims()
		assert.Equal(Te, 3*G.Len(), r)
		assert.Equal(Te, 3*G.Len()-6, c)
		var btb mat.Dense
		btb.Mul(B.T(), B)
		identity(Te, &btb, 1e-10)
		//Translations and rotations have no component in the basis.
		TR := trMatrix(E, m)
		var proj mat.Dense
		proj.Mul(B.T(), TR)
		for i := 0; i < c; i++ {
			for j := 0; j < 6; j++ {
				assert.InDelta(Te, 0, proj.At(i, j), 1e-8)
			}
		}
	}
}

func TestRejected(Te *testing.T) {
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 0, 0, 1.4})
	G, err := chem.NewGeometry([]string{"H", "H"}, c)
	require.NoError(Te, err)
	m := masses(Te, G)
	H := testutil.SpringHessian(G, []testutil.Spring{{A: 0, B: 1, K: 0.3}})
	_, err = NormalModes(G, H, m)
	assert.True(Te, errors.Is(err, ErrTooFewAtoms))
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
	fmt.Println(err)
	G, H = testutil.Linear()
	_, err = NormalModes(G, H, masses(Te, G))
	assert.True(Te, errors.Is(err, ErrLinear))
	G, H = testutil.Water()
	_, err = NormalModes(G, H.Slice(0, 6, 0, 6), masses(Te, G))
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
}

func TestTriangleFrequencies(Te *testing.T) {
	k := 0.3
	G, H := testutil.Triangle("H", 1.6, k)
	m := masses(Te, G)
	M, err := NormalModes(G, H, m)
	require.NoError(Te, err)
	require.Equal(Te, 3, M.Len())
	exp := []float64{math.Sqrt(1.5 * k / m[0]), math.Sqrt(1.5 * k / m[0]), math.Sqrt(3 * k / m[0])}
	assert.InDeltaSlice(Te, exp, M.Frequencies, 1e-9)
	for i, w := range M.Frequencies {
		assert.InDelta(Te, w*w, M.Eigenvalues[i], 1e-12)
	}
	fmt.Println("Triangle frequencies (cm-1):", M.Frequencies[0]/chem.AuPerCmInv, M.Frequencies[2]/chem.AuPerCmInv)
}

func TestTetrahedronFrequencies(Te *testing.T) {
	k := 0.4
	G, H := testutil.Tetrahedron("C", 2.9, k)
	m := masses(Te, G)
	M, err := NormalModes(G, H, m)
	require.NoError(Te, err)
	u := k / m[0]
	exp := []float64{u, u, 2 * u, 2 * u, 2 * u, 4 * u}
	assert.InDeltaSlice(Te, exp, M.Eigenvalues, 1e-10)
}

// The modes are orthonormal with the mass as metric, and satisfy H q = w^2 M q
func TestModes(Te *testing.T) {
	G, H := testutil.Water()
	m := masses(Te, G)
	M, err := NormalModes(G, H, m)
	require.NoError(Te, err)
	m3 := chem.Mass3(m)
	n3, nvib := M.Modes.Dims()
	MQ := mat.NewDense(n3, nvib, nil)
	MQ.Apply(func(i, j int, v float64) float64 { return v * m3[i] }, M.Modes)
	var qmq mat.Dense
	qmq.Mul(M.Modes.T(), MQ)
	identity(Te, &qmq, 1e-9)
	var hq mat.Dense
	hq.Mul(H, M.Modes)
	for j := 0; j < nvib; j++ {
		for i := 0; i < n3; i++ {
			assert.InDelta(Te, M.Eigenvalues[j]*MQ.At(i, j), hq.At(i, j), 1e-9)
		}
	}
	for i := 1; i < nvib; i++ {
		assert.True(Te, M.Frequencies[i-1] <= M.Frequencies[i])
	}
}

func TestDegenerateAndImaginary(Te *testing.T) {
	G, _ := testutil.Water()
	m := masses(Te, G)
	_, err := NormalModes(G, mat.NewDense(9, 9, nil), m)
	assert.True(Te, errors.Is(err, ErrDegenerateMode))
	assert.True(Te, errors.Is(err, chem.ErrNumerical))
	G, H := testutil.Triangle("H", 1.6, -0.3)
	M, err := NormalModes(G, H, masses(Te, G))
	require.NoError(Te, err)
	for _, w := range M.Frequencies {
		assert.True(Te, w < 0)
	}
	assert.InDelta(Te, -math.Sqrt(3*0.3/masses(Te, G)[0]), M.Frequencies[0], 1e-9)
}

func TestAnalysis(Te *testing.T) {
	G, H := testutil.Water()
	M, err := NormalModes(G, H, masses(Te, G))
	require.NoError(Te, err)
	inf := math.Inf(1)
	zpve := ZPVE(M.Frequencies)
	assert.InDelta(Te, zpve, FTVE(M.Frequencies, inf), 1e-15)
	assert.True(Te, FTVE(M.Frequencies, chem.Beta(1000)) > zpve)
	an := Analysis(M, inf)
	require.Len(Te, an, 3)
	var s float64
	for _, a := range an {
		s += a.ZPVE
		assert.Equal(Te, 0.0, a.Thermal)
	}
	assert.InDelta(Te, zpve, s, 1e-15)
	assert.Equal(Te, 1, an[0].Index)
	var buf bytes.Buffer
	require.NoError(Te, WriteAnalysis(&buf, M, chem.Beta(300)))
	out := buf.String()
	assert.Contains(Te, out, "T = 300.0 K")
	assert.Contains(Te, out, "ZPVE = ")
	assert.Contains(Te, out, "FTVE = ")
	assert.Equal(Te, 3, strings.Count(out, "\n1   :")+strings.Count(out, "\n2   :")+strings.Count(out, "\n3   :"))
	fmt.Print(out)
}

func TestModeFrames(Te *testing.T) {
	G, H := testutil.Water()
	M, err := NormalModes(G, H, masses(Te, G))
	require.NoError(Te, err)
	frames, err := ModeFrames(G, M, 2, 4, 0.5)
	require.NoError(Te, err)
	require.Len(Te, frames, 4)
	assert.True(Te, v3.Equal(G.Coords, frames[0].Coords, 1e-14))
	q := M.Mode(2)
	for i := 0; i < G.Len(); i++ {
		for k := 0; k < 3; k++ {
			assert.InDelta(Te, G.Coords.At(i, k)+0.5*q[3*i+k], frames[1].Coords.At(i, k), 1e-12)
			assert.InDelta(Te, G.Coords.At(i, k)-0.5*q[3*i+k], frames[3].Coords.At(i, k), 1e-12)
		}
	}
	_, err = ModeFrames(G, M, 3, 4, 0.5)
	assert.Error(Te, err)
	_, err = ModeFrames(G, M, 0, 0, 0.5)
	assert.Error(Te, err)
}
