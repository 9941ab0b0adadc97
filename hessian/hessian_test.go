/*
 * hessian_test.go, part of govib.
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

package hessian

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	chem "github.com/rmera/govib"
	v3 "github.com/rmera/govib/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sample(Te *testing.T) *Data {
	c, err := v3.NewMatrix([]float64{0, 0, 0.2, 0, 1.4, -0.9, 0, -1.4, -0.9})
	require.NoError(Te, err)
	G, err := chem.NewGeometry([]string{"O", "H", "H"}, c)
	require.NoError(Te, err)
	h := make([]float64, 81)
	for i := range h {
		h[i] = float64(i) / 100
	}
	return &Data{Geometry: G, Hessian: mat.NewDense(9, 9, h), NPoints: 2, Displacement: 0.005}
}

func encode(Te *testing.T, D *Data) []byte {
	var buf bytes.Buffer
	require.NoError(Te, Write(&buf, D))
	return buf.Bytes()
}

func TestReadWrite(Te *testing.T) {
	D := sample(Te)
	raw := encode(Te, D)
	assert.Len(Te, raw, 16+3*32+81*8)
	//the layout, by hand.
	assert.Equal(Te, int32(3), int32(binary.LittleEndian.Uint32(raw)))
	assert.Equal(Te, 8.0, math.Float64frombits(binary.LittleEndian.Uint64(raw[16+24:])))
	R, err := Read(bytes.NewReader(raw), nil)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"O", "H", "H"}, R.Geometry.Symbols)
	assert.Equal(Te, 2, R.NPoints)
	assert.Equal(Te, 0.005, R.Displacement)
	assert.True(Te, mat.Equal(D.Hessian, R.Hessian))
	assert.True(Te, v3.Equal(D.Geometry.Coords, R.Geometry.Coords, 0))
	assert.Equal(Te, 0.09, R.Hessian.At(1, 0))
}

func TestSymbolOverride(Te *testing.T) {
	raw := encode(Te, sample(Te))
	R, err := Read(bytes.NewReader(raw), []string{"", "D", ""})
	require.NoError(Te, err)
	assert.Equal(Te, []string{"O", "D", "H"}, R.Geometry.Symbols)
	_, err = Read(bytes.NewReader(raw), []string{"O", "H"})
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
}

func TestMalformed(Te *testing.T) {
	raw := encode(Te, sample(Te))
	for _, l := range []int{0, 10, 16, 16 + 3*32, len(raw) - 1} {
		D, err := Read(bytes.NewReader(raw[:l]), nil)
		assert.Nil(Te, D)
		assert.True(Te, errors.Is(err, chem.ErrMalformedInput), "length %d: %v", l, err)
	}
	bad := append([]byte(nil), raw...)
	binary.LittleEndian.PutUint32(bad, 0)
	_, err := Read(bytes.NewReader(bad), nil)
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
	//natoms so large that the Hessian size overflows an int64
	binary.LittleEndian.PutUint32(bad, math.MaxInt32)
	_, err = Read(bytes.NewReader(bad), nil)
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
	bad = append([]byte(nil), raw...)
	binary.LittleEndian.PutUint64(bad[8:], math.Float64bits(math.NaN()))
	_, err = Read(bytes.NewReader(bad), nil)
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
	bad = append([]byte(nil), raw...)
	binary.LittleEndian.PutUint32(bad[4:], uint32(0xffffffff))
	_, err = Read(bytes.NewReader(bad), nil)
	assert.True(Te, errors.Is(err, chem.ErrMalformedInput))
	//trailing data is ignored
	_, err = Read(bytes.NewReader(append(raw, 1, 2, 3)), nil)
	assert.NoError(Te, err)
}

func TestUnknownZ(Te *testing.T) {
	D := sample(Te)
	D.Geometry.Symbols[1] = "Xx"
	raw := encode(Te, D)
	_, err := Read(bytes.NewReader(raw), nil)
	assert.True(Te, errors.Is(err, chem.ErrUnknownAtom))
	R, err := Read(bytes.NewReader(raw), []string{"", "H", ""})
	require.NoError(Te, err)
	assert.Equal(Te, "H", R.Geometry.Symbols[1])
}

func TestFile(Te *testing.T) {
	D := sample(Te)
	name := Te.TempDir() + "/Hessian.bin"
	require.NoError(Te, WriteFile(name, D))
	R, err := ReadFile(name, nil)
	require.NoError(Te, err)
	assert.True(Te, mat.Equal(D.Hessian, R.Hessian))
	_, err = ReadFile(name+".missing", nil)
	assert.Error(Te, err)
}
