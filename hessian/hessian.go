/*
 * hessian.go, part of govib.
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

//Package hessian reads and writes the binary Hessian files produced by finite-difference
//frequency calculations. The layout, all little-endian, is:
//
//	int32 natoms
//	int32 npoints (points in the stencil)
//	float64 displacement (bohr)
//	natoms x (float64 x, float64 y, float64 z, float64 atomic number), bohr
//	(3*natoms)^2 float64, the Hessian in row-major order, atomic units.
package hessian

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"

	chem "github.com/rmera/govib"
	v3 "github.com/rmera/govib/v3"
	"gonum.org/v1/gonum/mat"
)

const (
	headerLen = 4 + 4 + 8
	atomLen   = 4 * 8
)

// Data contains everything stored in a Hessian file.
type Data struct {
	Geometry     *chem.Geometry
	Hessian      *mat.Dense //3N x 3N
	NPoints      int
	Displacement float64
}

// Read parses a Hessian file from r. If symbols is not nil, it must have one
// element per atom, and each non-empty element is used as the symbol for that atom
// instead of the one obtained from the stored atomic number. This is needed when
// the program that wrote the file got the atomic numbers wrong (with ECPs, for instance).
// Nothing but an error is returned if the data is truncated or inconsistent.
func Read(r io.Reader, symbols []string) (*Data, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(buf, symbols)
}

// ReadFile opens the file name and parses it as a Hessian file. See Read.
func ReadFile(name string, symbols []string) (*Data, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	D, err := Read(bufio.NewReader(f), symbols)
	if err != nil {
		return nil, chem.ErrDecorate(err, "hessian.ReadFile "+name)
	}
	return D, nil
}

func parse(buf []byte, symbols []string) (*Data, error) {
	le := binary.LittleEndian
	if len(buf) < headerLen {
		return nil, chem.MalformedInputError("hessian.Read", "file has %d bytes, shorter than the header", len(buf))
	}
	natoms := int64(int32(le.Uint32(buf[0:])))
	npoints := int32(le.Uint32(buf[4:]))
	disp := math.Float64frombits(le.Uint64(buf[8:]))
	if natoms < 1 {
		return nil, chem.MalformedInputError("hessian.Read", "invalid number of atoms: %d", natoms)
	}
	if npoints < 0 {
		return nil, chem.MalformedInputError("hessian.Read", "invalid number of stencil points: %d", npoints)
	}
	if math.IsNaN(disp) || math.IsInf(disp, 0) || disp < 0 {
		return nil, chem.MalformedInputError("hessian.Read", "invalid displacement: %g", disp)
	}
	//natoms fits in 31 bits, so the geometry size can't overflow an int64,
	//but the Hessian size can, so it is checked by division.
	n3 := 3 * natoms
	avail := int64(len(buf)) - headerLen - natoms*atomLen
	if avail < 0 || n3 > avail/(8*n3) {
		return nil, chem.MalformedInputError("hessian.Read", "%d atoms require a %dx%d Hessian, the file has only %d bytes", natoms, n3, n3, len(buf))
	}
	if symbols != nil && int64(len(symbols)) != natoms {
		return nil, chem.MalformedInputError("hessian.Read", "%d symbols given for %d atoms", len(symbols), natoms)
	}
	N := int(natoms)
	syms := make([]string, N)
	coords := make([]float64, 3*N)
	off := headerLen
	for i := 0; i < N; i++ {
		for k := 0; k < 3; k++ {
			coords[3*i+k] = math.Float64frombits(le.Uint64(buf[off:]))
			off += 8
		}
		z := math.Float64frombits(le.Uint64(buf[off:]))
		off += 8
		if symbols != nil && symbols[i] != "" {
			syms[i] = symbols[i]
			continue
		}
		if z != math.Trunc(z) || z < 1 || z > math.MaxInt32 {
			return nil, chem.UnknownAtomError("hessian.Read", "Z="+strconv.FormatFloat(z, 'g', -1, 64))
		}
		s, err := chem.SymbolFromZ(int(z))
		if err != nil {
			return nil, chem.ErrDecorate(err, "hessian.Read")
		}
		syms[i] = s
	}
	hdata := make([]float64, n3*n3)
	for i := range hdata {
		hdata[i] = math.Float64frombits(le.Uint64(buf[off:]))
		off += 8
	}
	c, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	G, err := chem.NewGeometry(syms, c)
	if err != nil {
		return nil, err
	}
	return &Data{
		Geometry:     G,
		Hessian:      mat.NewDense(int(n3), int(n3), hdata),
		NPoints:      int(npoints),
		Displacement: disp,
	}, nil
}

// Write encodes D in the Hessian file format. Atoms with a symbol unknown
// to the atomic number table are stored with Z=0.
func Write(w io.Writer, D *Data) error {
	N := D.Geometry.Len()
	r, c := D.Hessian.Dims()
	if r != 3*N || c != 3*N {
		return chem.MalformedInputError("hessian.Write", "Hessian is %dx%d for %d atoms", r, c, N)
	}
	bw := bufio.NewWriter(w)
	le := binary.LittleEndian
	if err := binary.Write(bw, le, int32(N)); err != nil {
		return err
	}
	if err := binary.Write(bw, le, int32(D.NPoints)); err != nil {
		return err
	}
	if err := binary.Write(bw, le, D.Displacement); err != nil {
		return err
	}
	atom := make([]float64, 4)
	for i := 0; i < N; i++ {
		copy(atom, D.Geometry.Coords.RawRowView(i))
		atom[3] = float64(chem.ZFromSymbol(D.Geometry.Symbols[i]))
		if err := binary.Write(bw, le, atom); err != nil {
			return err
		}
	}
	row := make([]float64, 3*N)
	for i := 0; i < 3*N; i++ {
		mat.Row(row, i, D.Hessian)
		if err := binary.Write(bw, le, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes D to the file name, see Write.
func WriteFile(name string, D *Data) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Write(f, D); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
