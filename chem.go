/*
 * chem.go, part of govib.
 *
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
 *
 */

package chem

import (
	"fmt"

	v3 "github.com/rmera/govib/v3"
)

/**Note: A few funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the funciton on a nil object or trying to access out-of bounds
 * fields**/

// Geometry is an ordered set of atoms, with their symbols, atomic numbers and
// cartesian coordinates (in bohr). The index of an atom always refers to the
// same physical atom, in every transformation of a Geometry.
type Geometry struct {
	Symbols []string
	Z       []int //0 if unknown.
	Coords  *v3.Matrix
}

// NewGeometry returns a Geometry with the given symbols and coordinates.
// The atomic numbers are obtained from the symbols. The coordinates are not copied.
func NewGeometry(symbols []string, coords *v3.Matrix) (*Geometry, error) {
	if coords == nil {
		return nil, NewError(ErrMalformedInput, "NewGeometry", "nil coordinates")
	}
	if len(symbols) != coords.NVecs() {
		return nil, NewError(ErrMalformedInput, "NewGeometry", "%d symbols for %d coordinates", len(symbols), coords.NVecs())
	}
	G := &Geometry{Symbols: make([]string, len(symbols)), Z: make([]int, len(symbols)), Coords: coords}
	copy(G.Symbols, symbols)
	for i, s := range symbols {
		G.Z[i] = ZFromSymbol(s)
	}
	return G, nil
}

// Len returns the number of atoms in the geometry.
func (G *Geometry) Len() int {
	return len(G.Symbols)
}

// Copy returns a deep copy of the Geometry
func (G *Geometry) Copy() *Geometry {
	if G == nil {
		panic("Attempted to copy a nil Geometry")
	}
	return G.WithCoords(G.Coords.Copy())
}

// WithCoords returns a new Geometry with the atoms of G and
// the coordinates coords, which are not copied. It panics if the number
// of coordinates doesn't match the atoms.
func (G *Geometry) WithCoords(coords *v3.Matrix) *Geometry {
	if coords.NVecs() != G.Len() {
		panic(fmt.Sprintf("Wrong number of coordinates (%d) for %d atoms", coords.NVecs(), G.Len()))
	}
	N := &Geometry{Symbols: make([]string, G.Len()), Z: make([]int, G.Len()), Coords: coords}
	copy(N.Symbols, G.Symbols)
	copy(N.Z, G.Z)
	return N
}

// Masses returns a slice with the mass of each atom, in atomic units,
// taken from table. It returns an error naming the symbol if an atom is
// not in the table.
func (G *Geometry) Masses(table MassTable) ([]float64, error) {
	if table == nil {
		table = DefaultMassTable()
	}
	ret := make([]float64, G.Len())
	for i, s := range G.Symbols {
		m, err := table.Mass(s)
		if err != nil {
			return nil, ErrDecorate(err, "Geometry.Masses")
		}
		ret[i] = m
	}
	return ret, nil
}

// Mass3 returns a slice of 3N elements where each mass in masses
// is repeated 3 times (one for each cartesian coordinate).
func Mass3(masses []float64) []float64 {
	ret := make([]float64, 3*len(masses))
	for i, m := range masses {
		ret[3*i], ret[3*i+1], ret[3*i+2] = m, m, m
	}
	return ret
}
