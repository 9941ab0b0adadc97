/*
 * eckart.go, part of govib.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package nma

import (
	chem "github.com/rmera/govib"
	v3 "github.com/rmera/govib/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Eckart is a molecule expressed in its principal axes frame.
type Eckart struct {
	COM      *v3.Matrix //1x3, in the original frame
	Moments  [3]float64 //ascending
	Axes     *mat.Dense //3x3, each column is a principal axis
	Geometry *chem.Geometry
}

// EckartFrame centers G in its center of mass and rotates it so the principal
// axes of its moment tensor become the cartesian axes. The atom order is preserved.
// The tensor is normalized by the total mass. Degenerate moments (symmetric tops)
// are accepted, with whatever axes the eigensolver returns for the degenerate subspace.
func EckartFrame(G *chem.Geometry, masses []float64) (*Eckart, error) {
	if len(masses) != G.Len() {
		return nil, chem.MalformedInputError("EckartFrame", "%d masses for %d atoms", len(masses), G.Len())
	}
	centered, com, err := chem.MassCentrate(G.Coords, masses)
	if err != nil {
		return nil, chem.ErrDecorate(err, "EckartFrame")
	}
	tensor, err := chem.MomentTensor(G.Coords, masses)
	if err != nil {
		return nil, chem.ErrDecorate(err, "EckartFrame")
	}
	tensor.Scale(1/floats.Sum(masses), tensor)
	//The negative epsilon means the default tolerance. The orthogonality of
	//the eigenvectors of a symmetric matrix is only lost with NaNs around.
	axes, moments, err := v3.EigenWrap(tensor, -1)
	if err != nil {
		return nil, chem.NumericalError("EckartFrame", "diagonalizing the moment tensor: %s", err.Error())
	}
	rotated := v3.Zeros(G.Len())
	rotated.Mul(centered, axes)
	E := &Eckart{COM: com, Axes: axes, Geometry: G.WithCoords(rotated)}
	copy(E.Moments[:], moments)
	return E, nil
}
