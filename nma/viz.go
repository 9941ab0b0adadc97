/*
 * viz.go, part of govib.
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
	"math"

	chem "github.com/rmera/govib"
	v3 "github.com/rmera/govib/v3"
)

// ModeFrames returns nframes geometries along one period of the oscillation of mode index,
// x0 + dx*Q*sin(theta), theta going from 0 to 2pi (not included).
// They can be written with chem.XYZTrajWrite to animate the mode.
func ModeFrames(G *chem.Geometry, M *ModeSet, index, nframes int, dx float64) ([]*chem.Geometry, error) {
	if index < 0 || index >= M.Len() {
		return nil, chem.MalformedInputError("ModeFrames", "mode %d requested, there are %d", index, M.Len())
	}
	if nframes < 1 {
		return nil, chem.MalformedInputError("ModeFrames", "invalid number of frames %d", nframes)
	}
	if r, _ := M.Modes.Dims(); r != 3*G.Len() {
		return nil, chem.MalformedInputError("ModeFrames", "modes for %d atoms, geometry has %d", r/3, G.Len())
	}
	q, err := v3.NewMatrix(M.Mode(index))
	if err != nil {
		return nil, err
	}
	frames := make([]*chem.Geometry, 0, nframes)
	disp := v3.Zeros(G.Len())
	for i := 0; i < nframes; i++ {
		theta := 2 * math.Pi * float64(i) / float64(nframes)
		disp.Scale(dx*math.Sin(theta), q)
		c := v3.Zeros(G.Len())
		c.Add(G.Coords, disp)
		frames = append(frames, G.WithCoords(c))
	}
	return frames, nil
}
