/*
 * files.go, part of govib.
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

//Package sink contains the destinations for the samples produced by wigner.Run.
//All of them are safe for concurrent use.
package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/wigner"
)

// Files writes each sample to a set of files in a directory:
// x%04d.xyz, the positions in Angstrom; p%04d.xyz, the momenta in atomic units;
// v%04d.xyz, the velocities in AMBER units; and Geometry%04d.dat, positions and
// momenta in the FMS90 format, atomic units. Samples write to different files, so no locking is needed.
type Files struct {
	Dir string
}

// NewFiles creates the directory dir, if needed, and returns a Files sink for it.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Files{Dir: dir}, nil
}

// Names returns the names of the 4 files written for sample i.
func (F *Files) Names(i int) (x, p, v, fms90 string) {
	f := func(format string) string { return filepath.Join(F.Dir, fmt.Sprintf(format, i)) }
	return f("x%04d.xyz"), f("p%04d.xyz"), f("v%04d.xyz"), f("Geometry%04d.dat")
}

// Put writes the files for sample s with index i. If one of them can't be written,
// those already written are removed.
func (F *Files) Put(i int, s *wigner.Sample) error {
	if err := F.put(i, s); err != nil {
		F.Remove(i)
		return err
	}
	return nil
}

func (F *Files) put(i int, s *wigner.Sample) error {
	x, p, v, fms := F.Names(i)
	if err := chem.XYZFileWrite(x, s.Position, chem.Bohr2A); err != nil {
		return err
	}
	if err := chem.XYZFileWrite(p, s.Momentum, 1); err != nil {
		return err
	}
	if err := chem.XYZFileWrite(v, s.Velocity, chem.AmberVelocity); err != nil {
		return err
	}
	return chem.FMS90FileWrite(fms, s.Position, s.Momentum)
}

// Remove deletes the files of sample i. Files that don't exist are ignored.
func (F *Files) Remove(i int) error {
	x, p, v, fms := F.Names(i)
	for _, name := range []string{x, p, v, fms} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
