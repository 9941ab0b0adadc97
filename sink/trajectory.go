/*
 * trajectory.go, part of govib.
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

package sink

import (
	"bufio"
	"os"
	"sort"
	"sync"

	chem "github.com/rmera/govib"
	"github.com/rmera/govib/wigner"
)

// Trajectory collects the positions of all the samples and writes them, in Angstrom and
// sorted by sample index, as a multi-XYZ file when closed. The file is compressed
// according to its extension, see CompressionFor.
type Trajectory struct {
	name   string
	mu     sync.Mutex
	frames map[int]*chem.Geometry
	closed bool
}

// NewTrajectory returns a Trajectory that will write to the file name.
func NewTrajectory(name string) *Trajectory {
	return &Trajectory{name: name, frames: make(map[int]*chem.Geometry)}
}

// Put stores the positions of sample s, with index i.
func (T *Trajectory) Put(i int, s *wigner.Sample) error {
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.closed {
		return chem.NewError(chem.ErrConfig, "Trajectory.Put", "trajectory %s already closed", T.name)
	}
	T.frames[i] = s.Position
	return nil
}

// Remove drops the frame of sample i, if present.
func (T *Trajectory) Remove(i int) error {
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.closed {
		return chem.NewError(chem.ErrConfig, "Trajectory.Remove", "trajectory %s already closed", T.name)
	}
	delete(T.frames, i)
	return nil
}

// Len returns the number of frames stored.
func (T *Trajectory) Len() int {
	T.mu.Lock()
	defer T.mu.Unlock()
	return len(T.frames)
}

// Close writes the trajectory file. The Trajectory can't be used after this call.
func (T *Trajectory) Close() error {
	T.mu.Lock()
	defer T.mu.Unlock()
	if T.closed {
		return nil
	}
	T.closed = true
	idx := make([]int, 0, len(T.frames))
	for i := range T.frames {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	frames := make([]*chem.Geometry, 0, len(idx))
	for _, i := range idx {
		frames = append(frames, T.frames[i])
	}
	f, err := os.Create(T.name)
	if err != nil {
		return err
	}
	bf := bufio.NewWriter(f)
	c, err := NewCompressor(bf, CompressionFor(T.name))
	if err != nil {
		f.Close()
		return err
	}
	if err = chem.XYZTrajWrite(c, frames, chem.Bohr2A); err != nil {
		c.Close()
		f.Close()
		return chem.ErrDecorate(err, "Trajectory.Close")
	}
	if err = c.Close(); err != nil {
		f.Close()
		return err
	}
	if err = bf.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTrajectory reads all the frames of a trajectory written by Trajectory, converting them to bohr.
func ReadTrajectory(name string) ([]*chem.Geometry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := NewDecompressor(bufio.NewReader(f), CompressionFor(name))
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return chem.XYZTrajRead(d, chem.A2Bohr)
}
