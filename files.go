/*
 * files.go, part of govib.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/govib/v3"
)

//All the writers take a scale factor that multiplies the internal (atomic units) values
//before writing. Use Bohr2A to get the usual XYZ files in Angstrom, and 1 to write
//atomic units.

const xyzLine = "%-2s %14.6f %14.6f %14.6f\n"

// XYZWrite writes the geometry G in XYZ format to out, with each coordinate multiplied by scale.
func XYZWrite(out io.Writer, G *Geometry, scale float64) error {
	if _, err := fmt.Fprintf(out, "%d\n\n", G.Len()); err != nil {
		return err
	}
	for i, s := range G.Symbols {
		c := G.Coords.RawRowView(i)
		if _, err := fmt.Fprintf(out, xyzLine, s, scale*c[0], scale*c[1], scale*c[2]); err != nil {
			return err
		}
	}
	return nil
}

// XYZFileWrite writes the geometry G in an XYZ file with name xyzname which will
// be created fot that. If the file exist it will be overwriten.
func XYZFileWrite(xyzname string, G *Geometry, scale float64) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err = XYZWrite(w, G, scale); err != nil {
		out.Close()
		return ErrDecorate(err, "XYZFileWrite")
	}
	if err = w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// XYZTrajWrite writes several frames to out, as a multi-XYZ file.
// Each frame is preceded by its atom-count line and an empty comment line.
func XYZTrajWrite(out io.Writer, frames []*Geometry, scale float64) error {
	for i, G := range frames {
		if err := XYZWrite(out, G, scale); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// XYZRead reads the first frame of an XYZ stream. The coordinates are multiplied by scale
// (A2Bohr to read a regular XYZ file in Angstrom into atomic units).
func XYZRead(in io.Reader, scale float64) (*Geometry, error) {
	frames, err := xyzRead(in, scale, 1)
	if err != nil {
		return nil, err
	}
	return frames[0], nil
}

// XYZTrajRead reads all the frames of a multi-XYZ stream.
func XYZTrajRead(in io.Reader, scale float64) ([]*Geometry, error) {
	return xyzRead(in, scale, -1)
}

// XYZFileRead reads the first frame of the XYZ file xyzname.
func XYZFileRead(xyzname string, scale float64) (*Geometry, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, err
	}
	defer xyzfile.Close()
	G, err := XYZRead(bufio.NewReader(xyzfile), scale)
	if err != nil {
		return nil, ErrDecorate(err, "XYZFileRead")
	}
	return G, nil
}

// reads up to max frames, or all of them if max<0.
func xyzRead(in io.Reader, scale float64, max int) ([]*Geometry, error) {
	xyz := bufio.NewScanner(in)
	var frames []*Geometry
	lineno := 0
	for max < 0 || len(frames) < max {
		if !xyz.Scan() {
			break
		}
		lineno++
		head := strings.TrimSpace(xyz.Text())
		if head == "" {
			continue //trailing empty lines
		}
		natoms, err := strconv.Atoi(head)
		if err != nil || natoms < 1 {
			return nil, MalformedInputError("XYZRead", "line %d: expected the number of atoms, got %q", lineno, head)
		}
		xyz.Scan() //We dont care about the comment line
		lineno++
		symbols := make([]string, natoms)
		coords := make([]float64, 3*natoms)
		for i := 0; i < natoms; i++ {
			if !xyz.Scan() {
				return nil, MalformedInputError("XYZRead", "frame %d: expected %d atoms, found %d", len(frames), natoms, i)
			}
			lineno++
			fields := strings.Fields(xyz.Text())
			if len(fields) < 4 {
				return nil, MalformedInputError("XYZRead", "line %d ill formed", lineno)
			}
			symbols[i] = fields[0]
			for k := 0; k < 3; k++ {
				c, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, MalformedInputError("XYZRead", "line %d: %s", lineno, err.Error())
				}
				coords[3*i+k] = c * scale
			}
		}
		m, err := v3.NewMatrix(coords)
		if err != nil {
			return nil, err
		}
		G, err := NewGeometry(symbols, m)
		if err != nil {
			return nil, err
		}
		frames = append(frames, G)
	}
	if err := xyz.Err(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, MalformedInputError("XYZRead", "no frames found")
	}
	return frames, nil
}

// FMS90Write writes positions x and momenta p (which can be nil) in the
// format used for FMS90 initial conditions. Everything is written in atomic units.
func FMS90Write(out io.Writer, x, p *Geometry) error {
	if p != nil && p.Len() != x.Len() {
		return NewError(ErrMalformedInput, "FMS90Write", "%d positions but %d momenta", x.Len(), p.Len())
	}
	if _, err := fmt.Fprintf(out, "UNITS=BOHR\n%d\n", x.Len()); err != nil {
		return err
	}
	for i, s := range x.Symbols {
		c := x.Coords.RawRowView(i)
		if _, err := fmt.Fprintf(out, xyzLine, s, c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	if p == nil {
		return nil
	}
	if _, err := fmt.Fprintf(out, "# momenta\n"); err != nil {
		return err
	}
	for i := 0; i < p.Len(); i++ {
		c := p.Coords.RawRowView(i)
		if _, err := fmt.Fprintf(out, "  %14.6f %14.6f %14.6f\n", c[0], c[1], c[2]); err != nil {
			return err
		}
	}
	return nil
}

// FMS90FileWrite writes positions and momenta to the file name, in FMS90 format.
func FMS90FileWrite(name string, x, p *Geometry) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err = FMS90Write(w, x, p); err != nil {
		out.Close()
		return ErrDecorate(err, "FMS90FileWrite")
	}
	if err = w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
