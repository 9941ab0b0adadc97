/*
 * doc.go, part of govib.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of govib. It provides the Geometry structure,
atomic data (symbols and masses), unit conversions, the error type shared by all the
packages of the library, and readers/writers for XYZ and FMS90 files.

	**govib Capabilities**

    Reads a minimum-energy geometry and its Hessian from a binary file (package hessian).

    Obtains the principal-axes (Eckart) frame of a molecule, builds the vibrational
	basis orthogonal to translations and rotations, and solves for the harmonic
	normal modes (package nma).

    Samples the quantum harmonic Wigner distribution at any temperature, including
	0 K, producing displaced geometries, momenta, velocities and diagnostic energies
	(package wigner). Samples are obtained concurrently and reproducibly.

    Writes the samples as XYZ files, FMS90 initial conditions, compressed
	multi-frame trajectories or a SQLite database (package sink).

    Plots histograms of the sampled energies (package chemplot).

Everything in govib is in atomic units (bohr, electron masses, hartree, atomic
units of time) unless stated otherwise. The conversion constants are in this package.

govib uses its own type for coordinates, v3.Matrix, based on gonum's mat.Dense. Each row
of a v3.Matrix represents one point in space.*/
package chem
