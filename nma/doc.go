/*
 * doc.go, part of govib.
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
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package nma performs harmonic normal mode analysis. A molecule is taken to
its principal axes (Eckart) frame, a basis orthogonal to the rigid translations and
rotations is obtained by SVD, and the mass-weighted Hessian projected onto that basis is
diagonalized. Only non-linear molecules are supported, so 3N-6 modes are always obtained.

Frequencies are returned in atomic units and sorted in ascending order. Imaginary
frequencies are returned as negative numbers.*/
package nma
