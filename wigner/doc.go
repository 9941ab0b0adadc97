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

/*Package wigner samples the harmonic Wigner distribution of a molecule. Each normal mode
is treated as an independent quantum harmonic oscillator, whose Wigner function at any
temperature is a gaussian both in the coordinate and in the momentum. The sampled normal mode
coordinates and momenta are taken back to cartesian positions, momenta and velocities.

Samples are independent, so an ensemble is obtained concurrently by Run. Each sample
has its own random stream, derived from the seed of the run and the sample index, so
a run can be reproduced exactly from its seed, with any number of workers.*/
package wigner
