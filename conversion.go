/*
 * conversion.go, part of govib.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import "math"

//This provides useful conversion factors and other constants.
//Everything in govib is in atomic units unless stated otherwise.

// Conversions (CODATA 2018)
const (
	A2Bohr     = 1.8897261246257702 //bohr per Angstrom
	Bohr2A     = 1 / A2Bohr
	AuPerAmu   = 1822.888486209        //electron masses per dalton
	AuPerK     = 3.166811563455608e-06 //Hartree per Kelvin (Boltzmann constant)
	AuPerCmInv = 4.556335252912088e-06 //Hartree per wavenumber
	AuPerFs    = 41.341373335          //atomic units of time per femtosecond
	H2Kcal     = 627.509474            //Hartree 2 Kcal/mol
)

// AmberVelocity converts velocities in atomic units to AMBER units
// (Angstrom per 1/20.455 ps).
const AmberVelocity = Bohr2A * AuPerFs * 1e3 / 20.455

// Beta returns 1/(kB*T) in atomic units for the temperature temp,
// in K. A temperature of 0 gives +Inf.
func Beta(temp float64) float64 {
	if temp == 0 {
		return math.Inf(1)
	}
	return 1.0 / (temp * AuPerK)
}

// Temperature is the inverse of Beta.
func Temperature(beta float64) float64 {
	if math.IsInf(beta, 1) {
		return 0
	}
	return (1.0 / beta) / AuPerK
}
