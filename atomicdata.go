/*
 * atomicdata.go, part of govib.
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

package chem

import (
	"regexp"
	"strconv"
	"strings"
)

// Symbols ordered by atomic number. Index 0 is a placeholder
// for "no element".
var zSymbol = []string{
	"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
}

//Masses of the most abundant isotope of each element, in amu.
//The keys are uppercase, as the lookup is case-insensitive.
var symbolMass = map[string]float64{
	"H":  1.00782503207,
	"D":  2.0141017778,
	"HE": 4.00260325415,
	"LI": 7.016004548,
	"BE": 9.012182201,
	"B":  11.009305406,
	"C":  12.0,
	"N":  14.00307400478,
	"O":  15.99491461956,
	"F":  18.998403224,
	"NE": 19.99244017542,
	"NA": 22.98976928087,
	"MG": 23.985041699,
	"AL": 26.981538627,
	"SI": 27.97692653246,
	"P":  30.973761629,
	"S":  31.972070999,
	"CL": 34.968852682,
	"AR": 39.96238312251,
	"K":  38.963706679,
	"CA": 39.962590983,
	"SC": 44.955911909,
	"TI": 47.947946281,
	"V":  50.943959507,
	"CR": 51.940507472,
	"MN": 54.938045141,
	"FE": 55.934937475,
	"CO": 58.933195048,
	"NI": 57.935342907,
	"CU": 62.929597474,
	"ZN": 63.929142222,
	"GA": 68.925573587,
	"GE": 73.921177767,
	"AS": 74.921596478,
	"SE": 79.916521271,
	"BR": 78.918337087,
	"KR": 83.911506687,
	"RB": 84.911789737,
	"SR": 87.905612124,
	"Y":  88.905848295,
	"ZR": 89.904704416,
	"NB": 92.906378058,
	"MO": 97.905408169,
	"TC": 97.907216,
	"RU": 101.904349312,
	"RH": 102.905504292,
	"PD": 105.903485715,
	"AG": 106.90509682,
	"CD": 113.90335854,
	"IN": 114.903878484,
	"SN": 119.902194676,
	"SB": 120.903815686,
	"TE": 129.906224399,
	"I":  126.904472681,
	"XE": 131.904153457,
}

// SymbolFromZ returns the atomic symbol for the atomic number z.
func SymbolFromZ(z int) (string, error) {
	if z < 1 || z >= len(zSymbol) {
		return "", UnknownAtomError("SymbolFromZ", strconv.Itoa(z))
	}
	return zSymbol[z], nil
}

// ZFromSymbol returns the atomic number for the symbol s, or 0 if s
// is not a known element (isotope labels like D map to 0).
func ZFromSymbol(s string) int {
	for i, v := range zSymbol[1:] {
		if strings.EqualFold(v, s) {
			return i + 1
		}
	}
	return 0
}

// MassTable maps uppercase atomic symbols to masses in atomic units
// (electron masses).
type MassTable map[string]float64

// DefaultMassTable returns a new copy of the built-in mass table.
func DefaultMassTable() MassTable {
	ret := make(MassTable, len(symbolMass))
	for k, v := range symbolMass {
		ret[k] = v * AuPerAmu
	}
	return ret
}

// Mass returns the mass, in atomic units, for the symbol s.
func (M MassTable) Mass(s string) (float64, error) {
	m, ok := M[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, UnknownAtomError("MassTable.Mass", s)
	}
	return m, nil
}

// Override replaces, or adds, the mass of each symbol in amu by the corresponding value
// converted to atomic units.
func (M MassTable) Override(amu map[string]float64) {
	for k, v := range amu {
		M[strings.ToUpper(k)] = v * AuPerAmu
	}
}

var massOverrideRe = regexp.MustCompile(`^(\S+)-(\d+(?:\.\d*)?)$`)

// ParseMassOverrides parses strings with the form SYMBOL-MASS, where MASS is
// given in amu (for instance, "H-2.014" to deuterate all hydrogens) and returns
// a map suitable for MassTable.Override.
func ParseMassOverrides(overrides []string) (map[string]float64, error) {
	ret := make(map[string]float64, len(overrides))
	for _, o := range overrides {
		m := massOverrideRe.FindStringSubmatch(strings.TrimSpace(o))
		if m == nil {
			return nil, NewError(ErrConfig, "ParseMassOverrides", "can't parse mass override %q, expected SYMBOL-MASS", o)
		}
		mass, err := strconv.ParseFloat(m[2], 64)
		if err != nil || mass <= 0 {
			return nil, NewError(ErrConfig, "ParseMassOverrides", "invalid mass in override %q", o)
		}
		ret[strings.ToUpper(m[1])] = mass
	}
	return ret, nil
}
