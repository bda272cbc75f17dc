/*
 * atomicdata.go, part of fftool.
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

package fftool

//A map for assigning mass to elements.
//Only elements common in molecular simulation of fluids are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"Li": 6.941,
	"B":  10.811,
	"C":  12.011,
	"N":  14.006,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.180,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.086,
	"P":  30.974,
	"S":  32.065,
	"Cl": 35.453,
	"Ar": 39.948,
	"K":  39.098,
	"Ca": 40.078,
	"Ti": 47.867,
	"Fe": 55.845,
	"Zn": 65.38,
	"Se": 78.971,
	"Br": 79.904,
	"Kr": 83.798,
	"Mo": 95.96,
	"Ru": 101.07,
	"Sn": 118.710,
	"Te": 127.60,
	"I":  126.904,
	"Xe": 131.293,
}

//Atomic numbers for the same set of elements.
var symbolNumber = map[string]int{
	"H":  1,
	"Li": 3,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Ti": 22,
	"Fe": 26,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"Kr": 36,
	"Mo": 42,
	"Ru": 44,
	"Sn": 50,
	"Te": 52,
	"I":  53,
	"Xe": 54,
}

//elementOf matches the longest known element symbol that prefixes an
//atom name ("Cl1" -> "Cl", "CT" -> "C"). The bool is false when neither
//the 2-character nor the 1-character prefix is a known element.
func elementOf(name string) (string, bool) {
	if len(name) >= 2 {
		if _, ok := symbolMass[name[:2]]; ok {
			return name[:2], true
		}
	}
	if len(name) >= 1 {
		if _, ok := symbolMass[name[:1]]; ok {
			return name[:1], true
		}
	}
	return name, false
}

//AtomicWeight returns the atomic weight for the element matching the
//atom name. Unknown names give 0 and false, the caller decides whether
//to warn.
func AtomicWeight(name string) (float64, bool) {
	symbol, ok := elementOf(name)
	if !ok {
		return 0.0, false
	}
	return symbolMass[symbol], true
}

//AtomicSymbol returns the element symbol matching the atom name. For
//unknown names it returns the name itself and false.
func AtomicSymbol(name string) (string, bool) {
	return elementOf(name)
}

//AtomicNumber returns the atomic number for the element matching the
//atom name, or 0 and false if unknown.
func AtomicNumber(name string) (int, bool) {
	symbol, ok := elementOf(name)
	if !ok {
		return 0, false
	}
	return symbolNumber[symbol], true
}
