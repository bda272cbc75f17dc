/*
 * topology.go, part of fftool.
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

import "strings"

//InferConnectivity determines the bond list from interatomic
//distances, accepting a pair when a bond template exists for the two
//atom types and the distance lies within the template tolerance.
//Distances honor box when it is periodic. Every atom name must have a
//template in the force field; all unresolvable names are collected
//into a single error.
func (m *Molecule) InferConnectivity(box *Cell) error {
	ff, err := LoadForceField(m.FFile)
	if err != nil {
		return errDecorate(err, "InferConnectivity")
	}
	if err := m.resolveTypes(ff); err != nil {
		return errDecorate(err, "InferConnectivity")
	}
	natom := m.Len()
	for i := 0; i < natom-1; i++ {
		for j := i + 1; j < natom; j++ {
			r := Distance(m.Atoms[i].Pos, m.Atoms[j].Pos, box)
			ni := m.Atoms[i].Type + "-" + m.Atoms[j].Type
			nj := m.Atoms[j].Type + "-" + m.Atoms[i].Type
			for _, ffbd := range ff.Bonds {
				name := ffbd.Name()
				if (name == ni || name == nj) && ffbd.CheckVal(r) {
					m.Bonds = append(m.Bonds, &Bond{I: i, J: j})
				}
			}
		}
	}
	return nil
}

//resolveTypes maps every atom name to its force-field type, collecting
//all misses into one error.
func (m *Molecule) resolveTypes(ff *ForceField) error {
	var missing []string
	for _, at := range m.Atoms {
		found := false
		for _, ffat := range ff.Atoms {
			if at.Name == ffat.Name {
				at.Type = ffat.Type
				found = true
			}
		}
		if !found {
			missing = append(missing, at.Name)
		}
	}
	if len(missing) > 0 {
		return newError("in %s: no parameters for atoms %s",
			m.Name, strings.Join(missing, " "))
	}
	return nil
}

//neighbors returns the atoms bonded to atom i, in bond-list order.
func (m *Molecule) neighbors(i int) []int {
	var nb []int
	for _, bd := range m.Bonds {
		switch i {
		case bd.I:
			nb = append(nb, bd.J)
		case bd.J:
			nb = append(nb, bd.I)
		}
	}
	return nb
}

//EnumerateTerms derives angles, dihedrals and candidate impropers from
//the bond list. Angles come from pairs of neighbors around each
//central atom; dihedrals from pairs of bonds flanking each bond;
//impropers are generated for atoms with exactly three neighbors, the
//center placed third, unless an explicit improper list was supplied.
func (m *Molecule) EnumerateTerms() {
	natom := m.Len()
	for i := 0; i < natom; i++ {
		neib := m.neighbors(i)
		for k := 0; k < len(neib)-1; k++ {
			for l := k + 1; l < len(neib); l++ {
				m.Angles = append(m.Angles, &Angle{I: neib[k], J: i, K: neib[l]})
			}
		}
	}

	nbond := len(m.Bonds)
	for k := 0; k < nbond; k++ {
		bk := m.Bonds[k]
		for l := 0; l < nbond; l++ {
			if l == k {
				continue
			}
			bl := m.Bonds[l]
			var head int
			switch bk.I {
			case bl.I:
				head = bl.J
			case bl.J:
				head = bl.I
			default:
				continue
			}
			for j := 0; j < nbond; j++ {
				if j == k || j == l {
					continue
				}
				bj := m.Bonds[j]
				switch bk.J {
				case bj.I:
					m.Diheds = append(m.Diheds, &Dihedral{I: head, J: bk.I, K: bk.J, L: bj.J})
				case bj.J:
					m.Diheds = append(m.Diheds, &Dihedral{I: head, J: bk.I, K: bk.J, L: bj.I})
				}
			}
		}
	}

	if len(m.Imprs) == 0 {
		for i := 0; i < natom; i++ {
			neib := m.neighbors(i)
			if len(neib) == 3 {
				m.Imprs = append(m.Imprs, &Dihedral{I: neib[0], J: neib[1], K: i, L: neib[2]})
			}
		}
	}
}
