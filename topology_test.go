/*
 * topology_test.go, part of fftool.
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

import "testing"

func chainMolecule(n int) *Molecule {
	m := &Molecule{Name: "chain"}
	for i := 0; i < n; i++ {
		m.Atoms = append(m.Atoms, &Atom{Name: "C", TypeIndex: -1})
	}
	for i := 0; i < n-1; i++ {
		m.Bonds = append(m.Bonds, &Bond{I: i, J: i + 1})
	}
	return m
}

func TestEnumerateChain(t *testing.T) {
	m := chainMolecule(4)
	m.EnumerateTerms()
	if len(m.Angles) != 2 {
		t.Errorf("%d angles, want 2", len(m.Angles))
	}
	if len(m.Diheds) != 1 {
		t.Errorf("%d dihedrals, want 1", len(m.Diheds))
	}
	if len(m.Imprs) != 0 {
		t.Errorf("%d impropers, want 0", len(m.Imprs))
	}
	for _, an := range m.Angles {
		if an.J != 1 && an.J != 2 {
			t.Errorf("angle vertex %d not a central atom", an.J)
		}
	}
	dh := m.Diheds[0]
	seq := [4]int{dh.I, dh.J, dh.K, dh.L}
	if seq != [4]int{0, 1, 2, 3} && seq != [4]int{3, 2, 1, 0} {
		t.Errorf("dihedral chain %v", seq)
	}
}

func TestEnumerateImproperCenter(t *testing.T) {
	//central atom 0 with three neighbors
	m := &Molecule{Name: "star"}
	for i := 0; i < 4; i++ {
		m.Atoms = append(m.Atoms, &Atom{Name: "C", TypeIndex: -1})
	}
	m.Bonds = []*Bond{{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}}
	m.EnumerateTerms()
	if len(m.Angles) != 3 {
		t.Errorf("%d angles, want 3", len(m.Angles))
	}
	if len(m.Imprs) != 1 {
		t.Fatalf("%d impropers, want 1", len(m.Imprs))
	}
	if m.Imprs[0].K != 0 {
		t.Errorf("improper center at position 3 is %d, want 0", m.Imprs[0].K)
	}
}

func TestEnumerateKeepsSuppliedImpropers(t *testing.T) {
	m := &Molecule{Name: "star"}
	for i := 0; i < 4; i++ {
		m.Atoms = append(m.Atoms, &Atom{Name: "C", TypeIndex: -1})
	}
	m.Bonds = []*Bond{{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}}
	m.Imprs = []*Dihedral{{I: 3, J: 2, K: 0, L: 1}}
	m.EnumerateTerms()
	if len(m.Imprs) != 1 || m.Imprs[0].I != 3 {
		t.Errorf("supplied improper replaced: %+v", m.Imprs)
	}
}

func TestNeighbors(t *testing.T) {
	m := chainMolecule(3)
	nb := m.neighbors(1)
	if len(nb) != 2 || nb[0] != 0 || nb[1] != 2 {
		t.Errorf("neighbors of 1: %v", nb)
	}
}
