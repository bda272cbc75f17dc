/*
 * assign_test.go, part of fftool.
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

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const butaneFF = `# minimal alkane parameters
ATOMS
C3   CT  12.011  -0.18   lj    3.50   0.276

BONDS
CT  CT   harm   1.529  2242.0

ANGLES
CT  CT  CT   harm   112.7   488.3

DIHEDRALS
CT  CT  CT  CT   opls   5.439  -0.209  0.837  0.0
`

func writeFF(t *testing.T, name, text string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

//butane-like chain with the given bond length and angle, torsion 180
func chainGeometry(t *testing.T, r, a float64) *Molecule {
	t.Helper()
	z := &ZMatrix{
		Atoms: []ZAtom{
			{Name: "C3"},
			{Name: "C3", IR: 1, R: r},
			{Name: "C3", IR: 2, R: r, IA: 1, A: a},
			{Name: "C3", IR: 3, R: r, IA: 2, A: a, ID: 1, D: 180.0},
		},
	}
	pos, err := CartesianFromZMatrix(z)
	if err != nil {
		t.Fatal(err)
	}
	m := &Molecule{Name: "butane"}
	rep := new(Report)
	for i, rec := range z.Atoms {
		at := m.addAtom(rec.Name, rep)
		at.Pos = pos[i]
	}
	m.Bonds = []*Bond{{I: 0, J: 1}, {I: 1, J: 2}, {I: 2, J: 3}}
	m.EnumerateTerms()
	return m
}

func TestSetFFClean(t *testing.T) {
	m := chainGeometry(t, 1.529, 112.7)
	m.FFile = writeFF(t, "butane.ff", butaneFF)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	if !rep.Empty() {
		t.Errorf("unexpected findings: %v", rep.Messages())
	}
	for _, at := range m.Atoms {
		if at.Type != "CT" || at.Charge != -0.18 {
			t.Errorf("atom not assigned: %+v", at)
		}
	}
	if len(m.Bonds) != 3 || m.Bonds[0].Name != "CT-CT" || m.Bonds[0].Pot != Harm {
		t.Errorf("bonds not assigned: %+v", m.Bonds[0])
	}
	if len(m.Angles) != 2 || len(m.Diheds) != 1 {
		t.Errorf("%d angles, %d dihedrals after assignment", len(m.Angles), len(m.Diheds))
	}
	for _, dev := range rep.BondDevs {
		if math.Abs(dev) > 1e-9 {
			t.Errorf("bond deviation %v at equilibrium geometry", dev)
		}
	}
}

func TestSetFFBondOutOfToleranceKept(t *testing.T) {
	m := chainGeometry(t, 1.2, 112.7) //0.33 A off equilibrium
	m.FFile = writeFF(t, "butane.ff", butaneFF)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	if len(m.Bonds) != 3 {
		t.Errorf("out-of-tolerance bonds removed: %d left", len(m.Bonds))
	}
	found := false
	for _, w := range rep.Warnings {
		if strings.Contains(w, "bond") {
			found = true
		}
	}
	if !found {
		t.Errorf("no warning for strained bond: %v", rep.Warnings)
	}
}

func TestSetFFAngleOutOfToleranceRemoved(t *testing.T) {
	m := chainGeometry(t, 1.529, 90.0) //22.7 deg off equilibrium
	m.FFile = writeFF(t, "butane.ff", butaneFF)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	if len(m.Angles) != 0 {
		t.Errorf("%d angles kept outside tolerance", len(m.Angles))
	}
	found := false
	for _, w := range rep.Warnings {
		if strings.Contains(w, "angle") && strings.Contains(w, "removed") {
			found = true
		}
	}
	if !found {
		t.Errorf("no removal warning: %v", rep.Warnings)
	}
}

func TestSetFFMissingDihedral(t *testing.T) {
	noDihed := strings.Split(butaneFF, "DIHEDRALS")[0]
	m := chainGeometry(t, 1.529, 112.7)
	m.FFile = writeFF(t, "nodihed.ff", noDihed)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	if len(m.Diheds) != 0 {
		t.Errorf("%d dihedrals kept without parameters", len(m.Diheds))
	}
	if len(rep.MissingDiheds) != 1 || rep.MissingDiheds[0] != "CT-CT-CT-CT" {
		t.Errorf("missing dihedrals %v", rep.MissingDiheds)
	}
}

func TestSetFFMissingAtomFatal(t *testing.T) {
	m := &Molecule{Name: "broken"}
	rep := new(Report)
	m.addAtom("Xx", rep)
	m.FFile = writeFF(t, "butane.ff", butaneFF)
	if err := m.SetFF(nil, rep); err == nil {
		t.Error("no error for atom without parameters")
	}
}

func TestSetFFNoForceField(t *testing.T) {
	m := &Molecule{Name: "bare"}
	rep := new(Report)
	m.addAtom("C3", rep)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	at := m.Atoms[0]
	if at.Pot != LJ || at.Par[0] != 0 || at.Par[1] != 0 || at.Charge != 0 {
		t.Errorf("bare atom parameters %+v", at)
	}
}

const planarFF = `# trigonal center, improper stored with the outer atoms exchanged
ATOMS
CM   CM  12.011   0.30   lj   3.55  0.293
N1   NA  14.007  -0.10   lj   3.25  0.711
N2   NB  14.007  -0.10   lj   3.25  0.711
N3   ND  14.007  -0.10   lj   3.25  0.711

BONDS
CM  NA   harm   1.400  3200.0
CM  NB   harm   1.400  3200.0
CM  ND   harm   1.400  3200.0

ANGLES
NA  CM  NB   harm   120.0  585.0
NA  CM  ND   harm   120.0  585.0
NB  CM  ND   harm   120.0  585.0

IMPROPER
NB  NA  CM  ND   opls   0.0  8.368  0.0  0.0
`

//trigonal planar center with three distinct neighbor types and a
//mirror pair of candidate impropers around it
func planarCenter(t *testing.T) *Molecule {
	t.Helper()
	m := &Molecule{Name: "planar"}
	rep := new(Report)
	for i, n := range []string{"CM", "N1", "N2", "N3"} {
		at := m.addAtom(n, rep)
		if i > 0 {
			phi := float64(i-1) * 120.0 * Deg2Rad
			at.Pos = r3.Vec{X: 1.4 * math.Cos(phi), Y: 1.4 * math.Sin(phi)}
		}
	}
	m.Bonds = []*Bond{{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}}
	m.Imprs = []*Dihedral{
		{I: 1, J: 2, K: 0, L: 3},
		{I: 2, J: 1, K: 0, L: 3},
	}
	m.EnumerateTerms()
	return m
}

func TestSetFFImproperPermutation(t *testing.T) {
	m := planarCenter(t)
	m.FFile = writeFF(t, "planar.ff", planarFF)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	//the mirror duplicate must have been dropped
	if len(m.Imprs) != 1 {
		t.Fatalf("%d impropers after assignment", len(m.Imprs))
	}
	di := m.Imprs[0]
	if di.Name != "NB-NA-CM-ND" || di.Pot != OPLS {
		t.Errorf("improper matched as %s %v", di.Name, di.Pot)
	}
	//the outer atoms follow the order of the matched template
	if [4]int{di.I, di.J, di.K, di.L} != [4]int{2, 1, 0, 3} {
		t.Errorf("improper indices %d %d %d %d", di.I, di.J, di.K, di.L)
	}
	if di.Par[1] != 8.368 {
		t.Errorf("improper parameters %v", di.Par)
	}
	if len(rep.MissingImprs) != 0 {
		t.Errorf("missing impropers %v", rep.MissingImprs)
	}
}

func TestSetFFMissingImproper(t *testing.T) {
	noImpr := strings.Split(planarFF, "IMPROPER")[0]
	m := planarCenter(t)
	m.FFile = writeFF(t, "noimpr.ff", noImpr)
	rep := new(Report)
	if err := m.SetFF(nil, rep); err != nil {
		t.Fatal(err)
	}
	if len(m.Imprs) != 0 {
		t.Errorf("%d impropers kept without parameters", len(m.Imprs))
	}
	if len(rep.MissingImprs) != 2 || rep.MissingImprs[0] != "NA-NB-CM-ND" {
		t.Errorf("missing impropers %v", rep.MissingImprs)
	}
}

func TestCanonicalizeImproper(t *testing.T) {
	//template matched as names[1] (j-i-k-l) with distinct i/j types
	i, j, k, l := canonicalizeImproper(1, 2, 3, 4, "A", "B", "D", 1)
	if [4]int{i, j, k, l} != [4]int{2, 1, 3, 4} {
		t.Errorf("permutation 1: %v", [4]int{i, j, k, l})
	}
	//names[3] swaps j/l then i/j
	i, j, k, l = canonicalizeImproper(1, 2, 3, 4, "A", "B", "D", 3)
	if [4]int{i, j, k, l} != [4]int{4, 1, 3, 2} {
		t.Errorf("permutation 3: %v", [4]int{i, j, k, l})
	}
	//identical types never swap
	i, j, k, l = canonicalizeImproper(1, 2, 3, 4, "A", "A", "A", 5)
	if [4]int{i, j, k, l} != [4]int{1, 2, 3, 4} {
		t.Errorf("identical types: %v", [4]int{i, j, k, l})
	}
	//the direct match never reorders
	i, j, k, l = canonicalizeImproper(1, 2, 3, 4, "A", "B", "D", 0)
	if [4]int{i, j, k, l} != [4]int{1, 2, 3, 4} {
		t.Errorf("direct match: %v", [4]int{i, j, k, l})
	}
}

func TestDedupImpropers(t *testing.T) {
	a := &Dihedral{I: 1, J: 2, K: 0, L: 3}
	b := &Dihedral{I: 2, J: 1, K: 0, L: 3} //mirror of a
	c := &Dihedral{I: 1, J: 3, K: 0, L: 2}
	out := dedupImpropers([]*Dihedral{a, b, c})
	if len(out) != 2 || out[0] != a || out[1] != c {
		t.Errorf("dedup result %v", out)
	}
}
