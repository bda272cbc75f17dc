/*
 * forcefield_test.go, part of fftool.
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
	"os"
	"path/filepath"
	"testing"
)

const waterFF = `# SPC/E-like parameters
ATOMS
# name type   m       q      pot   sigma  epsilon
OW    OW  15.999  -0.8476  lj    3.165  0.650
HW    HW   1.008   0.4238  lj    0.0    0.0

BONDS
OW  HW   cons   1.0    4431.0

ANGLES
HW  OW  HW   harm   109.47  383.0

IMPROPER
CA  CA  CA  HA   opls   0.0  9.2  0.0  0.0
`

func TestReadForceField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "water.ff")
	if err := os.WriteFile(file, []byte(waterFF), 0644); err != nil {
		t.Fatal(err)
	}
	ff, err := ReadForceField(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(ff.Atoms) != 2 {
		t.Fatalf("%d atoms, want 2", len(ff.Atoms))
	}
	ow := ff.Atoms[0]
	if ow.Name != "OW" || ow.Type != "OW" || ow.Mass != 15.999 ||
		ow.Charge != -0.8476 || ow.Pot != LJ {
		t.Errorf("atom record %+v", ow)
	}
	if len(ow.Par) != 2 || ow.Par[0] != 3.165 {
		t.Errorf("atom parameters %v", ow.Par)
	}
	if len(ff.Bonds) != 1 {
		t.Fatalf("%d bonds, want 1", len(ff.Bonds))
	}
	bd := ff.Bonds[0]
	if bd.Name() != "OW-HW" || bd.Pot != Cons || bd.Eq != 1.0 {
		t.Errorf("bond record %+v", bd)
	}
	if !bd.CheckVal(1.1) || bd.CheckVal(1.3) {
		t.Error("bond tolerance check")
	}
	if len(ff.Angles) != 1 || ff.Angles[0].Eq != 109.47 {
		t.Errorf("angles %+v", ff.Angles)
	}
	an := ff.Angles[0]
	if !an.CheckVal(100.0) || an.CheckVal(90.0) {
		t.Error("angle tolerance check")
	}
	if len(ff.Imprs) != 1 || ff.Imprs[0].Name() != "CA-CA-CA-HA" {
		t.Errorf("impropers %+v", ff.Imprs)
	}
	if len(ff.Diheds) != 0 {
		t.Errorf("%d dihedrals, want 0", len(ff.Diheds))
	}
}

func TestReadForceFieldErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ff")
	if err := os.WriteFile(bad, []byte("ATOMS\nC C 12.0 0.0 morse 1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadForceField(bad); err == nil {
		t.Error("no error for unknown potential")
	}
	loose := filepath.Join(dir, "loose.ff")
	if err := os.WriteFile(loose, []byte("C C 12.0 0.0 lj 1.0 1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadForceField(loose); err == nil {
		t.Error("no error for record outside a section")
	}
	if _, err := ReadForceField(filepath.Join(dir, "missing.ff")); err == nil {
		t.Error("no error for missing file")
	}
}

func TestLoadForceFieldCache(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cached.ff")
	if err := os.WriteFile(file, []byte(waterFF), 0644); err != nil {
		t.Fatal(err)
	}
	a, err := LoadForceField(file)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadForceField(file)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load did not hit the cache")
	}
}

func TestParsePotential(t *testing.T) {
	for s, want := range map[string]Potential{
		"lj": LJ, "harm": Harm, "cons": Cons, "opls": OPLS, "OPLS": OPLS,
	} {
		got, err := ParsePotential(s)
		if err != nil || got != want {
			t.Errorf("ParsePotential(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParsePotential("buck"); err == nil {
		t.Error("no error for unknown tag")
	}
}
