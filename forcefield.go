/*
 * forcefield.go, part of fftool.
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
	"bufio"
	"os"
	"strconv"
	"strings"
)

//Default tolerances used when checking deduced bonds and angles
//against the geometry of the input configuration.
const (
	BondTol  = 0.25 //Angstrom
	AngleTol = 15.0 //degrees
)

//Potential identifies the functional form of a non-bonded or bonded
//term. The zero value means "not assigned yet".
type Potential int

const (
	PotNone Potential = iota
	LJ                //Lennard-Jones sigma/epsilon
	Harm              //harmonic
	Cons              //constrained (rigid)
	OPLS              //OPLS cosine series
)

var potNames = map[Potential]string{
	PotNone: "none",
	LJ:      "lj",
	Harm:    "harm",
	Cons:    "cons",
	OPLS:    "opls",
}

func (p Potential) String() string {
	s, ok := potNames[p]
	if !ok {
		return "invalid"
	}
	return s
}

//ParsePotential maps a potential tag from a parameter file to its
//Potential value. Unknown tags are a typed error, not a silent
//fallthrough.
func ParsePotential(s string) (Potential, error) {
	switch strings.ToLower(s) {
	case "lj":
		return LJ, nil
	case "harm":
		return Harm, nil
	case "cons":
		return Cons, nil
	case "opls":
		return OPLS, nil
	}
	return PotNone, newError("unknown potential %q", s)
}

//eqValue extracts the equilibrium value used for geometry validation
//from a parameter list. Only harmonic and constrained forms carry one.
func eqValue(pot Potential, par []float64) (float64, error) {
	switch pot {
	case Harm, Cons:
		if len(par) < 1 {
			return 0, newError("potential %v with empty parameter list", pot)
		}
		return par[0], nil
	}
	return 0, newError("potential %v has no equilibrium value", pot)
}

//FFAtom is an atom-type record in a force-field database.
type FFAtom struct {
	Name   string //atom name matched against molecule atoms
	Type   string //atom type used to name bonded terms
	Mass   float64
	Charge float64
	Pot    Potential
	Par    []float64
}

//FFBond is a bond template. Eq is precomputed from the parameters at
//load time.
type FFBond struct {
	ITyp, JTyp string
	Pot        Potential
	Par        []float64
	Eq         float64
}

//Name returns the canonical "i-j" name of the template.
func (t *FFBond) Name() string { return t.ITyp + "-" + t.JTyp }

//CheckVal reports whether an observed bond length is within BondTol of
//the template equilibrium value.
func (t *FFBond) CheckVal(r float64) bool {
	d := r - t.Eq
	if d < 0 {
		d = -d
	}
	return d < BondTol
}

//FFAngle is an angle template.
type FFAngle struct {
	ITyp, JTyp, KTyp string
	Pot              Potential
	Par              []float64
	Eq               float64
}

func (t *FFAngle) Name() string { return t.ITyp + "-" + t.JTyp + "-" + t.KTyp }

//CheckVal reports whether an observed angle is within AngleTol of the
//template equilibrium value.
func (t *FFAngle) CheckVal(theta float64) bool {
	d := theta - t.Eq
	if d < 0 {
		d = -d
	}
	return d < AngleTol
}

//FFDihedral is a dihedral or improper template. These carry no
//equilibrium value, so no geometry check applies.
type FFDihedral struct {
	ITyp, JTyp, KTyp, LTyp string
	Pot                    Potential
	Par                    []float64
}

func (t *FFDihedral) Name() string {
	return t.ITyp + "-" + t.JTyp + "-" + t.KTyp + "-" + t.LTyp
}

//ForceField is a parsed parameter database: five ordered template
//tables. It is immutable once loaded and may be shared by every
//molecule that names the same file.
type ForceField struct {
	Filename string
	Atoms    []*FFAtom
	Bonds    []*FFBond
	Angles   []*FFAngle
	Diheds   []*FFDihedral
	Imprs    []*FFDihedral
}

//cache of loaded databases, keyed by filename. The engine is
//single-threaded so a plain map suffices.
var ffcache = map[string]*ForceField{}

//LoadForceField returns the (possibly cached) database read from
//filename.
func LoadForceField(filename string) (*ForceField, error) {
	if ff, ok := ffcache[filename]; ok {
		return ff, nil
	}
	ff, err := ReadForceField(filename)
	if err != nil {
		return nil, errDecorate(err, "LoadForceField")
	}
	ffcache[filename] = ff
	return ff, nil
}

//ReadForceField parses a force-field database file. The format is
//sectioned plain text: section headers ATOMS, BONDS, ANGLES, DIHEDRALS,
//IMPROPER, one whitespace-delimited record per line, '#' comments.
func ReadForceField(filename string) (*ForceField, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errDecorate(err, "ReadForceField")
	}
	defer f.Close()
	ff := &ForceField{Filename: filename}
	section := ""
	scanner := bufio.NewScanner(f)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		low := strings.ToLower(line)
		switch {
		case strings.HasPrefix(low, "atom"):
			section = "atoms"
			continue
		case strings.HasPrefix(low, "bond"):
			section = "bonds"
			continue
		case strings.HasPrefix(low, "angl"):
			section = "angles"
			continue
		case strings.HasPrefix(low, "dihe"):
			section = "dihedrals"
			continue
		case strings.HasPrefix(low, "impro"):
			section = "improper"
			continue
		}
		tok := strings.Fields(line)
		if err := ff.parseRecord(section, tok); err != nil {
			return nil, newError("%s:%d: %v", filename, nline, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errDecorate(err, "ReadForceField")
	}
	return ff, nil
}

func parseFloats(tok []string) ([]float64, error) {
	par := make([]float64, 0, len(tok))
	for _, t := range tok {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, newError("bad numeric field %q", t)
		}
		par = append(par, v)
	}
	return par, nil
}

func (ff *ForceField) parseRecord(section string, tok []string) error {
	switch section {
	case "atoms":
		if len(tok) < 5 {
			return newError("short atom record")
		}
		m, err := strconv.ParseFloat(tok[2], 64)
		if err != nil {
			return newError("bad mass %q", tok[2])
		}
		q, err := strconv.ParseFloat(tok[3], 64)
		if err != nil {
			return newError("bad charge %q", tok[3])
		}
		pot, err := ParsePotential(tok[4])
		if err != nil {
			return err
		}
		par, err := parseFloats(tok[5:])
		if err != nil {
			return err
		}
		ff.Atoms = append(ff.Atoms, &FFAtom{Name: tok[0], Type: tok[1],
			Mass: m, Charge: q, Pot: pot, Par: par})
	case "bonds":
		if len(tok) < 3 {
			return newError("short bond record")
		}
		pot, err := ParsePotential(tok[2])
		if err != nil {
			return err
		}
		par, err := parseFloats(tok[3:])
		if err != nil {
			return err
		}
		eq, err := eqValue(pot, par)
		if err != nil {
			return err
		}
		ff.Bonds = append(ff.Bonds, &FFBond{ITyp: tok[0], JTyp: tok[1],
			Pot: pot, Par: par, Eq: eq})
	case "angles":
		if len(tok) < 4 {
			return newError("short angle record")
		}
		pot, err := ParsePotential(tok[3])
		if err != nil {
			return err
		}
		par, err := parseFloats(tok[4:])
		if err != nil {
			return err
		}
		eq, err := eqValue(pot, par)
		if err != nil {
			return err
		}
		ff.Angles = append(ff.Angles, &FFAngle{ITyp: tok[0], JTyp: tok[1],
			KTyp: tok[2], Pot: pot, Par: par, Eq: eq})
	case "dihedrals", "improper":
		if len(tok) < 5 {
			return newError("short %s record", section)
		}
		pot, err := ParsePotential(tok[4])
		if err != nil {
			return err
		}
		par, err := parseFloats(tok[5:])
		if err != nil {
			return err
		}
		d := &FFDihedral{ITyp: tok[0], JTyp: tok[1], KTyp: tok[2],
			LTyp: tok[3], Pot: pot, Par: par}
		if section == "dihedrals" {
			ff.Diheds = append(ff.Diheds, d)
		} else {
			ff.Imprs = append(ff.Imprs, d)
		}
	default:
		return newError("record outside any section")
	}
	return nil
}
