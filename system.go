/*
 * system.go, part of fftool.
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

	"gonum.org/v1/gonum/spatial/r3"
)

//MixRule selects how Lennard-Jones sigma is combined for cross
//interactions. Epsilon always mixes geometrically.
type MixRule byte

const (
	MixGeometric  MixRule = 'g'
	MixArithmetic MixRule = 'a'
)

//ParseMixRule accepts "g"/"geometric" and "a"/"arithmetic".
func ParseMixRule(s string) (MixRule, error) {
	switch s {
	case "g", "geometric":
		return MixGeometric, nil
	case "a", "arithmetic":
		return MixArithmetic, nil
	}
	return 0, newError("unknown mixing rule %q", s)
}

//VdW is a non-bonded interaction between two atom types.
type VdW struct {
	I, J       string //atom names
	ITyp, JTyp int    //global type indices
	Pot        Potential
	Par        []float64
}

//newVdW builds the cross interaction for iat and jat. The potentials
//and parameter list lengths must agree; Lennard-Jones parameters for
//unlike atoms follow mix.
func newVdW(iat, jat *Atom, mix MixRule) (*VdW, error) {
	if iat.Pot != jat.Pot {
		return nil, newError("incompatible potential types %s %s", iat.Name, jat.Name)
	}
	if len(iat.Par) != len(jat.Par) {
		return nil, newError("different lengths in parameter lists %s %s", iat.Name, jat.Name)
	}
	nb := &VdW{I: iat.Name, J: jat.Name, ITyp: iat.TypeIndex, JTyp: jat.TypeIndex,
		Pot: iat.Pot, Par: iat.Par}
	if nb.Pot == LJ && iat.Name != jat.Name {
		//par is [sigma, epsilon]; epsilon always mixes geometrically
		sig := math.Sqrt(iat.Par[0] * jat.Par[0])
		if mix == MixArithmetic {
			sig = (iat.Par[0] + jat.Par[0]) / 2
		}
		eps := math.Sqrt(iat.Par[1] * jat.Par[1])
		nb.Par = []float64{sig, eps}
	}
	return nb, nil
}

//System is the assembled simulation system: the species with their
//counts, the box, and the consolidated type tables with the non-bonded
//pair interactions.
type System struct {
	Spec []*Molecule
	Box  *Cell
	Mix  MixRule

	AtTypes []*Atom
	BdTypes []*Bond
	AnTypes []*Angle
	DhTypes []*Dihedral
	DiTypes []*Dihedral
	VdW     []*VdW

	coords []r3.Vec //packed coordinates for the full system, optional
	title  string
}

//typeRegistry keeps first-occurrence order while deduplicating by
//name.
type typeRegistry struct {
	index map[string]int
	order []string
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{index: map[string]int{}}
}

//add returns the index for name, registering it if new.
func (tr *typeRegistry) add(name string) (int, bool) {
	if i, ok := tr.index[name]; ok {
		return i, false
	}
	i := len(tr.order)
	tr.index[name] = i
	tr.order = append(tr.order, name)
	return i, true
}

//NewSystem consolidates the species into global type tables, writes
//the resulting 0-based type indices back into every atom and bonded
//term, and generates the non-bonded interactions for all unordered
//pairs of atom types, self pairs included. Atom types are keyed by
//atom name, bonded types by their matched force-field name; the first
//occurrence of each becomes the representative.
func NewSystem(spec []*Molecule, box *Cell, mix MixRule) (*System, error) {
	s := &System{Spec: spec, Box: box, Mix: mix}

	atreg := newTypeRegistry()
	bdreg := newTypeRegistry()
	anreg := newTypeRegistry()
	dhreg := newTypeRegistry()
	direg := newTypeRegistry()
	for _, sp := range spec {
		for _, at := range sp.Atoms {
			if i, fresh := atreg.add(at.Name); fresh {
				s.AtTypes = append(s.AtTypes, at)
				at.TypeIndex = i
			}
		}
		for _, bd := range sp.Bonds {
			if i, fresh := bdreg.add(bd.Name); fresh {
				s.BdTypes = append(s.BdTypes, bd)
				bd.TypeIndex = i
			}
		}
		for _, an := range sp.Angles {
			if i, fresh := anreg.add(an.Name); fresh {
				s.AnTypes = append(s.AnTypes, an)
				an.TypeIndex = i
			}
		}
		for _, dh := range sp.Diheds {
			if i, fresh := dhreg.add(dh.Name); fresh {
				s.DhTypes = append(s.DhTypes, dh)
				dh.TypeIndex = i
			}
		}
		for _, di := range sp.Imprs {
			if i, fresh := direg.add(di.Name); fresh {
				s.DiTypes = append(s.DiTypes, di)
				di.TypeIndex = i
			}
		}
	}

	//back-propagate indices to every term of every species
	for _, sp := range spec {
		for _, at := range sp.Atoms {
			at.TypeIndex = atreg.index[at.Name]
		}
		for _, bd := range sp.Bonds {
			bd.TypeIndex = bdreg.index[bd.Name]
		}
		for _, an := range sp.Angles {
			an.TypeIndex = anreg.index[an.Name]
		}
		for _, dh := range sp.Diheds {
			dh.TypeIndex = dhreg.index[dh.Name]
		}
		for _, di := range sp.Imprs {
			di.TypeIndex = direg.index[di.Name]
		}
	}

	for i := 0; i < len(s.AtTypes); i++ {
		for j := i; j < len(s.AtTypes); j++ {
			nb, err := newVdW(s.AtTypes[i], s.AtTypes[j], mix)
			if err != nil {
				return nil, errDecorate(err, "NewSystem")
			}
			s.VdW = append(s.VdW, nb)
		}
	}
	return s, nil
}

//NAtoms returns the total atom count, species counts included.
func (s *System) NAtoms() int {
	n := 0
	for _, sp := range s.Spec {
		n += sp.Nmol * sp.Len()
	}
	return n
}

//Mass returns the total mass of the system in g/mol.
func (s *System) Mass() float64 {
	m := 0.0
	for _, sp := range s.Spec {
		m += float64(sp.Nmol) * sp.Mass
	}
	return m
}

//Density returns the system density in g/cm3, or zero without a box.
func (s *System) Density() float64 {
	if s.Box == nil || s.Box.Volume == 0 {
		return 0
	}
	return s.Mass() / (avogadro * s.Box.Volume * 1e-24)
}

//SetPackedCoords installs full-system coordinates, typically read from
//the output of a packing tool, checking the count against the species.
func (s *System) SetPackedCoords(title string, pos []r3.Vec) error {
	if len(pos) != s.NAtoms() {
		return newError("coordinate count %d does not match system size %d",
			len(pos), s.NAtoms())
	}
	s.title = title
	s.coords = pos
	return nil
}

//PackedCoords returns the installed full-system coordinates, or nil.
func (s *System) PackedCoords() []r3.Vec { return s.coords }

//Title returns the title of the installed coordinate set.
func (s *System) Title() string { return s.title }
