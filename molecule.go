/*
 * molecule.go, part of fftool.
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
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//Atom is an atom in a molecule. Mass, Symbol and atomic number come
//from the element matching the name; Type, Charge, Pot and Par are
//filled by force-field assignment. TypeIndex stays -1 until the System
//consolidation assigns global indices.
type Atom struct {
	Name      string //name as given in the input
	UName     string //unique short name within the molecule
	Type      string //force-field atom type
	UType     string //unique type, RES-NAME-n
	Symbol    string
	Mass      float64
	Charge    float64
	Pot       Potential
	Par       []float64
	Pos       r3.Vec
	TypeIndex int
}

//Bond is a covalent bond between atoms I and J (0-based indices into
//the owning molecule's atom list). Name, types and parameters are set
//by force-field assignment.
type Bond struct {
	I, J       int
	Name       string
	ITyp, JTyp string
	Pot        Potential
	Par        []float64
	Eq         float64
	TypeIndex  int
}

//Angle is a valence angle with vertex J.
type Angle struct {
	I, J, K          int
	Name             string
	ITyp, JTyp, KTyp string
	Pot              Potential
	Par              []float64
	Eq               float64
	TypeIndex        int
}

//Dihedral is a torsion over the chain I-J-K-L. The same shape also
//represents impropers, which differ only in how they are matched
//against the database (the central atom sits at position K).
type Dihedral struct {
	I, J, K, L             int
	Name                   string
	ITyp, JTyp, KTyp, LTyp string
	Pot                    Potential
	Par                    []float64
	TypeIndex              int
}

//Provenance records where a molecule's connectivity came from.
type Provenance string

const (
	TopolNone  Provenance = "none"
	TopolFile  Provenance = "file"
	TopolGuess Provenance = "guess"
	TopolPBC   Provenance = "pbc"
)

//Molecule owns an atom list and the bonded terms derived for it. One
//Molecule describes a species; Nmol copies of it go into the System.
type Molecule struct {
	Name     string
	Res      string //3-char residue name derived from Name
	Filename string
	FFile    string //force-field database filename, empty for none
	FF       *ForceField
	Atoms    []*Atom
	Bonds    []*Bond
	Angles   []*Angle
	Diheds   []*Dihedral
	Imprs    []*Dihedral
	Mass     float64
	Nmol     int
	Topol    Provenance

	guessConnect bool
}

//Len returns the number of atoms in the molecule.
func (m *Molecule) Len() int { return len(m.Atoms) }

//Charge returns the molecule net charge from the atom partial charges.
//The tiny offset keeps a "-0.0000" from being printed for neutral
//molecules.
func (m *Molecule) Charge() float64 {
	q := 0.0
	for _, at := range m.Atoms {
		q += at.Charge
	}
	return q + 1e-12
}

func (m *Molecule) String() string {
	return fmt.Sprintf("molecule %s  %d atoms  m = %8.4f", m.Name, m.Len(), m.Mass)
}

//addAtom appends a new atom named name, resolving its element data.
//Unknown elements get zero mass and a warning in rep.
func (m *Molecule) addAtom(name string, rep *Report) *Atom {
	at := &Atom{Name: name, TypeIndex: -1}
	w, ok := AtomicWeight(name)
	if !ok {
		rep.warnf("unknown atomic weight for atom %s", name)
	}
	at.Mass = w
	at.Symbol, _ = AtomicSymbol(name)
	m.Atoms = append(m.Atoms, at)
	m.Mass += w
	return at
}

//indexAtomNames sets unique short atom names by appending serial
//numbers to the element symbol. Elements occurring once keep the bare
//symbol.
func (m *Molecule) indexAtomNames() {
	count := map[string]int{}
	for _, at := range m.Atoms {
		s, _ := AtomicSymbol(at.Name)
		count[s]++
	}
	seen := map[string]int{}
	for _, at := range m.Atoms {
		s, _ := AtomicSymbol(at.Name)
		seen[s]++
		if count[s] > 1 {
			at.UName = s + fmt.Sprintf("%d", seen[s])
		} else {
			at.UName = s
		}
	}
}

//indexAtomTypes sets unique atom types as RES-NAME-n, used by
//consumers that require globally unique per-atom types.
func (m *Molecule) indexAtomTypes() {
	seen := map[string]int{}
	for _, at := range m.Atoms {
		seen[at.Name]++
		at.UType = fmt.Sprintf("%s-%s-%d", m.Res, at.Name, seen[at.Name])
	}
}

//residueName derives the 3-char residue from the molecule name,
//dropping charge signs.
func residueName(name string) string {
	r := strings.NewReplacer("-", "", "+", "").Replace(name)
	if len(r) > 3 {
		r = r[:3]
	}
	return r
}

//ReadMolecule reads a molecule description from filename, dispatching
//on the extension (.zmat, .mol, .xyz, .pdb). If connect is true and the
//file names a force field, connectivity is read or inferred, bonded
//terms are enumerated, and force-field parameters are assigned and
//validated against the geometry (box may be nil for an isolated
//molecule). Recoverable findings go into the returned Report; the
//error covers the fatal conditions.
func ReadMolecule(filename string, connect bool, box *Cell) (*Molecule, *Report, error) {
	m := &Molecule{Filename: filename, Topol: TopolNone}
	rep := new(Report)
	var err error
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "zmat":
		err = m.fromZmat(filename, connect, box, rep)
	case "mol":
		err = m.fromMDLMol(filename, connect, box, rep)
	case "xyz":
		err = m.fromXYZ(filename, connect, box, rep)
	case "pdb":
		err = m.fromPDB(filename, connect, box, rep)
	default:
		return nil, nil, newError("unsupported molecule file extension in %s", filename)
	}
	if err != nil {
		return nil, nil, errDecorate(err, "ReadMolecule")
	}
	if err = m.SetFF(box, rep); err != nil {
		return nil, nil, errDecorate(err, "ReadMolecule")
	}
	m.Res = residueName(m.Name)
	m.indexAtomNames()
	m.indexAtomTypes()
	return m, rep, nil
}

//connectAndEnumerate fills bonds (read or inferred) and derives the
//remaining bonded terms. Used by the format readers after coordinates
//are in place.
func (m *Molecule) connectAndEnumerate(connect bool, box *Cell, rep *Report) error {
	if !connect || m.FFile == "" {
		return nil
	}
	if m.guessConnect || len(m.Bonds) == 0 {
		if err := m.InferConnectivity(box); err != nil {
			return err
		}
		if box != nil && box.Periodic() {
			m.Topol = TopolPBC
		} else {
			m.Topol = TopolGuess
		}
	} else {
		m.Topol = TopolFile
	}
	m.EnumerateTerms()
	return nil
}
