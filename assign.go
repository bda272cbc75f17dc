/*
 * assign.go, part of fftool.
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

import "fmt"

//Report collects the recoverable findings of reading and assigning a
//molecule: warnings, bonded term types with no parameters, and the
//deviations of the geometry from the force-field equilibrium values.
type Report struct {
	Warnings      []string
	MissingAngles []string
	MissingDiheds []string
	MissingImprs  []string
	BondDevs      []float64
	AngleDevs     []float64
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) missAngle(name string) {
	for _, s := range r.MissingAngles {
		if s == name {
			return
		}
	}
	r.MissingAngles = append(r.MissingAngles, name)
}

func (r *Report) missDihed(name string) {
	for _, s := range r.MissingDiheds {
		if s == name {
			return
		}
	}
	r.MissingDiheds = append(r.MissingDiheds, name)
}

func (r *Report) missImpr(name string) {
	for _, s := range r.MissingImprs {
		if s == name {
			return
		}
	}
	r.MissingImprs = append(r.MissingImprs, name)
}

//Empty reports whether nothing noteworthy was collected.
func (r *Report) Empty() bool {
	return len(r.Warnings) == 0 && len(r.MissingAngles) == 0 &&
		len(r.MissingDiheds) == 0 && len(r.MissingImprs) == 0
}

//Messages flattens the report into printable lines.
func (r *Report) Messages() []string {
	msgs := append([]string{}, r.Warnings...)
	if len(r.MissingAngles)+len(r.MissingDiheds)+len(r.MissingImprs) > 0 {
		msgs = append(msgs, "missing force field parameters")
		for _, s := range r.MissingAngles {
			msgs = append(msgs, "  angle type "+s)
		}
		for _, s := range r.MissingDiheds {
			msgs = append(msgs, "  dihedral type "+s)
		}
		for _, s := range r.MissingImprs {
			msgs = append(msgs, "  improper type "+s)
		}
	}
	return msgs
}

//SetFF assigns force-field parameters to the molecule. Atoms and bonds
//without parameters are fatal; angles are dropped when unmatched or
//when the geometry deviates beyond tolerance, dihedrals and impropers
//when unmatched. Matched bonds outside tolerance are kept with a
//warning. A molecule without a force field gets zeroed Lennard-Jones
//atoms and nothing else. Box may be nil; when periodic it affects the
//measured distances and angles.
func (m *Molecule) SetFF(box *Cell, rep *Report) error {
	if m.FFile == "" {
		for _, at := range m.Atoms {
			at.Type = at.Name
			at.Charge = 0.0
			at.Pot = LJ
			at.Par = []float64{0.0, 0.0}
		}
		return nil
	}
	ff, err := LoadForceField(m.FFile)
	if err != nil {
		return errDecorate(err, "SetFF")
	}
	if err := m.assignAtoms(ff, rep); err != nil {
		return err
	}
	if err := m.assignBonds(ff, box, rep); err != nil {
		return err
	}
	m.assignAngles(ff, box, rep)
	m.assignDiheds(ff, rep)
	m.assignImprs(ff, rep)
	return nil
}

func (m *Molecule) assignAtoms(ff *ForceField, rep *Report) error {
	var missing []string
	for _, at := range m.Atoms {
		found := false
		for _, ffat := range ff.Atoms {
			if at.Name == ffat.Name {
				if found {
					rep.warnf("duplicate atom %s in %s", at.Name, m.FFile)
				}
				at.Type = ffat.Type
				at.Charge = ffat.Charge
				at.Pot = ffat.Pot
				at.Par = ffat.Par
				at.Mass = ffat.Mass
				found = true
			}
		}
		if !found {
			missing = append(missing, at.Name)
		}
	}
	if len(missing) > 0 {
		return newError("in %s: no parameters for atoms %v", m.Name, missing)
	}
	return nil
}

func (m *Molecule) assignBonds(ff *ForceField, box *Cell, rep *Report) error {
	for _, bd := range m.Bonds {
		ti := m.Atoms[bd.I].Type
		tj := m.Atoms[bd.J].Type
		ni := ti + "-" + tj
		nj := tj + "-" + ti
		r := Distance(m.Atoms[bd.I].Pos, m.Atoms[bd.J].Pos, box)
		found := false
		for _, ffbd := range ff.Bonds {
			name := ffbd.Name()
			if name != ni && name != nj {
				continue
			}
			if found {
				rep.warnf("duplicate bond %s in %s", bd.Name, m.FFile)
			}
			bd.ITyp = ffbd.ITyp
			bd.JTyp = ffbd.JTyp
			bd.Name = name
			bd.Pot = ffbd.Pot
			bd.Par = ffbd.Par
			bd.Eq = ffbd.Eq
			if !ffbd.CheckVal(r) {
				rep.warnf("%s bond %s %d-%d %7.3f", m.Name, bd.Name, bd.I+1, bd.J+1, r)
			}
			rep.BondDevs = append(rep.BondDevs, r-ffbd.Eq)
			found = true
		}
		if !found {
			return newError("in %s: no parameters for bond %s", m.Name, ni)
		}
	}
	return nil
}

func (m *Molecule) assignAngles(ff *ForceField, box *Cell, rep *Report) {
	kept := m.Angles[:0]
	for _, an := range m.Angles {
		ti := m.Atoms[an.I].Type
		tj := m.Atoms[an.J].Type
		tk := m.Atoms[an.K].Type
		ni := ti + "-" + tj + "-" + tk
		nk := tk + "-" + tj + "-" + ti
		th, err := Angle3(m.Atoms[an.I].Pos, m.Atoms[an.J].Pos, m.Atoms[an.K].Pos, box)
		if err != nil {
			rep.warnf("%s angle %d-%d-%d: %v", m.Name, an.I+1, an.J+1, an.K+1, err)
			continue
		}
		found := false
		check := true
		for _, ffan := range ff.Angles {
			name := ffan.Name()
			if name != ni && name != nk {
				continue
			}
			if found {
				rep.warnf("duplicate angle %s in %s", an.Name, m.FFile)
			}
			an.ITyp = ffan.ITyp
			an.JTyp = ffan.JTyp
			an.KTyp = ffan.KTyp
			an.Name = name
			an.Pot = ffan.Pot
			an.Par = ffan.Par
			an.Eq = ffan.Eq
			if !ffan.CheckVal(th) {
				check = false
			}
			rep.AngleDevs = append(rep.AngleDevs, th-ffan.Eq)
			found = true
		}
		switch {
		case !check:
			rep.warnf("%s angle %s %d-%d-%d %.2f removed",
				m.Name, an.Name, an.I+1, an.J+1, an.K+1, th)
		case !found:
			rep.missAngle(ni)
		default:
			kept = append(kept, an)
		}
	}
	m.Angles = kept
}

func (m *Molecule) assignDiheds(ff *ForceField, rep *Report) {
	kept := m.Diheds[:0]
	for _, dh := range m.Diheds {
		ti := m.Atoms[dh.I].Type
		tj := m.Atoms[dh.J].Type
		tk := m.Atoms[dh.K].Type
		tl := m.Atoms[dh.L].Type
		ni := ti + "-" + tj + "-" + tk + "-" + tl
		nl := tl + "-" + tk + "-" + tj + "-" + ti
		found := false
		for _, ffdh := range ff.Diheds {
			name := ffdh.Name()
			if name != ni && name != nl {
				continue
			}
			if found {
				rep.warnf("duplicate dihedral %s in %s", dh.Name, m.FFile)
			}
			dh.ITyp = ffdh.ITyp
			dh.JTyp = ffdh.JTyp
			dh.KTyp = ffdh.KTyp
			dh.LTyp = ffdh.LTyp
			dh.Name = name
			dh.Pot = ffdh.Pot
			dh.Par = ffdh.Par
			found = true
		}
		if found {
			kept = append(kept, dh)
		} else {
			rep.missDihed(ni)
		}
	}
	m.Diheds = kept
}

//improperNames returns the six name permutations under which an
//improper with central atom third can appear in the database.
func improperNames(ti, tj, tk, tl string) [6]string {
	return [6]string{
		ti + "-" + tj + "-" + tk + "-" + tl,
		tj + "-" + ti + "-" + tk + "-" + tl,
		ti + "-" + tl + "-" + tk + "-" + tj,
		tl + "-" + ti + "-" + tk + "-" + tj,
		tj + "-" + tl + "-" + tk + "-" + ti,
		tl + "-" + tj + "-" + tk + "-" + ti,
	}
}

//canonicalizeImproper reorders the atom indices of an improper so that
//they follow the atom-type order of the matched database entry. Which
//is the matched permutation (an index into improperNames); swaps only
//happen between positions whose types differ.
func canonicalizeImproper(i, j, k, l int, ti, tj, tl string, which int) (int, int, int, int) {
	switch which {
	case 1:
		if tj != ti {
			i, j = j, i
		}
	case 2:
		if tl != tj {
			j, l = l, j
		}
	case 3:
		if tl != tj {
			j, l = l, j
		}
		if tj != ti {
			i, j = j, i
		}
	case 4:
		if tl != ti {
			i, l = l, i
		}
		if tj != ti {
			i, j = j, i
		}
	case 5:
		if tl != ti {
			i, l = l, i
		}
	}
	return i, j, k, l
}

func (m *Molecule) assignImprs(ff *ForceField, rep *Report) {
	kept := m.Imprs[:0]
	for _, di := range m.Imprs {
		ti := m.Atoms[di.I].Type
		tj := m.Atoms[di.J].Type
		tk := m.Atoms[di.K].Type
		tl := m.Atoms[di.L].Type
		names := improperNames(ti, tj, tk, tl)
		found := false
		for _, ffdi := range ff.Imprs {
			name := ffdi.Name()
			which := -1
			for w, n := range names {
				if name == n {
					which = w
					break
				}
			}
			if which < 0 {
				continue
			}
			if found {
				rep.warnf("duplicate improper %s in %s", di.Name, m.FFile)
			}
			di.I, di.J, di.K, di.L = canonicalizeImproper(di.I, di.J, di.K, di.L, ti, tj, tl, which)
			di.ITyp = ffdi.ITyp
			di.JTyp = ffdi.JTyp
			di.KTyp = ffdi.KTyp
			di.LTyp = ffdi.LTyp
			di.Name = name
			di.Pot = ffdi.Pot
			di.Par = ffdi.Par
			found = true
		}
		if found {
			kept = append(kept, di)
		} else {
			rep.missImpr(names[0])
		}
	}
	m.Imprs = kept
	m.Imprs = dedupImpropers(m.Imprs)
}

//dedupImpropers drops impropers that duplicate an earlier one with the
//first two atoms equal or exchanged; the first occurrence wins.
func dedupImpropers(imprs []*Dihedral) []*Dihedral {
	kept := imprs[:0]
	for _, di := range imprs {
		dup := false
		for _, dj := range kept {
			if (di.I == dj.J && di.J == dj.I) || (di.I == dj.I && di.J == dj.J) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, di)
		}
	}
	return kept
}
