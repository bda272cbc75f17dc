/*
 * zmat.go, part of fftool.
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
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//ZAtom is one record of a z-matrix. IR, IA and ID are 1-based
//references to previously defined atoms; zero means unset. R is a
//distance in angstrom, A and D are angles in degrees.
type ZAtom struct {
	Name string
	IR   int
	R    float64
	IA   int
	A    float64
	ID   int
	D    float64
}

//ZMatrix holds a parsed z-matrix file: the records, explicit extra
//connects and impropers (1-based atom indices), whether connectivity
//should be rebuilt from distances, and the force-field filename from
//the trailing section.
type ZMatrix struct {
	Name      string
	Atoms     []ZAtom
	Connects  [][2]int
	Improps   [][4]int
	Reconnect bool
	FFile     string
}

//raw z-matrix record before variable substitution
type zRecord struct {
	name       string
	ir, ia, id int
	rv, av, dv string
}

//ReadZMatrix parses filename. The format is: a name line, one record
//per atom (optionally numbered), distances and angles given either as
//literals or as variables resolved in a trailing "name = value"
//section, then optional "connect i j", "improper i j k l" and
//"reconnect" directives, and finally a force-field filename.
func ReadZMatrix(filename string) (*ZMatrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError("%v", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		l := sc.Text()
		if i := strings.IndexByte(l, '#'); i >= 0 {
			l = l[:i]
		}
		lines = append(lines, strings.TrimSpace(l))
	}
	if err := sc.Err(); err != nil {
		return nil, newError("%v", err)
	}

	i := 0
	for i < len(lines) && lines[i] == "" {
		i++
	}
	if i == len(lines) {
		return nil, newError("empty z-matrix file %s", filename)
	}
	z := new(ZMatrix)
	z.Name = strings.Fields(lines[i])[0]
	i++
	for i < len(lines) && lines[i] == "" {
		i++
	}

	//first pass over the records keeps distances and angles as raw
	//tokens, because variables are only defined further down the file
	var recs []zRecord
	shift := 0
	for ; i < len(lines) && lines[i] != ""; i++ {
		tok := strings.Fields(lines[i])
		if len(recs) == 0 {
			//records may carry a leading line number
			if _, err := strconv.Atoi(tok[0]); err == nil && len(tok) > 1 {
				shift = 1
			}
		}
		if shift >= len(tok) {
			return nil, newError("malformed z-matrix record in %s: %q", filename, lines[i])
		}
		tok = tok[shift:]
		if len(tok)%2 == 0 || len(tok) > 7 {
			return nil, newError("malformed z-matrix record in %s: %q", filename, lines[i])
		}
		rec := zRecord{name: tok[0]}
		refs := []*int{&rec.ir, &rec.ia, &rec.id}
		vals := []*string{&rec.rv, &rec.av, &rec.dv}
		for k := 0; 1+2*k < len(tok); k++ {
			n, err := strconv.Atoi(tok[1+2*k])
			if err != nil {
				return nil, newError("bad atom reference in %s: %q", filename, lines[i])
			}
			*refs[k] = n
			*vals[k] = tok[2+2*k]
		}
		recs = append(recs, rec)
	}

	//trailing sections: variables, directives, force field
	variable := map[string]float64{}
	for ; i < len(lines); i++ {
		l := lines[i]
		if l == "" {
			continue
		}
		tok := strings.Fields(strings.ReplaceAll(l, "=", " "))
		switch {
		case strings.EqualFold(tok[0], "variables") || strings.EqualFold(tok[0], "constants"):
		case strings.EqualFold(tok[0], "reconnect"):
			z.Reconnect = true
		case strings.EqualFold(tok[0], "connect") && len(tok) == 3:
			a, e1 := strconv.Atoi(tok[1])
			b, e2 := strconv.Atoi(tok[2])
			if e1 != nil || e2 != nil {
				return nil, newError("bad connect record in %s: %q", filename, l)
			}
			z.Connects = append(z.Connects, [2]int{a, b})
		case strings.EqualFold(tok[0], "improper") && len(tok) == 5:
			var q [4]int
			for k := 0; k < 4; k++ {
				n, err := strconv.Atoi(tok[k+1])
				if err != nil {
					return nil, newError("bad improper record in %s: %q", filename, l)
				}
				q[k] = n
			}
			z.Improps = append(z.Improps, q)
		case len(tok) == 2 && isNumber(tok[1]):
			v, _ := strconv.ParseFloat(tok[1], 64)
			variable[tok[0]] = v
		default:
			z.FFile = tok[0]
		}
	}

	//second pass substitutes the variables
	for _, rec := range recs {
		za := ZAtom{Name: rec.name, IR: rec.ir, IA: rec.ia, ID: rec.id}
		if za.R, err = zValue(rec.rv, variable); err != nil {
			return nil, errDecorate(err, "ReadZMatrix "+filename)
		}
		if za.A, err = zValue(rec.av, variable); err != nil {
			return nil, errDecorate(err, "ReadZMatrix "+filename)
		}
		if za.D, err = zValue(rec.dv, variable); err != nil {
			return nil, errDecorate(err, "ReadZMatrix "+filename)
		}
		z.Atoms = append(z.Atoms, za)
	}
	return z, nil
}

//zValue resolves a raw z-matrix token: a literal number, a variable
//name, or a variable name with a leading minus sign.
func zValue(s string, variable map[string]float64) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	neg := false
	name := s
	if strings.HasPrefix(s, "-") {
		neg = true
		name = s[1:]
	}
	v, ok := variable[name]
	if !ok {
		return 0, newError("undefined z-matrix variable %s", s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

//CartesianFromZMatrix places the atoms of z in Cartesian space. The
//first atom sits at the origin, the second on the +x axis and the
//third in the xy plane; every later atom is placed from its distance,
//angle and dihedral references, which must point to atoms already
//defined.
func CartesianFromZMatrix(z *ZMatrix) ([]r3.Vec, error) {
	pos := make([]r3.Vec, len(z.Atoms))
	for i, rec := range z.Atoms {
		switch {
		case i == 0:
			if rec.IR != 0 {
				return nil, newError("first z-matrix atom cannot reference another atom")
			}
		case i == 1:
			ir, err := zref(rec.IR, i)
			if err != nil {
				return nil, err
			}
			pos[i] = r3.Vec{X: pos[ir].X + rec.R}
		case i == 2:
			ir, err := zref(rec.IR, i)
			if err != nil {
				return nil, err
			}
			ia, err := zref(rec.IA, i)
			if err != nil {
				return nil, err
			}
			d := r3.Sub(pos[ia], pos[ir])
			theta := math.Acos(d.X / r3.Norm(d))
			if d.Y < 0 {
				theta = 2*math.Pi - theta
			}
			theta -= rec.A * Deg2Rad
			pos[i] = r3.Vec{
				X: pos[ir].X + rec.R*math.Cos(theta),
				Y: pos[ir].Y + rec.R*math.Sin(theta),
			}
		default:
			ir, err := zref(rec.IR, i)
			if err != nil {
				return nil, err
			}
			ia, err := zref(rec.IA, i)
			if err != nil {
				return nil, err
			}
			id, err := zref(rec.ID, i)
			if err != nil {
				return nil, err
			}
			vB, vC, vD := pos[ir], pos[ia], pos[id]
			vBC := r3.Sub(vC, vB)
			vCD := r3.Sub(vD, vC)
			bc := r3.Norm(vBC)
			if bc < appzero {
				return nil, newError("coincident reference atoms in z-matrix record %d", i+1)
			}
			theta := rec.A * Deg2Rad
			phi := rec.D * Deg2Rad
			bB := rec.R * math.Cos(theta)
			bA := rec.R * math.Sin(theta)
			vb := r3.Sub(vC, r3.Scale((bc-bB)/bc, vBC))
			vn := r3.Unit(r3.Cross(vCD, vBC))
			vm := r3.Unit(r3.Cross(vBC, vn))
			pos[i] = r3.Add(vb, r3.Add(r3.Scale(bA*math.Cos(phi), vm), r3.Scale(bA*math.Sin(phi), vn)))
		}
	}
	return pos, nil
}

//zref converts a 1-based z-matrix reference into an index, requiring
//it to point before atom i.
func zref(ref, i int) (int, error) {
	if ref < 1 || ref > i {
		return 0, newError("z-matrix record %d references undefined atom %d", i+1, ref)
	}
	return ref - 1, nil
}

//fromZmat builds the molecule from a z-matrix file.
func (m *Molecule) fromZmat(filename string, connect bool, box *Cell, rep *Report) error {
	z, err := ReadZMatrix(filename)
	if err != nil {
		return err
	}
	m.Name = z.Name
	m.FFile = z.FFile
	m.guessConnect = z.Reconnect
	pos, err := CartesianFromZMatrix(z)
	if err != nil {
		return errDecorate(err, filename)
	}
	for i, rec := range z.Atoms {
		at := m.addAtom(rec.Name, rep)
		at.Pos = pos[i]
	}
	if connect && m.FFile != "" && !z.Reconnect {
		//bonds follow directly from the z-matrix references
		for i, rec := range z.Atoms {
			if i == 0 {
				continue
			}
			m.Bonds = append(m.Bonds, &Bond{I: i, J: rec.IR - 1})
		}
		for _, c := range z.Connects {
			m.Bonds = append(m.Bonds, &Bond{I: c[0] - 1, J: c[1] - 1})
		}
		for _, q := range z.Improps {
			m.Imprs = append(m.Imprs, &Dihedral{I: q[0] - 1, J: q[1] - 1, K: q[2] - 1, L: q[3] - 1})
		}
	}
	return m.connectAndEnumerate(connect, box, rep)
}
