/*
 * readers.go, part of fftool.
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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//fromMDLMol builds the molecule from an MDL mol file. The title line
//may carry the force-field filename and a "reconnect" directive; the
//counts line and the bond block use the fixed 3-column fields of the
//format.
func (m *Molecule) fromMDLMol(filename string, connect bool, box *Cell, rep *Report) error {
	f, err := os.Open(filename)
	if err != nil {
		return newError("%v", err)
	}
	defer f.Close()
	rd := bufio.NewReader(f)

	line, err := readLine(rd)
	if err != nil {
		return newError("empty mol file %s", filename)
	}
	tok := strings.Fields(line)
	if len(tok) == 0 {
		return newError("missing molecule name in %s", filename)
	}
	m.Name = tok[0]
	if len(tok) > 1 {
		m.FFile = tok[1]
		if len(tok) > 2 && strings.HasPrefix(tok[2], "rec") {
			m.guessConnect = true
		}
	}
	readLine(rd) //program/date info
	line, _ = readLine(rd)
	//the comment line can also carry the force field
	if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") && m.FFile == "" {
		tok = strings.Fields(line)
		m.FFile = tok[0]
		if len(tok) > 1 && strings.HasPrefix(tok[1], "rec") {
			m.guessConnect = true
		}
	}
	line, err = readLine(rd)
	if err != nil {
		return newError("missing counts line in %s", filename)
	}
	natom, err := fixedInt(line, 0, 3)
	if err != nil {
		return newError("bad atom count in %s: %v", filename, err)
	}
	nbond, err := fixedInt(line, 3, 6)
	if err != nil {
		return newError("bad bond count in %s: %v", filename, err)
	}
	for i := 0; i < natom; i++ {
		line, err = readLine(rd)
		if err != nil {
			return newError("truncated atom block in %s", filename)
		}
		tok = strings.Fields(line)
		if len(tok) < 4 {
			return newError("bad atom record in %s: %q", filename, line)
		}
		at := m.addAtom(tok[3], rep)
		if at.Pos.X, err = strconv.ParseFloat(tok[0], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
		if at.Pos.Y, err = strconv.ParseFloat(tok[1], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
		if at.Pos.Z, err = strconv.ParseFloat(tok[2], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
	}
	if connect && m.FFile != "" && !m.guessConnect {
		for k := 0; k < nbond; k++ {
			line, err = readLine(rd)
			if err != nil {
				return newError("truncated bond block in %s", filename)
			}
			i, e1 := fixedInt(line, 0, 3)
			j, e2 := fixedInt(line, 3, 6)
			if e1 != nil || e2 != nil {
				return newError("bad bond record in %s: %q", filename, line)
			}
			m.Bonds = append(m.Bonds, &Bond{I: i - 1, J: j - 1})
		}
	}
	return m.connectAndEnumerate(connect, box, rep)
}

//fromXYZ builds the molecule from an xyz file. The comment line holds
//the molecule name and, as its last token, the force-field filename.
func (m *Molecule) fromXYZ(filename string, connect bool, box *Cell, rep *Report) error {
	f, err := os.Open(filename)
	if err != nil {
		return newError("%v", err)
	}
	defer f.Close()
	rd := bufio.NewReader(f)

	line, err := readLine(rd)
	if err != nil {
		return newError("empty xyz file %s", filename)
	}
	natom, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return newError("bad atom count in %s: %q", filename, line)
	}
	line, _ = readLine(rd)
	tok := strings.Fields(line)
	if len(tok) == 0 {
		return newError("missing molecule name in %s", filename)
	}
	m.Name = tok[0]
	if len(tok) > 1 {
		m.FFile = tok[len(tok)-1]
	}
	for i := 0; i < natom; i++ {
		line, err = readLine(rd)
		if err != nil {
			return newError("truncated xyz file %s", filename)
		}
		tok = strings.Fields(line)
		if len(tok) < 4 {
			return newError("bad xyz record in %s: %q", filename, line)
		}
		at := m.addAtom(tok[0], rep)
		if at.Pos.X, err = strconv.ParseFloat(tok[1], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
		if at.Pos.Y, err = strconv.ParseFloat(tok[2], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
		if at.Pos.Z, err = strconv.ParseFloat(tok[3], 64); err != nil {
			return newError("bad coordinate in %s: %q", filename, line)
		}
	}
	return m.connectAndEnumerate(connect, box, rep)
}

//fromPDB builds the molecule from a PDB file. The COMPND record gives
//the name and, optionally, the force-field filename; atoms come from
//the fixed columns of HETATM and ATOM records.
func (m *Molecule) fromPDB(filename string, connect bool, box *Cell, rep *Report) error {
	f, err := os.Open(filename)
	if err != nil {
		return newError("%v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "COMPND"):
			tok := strings.Fields(line)
			if len(tok) > 1 {
				m.Name = tok[1]
			}
			if len(tok) > 2 {
				m.FFile = tok[2]
			}
		case strings.HasPrefix(line, "HETATM") || strings.HasPrefix(line, "ATOM  "):
			if len(line) < 54 {
				return newError("short atom record in %s: %q", filename, line)
			}
			at := m.addAtom(strings.TrimSpace(line[12:16]), rep)
			if at.Pos.X, err = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64); err != nil {
				return newError("bad coordinate in %s: %q", filename, line)
			}
			if at.Pos.Y, err = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64); err != nil {
				return newError("bad coordinate in %s: %q", filename, line)
			}
			if at.Pos.Z, err = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64); err != nil {
				return newError("bad coordinate in %s: %q", filename, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return newError("%v", err)
	}
	if m.Name == "" {
		return newError("missing COMPND record in %s", filename)
	}
	return m.connectAndEnumerate(connect, box, rep)
}

//WriteXYZ writes the molecule coordinates in xyz format. If symbol is
//true atom names are reduced to element symbols, which packing tools
//expect.
func (m *Molecule) WriteXYZ(w io.Writer, symbol bool) error {
	if _, err := fmt.Fprintf(w, "%d\n", m.Len()); err != nil {
		return newError("%v", err)
	}
	if m.FFile != "" {
		fmt.Fprintf(w, "%s %s\n", m.Name, m.FFile)
	} else {
		fmt.Fprintf(w, "%s\n", m.Name)
	}
	for _, at := range m.Atoms {
		name := at.Name
		if symbol {
			name = at.Symbol
		}
		if _, err := fmt.Fprintf(w, "%-5s %15.6f %15.6f %15.6f\n",
			name, at.Pos.X, at.Pos.Y, at.Pos.Z); err != nil {
			return newError("%v", err)
		}
	}
	return nil
}

//WritePDB writes the molecule as a minimal PDB with HETATM records.
func (m *Molecule) WritePDB(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "COMPND    %s\n", m.Name); err != nil {
		return newError("%v", err)
	}
	if m.FFile != "" {
		fmt.Fprintf(w, "REMARK    %s\n", m.FFile)
	}
	for i, at := range m.Atoms {
		_, err := fmt.Fprintf(w, "HETATM%5d %-4s %-3s  %4d    %8.3f%8.3f%8.3f  1.00  0.00          %2s\n",
			i+1, at.Name, m.Res, 1, at.Pos.X, at.Pos.Y, at.Pos.Z, at.Symbol)
		if err != nil {
			return newError("%v", err)
		}
	}
	_, err := fmt.Fprintln(w, "END")
	if err != nil {
		return newError("%v", err)
	}
	return nil
}

//readLine returns the next line without its terminator.
func readLine(rd *bufio.Reader) (string, error) {
	l, err := rd.ReadString('\n')
	if err != nil && l == "" {
		return "", err
	}
	return strings.TrimRight(l, "\r\n"), nil
}

//fixedInt parses the integer in the fixed-width field line[lo:hi].
func fixedInt(line string, lo, hi int) (int, error) {
	if len(line) < hi {
		hi = len(line)
	}
	if lo >= hi {
		return 0, fmt.Errorf("field out of range")
	}
	return strconv.Atoi(strings.TrimSpace(line[lo:hi]))
}
