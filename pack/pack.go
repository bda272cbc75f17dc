//Package pack prepares the input for a packing tool and reads back
//the packed coordinates. The generated input places the requested
//number of copies of each species inside the simulation cell, which
//for triclinic cells is expressed as six bounding planes.
package pack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/molsimtools/fftool"
	"gonum.org/v1/gonum/spatial/r3"
)

//DefaultTol is the packing tolerance in angstrom.
const DefaultTol = 2.5

//SpeciesFile returns the name of the coordinate file written for a
//species, derived from its input filename.
func SpeciesFile(m *fftool.Molecule) string {
	base := m.Filename
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base + "_pack.xyz"
}

//WriteSpeciesFiles writes one xyz file per species with atom names
//reduced to element symbols, as the packing tool expects.
func WriteSpeciesFiles(s *fftool.System) error {
	for _, sp := range s.Spec {
		f, err := os.Create(SpeciesFile(sp))
		if err != nil {
			return err
		}
		if err := sp.WriteXYZ(f, true); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

//plane through three points, in the a*x+b*y+c*z=d form the packing
//tool uses for constraints.
type plane struct {
	a, b, c, d float64
}

func newPlane(p, q, r r3.Vec) plane {
	w := r3.Cross(r3.Sub(q, p), r3.Sub(r, p))
	return plane{w.X, w.Y, w.Z, r3.Dot(w, p)}
}

func (pl plane) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f %.4f", pl.a, pl.b, pl.c, pl.d)
}

//WriteInput writes the packing tool input for system s, asking for the
//packed coordinates in outfile. Orthogonal cells become an inside-box
//constraint shrunk by gap on every side; triclinic cells become six
//planes built from the cell vectors.
func WriteInput(w io.Writer, s *fftool.System, outfile string, tol, gap float64) error {
	box := s.Box
	if box == nil {
		return fmt.Errorf("pack: no simulation cell")
	}
	fmt.Fprintf(w, "# created by fftool\n")
	fmt.Fprintf(w, "tolerance %3.1f\n", tol)
	fmt.Fprintf(w, "filetype xyz\n")
	fmt.Fprintf(w, "output %s\n", outfile)
	for _, sp := range s.Spec {
		fmt.Fprintf(w, "\nstructure %s\n", SpeciesFile(sp))
		fmt.Fprintf(w, "  number %d\n", sp.Nmol)
		if box.Triclinic {
			o := r3.Vec{}
			p := r3.Vec{X: box.Lx}
			q := r3.Vec{X: box.Xy, Y: box.Ly}
			r := r3.Vec{X: box.Xz, Y: box.Yz, Z: box.Lz}
			fmt.Fprintf(w, "  over plane %s\n", newPlane(o, p, q))
			fmt.Fprintf(w, "  below plane %s\n", newPlane(r, r3.Add(p, r), r3.Add(q, r)))
			fmt.Fprintf(w, "  over plane %s\n", newPlane(o, r, p))
			fmt.Fprintf(w, "  below plane %s\n", newPlane(q, r3.Add(q, r), r3.Add(p, q)))
			fmt.Fprintf(w, "  over plane %s\n", newPlane(o, q, r))
			fmt.Fprintf(w, "  below plane %s\n", newPlane(p, r3.Add(p, q), r3.Add(p, r)))
		} else if box.Center {
			fmt.Fprintf(w, "  inside box %.4f %.4f %.4f %.4f %.4f %.4f\n",
				-box.A/2+gap, -box.B/2+gap, -box.C/2+gap,
				box.A/2-gap, box.B/2-gap, box.C/2-gap)
		} else {
			fmt.Fprintf(w, "  inside box %.4f %.4f %.4f %.4f %.4f %.4f\n",
				gap, gap, gap, box.A-gap, box.B-gap, box.C-gap)
		}
		if _, err := fmt.Fprintf(w, "end structure\n"); err != nil {
			return err
		}
	}
	return nil
}

//ReadCoords reads the full-system coordinates produced by the packing
//tool, an xyz file that may be gzip-compressed when the name ends in
//".gz". It returns the title token of the comment line and the
//positions.
func ReadCoords(filename string) (string, []r3.Vec, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	var rd io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", nil, fmt.Errorf("pack: %s: %v", filename, err)
		}
		defer gz.Close()
		rd = gz
	}
	sc := bufio.NewScanner(rd)
	if !sc.Scan() {
		return "", nil, fmt.Errorf("pack: empty coordinates file %s", filename)
	}
	natom, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return "", nil, fmt.Errorf("pack: bad atom count in %s: %q", filename, sc.Text())
	}
	title := ""
	if sc.Scan() {
		if tok := strings.Fields(sc.Text()); len(tok) > 0 {
			title = tok[0]
		}
	}
	pos := make([]r3.Vec, 0, natom)
	for i := 0; i < natom; i++ {
		if !sc.Scan() {
			return "", nil, fmt.Errorf("pack: truncated coordinates file %s", filename)
		}
		tok := strings.Fields(sc.Text())
		if len(tok) < 4 {
			return "", nil, fmt.Errorf("pack: bad record in %s: %q", filename, sc.Text())
		}
		var v r3.Vec
		if v.X, err = strconv.ParseFloat(tok[1], 64); err != nil {
			return "", nil, fmt.Errorf("pack: bad coordinate in %s: %q", filename, sc.Text())
		}
		if v.Y, err = strconv.ParseFloat(tok[2], 64); err != nil {
			return "", nil, fmt.Errorf("pack: bad coordinate in %s: %q", filename, sc.Text())
		}
		if v.Z, err = strconv.ParseFloat(tok[3], 64); err != nil {
			return "", nil, fmt.Errorf("pack: bad coordinate in %s: %q", filename, sc.Text())
		}
		pos = append(pos, v)
	}
	return title, pos, sc.Err()
}
