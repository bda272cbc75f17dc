/*
 * cell.go, part of fftool.
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
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Deg2Rad and Rad2Deg convert between angle units.
const (
	Deg2Rad = math.Pi / 180.0
	Rad2Deg = 180.0 / math.Pi
)

const avogadro = 6.022e+23

//appzero is the threshold under which a vector norm is considered zero.
const appzero = 1e-10

//Cell is a simulation cell/box: cubic, orthorhombic, monoclinic or
//triclinic. It is immutable after construction.
type Cell struct {
	A, B, C             float64
	Alpha, Beta, Gamma  float64 //degrees
	Volume              float64
	Lx, Ly, Lz          float64 //box lengths
	Xy, Xz, Yz          float64 //tilt factors
	Triclinic           bool
	Center              bool //box centered on the origin
	pbcx, pbcy, pbcz    bool
	ftocmat, ctofmat    *mat.Dense
}

//NewCell builds a cell from the six lattice parameters. If b or c are
//zero they default to a (cubic). The pbc string names the periodic
//axes, e.g. "x", "xy", "xyz"; empty means no wrapping at all. The
//angles are given in degrees.
func NewCell(a, b, c, alpha, beta, gamma float64, pbc string, center bool) *Cell {
	if b == 0.0 {
		b = a
	}
	if c == 0.0 {
		c = a
	}
	cl := &Cell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
	cl.Triclinic = alpha != 90.0 || beta != 90.0 || gamma != 90.0
	cl.Center = center
	cl.pbcx = strings.Contains(pbc, "x")
	cl.pbcy = strings.Contains(pbc, "y")
	cl.pbcz = strings.Contains(pbc, "z")

	//rounding cuts the cos(90 deg) residue so orthogonal cells get
	//exactly zero off-diagonal terms.
	const ndig = 1e14
	ca := math.Round(math.Cos(alpha*Deg2Rad)*ndig) / ndig
	cb := math.Round(math.Cos(beta*Deg2Rad)*ndig) / ndig
	cg := math.Round(math.Cos(gamma*Deg2Rad)*ndig) / ndig
	sg := math.Round(math.Sin(gamma*Deg2Rad)*ndig) / ndig

	v := a * b * c * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
	cl.Volume = v

	cl.ftocmat = mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0.0, b * sg, c * (ca - cb*cg) / sg,
		0.0, 0.0, v / (a * b * sg),
	})
	cl.ctofmat = mat.NewDense(3, 3, []float64{
		1.0 / a, -cg / (a * sg), b * c * (ca*cg - cb) / (v * sg),
		0.0, 1.0 / (b * sg), a * c * (cb*cg - ca) / (v * sg),
		0.0, 0.0, a * b * sg / v,
	})

	cl.Lx = a
	cl.Xy = b * cg
	cl.Xz = c * cb
	cl.Ly = b * sg
	cl.Yz = c * (ca - cb*cg) / sg
	cl.Lz = v / (a * b * sg)
	return cl
}

//CubicCellForDensity back-solves the edge of a cubic box holding nmol
//molecules at the number density rho (in mol/L).
func CubicCellForDensity(nmol int, rho float64, pbc string, center bool) *Cell {
	a := math.Cbrt(float64(nmol) / (rho * avogadro * 1.0e-27))
	return NewCell(a, a, a, 90.0, 90.0, 90.0, pbc, center)
}

//Density returns the number density, in mol/L, of nmol molecules in
//the cell.
func (c *Cell) Density(nmol int) float64 {
	return float64(nmol) / (c.Volume * 1.0e-27 * avogadro)
}

//Periodic returns whether any axis participates in minimum-image
//wrapping.
func (c *Cell) Periodic() bool {
	return c.pbcx || c.pbcy || c.pbcz
}

func mulvec(m *mat.Dense, v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

//Ftoc converts fractional to Cartesian coordinates.
func (c *Cell) Ftoc(f r3.Vec) r3.Vec {
	return mulvec(c.ftocmat, f)
}

//Ctof converts Cartesian to fractional coordinates.
func (c *Cell) Ctof(x r3.Vec) r3.Vec {
	return mulvec(c.ctofmat, x)
}

//MinImage applies the minimum-image convention to the pair delta d,
//per enabled axis. For triclinic cells the wrapping happens in
//fractional space.
func (c *Cell) MinImage(d r3.Vec) r3.Vec {
	if !c.Periodic() {
		return d
	}
	if c.Triclinic {
		fd := c.Ctof(d)
		if c.pbcx {
			fd.X -= math.Round(fd.X)
		}
		if c.pbcy {
			fd.Y -= math.Round(fd.Y)
		}
		if c.pbcz {
			fd.Z -= math.Round(fd.Z)
		}
		return c.Ftoc(fd)
	}
	if c.pbcx {
		d.X -= math.Round(d.X/c.Lx) * c.Lx
	}
	if c.pbcy {
		d.Y -= math.Round(d.Y/c.Ly) * c.Ly
	}
	if c.pbcz {
		d.Z -= math.Round(d.Z/c.Lz) * c.Lz
	}
	return d
}

//Distance returns the distance between two points, with minimum-image
//correction when a periodic cell is given (box may be nil).
func Distance(ri, rj r3.Vec, box *Cell) float64 {
	d := r3.Sub(rj, ri)
	if box != nil {
		d = box.MinImage(d)
	}
	return r3.Norm(d)
}

//Angle3 returns the angle, in degrees, formed at rj by the three
//points, with minimum-image correction when a periodic cell is given
//(box may be nil). Coincident points make the angle undefined and give
//an error instead of a NaN.
func Angle3(ri, rj, rk r3.Vec, box *Cell) (float64, error) {
	dji := r3.Sub(ri, rj)
	djk := r3.Sub(rk, rj)
	if box != nil {
		dji = box.MinImage(dji)
		djk = box.MinImage(djk)
	}
	nji := r3.Norm(dji)
	njk := r3.Norm(djk)
	if nji <= appzero || njk <= appzero {
		return 0, newError("angle over coincident points")
	}
	arg := r3.Dot(dji, djk) / (nji * njk)
	//floating point can leave arg slightly outside [-1,1]
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return math.Acos(arg) * Rad2Deg, nil
}
