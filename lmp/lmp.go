//Package lmp writes LAMMPS simulation files for an assembled system:
//a data file with the topology, types and packed coordinates, and an
//input script with a sensible equilibration protocol. Force-field
//energies are stored in kJ/mol and converted to the chosen LAMMPS
//unit system on output.
package lmp

import (
	"fmt"
	"io"
	"os"

	"github.com/molsimtools/fftool"
)

//energy conversion factors from kJ/mol
const (
	kCal = 4.184
	eV   = 96.485
)

//Units selects the LAMMPS unit system.
type Units byte

const (
	Real  Units = 'r' //kcal/mol, femtoseconds
	Metal Units = 'm' //eV, picoseconds
)

//ParseUnits accepts "r"/"real" and "m"/"metal".
func ParseUnits(s string) (Units, error) {
	switch s {
	case "r", "real":
		return Real, nil
	case "m", "metal":
		return Metal, nil
	}
	return 0, fmt.Errorf("lmp: unknown units %q", s)
}

func (u Units) String() string {
	if u == Metal {
		return "metal"
	}
	return "real"
}

func (u Units) econv() (float64, error) {
	switch u {
	case Real:
		return kCal, nil
	case Metal:
		return eV, nil
	}
	return 0, fmt.Errorf("lmp: unknown units %q", string(u))
}

//Options controls the generated files.
type Options struct {
	Units    Units
	Mix      fftool.MixRule
	AllPairs bool //write explicit pair coefficients for every type pair
}

//counts of terms in the full system, species replicas included
type counts struct {
	atoms, bonds, angles, diheds int
}

func countTerms(s *fftool.System) counts {
	var n counts
	for _, sp := range s.Spec {
		n.atoms += sp.Nmol * sp.Len()
		n.bonds += sp.Nmol * len(sp.Bonds)
		n.angles += sp.Nmol * len(sp.Angles)
		n.diheds += sp.Nmol * (len(sp.Diheds) + len(sp.Imprs))
	}
	return n
}

//WriteFiles writes in.lmp and data.lmp in the current directory. When
//AllPairs is set and the pair list is long, the pair coefficients go
//to a separate pair.lmp included from the input script.
func WriteFiles(s *fftool.System, opts Options) error {
	fin, err := os.Create("in.lmp")
	if err != nil {
		return err
	}
	defer fin.Close()
	pairFile := ""
	if opts.AllPairs && len(s.VdW) > 12 {
		pairFile = "pair.lmp"
		fp, err := os.Create(pairFile)
		if err != nil {
			return err
		}
		if err := WritePairs(fp, s, opts); err != nil {
			fp.Close()
			return err
		}
		if err := fp.Close(); err != nil {
			return err
		}
	}
	if err := WriteInput(fin, s, opts, pairFile); err != nil {
		return err
	}
	fd, err := os.Create("data.lmp")
	if err != nil {
		return err
	}
	defer fd.Close()
	return WriteData(fd, s, opts)
}

//WritePairs writes one pair_coeff line per non-bonded interaction.
func WritePairs(w io.Writer, s *fftool.System, opts Options) error {
	ecnv, err := opts.Units.econv()
	if err != nil {
		return err
	}
	for _, nb := range s.VdW {
		_, err := fmt.Fprintf(w, "pair_coeff %4d %4d %s %12.6f %12.6f  # %s %s\n",
			nb.ITyp+1, nb.JTyp+1, "lj/cut/coul/long",
			nb.Par[1]/ecnv, nb.Par[0], nb.I, nb.J)
		if err != nil {
			return err
		}
	}
	return nil
}

//WriteInput writes the LAMMPS input script. With an empty pairFile the
//pair coefficients are inlined (per-type lines relying on mixing, or
//the full pair list when AllPairs is set); otherwise an include line
//points at pairFile.
func WriteInput(w io.Writer, s *fftool.System, opts Options, pairFile string) error {
	ecnv, err := opts.Units.econv()
	if err != nil {
		return err
	}
	n := countTerms(s)

	fmt.Fprintf(w, "# created by fftool\n\n")
	fmt.Fprintf(w, "units %s\n", opts.Units)
	fmt.Fprintf(w, "boundary p p p\n\n")

	fmt.Fprintf(w, "atom_style full\n")
	if n.bonds > 0 {
		fmt.Fprintf(w, "bond_style harmonic\n")
	}
	if n.angles > 0 {
		fmt.Fprintf(w, "angle_style harmonic\n")
	}
	if n.diheds > 0 {
		fmt.Fprintf(w, "dihedral_style opls\n")
	}
	fmt.Fprintf(w, "\nspecial_bonds lj/coul 0.0 0.0 0.5\n\n")

	fmt.Fprintf(w, "pair_style hybrid lj/cut/coul/long 12.0 12.0\n")
	if !opts.AllPairs {
		if opts.Mix == fftool.MixArithmetic {
			fmt.Fprintf(w, "pair_modify mix arithmetic tail yes\n")
		} else {
			fmt.Fprintf(w, "pair_modify mix geometric tail yes\n")
		}
		fmt.Fprintf(w, "kspace_style pppm 1.0e-5\n\n")
		fmt.Fprintf(w, "read_data data.lmp\n")
		fmt.Fprintf(w, "# read_restart restart1.lmp\n\n")
		for _, att := range s.AtTypes {
			fmt.Fprintf(w, "pair_coeff %4d %4d %s %12.6f %12.6f  # %s %s\n",
				att.TypeIndex+1, att.TypeIndex+1, "lj/cut/coul/long",
				att.Par[1]/ecnv, att.Par[0], att.Name, att.Name)
		}
	} else {
		fmt.Fprintf(w, "pair_modify tail yes\n")
		fmt.Fprintf(w, "kspace_style pppm 1.0e-5\n\n")
		fmt.Fprintf(w, "read_data data.lmp\n\n")
		if pairFile != "" {
			fmt.Fprintf(w, "include %s\n", pairFile)
		} else if err := WritePairs(w, s, opts); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "# minimize 1.0e-4 1.0e-6 100 1000\n")
	fmt.Fprintf(w, "# reset_timestep 0\n\n")

	writeShake(w, s)

	fmt.Fprintf(w, "neighbor 2.0 bin\n")
	fmt.Fprintf(w, "# neigh_modify delay 0 every 1 check yes\n\n")
	if opts.Units == Metal {
		fmt.Fprintf(w, "timestep 0.001\n\n")
	} else {
		fmt.Fprintf(w, "timestep 1.0\n\n")
	}

	fmt.Fprintf(w, "variable TK equal 300.0\n")
	fmt.Fprintf(w, "variable PBAR equal 1.0\n\n")
	fmt.Fprintf(w, "velocity all create ${TK} 12345\n\n")
	fmt.Fprintf(w, "fix TPSTAT all npt temp ${TK} ${TK} 100 iso ${PBAR} ${PBAR} 1000\n\n")
	fmt.Fprintf(w, "thermo_style custom step cpu etotal ke pe evdwl ecoul elong temp press vol density\n")
	fmt.Fprintf(w, "thermo 1000\n\n")

	fmt.Fprintf(w, "dump TRAJ all custom 1000 dump.lammpstrj id mol type element q x y z ix iy iz\n")
	fmt.Fprintf(w, "dump_modify TRAJ element")
	for _, att := range s.AtTypes {
		fmt.Fprintf(w, " %s", att.Symbol)
	}
	fmt.Fprintf(w, "\n\n")

	fmt.Fprintf(w, "variable t equal time\n")
	fmt.Fprintf(w, "compute MSD all msd com yes\n")
	fmt.Fprintf(w, "variable msd equal c_MSD[4]\n")
	fmt.Fprintf(w, "fix PRMSD all print 2000 \"${t} ${msd}\" file msd.lammps screen no\n\n")

	fmt.Fprintf(w, "variable vinst equal vol\n")
	fmt.Fprintf(w, "fix VAVG all ave/time 10 1000 50000 v_vinst\n\n")
	fmt.Fprintf(w, "# restart 10000 restart1.lmp restart2.lmp\n\n")
	fmt.Fprintf(w, "run 50000\n\n")

	fmt.Fprintf(w, "variable lscale equal (f_VAVG/v_vinst)^(1.0/3.0)\n")
	fmt.Fprintf(w, "print \"scaling coordinates by ${lscale}\"\n")
	fmt.Fprintf(w, "change_box all x scale ${lscale} y scale ${lscale} z scale ${lscale} remap\n\n")

	fmt.Fprintf(w, "unfix VAVG\n")
	fmt.Fprintf(w, "unfix TPSTAT\n")
	fmt.Fprintf(w, "fix TSTAT all nvt temp ${TK} ${TK} 100\n\n")
	fmt.Fprintf(w, "run 10000\n\n")
	_, err = fmt.Fprintf(w, "write_data data.eq.lmp\n")
	return err
}

//writeShake emits a SHAKE fix covering the constrained bond and angle
//types, if any.
func writeShake(w io.Writer, s *fftool.System) {
	shakebd := false
	for _, bdt := range s.BdTypes {
		if bdt.Pot == fftool.Cons {
			shakebd = true
		}
	}
	shakean := false
	for _, ant := range s.AnTypes {
		if ant.Pot == fftool.Cons {
			shakean = true
		}
	}
	if !shakebd && !shakean {
		return
	}
	fmt.Fprintf(w, "fix SHAKE all shake 0.0001 20 0")
	if shakebd {
		fmt.Fprintf(w, " b")
		for _, bdt := range s.BdTypes {
			if bdt.Pot == fftool.Cons {
				fmt.Fprintf(w, " %d", bdt.TypeIndex+1)
			}
		}
	}
	if shakean {
		fmt.Fprintf(w, " a")
		for _, ant := range s.AnTypes {
			if ant.Pot == fftool.Cons {
				fmt.Fprintf(w, " %d", ant.TypeIndex+1)
			}
		}
	}
	fmt.Fprintf(w, "\n\n")
}

//WriteData writes the LAMMPS data file: counts, box bounds with tilt
//factors for triclinic cells, type tables with converted coefficients,
//and the per-replica atom and bonded term sections. The system must
//carry packed coordinates for every atom.
func WriteData(w io.Writer, s *fftool.System, opts Options) error {
	ecnv, err := opts.Units.econv()
	if err != nil {
		return err
	}
	pos := s.PackedCoords()
	n := countTerms(s)
	if len(pos) != n.atoms {
		return fmt.Errorf("lmp: system has %d coordinates for %d atoms", len(pos), n.atoms)
	}
	box := s.Box
	if box == nil {
		return fmt.Errorf("lmp: no simulation cell")
	}

	fmt.Fprintf(w, "created by fftool\n\n")
	fmt.Fprintf(w, "%d atoms\n", n.atoms)
	if n.bonds > 0 {
		fmt.Fprintf(w, "%d bonds\n", n.bonds)
	}
	if n.angles > 0 {
		fmt.Fprintf(w, "%d angles\n", n.angles)
	}
	if n.diheds > 0 {
		fmt.Fprintf(w, "%d dihedrals\n", n.diheds)
	}
	fmt.Fprintf(w, "%d atom types\n", len(s.AtTypes))
	if n.bonds > 0 {
		fmt.Fprintf(w, "%d bond types\n", len(s.BdTypes))
	}
	if n.angles > 0 {
		fmt.Fprintf(w, "%d angle types\n", len(s.AnTypes))
	}
	ndht := len(s.DhTypes)
	if n.diheds > 0 {
		fmt.Fprintf(w, "%d dihedral types\n", ndht+len(s.DiTypes))
	}

	if box.Center {
		fmt.Fprintf(w, "%f %f xlo xhi\n", -box.Lx/2, box.Lx/2)
		fmt.Fprintf(w, "%f %f ylo yhi\n", -box.Ly/2, box.Ly/2)
		fmt.Fprintf(w, "%f %f zlo zhi\n", -box.Lz/2, box.Lz/2)
	} else {
		fmt.Fprintf(w, "%f %f xlo xhi\n", 0.0, box.Lx)
		fmt.Fprintf(w, "%f %f ylo yhi\n", 0.0, box.Ly)
		fmt.Fprintf(w, "%f %f zlo zhi\n", 0.0, box.Lz)
	}
	if box.Triclinic {
		fmt.Fprintf(w, "%f %f %f xy xz yz\n", box.Xy, box.Xz, box.Yz)
	}

	fmt.Fprintf(w, "\nMasses\n\n")
	for _, att := range s.AtTypes {
		fmt.Fprintf(w, "%4d %8.3f  # %s\n", att.TypeIndex+1, att.Mass, att.Name)
	}

	if n.bonds > 0 {
		fmt.Fprintf(w, "\nBond Coeffs\n\n")
		for _, bdt := range s.BdTypes {
			fmt.Fprintf(w, "%4d %12.6f %12.6f  # %s\n",
				bdt.TypeIndex+1, bdt.Par[1]/(2.0*ecnv), bdt.Par[0], bdt.Name)
		}
	}
	if n.angles > 0 {
		fmt.Fprintf(w, "\nAngle Coeffs\n\n")
		for _, ant := range s.AnTypes {
			fmt.Fprintf(w, "%4d %12.6f %12.6f  # %s\n",
				ant.TypeIndex+1, ant.Par[1]/(2.0*ecnv), ant.Par[0], ant.Name)
		}
	}
	if n.diheds > 0 {
		fmt.Fprintf(w, "\nDihedral Coeffs\n\n")
		for _, dht := range s.DhTypes {
			fmt.Fprintf(w, "%4d %12.6f %12.6f %12.6f %12.6f  # %s\n",
				dht.TypeIndex+1, dht.Par[0]/ecnv, dht.Par[1]/ecnv,
				dht.Par[2]/ecnv, dht.Par[3]/ecnv, dht.Name)
		}
		for _, dit := range s.DiTypes {
			fmt.Fprintf(w, "%4d %12.6f %12.6f %12.6f %12.6f  # %s\n",
				ndht+dit.TypeIndex+1, dit.Par[0]/ecnv, dit.Par[1]/ecnv,
				dit.Par[2]/ecnv, dit.Par[3]/ecnv, dit.Name)
		}
	}

	fmt.Fprintf(w, "\nAtoms\n\n")
	i, nmol := 0, 0
	for _, sp := range s.Spec {
		for im := 0; im < sp.Nmol; im++ {
			for _, at := range sp.Atoms {
				fmt.Fprintf(w, "%7d %7d %4d %8.4f %13.6e %13.6e %13.6e  # %s %s\n",
					i+1, nmol+1, at.TypeIndex+1, at.Charge,
					pos[i].X, pos[i].Y, pos[i].Z, at.Name, sp.Name)
				i++
			}
			nmol++
		}
	}

	if n.bonds > 0 {
		fmt.Fprintf(w, "\nBonds\n\n")
		i, shift := 1, 1
		for _, sp := range s.Spec {
			for im := 0; im < sp.Nmol; im++ {
				for _, bd := range sp.Bonds {
					fmt.Fprintf(w, "%7d %4d %7d %7d  # %s\n",
						i, bd.TypeIndex+1, bd.I+shift, bd.J+shift, bd.Name)
					i++
				}
				shift += sp.Len()
			}
		}
	}
	if n.angles > 0 {
		fmt.Fprintf(w, "\nAngles\n\n")
		i, shift := 1, 1
		for _, sp := range s.Spec {
			for im := 0; im < sp.Nmol; im++ {
				for _, an := range sp.Angles {
					fmt.Fprintf(w, "%7d %4d %7d %7d %7d  # %s\n",
						i, an.TypeIndex+1, an.I+shift, an.J+shift, an.K+shift, an.Name)
					i++
				}
				shift += sp.Len()
			}
		}
	}
	if n.diheds > 0 {
		fmt.Fprintf(w, "\nDihedrals\n\n")
		i, shift := 1, 1
		for _, sp := range s.Spec {
			for im := 0; im < sp.Nmol; im++ {
				for _, dh := range sp.Diheds {
					fmt.Fprintf(w, "%7d %4d %7d %7d %7d %7d  # %s\n",
						i, dh.TypeIndex+1, dh.I+shift, dh.J+shift,
						dh.K+shift, dh.L+shift, dh.Name)
					i++
				}
				for _, di := range sp.Imprs {
					fmt.Fprintf(w, "%7d %4d %7d %7d %7d %7d  # %s\n",
						i, ndht+di.TypeIndex+1, di.I+shift, di.J+shift,
						di.K+shift, di.L+shift, di.Name)
					i++
				}
				shift += sp.Len()
			}
		}
	}
	return nil
}
