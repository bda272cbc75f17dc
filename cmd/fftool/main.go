// Command fftool builds force-field parameters and starting
// coordinates for molecular simulation boxes. A first run produces the
// packing tool input; a second run with -l converts the packed
// coordinates into LAMMPS files.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/molsimtools/fftool"
	"github.com/molsimtools/fftool/ffplot"
	"github.com/molsimtools/fftool/lmp"
	"github.com/molsimtools/fftool/pack"
)

type options struct {
	box      string
	rho      float64
	center   bool
	tol      float64
	mix      string
	lammps   bool
	allpairs bool
	units    string
	pbc      string
	coords   string
	plot     string
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "fftool [n1] file1 [n2 file2 ...]",
		Short: "force-field parameters and coordinates for simulation boxes",
		Long: "Force-field parameters and atomic coordinates for molecules\n" +
			"described in z-matrix, MDL mol, PDB or xyz formats. Produces a\n" +
			"pack.inp file for Packmol to build the simulation box, then on a\n" +
			"second run creates input files for MD simulation. The force-field\n" +
			"filename is given inside each molecule file.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
		SilenceUsage: true,
	}
	f := cmd.Flags()
	f.StringVarP(&opts.box, "box", "b", "", "box length in A (cubic), or a,b,c[,alpha,beta,gamma]")
	f.Float64VarP(&opts.rho, "rho", "r", 0.0, "density in mol/L")
	f.BoolVarP(&opts.center, "center", "c", false, "center box on origin")
	f.Float64VarP(&opts.tol, "tol", "t", pack.DefaultTol, "tolerance for Packmol")
	f.StringVarP(&opts.mix, "mix", "x", "g", "[a]rithmetic or [g]eometric sigma_ij")
	f.BoolVarP(&opts.lammps, "lammps", "l", false, "save LAMMPS input files (needs packed coordinates)")
	f.BoolVarP(&opts.allpairs, "allpairs", "a", false, "write all i j pairs to LAMMPS input files")
	f.StringVarP(&opts.units, "units", "u", "r", "LAMMPS units [r]eal or [m]etal")
	f.StringVarP(&opts.pbc, "pbc", "p", "", "connect bonds across periodic boundaries in x, xy, xyz, etc.")
	f.StringVar(&opts.coords, "coords", "simbox.xyz", "packed coordinates file")
	f.StringVar(&opts.plot, "plot", "", "save deviation histograms with this filename prefix")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	logcfg := zap.NewDevelopmentConfig()
	logcfg.DisableStacktrace = true
	logcfg.DisableCaller = true
	logger, err := logcfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	nmols, files, err := speciesArgs(args)
	if err != nil {
		return err
	}
	nmol := 0
	for _, n := range nmols {
		nmol += n
	}

	box, err := makeBox(opts, nmol)
	if err != nil {
		return err
	}
	fmt.Printf("density %.3f mol/L  volume %.1f A^3\n", box.Density(nmol), box.Volume)

	connect := opts.lammps
	fmt.Println("molecule descriptions")
	var spec []*fftool.Molecule
	var reports []*fftool.Report
	for i, file := range files {
		fmt.Println("  " + file)
		m, rep, err := fftool.ReadMolecule(file, connect, box)
		if err != nil {
			return err
		}
		m.Nmol = nmols[i]
		for _, msg := range rep.Messages() {
			log.Warn(msg)
		}
		spec = append(spec, m)
		reports = append(reports, rep)
	}

	speciesTable(os.Stdout, spec)

	mix, err := fftool.ParseMixRule(opts.mix)
	if err != nil {
		return err
	}
	sim, err := fftool.NewSystem(spec, box, mix)
	if err != nil {
		return err
	}
	if err := pack.WriteSpeciesFiles(sim); err != nil {
		return err
	}

	if opts.plot != "" {
		for i, rep := range reports {
			prefix := opts.plot + "_" + spec[i].Name
			if err := ffplot.Deviations(rep, prefix); err != nil {
				log.Warnf("plot for %s: %v", spec[i].Name, err)
			}
		}
	}

	if opts.lammps {
		title, pos, err := pack.ReadCoords(opts.coords)
		if err != nil {
			return fmt.Errorf("coordinates file %s: %v", opts.coords, err)
		}
		if err := sim.SetPackedCoords(title, pos); err != nil {
			return err
		}
		units, err := lmp.ParseUnits(opts.units)
		if err != nil {
			return err
		}
		fmt.Printf("lammps files units %s\n", units)
		fmt.Println("  in.lmp\n  data.lmp")
		if opts.allpairs && len(sim.VdW) > 12 {
			fmt.Println("  pair.lmp")
		}
		return lmp.WriteFiles(sim, lmp.Options{Units: units, Mix: mix, AllPairs: opts.allpairs})
	}

	fmt.Println("packmol file\n  pack.inp")
	boxtol := 1.5
	if opts.pbc != "" {
		boxtol = 0.0
	}
	f, err := os.Create("pack.inp")
	if err != nil {
		return err
	}
	defer f.Close()
	return pack.WriteInput(f, sim, opts.coords, opts.tol, boxtol)
}

//speciesArgs splits the positional arguments into molecule counts and
//filenames: "n1 file1 n2 file2 ...", or a single file meaning one
//molecule.
//speciesTable prints the per-species summary: copies, bond count,
//where the connectivity came from, and net charge.
func speciesTable(w io.Writer, spec []*fftool.Molecule) {
	fmt.Fprintln(w, "species                 nmol  bonds  source   charge")
	for _, sp := range spec {
		fmt.Fprintf(w, "  %-20s %5d  %5d  %-5s %+8.4f\n",
			sp.Name, sp.Nmol, len(sp.Bonds), sp.Topol, sp.Charge())
	}
}

func speciesArgs(args []string) ([]int, []string, error) {
	if len(args) == 1 {
		return []int{1}, args, nil
	}
	if len(args)%2 != 0 {
		return nil, nil, fmt.Errorf("arguments must be n1 file1 [n2 file2 ...]")
	}
	var nmols []int
	var files []string
	for i := 0; i < len(args); i += 2 {
		n, err := strconv.Atoi(args[i])
		if err != nil || n < 1 {
			return nil, nil, fmt.Errorf("bad molecule count %q", args[i])
		}
		nmols = append(nmols, n)
		files = append(files, args[i+1])
	}
	return nmols, files, nil
}

//makeBox builds the simulation cell from the box or density options.
func makeBox(opts *options, nmol int) (*fftool.Cell, error) {
	if opts.box != "" && opts.rho != 0.0 {
		return nil, fmt.Errorf("supply density or box dimensions, not both")
	}
	if opts.box != "" {
		tok := strings.Split(opts.box, ",")
		val := make([]float64, len(tok))
		for i, t := range tok {
			v, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, fmt.Errorf("bad box dimension %q", t)
			}
			val[i] = v
		}
		switch len(val) {
		case 1:
			return fftool.NewCell(val[0], 0, 0, 90, 90, 90, opts.pbc, opts.center), nil
		case 3:
			return fftool.NewCell(val[0], val[1], val[2], 90, 90, 90, opts.pbc, opts.center), nil
		case 6:
			return fftool.NewCell(val[0], val[1], val[2], val[3], val[4], val[5], opts.pbc, opts.center), nil
		}
		return nil, fmt.Errorf("wrong box dimensions and angles")
	}
	if opts.rho != 0.0 {
		if opts.rho < 0 || math.IsNaN(opts.rho) {
			return nil, fmt.Errorf("bad density %v", opts.rho)
		}
		return fftool.CubicCellForDensity(nmol, opts.rho, opts.pbc, opts.center), nil
	}
	return nil, fmt.Errorf("density or box dimensions need to be supplied")
}
