//Package ffplot draws histograms of the deviations between molecular
//geometry and force-field equilibrium values, which help judging
//whether an input conformation matches the parameter set.
package ffplot

import (
	"fmt"

	"github.com/molsimtools/fftool"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Histogram saves a histogram of devs to plotname. The extension of
//plotname selects the image format.
func Histogram(devs []float64, title, xlabel, plotname string) error {
	if len(devs) == 0 {
		return fmt.Errorf("ffplot: no data for %s", plotname)
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	nbins := len(devs)/5 + 5
	if nbins > 50 {
		nbins = 50
	}
	h, err := plotter.NewHist(plotter.Values(devs), nbins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(5*vg.Inch, 4*vg.Inch, plotname)
}

//Deviations saves bond and angle deviation histograms for a report,
//named after prefix. Empty deviation sets are skipped.
func Deviations(rep *fftool.Report, prefix string) error {
	if len(rep.BondDevs) > 0 {
		err := Histogram(rep.BondDevs, "Bond length deviations",
			"r - r_eq / A", prefix+"_bonds.png")
		if err != nil {
			return err
		}
	}
	if len(rep.AngleDevs) > 0 {
		err := Histogram(rep.AngleDevs, "Angle deviations",
			"theta - theta_eq / deg", prefix+"_angles.png")
		if err != nil {
			return err
		}
	}
	return nil
}
